package usecase

import "sync"

// keyedMutex serializes critical sections per key. Entries are refcounted and
// removed once the last holder releases, so the map does not grow with every
// key ever locked.
type keyedMutex struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{entries: make(map[string]*lockEntry)}
}

// Lock blocks until the mutex for key is held and returns the matching
// unlock func.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &lockEntry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.entries, key)
		}
		k.mu.Unlock()
	}
}

// entityLocks carries the lock discipline shared by all services.
//
// Every check-then-mutate sequence holds the lock guarding creation of the
// dependent entity type:
//
//	theaters[name]  overlap check + showtime insert/update per theater
//	movies[id]      showtime creation vs. movie deletion
//	showtimes[id]   seat check + booking insert vs. showtime deletion
//	customers[id]   booking insert vs. customer deletion
//
// Acquisition order is fixed (movie before theater, showtime before customer)
// so no two sequences can deadlock.
type entityLocks struct {
	theaters  *keyedMutex
	movies    *keyedMutex
	showtimes *keyedMutex
	customers *keyedMutex
}

func newEntityLocks() *entityLocks {
	return &entityLocks{
		theaters:  newKeyedMutex(),
		movies:    newKeyedMutex(),
		showtimes: newKeyedMutex(),
		customers: newKeyedMutex(),
	}
}
