package usecase

import "errors"

// Business-rule outcomes. These are terminal decisions, not transient
// failures: callers surface them and never retry. Handlers translate them
// with errors.Is instead of matching message text.
var (
	// ErrNotFound is returned when a referenced movie, showtime, customer,
	// or booking id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSchedulingConflict is returned when a proposed showtime interval
	// overlaps an existing showtime in the same theater.
	ErrSchedulingConflict = errors.New("overlapping showtime at this theater")

	// ErrSeatTaken is returned when the requested seat is already booked
	// for the showtime.
	ErrSeatTaken = errors.New("seat already booked for this showtime")

	// ErrDuplicateMovie is returned on create when a movie with the same
	// title, genre, and release year already exists.
	ErrDuplicateMovie = errors.New("movie with same title, genre, and release year already exists")

	// ErrDeletionBlocked is returned when dependent records still reference
	// the entity being deleted.
	ErrDeletionBlocked = errors.New("dependent records exist")
)
