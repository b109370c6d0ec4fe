package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"popcorn-palace/internal/data/entity"
	"popcorn-palace/internal/data/repository"

	"github.com/google/uuid"
)

// fakeStore is an in-memory entity store backing the repository interfaces
// for service tests. Its own mutex only guards map access; the check-then-act
// atomicity under test comes from the services' lock discipline.
type fakeStore struct {
	mu        sync.RWMutex
	movies    map[uuid.UUID]entity.Movie
	showtimes map[uuid.UUID]entity.Showtime
	customers map[uuid.UUID]entity.Customer
	bookings  map[uuid.UUID]entity.Booking
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		movies:    make(map[uuid.UUID]entity.Movie),
		showtimes: make(map[uuid.UUID]entity.Showtime),
		customers: make(map[uuid.UUID]entity.Customer),
		bookings:  make(map[uuid.UUID]entity.Booking),
	}
}

func newTestRepository() (*repository.Repository, *fakeStore) {
	store := newFakeStore()
	return &repository.Repository{
		Movie:    &fakeMovieRepo{store},
		Showtime: &fakeShowtimeRepo{store},
		Customer: &fakeCustomerRepo{store},
		Booking:  &fakeBookingRepo{store},
	}, store
}

func (s *fakeStore) seedMovie(title, genre string, duration, year int) *entity.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	movie := entity.Movie{
		Base:              entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Title:             title,
		Genre:             genre,
		DurationInMinutes: duration,
		Rating:            7.5,
		ReleaseYear:       year,
	}
	s.movies[movie.ID] = movie
	return &movie
}

func (s *fakeStore) seedShowtime(movieID uuid.UUID, theater string, start, end time.Time) *entity.Showtime {
	s.mu.Lock()
	defer s.mu.Unlock()
	showtime := entity.Showtime{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		MovieID:   movieID,
		Theater:   theater,
		StartTime: start,
		EndTime:   end,
		Price:     12.5,
	}
	s.showtimes[showtime.ID] = showtime
	return &showtime
}

func (s *fakeStore) seedCustomer(name, email string) *entity.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer := entity.Customer{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		FullName: name,
		Email:    email,
	}
	s.customers[customer.ID] = customer
	return &customer
}

// vanishingShowtimeRepo drops the showtime from the store as soon as it is
// resolved, modeling a concurrent delete landing between the read and the
// subsequent write.
type vanishingShowtimeRepo struct {
	repository.ShowtimeRepository
	s *fakeStore
}

func (r *vanishingShowtimeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	showtime, err := r.ShowtimeRepository.FindByID(ctx, id)
	if showtime != nil {
		r.s.mu.Lock()
		delete(r.s.showtimes, id)
		r.s.mu.Unlock()
	}
	return showtime, err
}

type vanishingMovieRepo struct {
	repository.MovieRepository
	s *fakeStore
}

func (r *vanishingMovieRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	movie, err := r.MovieRepository.FindByID(ctx, id)
	if movie != nil {
		r.s.mu.Lock()
		delete(r.s.movies, id)
		r.s.mu.Unlock()
	}
	return movie, err
}

func mustParseUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("parse uuid %q: %v", s, err)
	}
	return id
}

// ---------- movies ----------

type fakeMovieRepo struct{ s *fakeStore }

func (r *fakeMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movies[movie.ID] = *movie
	return nil
}

func (r *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if movie, ok := r.s.movies[id]; ok {
		m := movie
		return &m, nil
	}
	return nil, nil
}

func (r *fakeMovieRepo) FindByTitleGenreYear(_ context.Context, title, genre string, year int) (*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, movie := range r.s.movies {
		if movie.Title == title && movie.Genre == genre && movie.ReleaseYear == year {
			m := movie
			return &m, nil
		}
	}
	return nil, nil
}

func (r *fakeMovieRepo) Update(_ context.Context, movie *entity.Movie) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movies[movie.ID]; !ok {
		return false, nil
	}
	r.s.movies[movie.ID] = *movie
	return true, nil
}

func (r *fakeMovieRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movies[id]; !ok {
		return false, nil
	}
	delete(r.s.movies, id)
	return true, nil
}

func (r *fakeMovieRepo) List(_ context.Context) ([]*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var movies []*entity.Movie
	for _, movie := range r.s.movies {
		m := movie
		movies = append(movies, &m)
	}
	return movies, nil
}

// ---------- showtimes ----------

type fakeShowtimeRepo struct{ s *fakeStore }

func (r *fakeShowtimeRepo) Create(_ context.Context, showtime *entity.Showtime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.showtimes[showtime.ID] = *showtime
	return nil
}

func (r *fakeShowtimeRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Showtime, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if showtime, ok := r.s.showtimes[id]; ok {
		s := showtime
		return &s, nil
	}
	return nil, nil
}

func (r *fakeShowtimeRepo) FindByMovieID(_ context.Context, movieID uuid.UUID) ([]*entity.Showtime, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var showtimes []*entity.Showtime
	for _, showtime := range r.s.showtimes {
		if showtime.MovieID == movieID {
			s := showtime
			showtimes = append(showtimes, &s)
		}
	}
	return showtimes, nil
}

func (r *fakeShowtimeRepo) ExistsOverlap(_ context.Context, theater string, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, showtime := range r.s.showtimes {
		if showtime.Theater != theater || showtime.ID == excludeID {
			continue
		}
		if showtime.StartTime.Before(end) && start.Before(showtime.EndTime) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeShowtimeRepo) Update(_ context.Context, showtime *entity.Showtime) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.showtimes[showtime.ID]; !ok {
		return false, nil
	}
	r.s.showtimes[showtime.ID] = *showtime
	return true, nil
}

func (r *fakeShowtimeRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.showtimes[id]; !ok {
		return false, nil
	}
	delete(r.s.showtimes, id)
	return true, nil
}

func (r *fakeShowtimeRepo) List(_ context.Context) ([]*entity.Showtime, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var showtimes []*entity.Showtime
	for _, showtime := range r.s.showtimes {
		s := showtime
		showtimes = append(showtimes, &s)
	}
	return showtimes, nil
}

// ---------- customers ----------

type fakeCustomerRepo struct{ s *fakeStore }

func (r *fakeCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if customer, ok := r.s.customers[id]; ok {
		c := customer
		return &c, nil
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[id]; !ok {
		return false, nil
	}
	delete(r.s.customers, id)
	return true, nil
}

func (r *fakeCustomerRepo) List(_ context.Context) ([]*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var customers []*entity.Customer
	for _, customer := range r.s.customers {
		c := customer
		customers = append(customers, &c)
	}
	return customers, nil
}

// ---------- bookings ----------

type fakeBookingRepo struct{ s *fakeStore }

func (r *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.bookings[booking.ID] = *booking
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if booking, ok := r.s.bookings[id]; ok {
		b := booking
		return &b, nil
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindByCustomerID(_ context.Context, customerID uuid.UUID) ([]*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var bookings []*entity.Booking
	for _, booking := range r.s.bookings {
		if booking.CustomerID == customerID {
			b := booking
			bookings = append(bookings, &b)
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepo) ExistsForShowtimeSeat(_ context.Context, showtimeID uuid.UUID, seatNumber int) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, booking := range r.s.bookings {
		if booking.ShowtimeID == showtimeID && booking.SeatNumber == seatNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) ExistsForShowtime(_ context.Context, showtimeID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, booking := range r.s.bookings {
		if booking.ShowtimeID == showtimeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) ExistsForCustomer(_ context.Context, customerID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, booking := range r.s.bookings {
		if booking.CustomerID == customerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[id]; !ok {
		return false, nil
	}
	delete(r.s.bookings, id)
	return true, nil
}

func (r *fakeBookingRepo) List(_ context.Context) ([]*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var bookings []*entity.Booking
	for _, booking := range r.s.bookings {
		b := booking
		bookings = append(bookings, &b)
	}
	return bookings, nil
}
