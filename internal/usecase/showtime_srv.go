package usecase

import (
	"context"
	"fmt"
	"time"

	"popcorn-palace/internal/data/entity"
	"popcorn-palace/internal/data/repository"
	"popcorn-palace/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShowtimeService interface {
	CreateShowtime(ctx context.Context, movieID uuid.UUID, theater string, start time.Time, price float64) (*response.ShowtimeResponse, error)
	GetShowtime(ctx context.Context, id uuid.UUID) (*response.ShowtimeResponse, error)
	ListShowtimes(ctx context.Context) ([]*response.ShowtimeResponse, error)
	ListShowtimesByMovie(ctx context.Context, movieID uuid.UUID) ([]*response.ShowtimeResponse, error)
	UpdateShowtime(ctx context.Context, id, movieID uuid.UUID, theater string, start time.Time, price float64) (*response.ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, id uuid.UUID) error
}

type showtimeService struct {
	repo  *repository.Repository
	locks *entityLocks
	log   *zap.Logger
}

func NewShowtimeService(repo *repository.Repository, locks *entityLocks, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo:  repo,
		locks: locks,
		log:   log.With(zap.String("service", "showtime")),
	}
}

// endOf derives the showtime end from the movie duration. This is the single
// authoritative computation; any duration math done by callers is advisory.
func endOf(start time.Time, movie *entity.Movie) time.Time {
	return start.Add(time.Duration(movie.DurationInMinutes) * time.Minute)
}

func (s *showtimeService) CreateShowtime(ctx context.Context, movieID uuid.UUID, theater string, start time.Time, price float64) (*response.ShowtimeResponse, error) {
	// Movie lock excludes a concurrent movie deletion, so the movie resolved
	// below cannot vanish before the insert; theater lock serializes the
	// overlap-check-then-insert against other schedulers of this theater.
	unlockMovie := s.locks.movies.Lock(movieID.String())
	defer unlockMovie()

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("resolve movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID.String(), ErrNotFound)
	}

	end := endOf(start, movie)

	unlockTheater := s.locks.theaters.Lock(theater)
	defer unlockTheater()

	overlaps, err := s.repo.Showtime.ExistsOverlap(ctx, theater, start, end, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("check overlap: %w", err)
	}
	if overlaps {
		s.log.Warn("Showtime rejected: overlap",
			zap.String("theater", theater),
			zap.Time("start_time", start),
			zap.Time("end_time", end),
		)
		return nil, fmt.Errorf("theater %q: %w", theater, ErrSchedulingConflict)
	}

	now := time.Now()
	showtime := &entity.Showtime{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:   movieID,
		Theater:   theater,
		StartTime: start,
		EndTime:   end,
		Price:     price,
	}

	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		return nil, fmt.Errorf("create showtime: %w", err)
	}

	s.log.Info("Showtime scheduled",
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("movie_id", movieID.String()),
		zap.String("theater", theater),
		zap.Time("start_time", start),
		zap.Time("end_time", end),
	)

	return response.ShowtimeToResponse(showtime), nil
}

func (s *showtimeService) GetShowtime(ctx context.Context, id uuid.UUID) (*response.ShowtimeResponse, error) {
	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get showtime: %w", err)
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %s: %w", id.String(), ErrNotFound)
	}

	return response.ShowtimeToResponse(showtime), nil
}

func (s *showtimeService) ListShowtimes(ctx context.Context) ([]*response.ShowtimeResponse, error) {
	showtimes, err := s.repo.Showtime.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list showtimes: %w", err)
	}

	return showtimesToResponses(showtimes), nil
}

func (s *showtimeService) ListShowtimesByMovie(ctx context.Context, movieID uuid.UUID) ([]*response.ShowtimeResponse, error) {
	showtimes, err := s.repo.Showtime.FindByMovieID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("list showtimes by movie: %w", err)
	}

	return showtimesToResponses(showtimes), nil
}

func (s *showtimeService) UpdateShowtime(ctx context.Context, id, movieID uuid.UUID, theater string, start time.Time, price float64) (*response.ShowtimeResponse, error) {
	existing, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve showtime: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("showtime %s: %w", id.String(), ErrNotFound)
	}

	unlockMovie := s.locks.movies.Lock(movieID.String())
	defer unlockMovie()
	unlockTheater := s.locks.theaters.Lock(theater)
	defer unlockTheater()

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("resolve movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID.String(), ErrNotFound)
	}

	end := endOf(start, movie)

	// The full new interval is re-validated against all other showtimes in the
	// target theater; on conflict the prior scheduled state stays untouched.
	overlaps, err := s.repo.Showtime.ExistsOverlap(ctx, theater, start, end, id)
	if err != nil {
		return nil, fmt.Errorf("check overlap: %w", err)
	}
	if overlaps {
		s.log.Warn("Showtime update rejected: overlap",
			zap.String("showtime_id", id.String()),
			zap.String("theater", theater),
			zap.Time("start_time", start),
			zap.Time("end_time", end),
		)
		return nil, fmt.Errorf("theater %q: %w", theater, ErrSchedulingConflict)
	}

	updated := &entity.Showtime{
		Base: entity.Base{
			ID:        id,
			CreatedAt: existing.CreatedAt,
			UpdatedAt: time.Now(),
		},
		MovieID:   movieID,
		Theater:   theater,
		StartTime: start,
		EndTime:   end,
		Price:     price,
	}

	// Zero rows means the showtime was deleted after the resolve above; a
	// success response here would be a lie.
	written, err := s.repo.Showtime.Update(ctx, updated)
	if err != nil {
		return nil, fmt.Errorf("update showtime: %w", err)
	}
	if !written {
		return nil, fmt.Errorf("showtime %s: %w", id.String(), ErrNotFound)
	}

	s.log.Info("Showtime rescheduled",
		zap.String("showtime_id", id.String()),
		zap.String("theater", theater),
		zap.Time("start_time", start),
		zap.Time("end_time", end),
	)

	return response.ShowtimeToResponse(updated), nil
}

func (s *showtimeService) DeleteShowtime(ctx context.Context, id uuid.UUID) error {
	// Same lock booking creation takes, so a booking cannot appear against a
	// showtime mid-deletion.
	unlock := s.locks.showtimes.Lock(id.String())
	defer unlock()

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("resolve showtime: %w", err)
	}
	if showtime == nil {
		return fmt.Errorf("showtime %s: %w", id.String(), ErrNotFound)
	}

	hasBookings, err := s.repo.Booking.ExistsForShowtime(ctx, id)
	if err != nil {
		return fmt.Errorf("check bookings: %w", err)
	}
	if hasBookings {
		return fmt.Errorf("showtime %s has bookings: %w", id.String(), ErrDeletionBlocked)
	}

	if _, err := s.repo.Showtime.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete showtime: %w", err)
	}

	s.log.Info("Showtime canceled", zap.String("showtime_id", id.String()))
	return nil
}

func showtimesToResponses(showtimes []*entity.Showtime) []*response.ShowtimeResponse {
	responses := make([]*response.ShowtimeResponse, len(showtimes))
	for i, showtime := range showtimes {
		responses[i] = response.ShowtimeToResponse(showtime)
	}
	return responses
}
