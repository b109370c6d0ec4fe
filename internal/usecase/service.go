package usecase

import (
	"popcorn-palace/internal/data/repository"
	"popcorn-palace/pkg/cache"

	"go.uber.org/zap"
)

type Service struct {
	Movie    MovieService
	Showtime ShowtimeService
	Customer CustomerService
	Booking  BookingService
}

func NewService(repo *repository.Repository, catalog *cache.Cache, log *zap.Logger) *Service {
	// One lock set for the whole engine: deletion guards and creation paths
	// must contend on the same mutexes across services.
	locks := newEntityLocks()

	return &Service{
		Movie:    NewMovieService(repo, catalog, locks, log),
		Showtime: NewShowtimeService(repo, locks, log),
		Customer: NewCustomerService(repo, locks, log),
		Booking:  NewBookingService(repo, locks, log),
	}
}
