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

type BookingService interface {
	CreateBooking(ctx context.Context, showtimeID, customerID uuid.UUID, seatNumber int) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error)
	ListBookings(ctx context.Context) ([]*response.BookingResponse, error)
	CancelBooking(ctx context.Context, id uuid.UUID) error
}

type bookingService struct {
	repo  *repository.Repository
	locks *entityLocks
	log   *zap.Logger
}

func NewBookingService(repo *repository.Repository, locks *entityLocks, log *zap.Logger) BookingService {
	return &bookingService{
		repo:  repo,
		locks: locks,
		log:   log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, showtimeID, customerID uuid.UUID, seatNumber int) (*response.BookingResponse, error) {
	// Seat range is validated at the boundary; here only occupancy matters.
	// Showtime lock makes seat-check-then-insert atomic against other bookings
	// of the same showtime and against showtime deletion; customer lock does
	// the same against customer deletion. Both are resolved under the locks so
	// neither can vanish mid-booking.
	unlockShowtime := s.locks.showtimes.Lock(showtimeID.String())
	defer unlockShowtime()
	unlockCustomer := s.locks.customers.Lock(customerID.String())
	defer unlockCustomer()

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("resolve showtime: %w", err)
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %s: %w", showtimeID.String(), ErrNotFound)
	}

	customer, err := s.repo.Customer.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("resolve customer: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %s: %w", customerID.String(), ErrNotFound)
	}

	taken, err := s.repo.Booking.ExistsForShowtimeSeat(ctx, showtimeID, seatNumber)
	if err != nil {
		return nil, fmt.Errorf("check seat availability: %w", err)
	}
	if taken {
		s.log.Warn("Booking rejected: seat taken",
			zap.String("showtime_id", showtimeID.String()),
			zap.Int("seat_number", seatNumber),
		)
		return nil, fmt.Errorf("seat %d: %w", seatNumber, ErrSeatTaken)
	}

	booking := &entity.Booking{
		ID:         uuid.New(),
		ShowtimeID: showtimeID,
		CustomerID: customerID,
		SeatNumber: seatNumber,
		BookedAt:   time.Now(),
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Seat booked",
		zap.String("booking_id", booking.ID.String()),
		zap.String("showtime_id", showtimeID.String()),
		zap.String("customer_id", customerID.String()),
		zap.Int("seat_number", seatNumber),
	)

	movie, err := s.repo.Movie.FindByID(ctx, showtime.MovieID)
	if err != nil {
		return nil, fmt.Errorf("resolve movie: %w", err)
	}

	return response.BookingToResponse(booking, showtime, customer, movie), nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", id.String(), ErrNotFound)
	}

	return s.composeBooking(ctx, booking)
}

func (s *bookingService) ListBookings(ctx context.Context) ([]*response.BookingResponse, error) {
	bookings, err := s.repo.Booking.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	responses := make([]*response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp, err := s.composeBooking(ctx, booking)
		if err != nil {
			return nil, err
		}
		responses[i] = resp
	}

	return responses, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, id uuid.UUID) error {
	// Plain delete-if-exists. A second cancellation finds nothing to delete
	// and reports not-found; no lock is needed because cancellation never
	// violates an invariant.
	deleted, err := s.repo.Booking.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	if !deleted {
		return fmt.Errorf("booking %s: %w", id.String(), ErrNotFound)
	}

	s.log.Info("Booking canceled", zap.String("booking_id", id.String()))
	return nil
}

// composeBooking joins the booking with its showtime, customer, and movie for
// presentation. Dangling references are tolerated on reads: the join fields
// stay empty rather than failing the whole listing.
func (s *bookingService) composeBooking(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	showtime, err := s.repo.Showtime.FindByID(ctx, booking.ShowtimeID)
	if err != nil {
		return nil, fmt.Errorf("resolve showtime: %w", err)
	}

	customer, err := s.repo.Customer.FindByID(ctx, booking.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("resolve customer: %w", err)
	}

	var movie *entity.Movie
	if showtime != nil {
		movie, err = s.repo.Movie.FindByID(ctx, showtime.MovieID)
		if err != nil {
			return nil, fmt.Errorf("resolve movie: %w", err)
		}
	}

	return response.BookingToResponse(booking, showtime, customer, movie), nil
}
