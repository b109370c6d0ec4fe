package usecase

import (
	"context"
	"fmt"
	"time"

	"popcorn-palace/internal/data/entity"
	"popcorn-palace/internal/data/repository"
	"popcorn-palace/internal/dto/request"
	"popcorn-palace/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req *request.CustomerRequest) (*response.CustomerResponse, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*response.CustomerResponse, error)
	ListCustomers(ctx context.Context) ([]*response.CustomerResponse, error)
	ListCustomerBookings(ctx context.Context, id uuid.UUID) ([]*response.BookingResponse, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo  *repository.Repository
	locks *entityLocks
	log   *zap.Logger
}

func NewCustomerService(repo *repository.Repository, locks *entityLocks, log *zap.Logger) CustomerService {
	return &customerService{
		repo:  repo,
		locks: locks,
		log:   log.With(zap.String("service", "customer")),
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, req *request.CustomerRequest) (*response.CustomerResponse, error) {
	now := time.Now()
	customer := &entity.Customer{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FullName: req.FullName,
		Email:    req.Email,
	}

	if err := s.repo.Customer.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	s.log.Info("Customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("email", customer.Email),
	)

	return response.CustomerToResponse(customer), nil
}

func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*response.CustomerResponse, error) {
	customer, err := s.repo.Customer.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %s: %w", id.String(), ErrNotFound)
	}

	return response.CustomerToResponse(customer), nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*response.CustomerResponse, error) {
	customers, err := s.repo.Customer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	responses := make([]*response.CustomerResponse, len(customers))
	for i, customer := range customers {
		responses[i] = response.CustomerToResponse(customer)
	}

	return responses, nil
}

func (s *customerService) ListCustomerBookings(ctx context.Context, id uuid.UUID) ([]*response.BookingResponse, error) {
	customer, err := s.repo.Customer.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve customer: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %s: %w", id.String(), ErrNotFound)
	}

	bookings, err := s.repo.Booking.FindByCustomerID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list customer bookings: %w", err)
	}

	responses := make([]*response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		showtime, err := s.repo.Showtime.FindByID(ctx, booking.ShowtimeID)
		if err != nil {
			return nil, fmt.Errorf("resolve showtime: %w", err)
		}

		var movie *entity.Movie
		if showtime != nil {
			movie, err = s.repo.Movie.FindByID(ctx, showtime.MovieID)
			if err != nil {
				return nil, fmt.Errorf("resolve movie: %w", err)
			}
		}

		responses[i] = response.BookingToResponse(booking, showtime, customer, movie)
	}

	return responses, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	// Same lock booking creation takes for this customer: the reference check
	// and the delete are atomic against an in-flight booking.
	unlock := s.locks.customers.Lock(id.String())
	defer unlock()

	customer, err := s.repo.Customer.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("resolve customer: %w", err)
	}
	if customer == nil {
		return fmt.Errorf("customer %s: %w", id.String(), ErrNotFound)
	}

	hasBookings, err := s.repo.Booking.ExistsForCustomer(ctx, id)
	if err != nil {
		return fmt.Errorf("check bookings: %w", err)
	}
	if hasBookings {
		return fmt.Errorf("customer %s has bookings: %w", id.String(), ErrDeletionBlocked)
	}

	if _, err := s.repo.Customer.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	s.log.Info("Customer deleted", zap.String("customer_id", id.String()))
	return nil
}
