package repository

import (
	"context"
	"fmt"

	"popcorn-palace/internal/data/entity"
	"popcorn-palace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entity.Booking, error)
	ExistsForShowtimeSeat(ctx context.Context, showtimeID uuid.UUID, seatNumber int) (bool, error)
	ExistsForShowtime(ctx context.Context, showtimeID uuid.UUID) (bool, error)
	ExistsForCustomer(ctx context.Context, customerID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = "id, showtime_id, customer_id, seat_number, booked_at"

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.ShowtimeID,
		&b.CustomerID,
		&b.SeatNumber,
		&b.BookedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, showtime_id, customer_id, seat_number, booked_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ShowtimeID,
		booking.CustomerID,
		booking.SeatNumber,
		booking.BookedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("showtime_id", booking.ShowtimeID.String()),
			zap.Int("seat_number", booking.SeatNumber),
		)
		return fmt.Errorf("create booking for showtime %s seat %d: %w",
			booking.ShowtimeID.String(), booking.SeatNumber, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE customer_id = $1 ORDER BY booked_at`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		r.log.Error("Failed to find bookings by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("find bookings by customer ID %s: %w", customerID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) ExistsForShowtimeSeat(ctx context.Context, showtimeID uuid.UUID, seatNumber int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE showtime_id = $1 AND seat_number = $2)`

	var exists bool
	err := r.db.QueryRow(ctx, query, showtimeID, seatNumber).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check seat occupancy",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
			zap.Int("seat_number", seatNumber),
		)
		return false, fmt.Errorf("check seat %d for showtime %s: %w", seatNumber, showtimeID.String(), err)
	}

	return exists, nil
}

func (r *bookingRepository) ExistsForShowtime(ctx context.Context, showtimeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE showtime_id = $1)`

	var exists bool
	err := r.db.QueryRow(ctx, query, showtimeID).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check bookings for showtime",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return false, fmt.Errorf("check bookings for showtime %s: %w", showtimeID.String(), err)
	}

	return exists, nil
}

func (r *bookingRepository) ExistsForCustomer(ctx context.Context, customerID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE customer_id = $1)`

	var exists bool
	err := r.db.QueryRow(ctx, query, customerID).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check bookings for customer",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return false, fmt.Errorf("check bookings for customer %s: %w", customerID.String(), err)
	}

	return exists, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *bookingRepository) List(ctx context.Context) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY booked_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}
