package entity

import (
	"time"

	"github.com/google/uuid"
)

// Booking reserves one seat at a showtime for a customer. BookedAt is set
// once at creation. ShowtimeID and CustomerID are plain foreign keys; the
// booking never owns either record.
type Booking struct {
	ID         uuid.UUID `db:"id"`
	ShowtimeID uuid.UUID `db:"showtime_id"`
	CustomerID uuid.UUID `db:"customer_id"`
	SeatNumber int       `db:"seat_number"`
	BookedAt   time.Time `db:"booked_at"`
}
