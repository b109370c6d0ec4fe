package entity

import (
	"time"

	"github.com/google/uuid"
)

// Showtime schedules a movie in a theater for the half-open interval
// [StartTime, EndTime). EndTime is always derived from the movie duration
// inside the scheduling service and never taken from a caller.
type Showtime struct {
	Base
	MovieID   uuid.UUID `db:"movie_id"`
	Theater   string    `db:"theater"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	Price     float64   `db:"price"`
}
