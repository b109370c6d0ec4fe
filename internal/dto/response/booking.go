package response

import (
	"time"

	"popcorn-palace/internal/data/entity"
)

// BookingResponse is a read-only join of the booking with its customer,
// showtime, and movie, denormalized for presentation. Nothing here is stored.
type BookingResponse struct {
	BookingID    string    `json:"booking_id"`
	ShowtimeID   string    `json:"showtime_id"`
	SeatNumber   int       `json:"seat_number"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	BookedAt     time.Time `json:"booked_at"`
	Theater      string    `json:"theater"`
	Price        float64   `json:"price"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	MovieTitle   string    `json:"movie_title"`
}

func BookingToResponse(booking *entity.Booking, showtime *entity.Showtime, customer *entity.Customer, movie *entity.Movie) *BookingResponse {
	resp := &BookingResponse{
		BookingID:  booking.ID.String(),
		ShowtimeID: booking.ShowtimeID.String(),
		SeatNumber: booking.SeatNumber,
		CustomerID: booking.CustomerID.String(),
		BookedAt:   booking.BookedAt,
	}

	if customer != nil {
		resp.CustomerName = customer.FullName
	}
	if showtime != nil {
		resp.Theater = showtime.Theater
		resp.Price = showtime.Price
		resp.StartTime = showtime.StartTime
		resp.EndTime = showtime.EndTime
	}
	if movie != nil {
		resp.MovieTitle = movie.Title
	}

	return resp
}
