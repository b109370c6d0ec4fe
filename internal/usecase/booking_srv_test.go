package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCreateBookingSeatUniqueness(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	movie := store.seedMovie("Dune", "Sci Fi", 148, 2021)
	customer := store.seedCustomer("Ada Lovelace", "ada@example.com")
	noon := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	showtime := store.seedShowtime(movie.ID, "Hall 1", noon, noon.Add(148*time.Minute))

	if _, err := svc.Booking.CreateBooking(ctx, showtime.ID, customer.ID, 11); err != nil {
		t.Fatalf("book seat 11: %v", err)
	}

	if _, err := svc.Booking.CreateBooking(ctx, showtime.ID, customer.ID, 11); !errors.Is(err, ErrSeatTaken) {
		t.Fatalf("rebook seat 11 err = %v, want ErrSeatTaken", err)
	}

	if _, err := svc.Booking.CreateBooking(ctx, showtime.ID, customer.ID, 12); err != nil {
		t.Fatalf("book seat 12: %v", err)
	}
}

func TestCreateBookingSameSeatOtherShowtime(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	movie := store.seedMovie("Dune", "Sci Fi", 148, 2021)
	customer := store.seedCustomer("Ada Lovelace", "ada@example.com")
	noon := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	first := store.seedShowtime(movie.ID, "Hall 1", noon, noon.Add(148*time.Minute))
	second := store.seedShowtime(movie.ID, "Hall 2", noon, noon.Add(148*time.Minute))

	if _, err := svc.Booking.CreateBooking(ctx, first.ID, customer.ID, 11); err != nil {
		t.Fatalf("book seat on first showtime: %v", err)
	}
	if _, err := svc.Booking.CreateBooking(ctx, second.ID, customer.ID, 11); err != nil {
		t.Fatalf("same seat on other showtime: %v", err)
	}
}

func TestCreateBookingNotFound(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	movie := store.seedMovie("Dune", "Sci Fi", 148, 2021)
	customer := store.seedCustomer("Ada Lovelace", "ada@example.com")
	noon := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	showtime := store.seedShowtime(movie.ID, "Hall 1", noon, noon.Add(148*time.Minute))

	if _, err := svc.Booking.CreateBooking(ctx, uuid.New(), customer.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown showtime err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Booking.CreateBooking(ctx, showtime.ID, uuid.New(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown customer err = %v, want ErrNotFound", err)
	}
}

func TestCreateBookingComposedView(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	movie := store.seedMovie("Dune", "Sci Fi", 148, 2021)
	customer := store.seedCustomer("Ada Lovelace", "ada@example.com")
	noon := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	end := noon.Add(148 * time.Minute)
	showtime := store.seedShowtime(movie.ID, "Hall 1", noon, end)

	resp, err := svc.Booking.CreateBooking(ctx, showtime.ID, customer.ID, 42)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if resp.SeatNumber != 42 {
		t.Errorf("seat = %d, want 42", resp.SeatNumber)
	}
	if resp.CustomerName != "Ada Lovelace" {
		t.Errorf("customer name = %q, want %q", resp.CustomerName, "Ada Lovelace")
	}
	if resp.MovieTitle != "Dune" {
		t.Errorf("movie title = %q, want %q", resp.MovieTitle, "Dune")
	}
	if resp.Theater != "Hall 1" {
		t.Errorf("theater = %q, want %q", resp.Theater, "Hall 1")
	}
	if !resp.StartTime.Equal(noon) || !resp.EndTime.Equal(end) {
		t.Errorf("window = [%v, %v), want [%v, %v)", resp.StartTime, resp.EndTime, noon, end)
	}
	if resp.BookedAt.IsZero() {
		t.Errorf("booked_at not set")
	}
}

func TestCancelBookingTwice(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	movie := store.seedMovie("Dune", "Sci Fi", 148, 2021)
	customer := store.seedCustomer("Ada Lovelace", "ada@example.com")
	noon := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	showtime := store.seedShowtime(movie.ID, "Hall 1", noon, noon.Add(148*time.Minute))

	booking, err := svc.Booking.CreateBooking(ctx, showtime.ID, customer.ID, 7)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	id := mustParseUUID(t, booking.BookingID)
	if err := svc.Booking.CancelBooking(ctx, id); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if err := svc.Booking.CancelBooking(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second cancel err = %v, want ErrNotFound", err)
	}
}

func TestConcurrentBookingSameSeat(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	movie := store.seedMovie("Dune", "Sci Fi", 148, 2021)
	customer := store.seedCustomer("Ada Lovelace", "ada@example.com")
	noon := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	showtime := store.seedShowtime(movie.ID, "Hall 1", noon, noon.Add(148*time.Minute))

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Booking.CreateBooking(ctx, showtime.ID, customer.ID, 11)
		}(i)
	}
	wg.Wait()

	var succeeded, taken int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSeatTaken):
			taken++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if succeeded != 1 {
		t.Fatalf("succeeded = %d, want exactly 1", succeeded)
	}
	if taken != attempts-1 {
		t.Fatalf("seat-taken = %d, want %d", taken, attempts-1)
	}
}

func TestConcurrentShowtimeDeletionVsBooking(t *testing.T) {
	// The showtime lock decides: either the booking lands and the deletion is
	// blocked, or the showtime is gone and the booking reports it missing.
	// Both succeeding would leave a booking against a deleted showtime.
	for i := 0; i < 25; i++ {
		svc, store := newTestService()
		ctx := context.Background()

		movie := store.seedMovie("Dune", "Sci Fi", 148, 2021)
		customer := store.seedCustomer("Ada Lovelace", "ada@example.com")
		noon := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
		showtime := store.seedShowtime(movie.ID, "Hall 1", noon, noon.Add(148*time.Minute))

		var wg sync.WaitGroup
		var bookErr, delErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, bookErr = svc.Booking.CreateBooking(ctx, showtime.ID, customer.ID, 11)
		}()
		go func() {
			defer wg.Done()
			delErr = svc.Showtime.DeleteShowtime(ctx, showtime.ID)
		}()
		wg.Wait()

		switch {
		case bookErr == nil && errors.Is(delErr, ErrDeletionBlocked):
		case delErr == nil && errors.Is(bookErr, ErrNotFound):
		default:
			t.Fatalf("inconsistent outcome: booking err = %v, delete err = %v", bookErr, delErr)
		}
	}
}
