package adaptor

import (
	"errors"
	"net/http"

	"popcorn-palace/internal/usecase"
	"popcorn-palace/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Movie    *MovieHandler
	Showtime *ShowtimeHandler
	Customer *CustomerHandler
	Booking  *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Movie:    NewMovieHandler(service.Movie, log),
		Showtime: NewShowtimeHandler(service.Showtime, log),
		Customer: NewCustomerHandler(service.Customer, log),
		Booking:  NewBookingHandler(service.Booking, log),
	}
}

// writeServiceError maps the service error kinds onto HTTP status codes.
// Business outcomes are warnings; anything unrecognized is a server error.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed: not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrSchedulingConflict),
		errors.Is(err, usecase.ErrSeatTaken),
		errors.Is(err, usecase.ErrDuplicateMovie),
		errors.Is(err, usecase.ErrDeletionBlocked):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
