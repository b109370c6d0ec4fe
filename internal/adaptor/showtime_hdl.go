package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"popcorn-palace/internal/dto/request"
	"popcorn-palace/internal/usecase"
	"popcorn-palace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShowtimeHandler struct {
	service usecase.ShowtimeService
	log     *zap.Logger
}

func NewShowtimeHandler(service usecase.ShowtimeService, log *zap.Logger) *ShowtimeHandler {
	return &ShowtimeHandler{
		service: service,
		log:     log.With(zap.String("handler", "showtime")),
	}
}

// GetShowtimes handles GET /api/showtimes with an optional movie_id filter
func (h *ShowtimeHandler) GetShowtimes(w http.ResponseWriter, r *http.Request) {
	if movieIDParam := r.URL.Query().Get("movie_id"); movieIDParam != "" {
		movieID, err := uuid.Parse(movieIDParam)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid movie_id filter", nil)
			return
		}

		showtimes, err := h.service.ListShowtimesByMovie(r.Context(), movieID)
		if err != nil {
			writeServiceError(w, h.log, err, "list showtimes by movie")
			return
		}

		utils.ResponseSuccess(w, "Showtimes retrieved successfully", showtimes)
		return
	}

	showtimes, err := h.service.ListShowtimes(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "list showtimes")
		return
	}

	utils.ResponseSuccess(w, "Showtimes retrieved successfully", showtimes)
}

// GetShowtimeByID handles GET /api/showtimes/{id}
func (h *ShowtimeHandler) GetShowtimeByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid showtime ID", nil)
		return
	}

	showtime, err := h.service.GetShowtime(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime retrieved successfully", showtime)
}

// CreateShowtime handles POST /api/showtimes
func (h *ShowtimeHandler) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	movieID, start, req, ok := h.decodeShowtimeRequest(w, r)
	if !ok {
		return
	}

	showtime, err := h.service.CreateShowtime(r.Context(), movieID, req.Theater, start, req.Price)
	if err != nil {
		writeServiceError(w, h.log, err, "create showtime")
		return
	}

	utils.ResponseCreated(w, "Showtime scheduled successfully", showtime)
}

// UpdateShowtime handles PUT /api/showtimes/{id}
func (h *ShowtimeHandler) UpdateShowtime(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid showtime ID", nil)
		return
	}

	movieID, start, req, ok := h.decodeShowtimeRequest(w, r)
	if !ok {
		return
	}

	showtime, err := h.service.UpdateShowtime(r.Context(), id, movieID, req.Theater, start, req.Price)
	if err != nil {
		writeServiceError(w, h.log, err, "update showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime updated successfully", showtime)
}

// DeleteShowtime handles DELETE /api/showtimes/{id}
func (h *ShowtimeHandler) DeleteShowtime(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid showtime ID", nil)
		return
	}

	if err := h.service.DeleteShowtime(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime deleted successfully", nil)
}

// decodeShowtimeRequest decodes, validates, and parses the typed fields.
// The request carries no end time: the service derives it from the movie.
func (h *ShowtimeHandler) decodeShowtimeRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, time.Time, *request.ShowtimeRequest, bool) {
	var req request.ShowtimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return uuid.Nil, time.Time{}, nil, false
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return uuid.Nil, time.Time{}, nil, false
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return uuid.Nil, time.Time{}, nil, false
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid start_time, expected RFC 3339", nil)
		return uuid.Nil, time.Time{}, nil, false
	}

	return movieID, start, &req, true
}
