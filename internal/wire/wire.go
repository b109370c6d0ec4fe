package wire

import (
	"net/http"

	"popcorn-palace/internal/adaptor"
	"popcorn-palace/internal/data/repository"
	"popcorn-palace/internal/usecase"
	"popcorn-palace/pkg/cache"
	"popcorn-palace/pkg/middleware"
	"popcorn-palace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring initializes services and handlers and assembles the router.
func Wiring(repo *repository.Repository, catalog *cache.Cache, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, catalog, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())

	wireMovie(r, handler.Movie)
	wireShowtime(r, handler.Showtime)
	wireCustomer(r, handler.Customer)
	wireBooking(r, handler.Booking)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
