package usecase

import (
	"context"
	"fmt"
	"time"

	"popcorn-palace/internal/data/entity"
	"popcorn-palace/internal/data/repository"
	"popcorn-palace/internal/dto/request"
	"popcorn-palace/internal/dto/response"
	"popcorn-palace/pkg/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	movieListCacheKey   = "movies:all"
	movieCacheKeyPrefix = "movies:"
)

type MovieService interface {
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	GetMovie(ctx context.Context, id uuid.UUID) (*response.MovieResponse, error)
	ListMovies(ctx context.Context) ([]*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, id uuid.UUID, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, id uuid.UUID) error
}

type movieService struct {
	repo    *repository.Repository
	catalog *cache.Cache
	locks   *entityLocks
	log     *zap.Logger
}

func NewMovieService(repo *repository.Repository, catalog *cache.Cache, locks *entityLocks, log *zap.Logger) MovieService {
	return &movieService{
		repo:    repo,
		catalog: catalog,
		locks:   locks,
		log:     log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	existing, err := s.repo.Movie.FindByTitleGenreYear(ctx, req.Title, req.Genre, req.ReleaseYear)
	if err != nil {
		return nil, fmt.Errorf("check duplicate movie: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("movie %q (%s, %d): %w", req.Title, req.Genre, req.ReleaseYear, ErrDuplicateMovie)
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:             req.Title,
		Genre:             req.Genre,
		DurationInMinutes: req.DurationInMinutes,
		Rating:            req.Rating,
		ReleaseYear:       req.ReleaseYear,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.catalog.Delete(ctx, movieListCacheKey)

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
		zap.Int("duration_in_minutes", movie.DurationInMinutes),
	)

	return response.MovieToResponse(movie), nil
}

func (s *movieService) GetMovie(ctx context.Context, id uuid.UUID) (*response.MovieResponse, error) {
	key := movieCacheKeyPrefix + id.String()

	var cached response.MovieResponse
	if s.catalog.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", id.String(), ErrNotFound)
	}

	resp := response.MovieToResponse(movie)
	s.catalog.SetJSON(ctx, key, resp)

	return resp, nil
}

func (s *movieService) ListMovies(ctx context.Context) ([]*response.MovieResponse, error) {
	var cached []*response.MovieResponse
	if s.catalog.GetJSON(ctx, movieListCacheKey, &cached) {
		return cached, nil
	}

	movies, err := s.repo.Movie.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	responses := make([]*response.MovieResponse, len(movies))
	for i, movie := range movies {
		responses[i] = response.MovieToResponse(movie)
	}

	s.catalog.SetJSON(ctx, movieListCacheKey, responses)

	return responses, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, id uuid.UUID, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", id.String(), ErrNotFound)
	}

	// Duration is immutable: scheduled end times derive from it.
	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Genre != nil {
		movie.Genre = *req.Genre
	}
	if req.Rating != nil {
		movie.Rating = *req.Rating
	}
	movie.UpdatedAt = time.Now()

	written, err := s.repo.Movie.Update(ctx, movie)
	if err != nil {
		return nil, fmt.Errorf("update movie: %w", err)
	}
	if !written {
		return nil, fmt.Errorf("movie %s: %w", id.String(), ErrNotFound)
	}

	s.catalog.Delete(ctx, movieListCacheKey, movieCacheKeyPrefix+id.String())

	s.log.Info("Movie updated", zap.String("movie_id", id.String()))

	return response.MovieToResponse(movie), nil
}

func (s *movieService) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	// The movie lock excludes concurrent showtime creation against this movie,
	// so the reference check and the delete form one atomic unit.
	unlock := s.locks.movies.Lock(id.String())
	defer unlock()

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("resolve movie: %w", err)
	}
	if movie == nil {
		return fmt.Errorf("movie %s: %w", id.String(), ErrNotFound)
	}

	showtimes, err := s.repo.Showtime.FindByMovieID(ctx, id)
	if err != nil {
		return fmt.Errorf("check showtimes: %w", err)
	}
	if len(showtimes) > 0 {
		return fmt.Errorf("movie %s has scheduled showtimes: %w", id.String(), ErrDeletionBlocked)
	}

	if _, err := s.repo.Movie.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}

	s.catalog.Delete(ctx, movieListCacheKey, movieCacheKeyPrefix+id.String())

	s.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}
