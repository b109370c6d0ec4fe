package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"popcorn-palace/internal/dto/request"

	"go.uber.org/zap"
)

func TestCreateMovieDuplicate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	req := &request.MovieRequest{
		Title:             "Dune",
		Genre:             "Sci Fi",
		DurationInMinutes: 148,
		Rating:            8.2,
		ReleaseYear:       2021,
	}

	if _, err := svc.Movie.CreateMovie(ctx, req); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Movie.CreateMovie(ctx, req); !errors.Is(err, ErrDuplicateMovie) {
		t.Fatalf("second create err = %v, want ErrDuplicateMovie", err)
	}

	// A different release year is a different movie.
	rerelease := *req
	rerelease.ReleaseYear = 2024
	if _, err := svc.Movie.CreateMovie(ctx, &rerelease); err != nil {
		t.Fatalf("re-release create: %v", err)
	}
}

func TestDeleteMovieBlockedByShowtime(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	movie := store.seedMovie("Dune", "Sci Fi", 148, 2021)
	noon := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	showtime := store.seedShowtime(movie.ID, "Hall 1", noon, noon.Add(148*time.Minute))

	if err := svc.Movie.DeleteMovie(ctx, movie.ID); !errors.Is(err, ErrDeletionBlocked) {
		t.Fatalf("delete err = %v, want ErrDeletionBlocked", err)
	}

	if err := svc.Showtime.DeleteShowtime(ctx, showtime.ID); err != nil {
		t.Fatalf("delete showtime: %v", err)
	}
	if err := svc.Movie.DeleteMovie(ctx, movie.ID); err != nil {
		t.Fatalf("delete movie after showtime removed: %v", err)
	}
}

func TestUpdateMovieKeepsDuration(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	movie := store.seedMovie("Dune", "Sci Fi", 148, 2021)

	title := "Dune: Part One"
	rating := 8.4
	resp, err := svc.Movie.UpdateMovie(ctx, movie.ID, &request.MovieUpdateRequest{
		Title:  &title,
		Rating: &rating,
	})
	if err != nil {
		t.Fatalf("update movie: %v", err)
	}

	if resp.Title != title {
		t.Errorf("title = %q, want %q", resp.Title, title)
	}
	if resp.Rating != rating {
		t.Errorf("rating = %v, want %v", resp.Rating, rating)
	}
	if resp.Genre != "Sci Fi" {
		t.Errorf("genre = %q, want unchanged %q", resp.Genre, "Sci Fi")
	}
	if resp.DurationInMinutes != 148 {
		t.Errorf("duration = %d, want unchanged 148", resp.DurationInMinutes)
	}
}

func TestUpdateMovieDeletedMidFlight(t *testing.T) {
	repo, store := newTestRepository()
	repo.Movie = &vanishingMovieRepo{MovieRepository: repo.Movie, s: store}
	svc := NewService(repo, nil, zap.NewNop())
	ctx := context.Background()

	movie := store.seedMovie("Dune", "Sci Fi", 148, 2021)

	// The movie vanishes right after the resolve; the zero-row write must
	// surface as not found, not as a successful update.
	title := "Dune: Part One"
	_, err := svc.Movie.UpdateMovie(ctx, movie.ID, &request.MovieUpdateRequest{Title: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMovieNotFound(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	gone := store.seedMovie("Gone", "Drama", 100, 2019)
	if err := svc.Movie.DeleteMovie(ctx, gone.ID); err != nil {
		t.Fatalf("delete movie: %v", err)
	}

	if _, err := svc.Movie.GetMovie(ctx, gone.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Movie.UpdateMovie(ctx, gone.ID, &request.MovieUpdateRequest{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update err = %v, want ErrNotFound", err)
	}
	if err := svc.Movie.DeleteMovie(ctx, gone.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete err = %v, want ErrNotFound", err)
	}
}
