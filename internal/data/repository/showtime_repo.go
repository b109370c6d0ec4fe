package repository

import (
	"context"
	"fmt"
	"time"

	"popcorn-palace/internal/data/entity"
	"popcorn-palace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Showtime, error)
	// ExistsOverlap reports whether any showtime in the theater intersects the
	// half-open interval [start, end). excludeID, when not uuid.Nil, removes
	// the showtime being updated from the comparison set.
	ExistsOverlap(ctx context.Context, theater string, start, end time.Time, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, showtime *entity.Showtime) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]*entity.Showtime, error)
}

type showtimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowtimeRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

const showtimeColumns = "id, movie_id, theater, start_time, end_time, price, created_at, updated_at"

func scanShowtime(row pgx.Row) (*entity.Showtime, error) {
	var s entity.Showtime
	err := row.Scan(
		&s.ID,
		&s.MovieID,
		&s.Theater,
		&s.StartTime,
		&s.EndTime,
		&s.Price,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (id, movie_id, theater, start_time, end_time, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.Theater,
		showtime.StartTime,
		showtime.EndTime,
		showtime.Price,
		showtime.CreatedAt,
		showtime.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.String("movie_id", showtime.MovieID.String()),
			zap.String("theater", showtime.Theater),
			zap.Time("start_time", showtime.StartTime),
		)
		return fmt.Errorf("create showtime in theater %q: %w", showtime.Theater, err)
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes WHERE id = $1`

	showtime, err := scanShowtime(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return nil, fmt.Errorf("find showtime by ID %s: %w", id.String(), err)
	}

	return showtime, nil
}

func (r *showtimeRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes WHERE movie_id = $1 ORDER BY start_time`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find showtimes by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find showtimes by movie ID %s: %w", movieID.String(), err)
	}
	defer rows.Close()

	var showtimes []*entity.Showtime
	for rows.Next() {
		showtime, err := scanShowtime(rows)
		if err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime row: %w", err)
		}
		showtimes = append(showtimes, showtime)
	}

	return showtimes, rows.Err()
}

func (r *showtimeRepository) ExistsOverlap(ctx context.Context, theater string, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	// Half-open intervals: [s1,e1) and [s2,e2) overlap iff s1 < e2 AND s2 < e1,
	// so a showtime ending exactly when another starts does not conflict.
	query := `
		SELECT EXISTS (
			SELECT 1 FROM showtimes
			WHERE theater = $1
			  AND start_time < $3
			  AND $2 < end_time
			  AND ($4::uuid IS NULL OR id <> $4)
		)
	`

	var exclude *uuid.UUID
	if excludeID != uuid.Nil {
		exclude = &excludeID
	}

	var exists bool
	err := r.db.QueryRow(ctx, query, theater, start, end, exclude).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check showtime overlap",
			zap.Error(err),
			zap.String("theater", theater),
			zap.Time("start_time", start),
			zap.Time("end_time", end),
		)
		return false, fmt.Errorf("check overlap in theater %q: %w", theater, err)
	}

	return exists, nil
}

func (r *showtimeRepository) Update(ctx context.Context, showtime *entity.Showtime) (bool, error) {
	query := `
		UPDATE showtimes
		SET movie_id = $2, theater = $3, start_time = $4, end_time = $5, price = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.Theater,
		showtime.StartTime,
		showtime.EndTime,
		showtime.Price,
		showtime.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update showtime",
			zap.Error(err),
			zap.String("showtime_id", showtime.ID.String()),
		)
		return false, fmt.Errorf("update showtime %s: %w", showtime.ID.String(), err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *showtimeRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM showtimes WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete showtime",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return false, fmt.Errorf("delete showtime %s: %w", id.String(), err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *showtimeRepository) List(ctx context.Context) ([]*entity.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes ORDER BY theater, start_time`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list showtimes", zap.Error(err))
		return nil, fmt.Errorf("list showtimes: %w", err)
	}
	defer rows.Close()

	var showtimes []*entity.Showtime
	for rows.Next() {
		showtime, err := scanShowtime(rows)
		if err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime row: %w", err)
		}
		showtimes = append(showtimes, showtime)
	}

	return showtimes, rows.Err()
}
