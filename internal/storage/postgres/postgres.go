package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"trainslot-service/internal/models"
	"trainslot-service/pkg/response"
)

type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// NewWithDB wraps an existing connection; used by tests.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// #### availability windows ####

func (s *Storage) InsertWindow(ctx context.Context, w *models.AvailabilityWindow) (string, error) {
	const op = "storage.postgres.InsertWindow"

	id := uuid.NewString()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO availability_windows
			(id, trainer_id, kind, day_of_week, specific_date, start_time, end_time, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, w.TrainerID, w.Kind, w.DayOfWeek, w.SpecificDate, w.StartTime, w.EndTime, w.IsActive, w.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, response.ErrStorageUnavailable, err)
	}

	return id, nil
}

func (s *Storage) GetWindow(ctx context.Context, id string) (*models.AvailabilityWindow, error) {
	const op = "storage.postgres.GetWindow"

	var w models.AvailabilityWindow

	err := s.db.QueryRowContext(ctx, `
		SELECT id, trainer_id, kind, day_of_week, specific_date, start_time, end_time, is_active, created_at
		FROM availability_windows WHERE id = $1`, id,
	).Scan(&w.ID, &w.TrainerID, &w.Kind, &w.DayOfWeek, &w.SpecificDate, &w.StartTime, &w.EndTime, &w.IsActive, &w.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w: %w", op, response.ErrStorageUnavailable, err)
	}

	return &w, nil
}

func (s *Storage) WindowsByTrainer(ctx context.Context, trainerID string, activeOnly bool) ([]*models.AvailabilityWindow, error) {
	const op = "storage.postgres.WindowsByTrainer"

	query := `
		SELECT id, trainer_id, kind, day_of_week, specific_date, start_time, end_time, is_active, created_at
		FROM availability_windows WHERE trainer_id = $1`
	if activeOnly {
		query += ` AND is_active = true`
	}

	rows, err := s.db.QueryContext(ctx, query, trainerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, response.ErrStorageUnavailable, err)
	}

	defer rows.Close()

	var windows []*models.AvailabilityWindow

	for rows.Next() {
		var w models.AvailabilityWindow

		err := rows.Scan(&w.ID, &w.TrainerID, &w.Kind, &w.DayOfWeek, &w.SpecificDate, &w.StartTime, &w.EndTime, &w.IsActive, &w.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		windows = append(windows, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, response.ErrStorageUnavailable, err)
	}

	return windows, nil
}

// PatchWindowActive flips the tombstone flag. Records are never deleted, so
// patching an already-inactive window simply rewrites the same value.
func (s *Storage) PatchWindowActive(ctx context.Context, id string, active bool) error {
	const op = "storage.postgres.PatchWindowActive"

	res, err := s.db.ExecContext(ctx,
		`UPDATE availability_windows SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, response.ErrStorageUnavailable, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

// #### reservations ####

// BlockingReservations returns the trainer's reservations for the date that
// can invalidate candidate slots (pending or confirmed).
func (s *Storage) BlockingReservations(ctx context.Context, trainerID, date string) ([]*models.Reservation, error) {
	const op = "storage.postgres.BlockingReservations"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, trainer_id, date, start_time, end_time, status
		FROM reservations
		WHERE trainer_id = $1 AND date = $2 AND status IN ($3, $4)`,
		trainerID, date, models.ReservationPending, models.ReservationConfirmed,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, response.ErrStorageUnavailable, err)
	}

	defer rows.Close()

	var reservations []*models.Reservation

	for rows.Next() {
		var r models.Reservation

		err := rows.Scan(&r.ID, &r.TrainerID, &r.Date, &r.StartTime, &r.EndTime, &r.Status)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		reservations = append(reservations, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, response.ErrStorageUnavailable, err)
	}

	return reservations, nil
}
