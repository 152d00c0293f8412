package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainslot-service/internal/models"
	"trainslot-service/pkg/response"
)

func newMock(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewWithDB(db), mock
}

func TestInsertWindow(t *testing.T) {
	storage, mock := newMock(t)

	monday := models.Monday

	mock.ExpectExec("INSERT INTO availability_windows").
		WithArgs(sqlmock.AnyArg(), "trainer-1", "recurring", "monday", nil, "09:00", "12:00", true, int64(1724000000000)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := storage.InsertWindow(context.Background(), &models.AvailabilityWindow{
		TrainerID: "trainer-1",
		Kind:      models.WindowRecurring,
		DayOfWeek: &monday,
		StartTime: "09:00",
		EndTime:   "12:00",
		IsActive:  true,
		CreatedAt: 1724000000000,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWindowNotFound(t *testing.T) {
	storage, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM availability_windows WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := storage.GetWindow(context.Background(), "missing")
	assert.ErrorIs(t, err, response.ErrNotFound)
}

func TestWindowsByTrainerActiveOnly(t *testing.T) {
	storage, mock := newMock(t)

	columns := []string{"id", "trainer_id", "kind", "day_of_week", "specific_date", "start_time", "end_time", "is_active", "created_at"}

	mock.ExpectQuery(`FROM availability_windows WHERE trainer_id = \$1 AND is_active = true`).
		WithArgs("trainer-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("w1", "trainer-1", "recurring", "monday", nil, "09:00", "12:00", true, int64(1)).
			AddRow("w2", "trainer-1", "specific", nil, "2025-08-18", "14:00", "16:00", true, int64(2)))

	windows, err := storage.WindowsByTrainer(context.Background(), "trainer-1", true)
	require.NoError(t, err)
	require.Len(t, windows, 2)

	assert.Equal(t, models.WindowRecurring, windows[0].Kind)
	require.NotNil(t, windows[0].DayOfWeek)
	assert.Equal(t, models.Monday, *windows[0].DayOfWeek)

	assert.Equal(t, models.WindowSpecific, windows[1].Kind)
	require.NotNil(t, windows[1].SpecificDate)
	assert.Equal(t, "2025-08-18", *windows[1].SpecificDate)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPatchWindowActive(t *testing.T) {
	storage, mock := newMock(t)

	mock.ExpectExec("UPDATE availability_windows SET is_active").
		WithArgs(false, "w1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, storage.PatchWindowActive(context.Background(), "w1", false))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPatchWindowActiveNotFound(t *testing.T) {
	storage, mock := newMock(t)

	mock.ExpectExec("UPDATE availability_windows SET is_active").
		WithArgs(false, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := storage.PatchWindowActive(context.Background(), "missing", false)
	assert.ErrorIs(t, err, response.ErrNotFound)
}

func TestBlockingReservations(t *testing.T) {
	storage, mock := newMock(t)

	columns := []string{"id", "trainer_id", "date", "start_time", "end_time", "status"}

	mock.ExpectQuery(`FROM reservations`).
		WithArgs("trainer-1", "2025-08-18", models.ReservationPending, models.ReservationConfirmed).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("r1", "trainer-1", "2025-08-18", "10:00", "11:00", "pending"))

	reservations, err := storage.BlockingReservations(context.Background(), "trainer-1", "2025-08-18")
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, models.ReservationPending, reservations[0].Status)
	assert.True(t, reservations[0].Status.Blocking())

	require.NoError(t, mock.ExpectationsWereMet())
}
