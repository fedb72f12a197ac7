package appointment_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

func newRepo(t *testing.T) (*appointment.Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return appointment.NewRepository(dbmetrics.Wrap(db, nil)), mock, db
}

func TestRepository_Create(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		repo, mock, _ := newRepo(t)
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO appointments \(client_id,service,appointment_date,start_time,status\)`).
			WithArgs(int64(7), domain.ServiceMensHaircut, date, "10:00", "scheduled").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

		created, err := repo.Create(context.Background(), &domain.Appointment{
			ClientID:  7,
			Service:   domain.ServiceMensHaircut,
			Date:      date,
			StartTime: "10:00",
			Status:    domain.StatusScheduled,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, now, created.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to slot taken", func(t *testing.T) {
		repo, mock, _ := newRepo(t)

		mock.ExpectQuery(`INSERT INTO appointments`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "appointments_scheduled_slot_uniq"})

		_, err := repo.Create(context.Background(), &domain.Appointment{
			ClientID: 7, Service: domain.ServiceMensHaircut, Date: date, StartTime: "10:00", Status: domain.StatusScheduled,
		})
		assert.ErrorIs(t, err, appointment.ErrSlotTaken)
		assert.True(t, appointment.IsSlotConflict(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other error", func(t *testing.T) {
		repo, mock, _ := newRepo(t)

		mock.ExpectQuery(`INSERT INTO appointments`).WillReturnError(errors.New("connection reset"))

		_, err := repo.Create(context.Background(), &domain.Appointment{
			ClientID: 7, Service: domain.ServiceMensHaircut, Date: date, StartTime: "10:00", Status: domain.StatusScheduled,
		})
		assert.ErrorIs(t, err, appointment.ErrExecQuery)
		assert.False(t, appointment.IsSlotConflict(err))
	})
}

func TestRepository_ScheduledTimes(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("without transaction", func(t *testing.T) {
		repo, mock, _ := newRepo(t)

		mock.ExpectQuery(`SELECT start_time FROM appointments WHERE appointment_date = \$1 AND status = \$2 ORDER BY start_time ASC$`).
			WithArgs(date, "scheduled").
			WillReturnRows(sqlmock.NewRows([]string{"start_time"}).AddRow("10:00:00").AddRow("14:00:00"))

		times, err := repo.ScheduledTimes(context.Background(), date)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"10:00", "14:00"}, times)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inside transaction locks rows", func(t *testing.T) {
		repo, mock, db := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT start_time FROM appointments .* FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"start_time"}))
		mock.ExpectRollback()

		tx, err := dbmetrics.Wrap(db, nil).BeginTx(context.Background(), nil)
		require.NoError(t, err)
		ctx := dbmetrics.WithTx(context.Background(), tx)

		times, err := repo.ScheduledTimes(ctx, date)
		require.NoError(t, err)
		assert.Empty(t, times)
		require.NoError(t, tx.Rollback())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("serialization failure maps to slot taken", func(t *testing.T) {
		repo, mock, db := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT start_time FROM appointments .* FOR UPDATE`).
			WillReturnError(&pq.Error{Code: "40001"})
		mock.ExpectRollback()

		tx, err := dbmetrics.Wrap(db, nil).BeginTx(context.Background(), nil)
		require.NoError(t, err)
		ctx := dbmetrics.WithTx(context.Background(), tx)

		_, err = repo.ScheduledTimes(ctx, date)
		assert.ErrorIs(t, err, appointment.ErrSlotTaken)
		assert.True(t, appointment.IsSlotConflict(err))
		require.NoError(t, tx.Rollback())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other error", func(t *testing.T) {
		repo, mock, _ := newRepo(t)

		mock.ExpectQuery(`SELECT start_time FROM appointments`).WillReturnError(errors.New("connection reset"))

		_, err := repo.ScheduledTimes(context.Background(), date)
		assert.ErrorIs(t, err, appointment.ErrExecQuery)
		assert.False(t, appointment.IsSlotConflict(err))
	})
}

func TestRepository_ListScheduled(t *testing.T) {
	repo, mock, _ := newRepo(t)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT a.id, c.name, c.phone, a.service, a.appointment_date, a.start_time FROM appointments a JOIN clients c ON c.id = a.client_id WHERE a.status = \$1 ORDER BY a.appointment_date ASC, a.start_time ASC`).
		WithArgs("scheduled").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "service", "appointment_date", "start_time"}).
			AddRow(int64(3), "Ann", "+70000000000", domain.ServiceHairColoring, date, "12:00:00"))

	list, err := repo.ListScheduled(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(3), list[0].ID)
	assert.Equal(t, "Ann", list[0].ClientName)
	assert.Equal(t, types.TimeString("12:00"), list[0].StartTime)
	assert.True(t, date.Equal(list[0].Date))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkCompleted(t *testing.T) {
	t.Run("unknown id is not an error", func(t *testing.T) {
		repo, mock, _ := newRepo(t)

		mock.ExpectExec(`UPDATE appointments SET status = \$1, updated_at = NOW\(\) WHERE id = \$2 AND status = \$3`).
			WithArgs("completed", int64(999), "scheduled").
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, repo.MarkCompleted(context.Background(), 999))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock, _ := newRepo(t)

		mock.ExpectExec(`UPDATE appointments`).WillReturnError(errors.New("boom"))

		assert.ErrorIs(t, repo.MarkCompleted(context.Background(), 1), appointment.ErrExecQuery)
	})
}
