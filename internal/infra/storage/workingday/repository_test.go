package workingday_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/workingday"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*workingday.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return workingday.NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_List(t *testing.T) {
	repo, mock := newRepo(t)
	d1 := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT work_date FROM working_days ORDER BY work_date ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"work_date"}).AddRow(d1).AddRow(d2))

	dates, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []time.Time{d1, d2}, dates)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Add(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("created", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectQuery(`INSERT INTO working_days \(work_date\) VALUES \(\$1\) ON CONFLICT \(work_date\) DO NOTHING RETURNING id`).
			WithArgs(date).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

		res, err := repo.Add(context.Background(), date)
		require.NoError(t, err)
		assert.Equal(t, domain.WorkingDayCreated, res)
	})

	t.Run("already exists", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectQuery(`INSERT INTO working_days`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		res, err := repo.Add(context.Background(), date)
		require.NoError(t, err)
		assert.Equal(t, domain.WorkingDayAlreadyExists, res)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectQuery(`INSERT INTO working_days`).WillReturnError(errors.New("boom"))

		_, err := repo.Add(context.Background(), date)
		assert.ErrorIs(t, err, workingday.ErrExecQuery)
	})
}

func TestRepository_Remove(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "removed", affected: 1, want: true},
		{name: "absent", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo(t)

			mock.ExpectExec(`DELETE FROM working_days WHERE work_date = \$1`).
				WithArgs(date).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			ok, err := repo.Remove(context.Background(), date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
