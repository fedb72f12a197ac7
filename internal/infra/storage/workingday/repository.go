package workingday

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
)

// Repository репозиторий рабочих дней
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих дней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все рабочие дни по возрастанию даты
func (r *Repository) List(ctx context.Context) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("work_date").
		From("working_days").
		OrderBy("work_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: List - scan work_date: %v", ErrScanRow, err)
		}
		dates = append(dates, domain.DateOnly(d))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// Add открывает дату для записи. Повторное добавление не ошибка.
func (r *Repository) Add(ctx context.Context, date time.Time) (domain.AddWorkingDayResult, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("working_days").
		Columns("work_date").
		Values(domain.DateOnly(date)).
		Suffix("ON CONFLICT (work_date) DO NOTHING RETURNING id").
		ToSql()

	if err != nil {
		return "", fmt.Errorf("%w: Add - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.WorkingDayAlreadyExists, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: Add - execute insert: %v", ErrExecQuery, err)
	}

	return domain.WorkingDayCreated, nil
}

// Remove закрывает дату для записи. Возвращает true, если дата была удалена.
// Существующие записи на эту дату не затрагиваются.
func (r *Repository) Remove(ctx context.Context, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("working_days").
		Where(squirrel.Eq{"work_date": domain.DateOnly(date)}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Remove - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Remove - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Remove - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}
