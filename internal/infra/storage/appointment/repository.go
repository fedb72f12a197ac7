package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Коды ошибок PostgreSQL, означающие что слот занят параллельной записью
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
)

// Repository репозиторий для работы с записями на услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись в статусе scheduled.
// Если слот уже занят (уникальный индекс appointments_scheduled_slot_uniq
// или конфликт сериализации), возвращает ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"client_id",
			"service",
			"appointment_date",
			"start_time",
			"status",
		).
		Values(
			appointment.ClientID,
			appointment.Service,
			domain.DateOnly(appointment.Date),
			appointment.StartTime,
			appointment.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&createdAt,
		&updatedAt,
	)

	if isSlotConflict(err) {
		return nil, fmt.Errorf("%w: Create - %s %s", ErrSlotTaken, domain.FormatDate(appointment.Date), appointment.StartTime)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// ScheduledTimes возвращает занятые (scheduled) времена на дату.
// Внутри транзакции строки блокируются через FOR UPDATE;
// конфликт сериализации на блокировке возвращается как ErrSlotTaken.
func (r *Repository) ScheduledTimes(ctx context.Context, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("start_time").
		From("appointments").
		Where(squirrel.Eq{
			"appointment_date": domain.DateOnly(date),
			"status":           domain.StatusScheduled,
		}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ScheduledTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if isSlotConflict(err) {
		return nil, fmt.Errorf("%w: ScheduledTimes - %s: %v", ErrSlotTaken, domain.FormatDate(date), err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: ScheduledTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: ScheduledTimes - scan start_time: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		if isSlotConflict(err) {
			return nil, fmt.Errorf("%w: ScheduledTimes - %s: %v", ErrSlotTaken, domain.FormatDate(date), err)
		}
		return nil, fmt.Errorf("%w: ScheduledTimes - rows error: %v", ErrScanRow, err)
	}

	return times, nil
}

// ListScheduled возвращает все записи в статусе scheduled вместе с данными клиента,
// отсортированные по дате и времени
func (r *Repository) ListScheduled(ctx context.Context) ([]*domain.ScheduledAppointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"a.id",
		"c.name",
		"c.phone",
		"a.service",
		"a.appointment_date",
		"a.start_time",
	).
		From("appointments a").
		Join("clients c ON c.id = a.client_id").
		Where(squirrel.Eq{"a.status": domain.StatusScheduled}).
		OrderBy("a.appointment_date ASC", "a.start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListScheduled - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListScheduled - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ScheduledAppointment, 0)
	for rows.Next() {
		var a domain.ScheduledAppointment
		if err := rows.Scan(
			&a.ID,
			&a.ClientName,
			&a.ClientPhone,
			&a.Service,
			&a.Date,
			&a.StartTime,
		); err != nil {
			return nil, fmt.Errorf("%w: ListScheduled - scan row: %v", ErrScanRow, err)
		}
		a.Date = domain.DateOnly(a.Date)
		result = append(result, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListScheduled - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// MarkCompleted переводит запись из scheduled в completed.
// Несуществующий или уже завершенный id не считается ошибкой.
func (r *Repository) MarkCompleted(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusScheduled}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkCompleted - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkCompleted - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

func isSlotConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pgUniqueViolation || pqErr.Code == pgSerializationFailure
}

// IsSlotConflict сообщает, что ошибка транзакции вызвана гонкой за слот
func IsSlotConflict(err error) bool {
	return errors.Is(err, ErrSlotTaken) || isSlotConflict(err)
}
