package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// WorkingDayRepository интерфейс репозитория рабочих дней
type WorkingDayRepository interface {
	List(ctx context.Context) ([]time.Time, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ScheduledTimes возвращает времена, занятые записями в статусе scheduled
	ScheduledTimes(ctx context.Context, date time.Time) ([]types.TimeString, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
