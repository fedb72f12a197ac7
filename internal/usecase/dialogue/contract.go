package dialogue

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	Upsert(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Client, error)
}

// WorkingDayRepository интерфейс репозитория рабочих дней
type WorkingDayRepository interface {
	Add(ctx context.Context, date time.Time) (domain.AddWorkingDayResult, error)
	Remove(ctx context.Context, date time.Time) (bool, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListScheduled(ctx context.Context) ([]*domain.ScheduledAppointment, error)
	MarkCompleted(ctx context.Context, id int64) error
}

// Availability доступные даты и времена
type Availability interface {
	AvailableDates(ctx context.Context) ([]time.Time, error)
	AvailableTimes(ctx context.Context, date time.Time) ([]types.TimeString, error)
}

// Booker создание записи с защитой от двойного бронирования
type Booker interface {
	Execute(ctx context.Context, req *book_appointment.Request) (*book_appointment.Response, error)
}

// Notifier доставка сообщений в мессенджер
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// Metrics счетчики диалога
type Metrics interface {
	IncNotificationFailed()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
