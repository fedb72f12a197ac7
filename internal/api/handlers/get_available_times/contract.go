package get_available_times

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

type AvailabilityUseCase interface {
	AvailableDates(ctx context.Context) ([]time.Time, error)
	AvailableTimes(ctx context.Context, date time.Time) ([]types.TimeString, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
