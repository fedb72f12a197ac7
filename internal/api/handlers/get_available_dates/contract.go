package get_available_dates

import (
	"context"
	"time"
)

type AvailabilityUseCase interface {
	AvailableDates(ctx context.Context) ([]time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
