package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// UseCase считает доступные даты и времена записи.
// Не пишет в хранилище.
type UseCase struct {
	workingDayRepo  WorkingDayRepository
	appointmentRepo AppointmentRepository
	template        []types.TimeString
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. template - ежедневная сетка слотов
// в порядке показа клиенту.
func NewUseCase(
	workingDayRepo WorkingDayRepository,
	appointmentRepo AppointmentRepository,
	template []types.TimeString,
	logger Logger,
) (*UseCase, error) {
	if len(template) == 0 {
		return nil, ErrEmptyTemplate
	}

	return &UseCase{
		workingDayRepo:  workingDayRepo,
		appointmentRepo: appointmentRepo,
		template:        append([]types.TimeString(nil), template...),
		logger:          logger,
	}, nil
}

// AvailableDates возвращает все рабочие дни по возрастанию,
// включая дни без свободных слотов
func (uc *UseCase) AvailableDates(ctx context.Context) ([]time.Time, error) {
	dates, err := uc.workingDayRepo.List(ctx)
	if err != nil {
		uc.logger.Error("AvailableDates: failed to list working days: %v", err)
		return nil, fmt.Errorf("%w: AvailableDates - list working days: %v", ErrStore, err)
	}
	return dates, nil
}

// AvailableTimes возвращает сетку слотов минус времена, занятые записями scheduled.
// Порядок сетки сохраняется. Пустой результат означает, что день занят полностью.
func (uc *UseCase) AvailableTimes(ctx context.Context, date time.Time) ([]types.TimeString, error) {
	booked, err := uc.appointmentRepo.ScheduledTimes(ctx, domain.DateOnly(date))
	if err != nil {
		uc.logger.Error("AvailableTimes: failed to get booked times for %s: %v", domain.FormatDate(date), err)
		return nil, fmt.Errorf("%w: AvailableTimes - scheduled times: %v", ErrStore, err)
	}

	return freeSlots(uc.template, booked), nil
}

func freeSlots(template, booked []types.TimeString) []types.TimeString {
	taken := make(map[types.TimeString]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	free := make([]types.TimeString, 0, len(template))
	for _, t := range template {
		if _, ok := taken[t]; !ok {
			free = append(free, t)
		}
	}
	return free
}

// ContainsDate проверяет, что дата есть в списке (сравнение по календарной дате)
func ContainsDate(dates []time.Time, date time.Time) bool {
	day := domain.DateOnly(date)
	for _, d := range dates {
		if domain.DateOnly(d).Equal(day) {
			return true
		}
	}
	return false
}

// ContainsTime проверяет, что время есть в списке
func ContainsTime(times []types.TimeString, t types.TimeString) bool {
	for _, candidate := range times {
		if candidate == t {
			return true
		}
	}
	return false
}
