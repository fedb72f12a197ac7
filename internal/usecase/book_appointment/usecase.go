package book_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// UseCase use case для создания записи на подтвержденный слот
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	services        map[string]struct{}
	template        map[types.TimeString]struct{}
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	services []string,
	template []types.TimeString,
	metrics Metrics,
	logger Logger,
) *UseCase {
	uc := &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		services:        make(map[string]struct{}, len(services)),
		template:        make(map[types.TimeString]struct{}, len(template)),
		metrics:         metrics,
		logger:          logger,
	}
	for _, s := range services {
		uc.services[s] = struct{}{}
	}
	for _, t := range template {
		uc.template[t] = struct{}{}
	}
	return uc
}

// Execute создает запись в статусе scheduled.
// Сериализуемая транзакция с FOR UPDATE и уникальный индекс по слоту
// гарантируют не более одной активной записи на слот.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	uc.logger.Info("BookAppointment: client=%d, service=%s, date=%s, time=%s",
		req.ClientID, req.Service, domain.FormatDate(date), req.StartTime)

	var result *domain.Appointment

	// 2. Проверка и запись в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Занятые времена на дату с блокировкой строк
		booked, err := uc.appointmentRepo.ScheduledTimes(txCtx, date)
		if err != nil {
			return fmt.Errorf("%w: failed to get scheduled times: %w", ErrInternal, err)
		}

		// 2.2. Слот заняли между выбором времени и подтверждением
		if isTaken(booked, req.StartTime) {
			return ErrSlotNotAvailable
		}

		// 2.3. Сохраняем запись
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ClientID:  req.ClientID,
			Service:   req.Service,
			Date:      date,
			StartTime: req.StartTime,
			Status:    domain.StatusScheduled,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Уникальный индекс или конфликт сериализации означает проигранную гонку за слот
		if isConflict(err) {
			uc.metrics.IncBookingConflict()
			uc.logger.Warn("BookAppointment: slot %s %s already taken: %v", domain.FormatDate(date), req.StartTime, err)
			return nil, fmt.Errorf("%w: %s %s", ErrSlotNotAvailable, domain.FormatDate(date), req.StartTime)
		}
		uc.logger.Error("BookAppointment: failed to book %s %s: %v", domain.FormatDate(date), req.StartTime, err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	uc.metrics.IncBookingCreated()
	uc.logger.Info("BookAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:        result.ID,
		ClientID:  result.ClientID,
		Service:   result.Service,
		Date:      result.Date,
		StartTime: result.StartTime,
		Status:    string(result.Status),
		CreatedAt: result.CreatedAt,
	}, nil
}

func isConflict(err error) bool {
	return errors.Is(err, ErrSlotNotAvailable) || appointmentRepo.IsSlotConflict(err)
}
