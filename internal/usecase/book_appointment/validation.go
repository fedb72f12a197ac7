package book_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func (uc *UseCase) validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if _, ok := uc.services[req.Service]; !ok {
		return fmt.Errorf("%w: unknown service %q", ErrInvalidInput, req.Service)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	// Время должно быть из сетки слотов
	if _, ok := uc.template[req.StartTime]; !ok {
		return fmt.Errorf("%w: %s is not a slot of the daily template", ErrInvalidInput, req.StartTime)
	}

	return nil
}

func isTaken(booked []types.TimeString, t types.TimeString) bool {
	for _, b := range booked {
		if b == t {
			return true
		}
	}
	return false
}
