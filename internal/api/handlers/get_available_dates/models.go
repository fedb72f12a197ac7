package get_available_dates

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	Dates []string `json:"dates"` // YYYY-MM-DD по возрастанию
}

// FromUseCaseResponse конвертирует даты в HTTP response
func FromUseCaseResponse(dates []time.Time) *AvailableDatesResponse {
	resp := &AvailableDatesResponse{Dates: make([]string, 0, len(dates))}
	for _, d := range dates {
		resp.Dates = append(resp.Dates, domain.FormatDate(d))
	}
	return resp
}
