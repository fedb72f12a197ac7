package get_available_times

import (
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// AvailableTimesResponse HTTP response model
type AvailableTimesResponse struct {
	Date  string   `json:"date"`
	Times []string `json:"times"` // HH:MM в порядке сетки слотов
}

// FromUseCaseResponse конвертирует свободные времена в HTTP response
func FromUseCaseResponse(date string, times []types.TimeString) *AvailableTimesResponse {
	resp := &AvailableTimesResponse{Date: date, Times: make([]string, 0, len(times))}
	for _, t := range times {
		resp.Times = append(resp.Times, t.String())
	}
	return resp
}
