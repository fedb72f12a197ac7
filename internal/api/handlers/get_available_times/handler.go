package get_available_times

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/usecase/availability"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotWorkingDay = "дата не является рабочим днем"
)

type Handler struct {
	useCase AvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase AvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/dates/{date}/times
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := mux.Vars(r)["date"]

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /availability/dates/{date}/times - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Времена показываются только для рабочих дней
	dates, err := h.useCase.AvailableDates(r.Context())
	if err != nil {
		h.logger.Error("GET /availability/dates/{date}/times - Failed to get dates: %v", err)
		handlers.RespondServiceUnavailable(w)
		return
	}
	if !availability.ContainsDate(dates, date) {
		h.logger.Warn("GET /availability/dates/{date}/times - Not a working day: date=%s", dateStr)
		handlers.RespondNotFound(w, msgNotWorkingDay)
		return
	}

	times, err := h.useCase.AvailableTimes(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /availability/dates/{date}/times - Failed to get times: date=%s, error=%v", dateStr, err)
		handlers.RespondServiceUnavailable(w)
		return
	}

	h.logger.Info("GET /availability/dates/{date}/times - Times retrieved successfully: date=%s, count=%d", dateStr, len(times))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(dateStr, times))
}
