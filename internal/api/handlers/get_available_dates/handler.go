package get_available_dates

import (
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
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

// Handle GET /api/v1/availability/dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dates, err := h.useCase.AvailableDates(r.Context())
	if err != nil {
		h.logger.Error("GET /availability/dates - Failed to get dates: %v", err)
		handlers.RespondServiceUnavailable(w)
		return
	}

	h.logger.Info("GET /availability/dates - Dates retrieved successfully: count=%d", len(dates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(dates))
}
