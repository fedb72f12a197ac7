package get_calendar

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/usecase/calendar"
)

const (
	msgInvalidYear  = "некорректный год"
	msgInvalidMonth = "некорректный месяц, ожидается число от 1 до 12"
)

type Handler struct {
	clock    TimeProvider
	location *time.Location
	logger   Logger
}

func NewHandler(clock TimeProvider, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.Local
	}
	return &Handler{
		clock:    clock,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/calendar/{year}/{month}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	year, err := strconv.Atoi(vars["year"])
	if err != nil || year < 1 {
		h.logger.Warn("GET /calendar/{year}/{month} - Invalid year: %q", vars["year"])
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	month, err := strconv.Atoi(vars["month"])
	if err != nil {
		h.logger.Warn("GET /calendar/{year}/{month} - Invalid month: %q", vars["month"])
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	grid, err := calendar.RenderMonth(year, time.Month(month), h.clock.Now().In(h.location))
	if err != nil {
		h.logger.Warn("GET /calendar/{year}/{month} - Failed to render: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	h.logger.Info("GET /calendar/{year}/{month} - Calendar rendered: %s", grid.Title)
	handlers.RespondJSON(w, http.StatusOK, grid)
}
