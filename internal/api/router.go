package api

import (
	"fmt"
	"io"
	"net/http"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	getAvailableDatesHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_available_dates"
	getAvailableTimesHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_available_times"
	getCalendarHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_calendar"
	startSessionHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/start_session"
	submitActionHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/submit_action"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
)

// Handlers обработчики маршрутов API
type Handlers struct {
	StartSession      *startSessionHandler.Handler
	SubmitAction      *submitActionHandler.Handler
	GetAvailableDates *getAvailableDatesHandler.Handler
	GetAvailableTimes *getAvailableTimesHandler.Handler
	GetCalendar       *getCalendarHandler.Handler
}

// Options необязательные части роутера
type Options struct {
	// Metrics при nil HTTP-метрики не собираются и /metrics не публикуется
	Metrics        middleware.HTTPMetrics
	MetricsPath    string
	MetricsHandler http.Handler

	// AccessLog журнал запросов в формате Apache Common Log, nil - выключен
	AccessLog io.Writer
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}

// NewRouter собирает маршруты API и оборачивает их восстановлением после паники
func NewRouter(h Handlers, opts Options, log Logger) http.Handler {
	r := mux.NewRouter()

	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
		if opts.MetricsHandler != nil && opts.MetricsPath != "" {
			r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
		}
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Диалог ---
	api.HandleFunc("/sessions", h.StartSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/actions", h.SubmitAction.Handle).Methods(http.MethodPost)

	// --- Доступность (только чтение) ---
	api.HandleFunc("/availability/dates", h.GetAvailableDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/dates/{date}/times", h.GetAvailableTimes.Handle).Methods(http.MethodGet)

	// --- Календарь ---
	api.HandleFunc("/calendar/{year:[0-9]+}/{month:[0-9]+}", h.GetCalendar.Handle).Methods(http.MethodGet)

	var handler http.Handler = r
	if opts.AccessLog != nil {
		handler = gorillaHandlers.LoggingHandler(opts.AccessLog, handler)
	}

	return gorillaHandlers.RecoveryHandler(
		gorillaHandlers.RecoveryLogger(recoveryLogger{log: log}),
	)(handler)
}

// recoveryLogger пишет панику обработчика в логгер сервиса
type recoveryLogger struct {
	log Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error("HTTP handler panic: %s", fmt.Sprint(v...))
}
