package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BarberBooking/internal/api"
	getAvailableDatesHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_available_dates"
	getAvailableTimesHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_available_times"
	getCalendarHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_calendar"
	startSessionHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/start_session"
	submitActionHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/submit_action"
	"github.com/m04kA/SMC-BarberBooking/internal/config"
	sessionStore "github.com/m04kA/SMC-BarberBooking/internal/infra/session"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	clientRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/client"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/memory"
	workingDayRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/workingday"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/chatgateway"
	"github.com/m04kA/SMC-BarberBooking/internal/service/conversation"
	"github.com/m04kA/SMC-BarberBooking/internal/usecase/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-BarberBooking/internal/usecase/dialogue"
	"github.com/m04kA/SMC-BarberBooking/migrations"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/metrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/txmanager"
)

type workingDayRepository interface {
	availability.WorkingDayRepository
	dialogue.WorkingDayRepository
}

type appointmentRepository interface {
	availability.AppointmentRepository
	book_appointment.AppointmentRepository
	dialogue.AppointmentRepository
}

// storage репозитории выбранного драйвера
type storage struct {
	clients      dialogue.ClientRepository
	workingDays  workingDayRepository
	appointments appointmentRepository
	tx           book_appointment.TransactionManager
	sessions     conversation.SessionStore
	close        func()
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-BarberBooking...")

	location, err := cfg.Booking.TimeLocation()
	if err != nil {
		log.Fatal("Failed to load time location %q: %v", cfg.Booking.Location, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, nil)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище: PostgreSQL + Redis или всё в памяти
	var store *storage
	switch cfg.Database.Driver {
	case config.DriverMemory:
		store = newMemoryStorage()
		log.Warn("Using in-memory storage: data is lost on restart")
	default:
		store, err = newPostgresStorage(cfg, metricsCollector, stopMetricsCh, log)
		if err != nil {
			log.Fatal("Failed to initialize storage: %v", err)
		}
	}
	defer store.close()

	// Уведомления администратору (необязательно)
	var notifier dialogue.Notifier
	if cfg.ChatGateway.URL != "" {
		notifier = chatgateway.NewClient(
			cfg.ChatGateway.URL,
			time.Duration(cfg.ChatGateway.Timeout)*time.Second,
			log,
		)
		log.Info("Chat gateway client initialized (url=%s timeout=%ds)", cfg.ChatGateway.URL, cfg.ChatGateway.Timeout)
	} else {
		log.Warn("Chat gateway URL is empty: admin notifications are disabled")
	}

	// Инициализируем use cases
	slots := cfg.Booking.Slots()

	availabilityUseCase, err := availability.NewUseCase(store.workingDays, store.appointments, slots, log)
	if err != nil {
		log.Fatal("Failed to initialize availability: %v", err)
	}

	bookAppointmentUseCase := book_appointment.NewUseCase(
		store.appointments,
		store.tx,
		cfg.Booking.Services,
		slots,
		metricsCollector,
		log,
	)

	machine := dialogue.NewMachine(
		dialogue.Config{
			AdminPhone: cfg.Booking.AdminPhone,
			Services:   cfg.Booking.Services,
			Location:   location,
		},
		store.clients,
		store.workingDays,
		store.appointments,
		availabilityUseCase,
		bookAppointmentUseCase,
		notifier,
		metricsCollector,
		log,
	)

	// Инициализируем сервисы
	conversationSvc := conversation.NewService(store.sessions, machine, metricsCollector, log)

	// Инициализируем handlers и роутер
	opts := api.Options{AccessLog: os.Stdout}
	if cfg.Metrics.Enabled {
		opts.Metrics = metricsCollector
		opts.MetricsPath = cfg.Metrics.Path
		opts.MetricsHandler = promhttp.Handler()
	}

	router := api.NewRouter(api.Handlers{
		StartSession:      startSessionHandler.NewHandler(conversationSvc, log),
		SubmitAction:      submitActionHandler.NewHandler(conversationSvc, log),
		GetAvailableDates: getAvailableDatesHandler.NewHandler(availabilityUseCase, log),
		GetAvailableTimes: getAvailableTimesHandler.NewHandler(availabilityUseCase, log),
		GetCalendar:       getCalendarHandler.NewHandler(&dialogue.RealTimeProvider{}, location, log),
	}, opts, log)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

func newMemoryStorage() *storage {
	mem := memory.NewStore()
	return &storage{
		clients:      mem.Clients(),
		workingDays:  mem.WorkingDays(),
		appointments: mem.Appointments(),
		tx:           mem,
		sessions:     memory.NewSessions(),
		close:        func() {},
	}
}

func newPostgresStorage(
	cfg *config.Config,
	metricsCollector *metrics.Metrics,
	stopMetricsCh <-chan struct{},
	log *logger.Logger,
) (*storage, error) {
	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info("Database migrations applied")
	}

	var wrappedDB *dbmetrics.DB
	if metricsCollector != nil {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Redis для сессий диалога
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	return &storage{
		clients:      clientRepo.NewRepository(wrappedDB),
		workingDays:  workingDayRepo.NewRepository(wrappedDB),
		appointments: appointmentRepo.NewRepository(wrappedDB),
		tx:           txmanager.NewTransactionManager(wrappedDB),
		sessions:     sessionStore.NewStore(rdb, cfg.Redis.KeyPrefix),
		close: func() {
			_ = rdb.Close()
			_ = db.Close()
		},
	}, nil
}
