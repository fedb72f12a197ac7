package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Redis       RedisConfig       `toml:"redis"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Booking     BookingConfig     `toml:"booking"`
	ChatGateway ChatGatewayConfig `toml:"chat_gateway"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	// Driver postgres или memory (всё в памяти процесса, для локального запуска)
	Driver          string `toml:"driver"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"`

	// dsn задается только через DATABASE_DSN и имеет приоритет над полями выше
	dsn string
}

// DSN строка подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	if c.dsn != "" {
		return c.dsn
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL строка подключения в формате postgres:// для мигратора
func (c DatabaseConfig) URL() string {
	if c.dsn != "" {
		return c.dsn
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	// KeyPrefix префикс ключей сессий
	KeyPrefix string `toml:"key_prefix"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type BookingConfig struct {
	AdminPhone string   `toml:"admin_phone"`
	SlotTimes  []string `toml:"slot_times"`
	Services   []string `toml:"services"`
	// Location IANA-зона, в которой считается "сегодня"
	Location string `toml:"location"`
}

// Slots сетка слотов в виде TimeString
func (c BookingConfig) Slots() []types.TimeString {
	slots := make([]types.TimeString, 0, len(c.SlotTimes))
	for _, s := range c.SlotTimes {
		slots = append(slots, types.TimeString(s))
	}
	return slots
}

// TimeLocation зона для расчета "сегодня"
func (c BookingConfig) TimeLocation() (*time.Location, error) {
	if c.Location == "" || c.Location == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Location)
}

type ChatGatewayConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load читает TOML-файл, затем .env (если есть) и переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	// .env необязателен
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	slotTimes := make([]string, 0, len(domain.DefaultSlotTimes))
	for _, s := range domain.DefaultSlotTimes {
		slotTimes = append(slotTimes, s.String())
	}

	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "barber:session:",
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "barber-booking",
		},
		Booking: BookingConfig{
			SlotTimes: slotTimes,
			Services:  append([]string(nil), domain.DefaultServices...),
			Location:  "Local",
		},
		ChatGateway: ChatGatewayConfig{
			Timeout: 5,
		},
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("ADMIN_PHONE"); v != "" {
		c.Booking.AdminPhone = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		c.Database.dsn = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logs.Level = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT=%q is not a number", ErrInvalidConfig, v)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Booking.AdminPhone == "" {
		return fmt.Errorf("%w: booking.admin_phone is required", ErrInvalidConfig)
	}
	if len(c.Booking.SlotTimes) == 0 {
		return fmt.Errorf("%w: booking.slot_times is empty", ErrInvalidConfig)
	}
	for _, s := range c.Booking.SlotTimes {
		if err := types.TimeString(s).Validate(); err != nil {
			return fmt.Errorf("%w: booking.slot_times: %v", ErrInvalidConfig, err)
		}
	}
	if len(c.Booking.Services) == 0 {
		return fmt.Errorf("%w: booking.services is empty", ErrInvalidConfig)
	}
	if _, err := c.Booking.TimeLocation(); err != nil {
		return fmt.Errorf("%w: booking.location: %v", ErrInvalidConfig, err)
	}
	if c.Database.Driver != DriverPostgres && c.Database.Driver != DriverMemory {
		return fmt.Errorf("%w: unknown database.driver %q", ErrInvalidConfig, c.Database.Driver)
	}
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}
	return nil
}
