package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9000

[database]
host = "db"
port = 5433
user = "barber"
password = "secret"
dbname = "barber"
sslmode = "disable"

[booking]
admin_phone = "+79990000000"
slot_times = ["10:00", "12:00"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.HTTPPort)
	assert.Equal(t, "+79990000000", cfg.Booking.AdminPhone)
	assert.Equal(t, []types.TimeString{"10:00", "12:00"}, cfg.Booking.Slots())
	assert.Len(t, cfg.Booking.Services, 4, "default catalogue")
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "host=db port=5433 user=barber password=secret dbname=barber sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, "postgres://barber:secret@db:5433/barber?sslmode=disable", cfg.Database.URL())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[booking]
admin_phone = "+79990000000"
`)
	t.Setenv("ADMIN_PHONE", "+70000000001")
	t.Setenv("DATABASE_DSN", "postgres://u:p@h:1/d")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "+70000000001", cfg.Booking.AdminPhone)
	assert.Equal(t, "postgres://u:p@h:1/d", cfg.Database.DSN())
	assert.Equal(t, "postgres://u:p@h:1/d", cfg.Database.URL())
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, 8081, cfg.Server.HTTPPort)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})

	t.Run("bad HTTP_PORT", func(t *testing.T) {
		path := writeConfig(t, "[booking]\nadmin_phone = \"+7\"\n")
		t.Setenv("HTTP_PORT", "abc")
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{name: "empty admin phone", modify: func(c *Config) { c.Booking.AdminPhone = "" }},
		{name: "malformed slot", modify: func(c *Config) { c.Booking.SlotTimes = []string{"25:00"} }},
		{name: "empty slots", modify: func(c *Config) { c.Booking.SlotTimes = nil }},
		{name: "empty services", modify: func(c *Config) { c.Booking.Services = nil }},
		{name: "unknown location", modify: func(c *Config) { c.Booking.Location = "Mars/Olympus" }},
		{name: "unknown driver", modify: func(c *Config) { c.Database.Driver = "sqlite" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			cfg.Booking.AdminPhone = "+70000000000"
			require.NoError(t, cfg.Validate())

			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
