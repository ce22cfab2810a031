package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"HTTP_ADDRESS", "LOG_LEVEL", "DATABASE_URL", "REDIS_ADDR", "REDIS_PASSWORD",
	"AMADEUS_BASE_URL", "AMADEUS_CLIENT_ID", "AMADEUS_CLIENT_SECRET", "KAFKA_BROKERS", "CORS_ORIGINS",
}

func clearEnv(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
database:
  host: db
  port: 5432
  user: travel
  password: secret
  name: travel
  ssl_mode: disable
amadeus:
  client_id: id
  client_secret: secret
booking:
  hold_ttl_minutes: 5
`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, "X-User-ID", cfg.HTTP.UserHeader)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.HTTP.CORSOrigins)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "https://test.api.amadeus.com", cfg.Amadeus.BaseURL)
	require.Equal(t, 5, cfg.Booking.HoldTTLMinutes)
	require.Equal(t, 30, cfg.Booking.ConfirmationTTL)
	require.Equal(t, 300, cfg.Search.OffersCacheTTL)
	require.Equal(t, "host=db port=5432 user=travel password=secret dbname=travel sslmode=disable", cfg.Database.DSN())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
http:
  address: ":9000"
amadeus:
  client_id: from-file
  client_secret: from-file
`)
	t.Setenv("HTTP_ADDRESS", ":9090")
	t.Setenv("AMADEUS_CLIENT_ID", "from-env")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/travel")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("CORS_ORIGINS", "https://app.example.com")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, "from-env", cfg.Amadeus.ClientID)
	require.Equal(t, "from-file", cfg.Amadeus.ClientSecret)
	require.Equal(t, "postgres://u:p@db:5432/travel", cfg.Database.DSN())
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, []string{"https://app.example.com"}, cfg.HTTP.CORSOrigins)
}

func TestLoadConfig_MissingFileUsesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("AMADEUS_CLIENT_ID", "id")
	t.Setenv("AMADEUS_CLIENT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/travel")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	require.Equal(t, "id", cfg.Amadeus.ClientID)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
	require.ErrorContains(t, err, "AMADEUS_CLIENT_ID")
	require.ErrorContains(t, err, "AMADEUS_CLIENT_SECRET")
	require.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "http: [")

	_, err := LoadConfig(path)

	require.ErrorContains(t, err, "failed to parse config")
}

func TestLogConfig_SlogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, LogConfig{Level: "debug"}.SlogLevel())
	require.Equal(t, slog.LevelWarn, LogConfig{Level: "WARN"}.SlogLevel())
	require.Equal(t, slog.LevelInfo, LogConfig{Level: "loud"}.SlogLevel())
}

func TestLoadConfig_RejectsNonPositiveDurations(t *testing.T) {
	clearEnv(t)
	t.Setenv("AMADEUS_CLIENT_ID", "id")
	t.Setenv("AMADEUS_CLIENT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/travel")
	path := writeConfig(t, `
worker:
  expiration_sweep_minutes: -1
booking:
  hold_ttl_minutes: -5
`)

	_, err := LoadConfig(path)

	require.Error(t, err)
	require.ErrorContains(t, err, "worker.expiration_sweep_minutes")
	require.ErrorContains(t, err, "booking.hold_ttl_minutes")
	require.NotContains(t, err.Error(), "booking.confirmation_ttl_minutes")
}
