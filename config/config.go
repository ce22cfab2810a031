package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Amadeus  AmadeusConfig  `yaml:"amadeus"`
	Search   SearchConfig   `yaml:"search"`
	Booking  BookingConfig  `yaml:"booking"`
	Worker   WorkerConfig   `yaml:"worker"`
}

type HTTPConfig struct {
	Address     string   `yaml:"address"`
	CORSOrigins []string `yaml:"cors_origins"`
	// UserHeader carries the user id set by the identity-provider gateway.
	UserHeader string `yaml:"user_header"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// SlogLevel parses Level; unknown values fall back to info.
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

type DatabaseConfig struct {
	// URL wins over the discrete fields when set.
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type AmadeusConfig struct {
	BaseURL        string `yaml:"base_url"`
	ClientID       string `yaml:"client_id"`
	ClientSecret   string `yaml:"client_secret"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type SearchConfig struct {
	OffersCacheTTL int `yaml:"offers_cache_ttl_seconds"`
}

type BookingConfig struct {
	HoldTTLMinutes  int `yaml:"hold_ttl_minutes"`
	ConfirmationTTL int `yaml:"confirmation_ttl_minutes"`
}

type WorkerConfig struct {
	ExpirationSweepMinutes int `yaml:"expiration_sweep_minutes"`
}

// LoadConfig reads the YAML file at path, applies environment overrides and
// defaults, and validates the result. A missing file is not an error when the
// environment supplies everything required.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.HTTP.Address, "HTTP_ADDRESS")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Amadeus.BaseURL, "AMADEUS_BASE_URL")
	setString(&c.Amadeus.ClientID, "AMADEUS_CLIENT_ID")
	setString(&c.Amadeus.ClientSecret, "AMADEUS_CLIENT_SECRET")
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitCSV(v)
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.HTTP.CORSOrigins = splitCSV(v)
	}
}

func (c *Config) applyDefaults() {
	setDefault(&c.HTTP.Address, ":8080")
	setDefault(&c.HTTP.UserHeader, "X-User-ID")
	if len(c.HTTP.CORSOrigins) == 0 {
		c.HTTP.CORSOrigins = []string{"http://localhost:5173"}
	}
	setDefault(&c.Log.Level, "info")
	setDefault(&c.Redis.Addr, "localhost:6379")
	if len(c.Kafka.Brokers) == 0 {
		c.Kafka.Brokers = []string{"localhost:9092"}
	}
	setDefault(&c.Kafka.BookingTopic, "booking_events")
	setDefault(&c.Kafka.NotificationsTopic, "notifications")
	setDefault(&c.Kafka.GroupID, "travelplanner-worker")
	setDefault(&c.Amadeus.BaseURL, "https://test.api.amadeus.com")
	setDefaultInt(&c.Amadeus.TimeoutSeconds, 10)
	setDefaultInt(&c.Search.OffersCacheTTL, 300)
	setDefaultInt(&c.Booking.HoldTTLMinutes, 15)
	setDefaultInt(&c.Booking.ConfirmationTTL, 30)
	setDefaultInt(&c.Worker.ExpirationSweepMinutes, 1)
}

func (c *Config) validate() error {
	var missing []string
	if c.Amadeus.ClientID == "" {
		missing = append(missing, "AMADEUS_CLIENT_ID")
	}
	if c.Amadeus.ClientSecret == "" {
		missing = append(missing, "AMADEUS_CLIENT_SECRET")
	}
	if c.Database.URL == "" && c.Database.Host == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required settings not set: %s", strings.Join(missing, ", "))
	}

	positive := []struct {
		name  string
		value int
	}{
		{"amadeus.timeout_seconds", c.Amadeus.TimeoutSeconds},
		{"search.offers_cache_ttl_seconds", c.Search.OffersCacheTTL},
		{"booking.hold_ttl_minutes", c.Booking.HoldTTLMinutes},
		{"booking.confirmation_ttl_minutes", c.Booking.ConfirmationTTL},
		{"worker.expiration_sweep_minutes", c.Worker.ExpirationSweepMinutes},
	}
	var invalid []string
	for _, p := range positive {
		if p.value <= 0 {
			invalid = append(invalid, p.name)
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("settings must be positive: %s", strings.Join(invalid, ", "))
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDefault(dst *string, fallback string) {
	if *dst == "" {
		*dst = fallback
	}
}

func setDefaultInt(dst *int, fallback int) {
	if *dst == 0 {
		*dst = fallback
	}
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
