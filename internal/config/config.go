package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Alerting AlertingConfig
	Sound    SoundConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// TicketChannel is the pub/sub channel carrying ticket mutation events.
	TicketChannel string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines token validation parameters. Tokens are issued by the
// external auth system; this service only verifies them.
type AuthConfig struct {
	JWTSecret string
}

// AlertingConfig holds the wait-time thresholds and timer cadences.
// Convention: WarningTimeMinutes <= CriticalTimeMinutes <=
// FullScreenAlertMinutes. The ordering is a configuration contract and is not
// re-validated at scan time.
type AlertingConfig struct {
	WarningTimeMinutes     int
	CriticalTimeMinutes    int
	FullScreenAlertMinutes int
	ScanIntervalSeconds    int
	DisplayRefreshSeconds  int
}

// SoundConfig holds audio notification parameters.
type SoundConfig struct {
	NotificationSound string
	SoundVolume       float64
	Dir               string
	PlayerCommand     string
	PreloadOnStart    bool
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	soundVolume := getEnvAsFloat("SOUND_VOLUME", 0.5)
	if soundVolume < 0 || soundVolume > 1 {
		return nil, fmt.Errorf("SOUND_VOLUME must be between 0 and 1, got %v", soundVolume)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "queue-monitor"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:          getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:      os.Getenv("REDIS_PASSWORD"),
			DB:            redisDB,
			TicketChannel: getEnv("REDIS_TICKET_CHANNEL", "tickets"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("AUTH_JWT_SECRET", "dev-secret"),
		},
		Alerting: AlertingConfig{
			WarningTimeMinutes:     getEnvAsInt("WARNING_TIME_MINUTES", 10),
			CriticalTimeMinutes:    getEnvAsInt("CRITICAL_TIME_MINUTES", 20),
			FullScreenAlertMinutes: getEnvAsInt("FULL_SCREEN_ALERT_MINUTES", 30),
			ScanIntervalSeconds:    getEnvAsInt("ALERT_SCAN_INTERVAL_SECONDS", 15),
			DisplayRefreshSeconds:  getEnvAsInt("DISPLAY_REFRESH_SECONDS", 1),
		},
		Sound: SoundConfig{
			NotificationSound: getEnv("NOTIFICATION_SOUND", "notificacao"),
			SoundVolume:       soundVolume,
			Dir:               getEnv("SOUND_DIR", "sounds"),
			PlayerCommand:     getEnv("SOUND_PLAYER_CMD", "mpg123"),
			PreloadOnStart:    getEnvAsBool("SOUND_PRELOAD_ON_START", true),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// ScanInterval returns the escalation scan cadence.
func (a AlertingConfig) ScanInterval() time.Duration {
	if a.ScanIntervalSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(a.ScanIntervalSeconds) * time.Second
}

// DisplayRefresh returns the elapsed-time re-render cadence.
func (a AlertingConfig) DisplayRefresh() time.Duration {
	if a.DisplayRefreshSeconds <= 0 {
		return time.Second
	}
	return time.Duration(a.DisplayRefreshSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
