package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppEnv    string
	HTTP      HTTP
	Database  Database
	Redis     Redis
	Kafka     Kafka
	RateLimit RateLimit
	CORS      CORS
}

type HTTP struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type Database struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
	MaxRetries int
	RetryDelay time.Duration
}

type Redis struct {
	Addr     string
	CacheTTL time.Duration
}

type Kafka struct {
	Broker       string
	PollInterval time.Duration
}

type RateLimit struct {
	RPS   float64
	Burst int
}

type CORS struct {
	// "*" allows any origin.
	AllowedOrigins []string
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppEnv: getEnvString("APP_ENV", "development"),
		HTTP: HTTP{
			Port:         getEnvString("PORT", "3000"),
			ReadTimeout:  getEnvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: Database{
			Driver:     strings.ToLower(getEnvString("DB_DRIVER", DriverPostgres)),
			Host:       getEnvString("DB_HOST", "localhost"),
			Port:       getEnvString("DB_PORT", "5432"),
			User:       getEnvString("DB_USER", "postgres"),
			Password:   getEnvString("DB_PASSWORD", "postgres"),
			Name:       getEnvString("DB_NAME", "hrms"),
			SSLMode:    getEnvString("DB_SSLMODE", "disable"),
			SQLitePath: getEnvString("SQLITE_PATH", "hrms.db"),
			MaxRetries: getEnvInt("DB_MAX_RETRIES", 5),
			RetryDelay: getEnvDuration("DB_RETRY_DELAY", 5*time.Second),
		},
		Redis: Redis{
			Addr:     getEnvString("REDIS_ADDR", ""),
			CacheTTL: getEnvDuration("CACHE_TTL", time.Minute),
		},
		Kafka: Kafka{
			Broker:       getEnvString("KAFKA_BROKER", ""),
			PollInterval: getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		},
		RateLimit: RateLimit{
			RPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
			Burst: getEnvInt("RATE_LIMIT_BURST", 10),
		},
		CORS: CORS{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
	}
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// OutboxEnabled is true when a broker is configured; writes then queue integration events.
func (c Config) OutboxEnabled() bool {
	return c.Kafka.Broker != ""
}

func getEnvString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}

// getEnvList splits a comma separated value, dropping empty items.
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
