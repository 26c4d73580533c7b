package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is built once in main and handed to components at construction
// time. Nothing mutates it afterwards.
type Config struct {
	Server     ServerConfig
	Postgres   PostgresConfig
	JWT        JWTConfig
	Pagination PaginationConfig
	Users      UsersConfig
	CORS       CORSConfig
	Logging    LoggingConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type PostgresConfig struct {
	DSN               string
	Host              string
	Port              int
	User              string
	Password          string
	Database          string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
	ConnectTimeout    time.Duration
}

type JWTConfig struct {
	Secret      string
	TTL         time.Duration
	TokenPrefix string
	Subject     string
}

type PaginationConfig struct {
	DefaultLimit int
	MaxLimit     int
}

type UsersConfig struct {
	EmailMaxLength    int
	UsernameMinLength int
	UsernameMaxLength int
	PasswordMinLength int
	PasswordMaxLength int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LoggingConfig struct {
	Level        string
	Encoding     string
	Development  bool
	EnableCaller bool
	ServiceName  string
}

func Load() (*Config, error) {
	pgPort, _ := strconv.Atoi(envOrDefault("POSTGRES_PORT", "5432"))

	jwtSecret := strings.TrimSpace(envOrDefault("JWT_SECRET", ""))
	if jwtSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            envOrDefault("PORT", "8080"),
			ReadTimeout:     parseDuration(envOrDefault("SERVER_READ_TIMEOUT", "15s"), 15*time.Second),
			WriteTimeout:    parseDuration(envOrDefault("SERVER_WRITE_TIMEOUT", "15s"), 15*time.Second),
			IdleTimeout:     parseDuration(envOrDefault("SERVER_IDLE_TIMEOUT", "60s"), 60*time.Second),
			ShutdownTimeout: parseDuration(envOrDefault("SERVER_SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),
		},
		Postgres: PostgresConfig{
			DSN:               os.Getenv("POSTGRES_DSN"),
			Host:              envOrDefault("POSTGRES_HOST", "localhost"),
			Port:              pgPort,
			User:              envOrDefault("POSTGRES_USER", "postgres"),
			Password:          os.Getenv("POSTGRES_PASSWORD"),
			Database:          envOrDefault("POSTGRES_DB", "myfolio"),
			MaxConns:          parseInt32(envOrDefault("POSTGRES_MAX_CONNS", "8"), 8),
			MinConns:          parseInt32(envOrDefault("POSTGRES_MIN_CONNS", "1"), 1),
			MaxConnLifetime:   parseDuration(envOrDefault("POSTGRES_MAX_CONN_LIFETIME", "1h"), time.Hour),
			MaxConnIdleTime:   parseDuration(envOrDefault("POSTGRES_MAX_CONN_IDLE", "30m"), 30*time.Minute),
			HealthCheckPeriod: parseDuration(envOrDefault("POSTGRES_HEALTH_CHECK_PERIOD", "1m"), time.Minute),
			ConnectTimeout:    parseDuration(envOrDefault("POSTGRES_CONNECT_TIMEOUT", "5s"), 5*time.Second),
		},
		JWT: JWTConfig{
			Secret:      jwtSecret,
			TTL:         parseDuration(envOrDefault("JWT_TTL", "30m"), 30*time.Minute),
			TokenPrefix: envOrDefault("JWT_TOKEN_PREFIX", "Token"),
			Subject:     envOrDefault("JWT_SUBJECT", "access"),
		},
		Pagination: PaginationConfig{
			DefaultLimit: parseInt(envOrDefault("PAGINATION_DEFAULT_LIMIT", "10"), 10),
			MaxLimit:     parseInt(envOrDefault("PAGINATION_MAX_LIMIT", "50"), 50),
		},
		Users: UsersConfig{
			EmailMaxLength:    254,
			UsernameMinLength: 2,
			UsernameMaxLength: 16,
			PasswordMinLength: 8,
			PasswordMaxLength: 50,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitAndTrim(envOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		},
		Logging: LoggingConfig{
			Level:        strings.ToLower(envOrDefault("LOG_LEVEL", "info")),
			Encoding:     strings.ToLower(envOrDefault("LOG_ENCODING", "console")),
			Development:  parseBool(envOrDefault("LOG_DEVELOPMENT", "false"), false),
			EnableCaller: parseBool(envOrDefault("LOG_CALLER", "false"), false),
			ServiceName:  envOrDefault("SERVICE_NAME", "myfolio-server"),
		},
	}

	return cfg, nil
}

func (c PostgresConfig) BuildDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s", c.User, c.Password, c.Host, c.Port, c.Database)
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(value string, fallback int) int {
	i, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return i
}

func parseInt32(value string, fallback int32) int32 {
	i, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return int32(i)
}

func parseBool(value string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return v
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
