package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseFile      string        // Path to the SQLite database file (default: ./board.db)
	PepperFile        string        // Path to the password-hash pepper file (default: ./pepper)
	SessionSecretFile string        // Path to the session signing key file (default: ./session.key)
	SessionTTL        time.Duration // Login lifetime (default: 168h)

	// RootUsername/RootPassword create the superadmin at startup when both
	// are set. RootUsername is also the pinned superadmin designation:
	// while configured, only this username passes superadmin checks.
	RootUsername string
	RootPassword string

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		DatabaseFile:      getEnvOrDefault("BOARD_DATABASE_FILE", "board.db"),
		PepperFile:        getEnvOrDefault("BOARD_PEPPER_FILE", "pepper"),
		SessionSecretFile: getEnvOrDefault("BOARD_SESSION_SECRET_FILE", "session.key"),
		SessionTTL:        getEnvDurationOrDefault("BOARD_SESSION_TTL", 7*24*time.Hour),

		RootUsername: os.Getenv("BOARD_ROOT_USER"),
		RootPassword: os.Getenv("BOARD_ROOT_PASS"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}
