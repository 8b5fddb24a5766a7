package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port          string
	DatabaseURL   string
	SessionSecret string
	LogLevel      string
	GinMode       string
	CORSOrigins   []string

	LeaderboardWindowHours int
	LeaderboardLimit       int
}

// Load reads the environment, falling back to local development defaults.
func Load() *Config {
	return &Config{
		Port:                   getEnv("PORT", "8080"),
		DatabaseURL:            getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=karmafeed port=5432 sslmode=disable"),
		SessionSecret:          getEnv("SESSION_SECRET", "secret_key_change_me"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		GinMode:                getEnv("GIN_MODE", "release"),
		CORSOrigins:            splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		LeaderboardWindowHours: getEnvInt("LEADERBOARD_WINDOW_HOURS", 24),
		LeaderboardLimit:       getEnvInt("LEADERBOARD_LIMIT", 5),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
