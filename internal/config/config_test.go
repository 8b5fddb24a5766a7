package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LEADERBOARD_WINDOW_HOURS", "")
	t.Setenv("LEADERBOARD_LIMIT", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 24, cfg.LeaderboardWindowHours)
	require.Equal(t, 5, cfg.LeaderboardLimit)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LEADERBOARD_WINDOW_HOURS", "48")
	t.Setenv("LEADERBOARD_LIMIT", "nope")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()
	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, 48, cfg.LeaderboardWindowHours)
	require.Equal(t, 5, cfg.LeaderboardLimit)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}
