package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost/workouts")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "4000", cfg.Port)
	require.Equal(t, "workout_buddy", cfg.MongoDB)
	require.Equal(t, "workout-exports", cfg.MinioBucket)
	require.False(t, cfg.MinioUseSSL)
	require.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost/workouts")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost/workouts")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("SECRET", "test-secret")
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ORIGINS", "https://workouts.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, []string{"https://workouts.example.com"}, cfg.CORSOrigins)
}
