package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all service configuration loaded from environment variables.
// It is populated once at startup and treated as immutable afterwards; in
// particular the signing secret is handed to the token service at
// construction rather than read from the environment per request.
type Config struct {
	Port        string `env:"PORT" envDefault:"4000"`
	PostgresDSN string `env:"POSTGRES_DSN,required"`
	MongoURI    string `env:"MONGO_URI,required"`
	MongoDB     string `env:"MONGO_DB" envDefault:"workout_buddy"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"redis:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	MinioEndpoint  string `env:"MINIO_ENDPOINT" envDefault:"minio:9000"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET" envDefault:"workout-exports"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`

	// Secret keys the HMAC signature of session tokens.
	Secret string `env:"SECRET,required,notEmpty"`

	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173,http://localhost:3000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}
