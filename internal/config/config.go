package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var AppEnv Config

type Config struct {
	Port              string
	MongoURI          string
	DBName            string
	JWTSecret         string
	AccessTokenTTL    time.Duration
	RequireAdminToken bool
	RequestTimeout    time.Duration
	MaxUploadBytes    int64
	CORSOrigins       []string
	LogLevel          string
	LogPretty         bool
}

// Load reads an optional .env file and fills AppEnv from the environment.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg(".env not loaded")
	}
	AppEnv = FromEnv()
}

func FromEnv() Config {
	return Config{
		Port:              getEnvOrDefault("PORT", "4000"),
		MongoURI:          getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		DBName:            getEnvOrDefault("DB_NAME", "Gmail_DB"),
		JWTSecret:         getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL:    getDurationEnv("ACCESS_TOKEN_TTL", 60, time.Minute),
		RequireAdminToken: getBoolEnv("REQUIRE_ADMIN_TOKEN", false),
		RequestTimeout:    getDurationEnv("REQUEST_TIMEOUT", 5, time.Second),
		MaxUploadBytes:    getInt64Env("MAX_UPLOAD_BYTES", 5<<20),
		CORSOrigins:       getListEnv("CORS_ORIGINS", []string{"*"}),
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
		LogPretty:         getBoolEnv("LOG_PRETTY", false),
	}
}

func (c Config) Validate() error {
	if c.MongoURI == "" {
		return errors.New("MONGO_URI is required")
	}
	if c.RequireAdminToken && c.JWTSecret == "" {
		return errors.New("REQUIRE_ADMIN_TOKEN needs JWT_SECRET")
	}
	return nil
}

// TokensEnabled reports whether login responses carry a signed access token.
func (c Config) TokensEnabled() bool {
	return c.JWTSecret != ""
}
