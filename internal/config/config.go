package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	WlogsAccessToken string
	ServerPort       string
	LogLevel         string
	Region           string

	// Expansion ID overrides; 0 means auto-detect from the APIs.
	RIOExpansionID   int
	WlogsExpansionID int
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		WlogsAccessToken: getEnv("WLOGS_ACCESS_TOKEN", ""),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Region:           getEnv("REGION", "us"),
		RIOExpansionID:   getEnvInt("RIO_EXPANSION_ID", 0),
		WlogsExpansionID: getEnvInt("WLOGS_EXPANSION_ID", 0),
	}

	if cfg.WlogsAccessToken == "" {
		return nil, fmt.Errorf("WLOGS_ACCESS_TOKEN is required")
	}

	logger.Info().
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("region", cfg.Region).
		Int("rio_expansion_id", cfg.RIOExpansionID).
		Int("wlogs_expansion_id", cfg.WlogsExpansionID).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
