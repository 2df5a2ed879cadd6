package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"phishguard/backend/internal/ai"
)

// ErrMissingAPIKey is returned when GROQ_API_KEY is unset or blank.
var ErrMissingAPIKey = errors.New("GROQ_API_KEY missing: add it to the environment or .env")

// Config is the process-wide configuration, loaded once at startup.
type Config struct {
	Port           string
	StaticDir      string
	AllowedOrigins []string
	LogLevel       logrus.Level
	AI             ai.Config
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding ones already set. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:           getenv("PORT", "8000"),
		StaticDir:      getenv("STATIC_DIR", "static"),
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		LogLevel:       logrus.InfoLevel,
		AI: ai.Config{
			APIKey:  strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
			Model:   getenv("GROQ_MODEL", ai.DefaultModel),
			BaseURL: getenv("GROQ_BASE_URL", ai.DefaultBaseURL),
			Timeout: ai.DefaultTimeout,
		},
	}

	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		if lvl, err := logrus.ParseLevel(v); err == nil {
			cfg.LogLevel = lvl
		} else {
			logrus.WithField("value", v).Warn("ignoring invalid LOG_LEVEL")
		}
	}
	if v := strings.TrimSpace(os.Getenv("GROQ_TEMPERATURE")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.AI.Temperature = &f
		} else {
			logrus.WithField("value", v).Warn("ignoring invalid GROQ_TEMPERATURE")
		}
	}
	if v := strings.TrimSpace(os.Getenv("GROQ_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.AI.Timeout = d
		} else {
			logrus.WithField("value", v).Warn("ignoring invalid GROQ_TIMEOUT")
		}
	}

	if cfg.AI.APIKey == "" {
		return cfg, ErrMissingAPIKey
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
