package config

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultQlooBaseURL = "https://hackathon.api.qloo.com"
	defaultGeminiModel = "gemini-2.5-flash"
)

type Config struct {
	QlooAPIToken string
	QlooBaseURL  string
	GeminiAPIKey string
	GeminiModel  string
	HTTPPort     string
	LogLevel     string
}

// Load reads configuration from the environment, after loading a .env file if
// one exists. Both upstream API keys are required; the process must not start
// without them.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := Config{
		QlooAPIToken: getEnv("QLOO_API_TOKEN", ""),
		QlooBaseURL:  getEnv("QLOO_API_URL", defaultQlooBaseURL),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", defaultGeminiModel),
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	if cfg.QlooAPIToken == "" {
		return Config{}, errors.New("QLOO_API_TOKEN environment variable is required")
	}
	if cfg.GeminiAPIKey == "" {
		return Config{}, errors.New("GEMINI_API_KEY environment variable is required")
	}

	return cfg, nil
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
