package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"w3stringsx/internal/lang"
)

type Config struct {
	// EncoderPath locates the external w3strings executable. A bare name
	// is resolved through PATH.
	EncoderPath string
	// DefaultLang is used when no target language can be deduced.
	DefaultLang string
	// WorkerCount bounds concurrent encoder invocations for all-language
	// runs. Each worker operates on its own scratch file.
	WorkerCount int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		EncoderPath: getEnv("W3STRINGS_PATH", "w3strings"),
		DefaultLang: getEnv("W3SX_DEFAULT_LANG", lang.Default),
		WorkerCount: getEnvInt("W3SX_WORKERS", 4),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
