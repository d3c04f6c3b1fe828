package config

import (
	"log"
	"os"
)

// Config is read once at startup and never mutated afterwards.
type Config struct {
	AppPort string

	PexelsAPIKey string

	RedditClientID     string
	RedditClientSecret string
	RedditUserAgent    string
}

func Load() *Config {
	cfg := &Config{
		AppPort:            getEnv("APP_PORT", "9000"),
		PexelsAPIKey:       getEnv("PEXELS_API_KEY", ""),
		RedditClientID:     getEnv("REDDIT_CLIENT_ID", ""),
		RedditClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
		RedditUserAgent:    getEnv("REDDIT_USER_AGENT", "scripts-bot"),
	}

	log.Printf("config loaded: port=%s pexels=%t reddit=%t",
		cfg.AppPort,
		cfg.PexelsAPIKey != "",
		cfg.RedditClientID != "" && cfg.RedditClientSecret != "")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
