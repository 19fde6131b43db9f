package config

import (
	"errors"
	"os"
	"strings"
)

type Config struct {
	MongoURI       string
	RedisURI       string
	Port           string
	Environment    string   // ENV: production, development, etc.
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL
	GeminiAPIKey   string   // empty = random challenge generation only
	GeminiModel    string
	WeatherAPIKey  string
	WeatherEnabled bool
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		frontend := strings.TrimSpace(getEnv("FRONTEND_URL", "http://localhost:3000"))
		if frontend != "" {
			allowedOrigins = append(allowedOrigins, frontend)
		}
	}

	return &Config{
		MongoURI:       getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/questforge")),
		RedisURI:       getEnv("REDIS_URI", "redis://localhost:6379/0"),
		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		AllowedOrigins: allowedOrigins,
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		WeatherAPIKey:  getEnv("OPEN_WEATHER_MAP_API_KEY", ""),
		WeatherEnabled: strings.EqualFold(getEnv("WEATHER_API_ENABLED", "false"), "true"),
	}
}

// Validate checks cross-field requirements once at boot.
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return errors.New("MONGODB_URI must be set")
	}
	if c.RedisURI == "" {
		return errors.New("REDIS_URI must be set")
	}
	if c.WeatherEnabled && c.WeatherAPIKey == "" {
		return errors.New("WEATHER_API_ENABLED requires OPEN_WEATHER_MAP_API_KEY")
	}
	return nil
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
