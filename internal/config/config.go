package config

import (
	"os"
	"strings"
)

type Config struct {
	Port           string
	Environment    string // ENV: production, development, etc.
	StoreDriver    string // STORE_DRIVER: sqlite, postgres, mongo, file
	SQLitePath     string
	PostgresURI    string
	MongoURI       string
	RedisURI       string
	JSONStorePath  string
	FrontendURL    string
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}

	return &Config{
		Port:           getEnv("PORT", "3000"),
		Environment:    env,
		StoreDriver:    strings.ToLower(strings.TrimSpace(getEnv("STORE_DRIVER", "sqlite"))),
		SQLitePath:     getEnv("SQLITE_PATH", "journal.db"),
		PostgresURI:    getEnv("POSTGRES_URI", "postgres://localhost:5432/journal?sslmode=disable"),
		MongoURI:       getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/journal")),
		RedisURI:       getEnv("REDIS_URI", "redis://localhost:6379/0"),
		JSONStorePath:  getEnv("JSON_STORE_PATH", "journal.json"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins: allowedOrigins,
	}
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
