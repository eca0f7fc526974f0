package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr        string
	GinMode           string
	DBDriver          string
	DBDSN             string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	SeedData          bool
	RedisHost         string
	RedisPort         string
	SessionSecret     string
	CORSOrigins       []string
	AdminID           string
	AdminName         string
	DefaultAssigneeID string
	DragTTL           time.Duration
	LogLevel          string
	LogFile           string
	OpenAIAPIKey      string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerAddr:        getEnv("SERVER_ADDR", ":8080"),
		GinMode:           getEnv("GIN_MODE", "debug"),
		DBDriver:          getEnv("DB_DRIVER", "sqlite"),
		DBDSN:             getEnv("DB_DSN", ""),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", ""),
		DBUser:            getEnv("DB_USER", "procms"),
		DBPassword:        getEnv("DB_PASSWORD", "procms"),
		DBName:            getEnv("DB_NAME", "procms"),
		SeedData:          getEnvBool("SEED_DATA", true),
		RedisHost:         getEnv("REDIS_HOST", ""),
		RedisPort:         getEnv("REDIS_PORT", "6379"),
		SessionSecret:     getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "*")),
		AdminID:           getEnv("ADMIN_ID", "admin"),
		AdminName:         getEnv("ADMIN_NAME", "Administrator"),
		DefaultAssigneeID: getEnv("DEFAULT_ASSIGNEE_ID", ""),
		DragTTL:           getEnvDuration("DRAG_TTL", 2*time.Minute),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFile:           getEnv("LOG_FILE", ""),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return defaultValue
	}
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
