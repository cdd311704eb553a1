package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	GinMode       string
	AppEnv        string
	LogLevel      string
	DatabaseURL   string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	OpenAIAPIKey  string
	Pusher        PusherConfig
	// RealtimeStream enables the self-hosted websocket stream per board.
	RealtimeStream bool
}

// PusherConfig holds the hosted transport credentials. All four must be set
// for the transport to be used.
type PusherConfig struct {
	AppID   string
	Key     string
	Secret  string
	Cluster string
}

func (p PusherConfig) Complete() bool {
	return p.AppID != "" && p.Key != "" && p.Secret != "" && p.Cluster != ""
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		AppEnv:        getEnv("APP_ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "retro"),
		DBPassword:    getEnv("DB_PASSWORD", "retro"),
		DBName:        getEnv("DB_NAME", "retro"),
		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		Pusher: PusherConfig{
			AppID:   getEnv("PUSHER_APP_ID", ""),
			Key:     getEnv("PUSHER_KEY", ""),
			Secret:  getEnv("PUSHER_SECRET", ""),
			Cluster: getEnv("PUSHER_CLUSTER", ""),
		},
		RealtimeStream: getBool("REALTIME_STREAM", true),
	}
}

// IsProduction reports whether the process runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// DSN returns DATABASE_URL, or a MySQL DSN assembled from the DB_* variables.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// RedisAddr is empty when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}
