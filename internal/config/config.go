package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	SMTP     SMTPConfig
	Cache    CacheConfig
	Features FeatureFlags
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	HubLogFilePath     string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	DefaultLocale      string
	ViewFlushCron      string
}

func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type DatabaseConfig struct {
	Connection string
	Verbose    bool
}

type AuthConfig struct {
	JwtSecret string
}

type SMTPConfig struct {
	Host           string
	Port           int
	Email          string
	Password       string
	SenderName     string
	ModeratorEmail string
}

// Enabled reports whether outgoing mail is configured.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.ModeratorEmail != ""
}

type CacheConfig struct {
	LocalDraftTTL time.Duration
	GalleryTTL    time.Duration
}

// FeatureFlags gate the surfaces that need the hosted store.
type FeatureFlags struct {
	Publishing bool
	Gallery    bool
	Moderation bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	dsn := getEnv("DB_CONNECTION_STRING", "")
	hosted := strings.TrimSpace(dsn) != ""

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			HubLogFilePath:     getEnv("HUB_LOG_FILE_PATH", "logs/notifications.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			DefaultLocale:      getEnv("DEFAULT_LOCALE", "en"),
			ViewFlushCron:      getEnv("VIEW_FLUSH_CRON", "@every 1m"),
		},
		Database: DatabaseConfig{
			Connection: dsn,
			Verbose:    getEnvAsBool("DB_VERBOSE", false),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		SMTP: SMTPConfig{
			Host:           getEnv("SMTP_HOST", ""),
			Port:           getEnvAsInt("SMTP_PORT", 587),
			Email:          getEnv("SMTP_EMAIL", ""),
			Password:       getEnv("SMTP_PASSWORD", ""),
			SenderName:     getEnv("SMTP_SENDER_NAME", "Promptito"),
			ModeratorEmail: getEnv("MODERATOR_EMAIL", ""),
		},
		Cache: CacheConfig{
			LocalDraftTTL: time.Duration(getEnvAsInt("LOCAL_DRAFT_TTL_MINUTES", 7*24*60)) * time.Minute,
			GalleryTTL:    time.Duration(getEnvAsInt("GALLERY_CACHE_TTL_SECONDS", 30)) * time.Second,
		},
		Features: FeatureFlags{
			Publishing: hosted,
			Gallery:    hosted,
			Moderation: hosted,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
