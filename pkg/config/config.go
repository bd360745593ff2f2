package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
	Reminder ReminderConfig
	Meeting  MeetingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration for the sweep lease
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// SMTPConfig holds delivery-gateway configuration
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	Timeout     time.Duration
}

// ReminderConfig holds reminder-sweep configuration
type ReminderConfig struct {
	// LeadWindow is the interval before a meeting's start during which a
	// reminder is eligible to be sent
	LeadWindow time.Duration
	// DispatchDelay is the fixed pause between the two per-meeting delivery
	// attempts, to respect the gateway's outbound rate limits
	DispatchDelay time.Duration
	// WorkerCount bounds concurrent per-meeting processing within one sweep
	WorkerCount int
	// SweepSecret gates the externally-triggered sweep endpoint
	SweepSecret string
	// LeaseTTL bounds the Redis lease held for the duration of one sweep
	LeaseTTL time.Duration
}

// MeetingConfig holds meeting-link configuration
type MeetingConfig struct {
	// LinkBaseURL is the prefix for generated meeting links
	LinkBaseURL string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "meeting_service"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		SMTP: SMTPConfig{
			Host:        getEnv("SMTP_HOST", ""),
			Port:        getEnvAsInt("SMTP_PORT", 587),
			Username:    getEnv("SMTP_USERNAME", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
			FromAddress: getEnv("SMTP_FROM_ADDRESS", "no-reply@skillsync.dev"),
			FromName:    getEnv("SMTP_FROM_NAME", "SkillSync Meetings"),
			Timeout:     getEnvAsDuration("SMTP_TIMEOUT", "30s"),
		},
		Reminder: ReminderConfig{
			LeadWindow:    getEnvAsDuration("REMINDER_LEAD_WINDOW", "10m"),
			DispatchDelay: getEnvAsDuration("REMINDER_DISPATCH_DELAY", "100ms"),
			WorkerCount:   getEnvAsInt("REMINDER_WORKER_COUNT", 4),
			SweepSecret:   getEnv("SWEEP_SECRET", ""),
			LeaseTTL:      getEnvAsDuration("SWEEP_LEASE_TTL", "2m"),
		},
		Meeting: MeetingConfig{
			LinkBaseURL: getEnv("MEETING_LINK_BASE_URL", "https://meet.skillsync.dev/m"),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration. Missing delivery-gateway
// credentials or the sweep secret are fatal at startup, not per request.
func (c *Config) Validate() error {
	if c.SMTP.Host == "" {
		return fmt.Errorf("SMTP_HOST is required")
	}
	if c.SMTP.Username == "" {
		return fmt.Errorf("SMTP_USERNAME is required")
	}
	if c.SMTP.Password == "" {
		return fmt.Errorf("SMTP_PASSWORD is required")
	}
	if c.Reminder.SweepSecret == "" {
		return fmt.Errorf("SWEEP_SECRET is required")
	}
	if c.Reminder.LeadWindow <= 0 {
		return fmt.Errorf("REMINDER_LEAD_WINDOW must be positive")
	}
	if c.Reminder.WorkerCount < 1 {
		return fmt.Errorf("REMINDER_WORKER_COUNT must be at least 1")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
