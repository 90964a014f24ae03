package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Storage   StorageConfig
	Timesheet TimesheetConfig
	Cron      CronConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	Timezone       string
	AllowedOrigins []string
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

// TimesheetConfig holds the time accounting parameters
type TimesheetConfig struct {
	StandardDayHours float64
	NightStartHour   int
	NightEndHour     int
	RequirePhoto     bool
}

type CronConfig struct {
	ArchiveEnabled  bool
	ArchiveInterval time.Duration
}

func Load() (*Config, error) {
	// A missing .env is fine; the process environment is used instead.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "kintai"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	origins := getEnvSlice("FRONTEND_URL")
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "Asia/Tokyo"),
		AllowedOrigins: origins,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
	}

	// Timesheet configuration
	standardHours, err := strconv.ParseFloat(getEnv("TIMESHEET_STANDARD_DAY_HOURS", "7.5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMESHEET_STANDARD_DAY_HOURS: %w", err)
	}
	nightStart, err := strconv.Atoi(getEnv("TIMESHEET_NIGHT_START_HOUR", "22"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMESHEET_NIGHT_START_HOUR: %w", err)
	}
	nightEnd, err := strconv.Atoi(getEnv("TIMESHEET_NIGHT_END_HOUR", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMESHEET_NIGHT_END_HOUR: %w", err)
	}
	requirePhoto, err := strconv.ParseBool(getEnv("ATTENDANCE_REQUIRE_PHOTO", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_REQUIRE_PHOTO: %w", err)
	}

	config.Timesheet = TimesheetConfig{
		StandardDayHours: standardHours,
		NightStartHour:   nightStart,
		NightEndHour:     nightEnd,
		RequirePhoto:     requirePhoto,
	}

	// Cron configuration
	archiveEnabled, err := strconv.ParseBool(getEnv("REPORT_ARCHIVE_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_ARCHIVE_ENABLED: %w", err)
	}
	archiveInterval, err := time.ParseDuration(getEnv("REPORT_ARCHIVE_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_ARCHIVE_INTERVAL: %w", err)
	}

	config.Cron = CronConfig{
		ArchiveEnabled:  archiveEnabled,
		ArchiveInterval: archiveInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if c.Storage.Type != "local" {
		return fmt.Errorf("unsupported STORAGE_TYPE %q", c.Storage.Type)
	}
	if err := c.Timesheet.Settings().Validate(); err != nil {
		return err
	}
	if c.Cron.ArchiveEnabled && c.Cron.ArchiveInterval <= 0 {
		return fmt.Errorf("REPORT_ARCHIVE_INTERVAL must be positive")
	}
	return nil
}

// ValidateServer checks the settings only the HTTP API needs on top of Validate.
func (c *Config) ValidateServer() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	return nil
}

// Settings returns the engine parameters derived from the environment.
func (t TimesheetConfig) Settings() timesheet.Settings {
	return timesheet.Settings{
		StandardDayHours: t.StandardDayHours,
		NightStartHour:   t.NightStartHour,
		NightEndHour:     t.NightEndHour,
	}
}

// Location returns the configured business timezone.
func (a AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
