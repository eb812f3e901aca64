package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hadirly/attendance-backend-go/internal/domain/attendance"
	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Auth       AuthConfig
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
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds the check-in policy knobs. Window boundaries are
// time-of-day strings in "HH:MM" form, both inclusive.
type AttendanceConfig struct {
	WindowStart            string
	WindowEnd              string
	DefaultRadiusMeters    int
	MissingHomeMarksAbsent bool
	AdminCanResolve        bool
}

// AuthConfig holds account recovery configuration
type AuthConfig struct {
	PasswordResetTTL time.Duration
}

func Load() (*Config, error) {
	// Missing .env is fine in deployments that inject real env vars.
	_ = godotenv.Load()

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
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance policy configuration
	defaultRadius, err := strconv.Atoi(getEnv("DEFAULT_RADIUS_METERS", "50"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_RADIUS_METERS: %w", err)
	}

	missingHomeMarksAbsent, err := strconv.ParseBool(getEnv("MISSING_HOME_MARKS_ABSENT", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid MISSING_HOME_MARKS_ABSENT: %w", err)
	}

	adminCanResolve, err := strconv.ParseBool(getEnv("ADMIN_CAN_RESOLVE_REQUESTS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_CAN_RESOLVE_REQUESTS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		WindowStart:            getEnv("CHECK_IN_WINDOW_START", "08:00"),
		WindowEnd:              getEnv("CHECK_IN_WINDOW_END", "09:30"),
		DefaultRadiusMeters:    defaultRadius,
		MissingHomeMarksAbsent: missingHomeMarksAbsent,
		AdminCanResolve:        adminCanResolve,
	}

	resetTTL, err := time.ParseDuration(getEnv("PASSWORD_RESET_TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid PASSWORD_RESET_TOKEN_TTL: %w", err)
	}

	config.Auth = AuthConfig{
		PasswordResetTTL: resetTTL,
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
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.DefaultRadiusMeters <= 0 {
		return fmt.Errorf("DEFAULT_RADIUS_METERS must be positive")
	}
	if _, err := attendance.ParseClockTime(c.Attendance.WindowStart); err != nil {
		return fmt.Errorf("invalid CHECK_IN_WINDOW_START: %w", err)
	}
	if _, err := attendance.ParseClockTime(c.Attendance.WindowEnd); err != nil {
		return fmt.Errorf("invalid CHECK_IN_WINDOW_END: %w", err)
	}
	return nil
}

// AttendancePolicy builds the policy struct handed to the attendance service.
func (c *Config) AttendancePolicy() (attendance.Policy, error) {
	start, err := attendance.ParseClockTime(c.Attendance.WindowStart)
	if err != nil {
		return attendance.Policy{}, fmt.Errorf("invalid CHECK_IN_WINDOW_START: %w", err)
	}
	end, err := attendance.ParseClockTime(c.Attendance.WindowEnd)
	if err != nil {
		return attendance.Policy{}, fmt.Errorf("invalid CHECK_IN_WINDOW_END: %w", err)
	}

	return attendance.Policy{
		WindowStart:            start,
		WindowEnd:              end,
		DefaultRadiusMeters:    c.Attendance.DefaultRadiusMeters,
		MissingHomeMarksAbsent: c.Attendance.MissingHomeMarksAbsent,
		AdminCanResolve:        c.Attendance.AdminCanResolve,
	}, nil
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
