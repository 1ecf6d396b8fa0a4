package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	RateLimit  RateLimitConfig
	CORS       CORSConfig
	Mail       MailConfig
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
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig describes the office geofence and the calendar used to bucket punches.
type AttendanceConfig struct {
	OfficeLatitude  float64
	OfficeLongitude float64
	RadiusMeters    float64
	Timezone        string

	// DigestInterval controls how often admins are reminded about pending requests.
	DigestInterval time.Duration
}

type RateLimitConfig struct {
	PunchRequests int
	PunchWindow   time.Duration
}

// MailConfig is the SMTP relay used for the pending-review digest. An empty Host disables mail.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded, using process environment", "error", err)
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
		Name:     getEnv("DB_NAME", "workforce_attendance"),
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
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "24h"),
	}

	// Attendance configuration
	officeLat, err := strconv.ParseFloat(getEnv("COMPANY_LOCATION_LATITUDE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid COMPANY_LOCATION_LATITUDE: %w", err)
	}
	officeLon, err := strconv.ParseFloat(getEnv("COMPANY_LOCATION_LONGITUDE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid COMPANY_LOCATION_LONGITUDE: %w", err)
	}
	radius, err := strconv.ParseFloat(getEnv("ATTENDANCE_RADIUS_METERS", "100"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_RADIUS_METERS: %w", err)
	}
	digestInterval, err := time.ParseDuration(getEnv("ATTENDANCE_DIGEST_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_DIGEST_INTERVAL: %w", err)
	}

	config.Attendance = AttendanceConfig{
		OfficeLatitude:  officeLat,
		OfficeLongitude: officeLon,
		RadiusMeters:    radius,
		Timezone:        getEnv("ATTENDANCE_TIMEZONE", "UTC"),
		DigestInterval:  digestInterval,
	}

	// Rate limiting for punch endpoints
	punchRequests, err := strconv.Atoi(getEnv("PUNCH_RATE_LIMIT_REQUESTS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid PUNCH_RATE_LIMIT_REQUESTS: %w", err)
	}
	punchWindow, err := time.ParseDuration(getEnv("PUNCH_RATE_LIMIT_WINDOW", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid PUNCH_RATE_LIMIT_WINDOW: %w", err)
	}

	config.RateLimit = RateLimitConfig{
		PunchRequests: punchRequests,
		PunchWindow:   punchWindow,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CLIENT_URL"),
	}
	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	}

	mailPort, err := strconv.Atoi(getEnv("MAIL_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAIL_PORT: %w", err)
	}
	config.Mail = MailConfig{
		Host:     getEnv("MAIL_HOST", ""),
		Port:     mailPort,
		Username: getEnv("MAIL_USER", ""),
		Password: getEnv("MAIL_PASS", ""),
		From:     getEnv("MAIL_FROM", "no-reply@localhost"),
		FromName: getEnv("MAIL_FROM_NAME", "Attendance"),
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
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.Attendance.OfficeLatitude < -90 || c.Attendance.OfficeLatitude > 90 {
		return fmt.Errorf("COMPANY_LOCATION_LATITUDE must be between -90 and 90")
	}
	if c.Attendance.OfficeLongitude < -180 || c.Attendance.OfficeLongitude > 180 {
		return fmt.Errorf("COMPANY_LOCATION_LONGITUDE must be between -180 and 180")
	}
	if c.Attendance.RadiusMeters <= 0 {
		return fmt.Errorf("ATTENDANCE_RADIUS_METERS must be positive")
	}
	if _, err := time.LoadLocation(c.Attendance.Timezone); err != nil {
		return fmt.Errorf("invalid ATTENDANCE_TIMEZONE: %w", err)
	}
	if c.Attendance.DigestInterval <= 0 {
		return fmt.Errorf("ATTENDANCE_DIGEST_INTERVAL must be positive")
	}
	if c.RateLimit.PunchRequests <= 0 {
		return fmt.Errorf("PUNCH_RATE_LIMIT_REQUESTS must be positive")
	}
	return nil
}

// Location returns the timezone used to derive attendance calendar days.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Attendance.Timezone)
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
	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
