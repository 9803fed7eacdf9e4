package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Email     EmailConfig     `yaml:"email"`
	Auth      AuthConfig      `yaml:"auth"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// RedisConfig contains session store settings
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// EmailConfig contains SendGrid settings
type EmailConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
	// SiteBaseURL is the public web origin used to build email links.
	SiteBaseURL string `yaml:"site_base_url"`
}

// AuthConfig contains token settings
type AuthConfig struct {
	// ActionTokenSecret signs email-verify and password-reset link tokens.
	ActionTokenSecret string `yaml:"action_token_secret"`
	// SessionTTLHours is how long a login session lives without re-login.
	SessionTTLHours int `yaml:"session_ttl_hours"`
	// ActionTokenTTLMinutes bounds the lifetime of email link tokens.
	ActionTokenTTLMinutes int `yaml:"action_token_ttl_minutes"`
}

// StorageConfig contains image storage settings
type StorageConfig struct {
	UploadDir   string `yaml:"upload_dir"`
	BaseURL     string `yaml:"base_url"`
	MaxFileSize int64  `yaml:"max_file_size_mb"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	CompleteElapsedBookings string `yaml:"complete_elapsed_bookings"`
	SendPickupReminders     string `yaml:"send_pickup_reminders"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Redis
	if val := os.Getenv("REDIS_ADDRESS"); val != "" {
		c.Redis.Address = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		c.Redis.Password = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.APIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.FromEmail = val
	}
	if val := os.Getenv("SITE_BASE_URL"); val != "" {
		c.Email.SiteBaseURL = val
	}

	// Auth
	if val := os.Getenv("ACTION_TOKEN_SECRET"); val != "" {
		c.Auth.ActionTokenSecret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Storage
	if val := os.Getenv("UPLOAD_DIR"); val != "" {
		c.Storage.UploadDir = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Redis.Address == "" {
		return fmt.Errorf("redis address is required")
	}

	if c.Auth.ActionTokenSecret == "" {
		return fmt.Errorf("action token secret is required")
	}
	if len(c.Auth.ActionTokenSecret) < 32 {
		return fmt.Errorf("action token secret must be at least 32 characters")
	}
	if c.Auth.SessionTTLHours == 0 {
		c.Auth.SessionTTLHours = 24 * 14
	}
	if c.Auth.ActionTokenTTLMinutes == 0 {
		c.Auth.ActionTokenTTLMinutes = 60
	}

	if c.Storage.UploadDir == "" {
		return fmt.Errorf("upload directory is required")
	}
	if c.Storage.MaxFileSize == 0 {
		c.Storage.MaxFileSize = 10
	}

	// Scheduler defaults
	if c.Scheduler.CompleteElapsedBookings == "" {
		c.Scheduler.CompleteElapsedBookings = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.SendPickupReminders == "" {
		c.Scheduler.SendPickupReminders = "0 0 8 * * *" // 8 AM UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
