// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Host       string `yaml:"host"`
		Port       string `yaml:"port"`
		User       string `yaml:"user"`
		Password   string `yaml:"password"`
		Name       string `yaml:"name"`
		SSLMode    string `yaml:"sslmode"`
		SearchPath string `yaml:"schema"`
	} `yaml:"database"`
	JWT struct {
		Secret       string        `yaml:"secret"`
		ExpiryPeriod time.Duration `yaml:"expiry_period"`
	} `yaml:"jwt"`
	Server struct {
		Port         string        `yaml:"port"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"server"`
	Sendgrid struct {
		APIKey string `yaml:"api_key"`
		From   string `yaml:"from"`
	} `yaml:"sendgrid"`
	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
	} `yaml:"smtp"`
	Invitations struct {
		ExpiryDays        int           `yaml:"expiry_days"`
		ReconcileInterval time.Duration `yaml:"reconcile_interval"`
	} `yaml:"invitations"`
	RateLimit struct {
		Burst     int `yaml:"burst"`
		PerSecond int `yaml:"per_second"`
	} `yaml:"rate_limit"`
	BaseURL string `yaml:"base_url"`
	// DebugErrors attaches store error detail to API error responses.
	// Never enable outside development.
	DebugErrors bool `yaml:"debug_errors"`
}

// Load builds the configuration from, in increasing precedence: defaults,
// an optional YAML file named by BEATBOOK_CONFIG, and environment variables
// (a .env file is honored if present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.Database.Host = "localhost"
	cfg.Database.Port = "5432"
	cfg.Database.User = "postgres"
	cfg.Database.Name = "beatbook"
	cfg.Database.SSLMode = "disable"
	cfg.Database.SearchPath = "public"
	cfg.JWT.Secret = "your-secret-key"
	cfg.JWT.ExpiryPeriod = time.Hour * 24
	cfg.Server.Port = "8080"
	cfg.Server.ReadTimeout = time.Second * 15
	cfg.Server.WriteTimeout = time.Second * 15
	cfg.Invitations.ExpiryDays = 7
	cfg.Invitations.ReconcileInterval = time.Hour
	cfg.RateLimit.Burst = 10
	cfg.RateLimit.PerSecond = 5
	cfg.BaseURL = "http://localhost:8080"

	if path := os.Getenv("BEATBOOK_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", cfg.Database.SSLMode)
	cfg.Database.SearchPath = getEnv("DB_SCHEMA", cfg.Database.SearchPath)

	cfg.JWT.Secret = getEnv("JWT_SECRET", cfg.JWT.Secret)

	cfg.Sendgrid.APIKey = getEnv("SENDGRID_API_KEY", cfg.Sendgrid.APIKey)
	cfg.Sendgrid.From = getEnv("SENDGRID_FROM", cfg.Sendgrid.From)

	cfg.SMTP.Host = getEnv("SMTP_HOST", cfg.SMTP.Host)
	cfg.SMTP.Username = getEnv("SMTP_USERNAME", cfg.SMTP.Username)
	cfg.SMTP.Password = getEnv("SMTP_PASSWORD", cfg.SMTP.Password)
	cfg.SMTP.From = getEnv("SMTP_FROM", cfg.SMTP.From)
	if v, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		cfg.SMTP.Port = v
	}

	cfg.Server.Port = getEnv("SERVER_PORT", cfg.Server.Port)
	cfg.BaseURL = getEnv("BASE_URL", cfg.BaseURL)

	if v, err := strconv.ParseBool(os.Getenv("BEATBOOK_DEBUG_ERRORS")); err == nil {
		cfg.DebugErrors = v
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
