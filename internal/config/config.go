package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Weather  WeatherConfig
	Tasks    TasksConfig
	Admin    AdminConfig
	LogLevel string
}

type ServerConfig struct {
	Host           string
	Port           int
	PublicURL      string
	RequestTimeout time.Duration
	// RateLimit is requests per second per client IP; 0 disables the limiter.
	RateLimit float64
	BodyLimit string
}

type DatabaseConfig struct {
	Driver   string // postgres or mysql
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	LogSQL   bool
}

type JWTConfig struct {
	Secret     string
	TTL        time.Duration
	RefreshTTL time.Duration
}

type StorageConfig struct {
	Provider string // local or s3
	BasePath string
	S3       S3Config
}

type S3Config struct {
	BucketName string `env:"S3_BUCKET_NAME" required:"true"`
	Endpoint   string `env:"S3_ENDPOINT"`
	Region     string `env:"S3_REGION" required:"true"`
	AccessKey  string `env:"S3_ACCESS_KEY" required:"true"`
	SecretKey  string `env:"S3_SECRET_KEY" required:"true"`
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	Username string
	DB       int
}

type WeatherConfig struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	CacheTTL  time.Duration
	RateLimit int
	RateEvery time.Duration
}

type TasksConfig struct {
	Concurrency int
	SweepCron   string
	SweepGrace  time.Duration
}

type AdminConfig struct {
	Enabled  bool
	Username string
	Password string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "localhost"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			PublicURL:      strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:8080"), "/"),
			RequestTimeout: getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 30*time.Second),
			RateLimit:      getEnvAsFloat("SERVER_RATE_LIMIT", 20),
			BodyLimit:      getEnv("SERVER_BODY_LIMIT", "10M"),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "gestao_template"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			LogSQL:   getEnvAsBool("DB_LOG_SQL", false),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", ""),
			TTL:        getEnvAsDuration("JWT_TTL", 24*time.Hour),
			RefreshTTL: getEnvAsDuration("JWT_REFRESH_TTL", 7*24*time.Hour),
		},
		Storage: StorageConfig{
			Provider: getEnv("STORAGE_PROVIDER", "local"),
			BasePath: getEnv("STORAGE_BASE_PATH", "./storage"),
			S3: S3Config{
				BucketName: getEnv("S3_BUCKET_NAME", ""),
				Endpoint:   getEnv("S3_ENDPOINT", ""),
				Region:     getEnv("S3_REGION", ""),
				AccessKey:  getEnv("S3_ACCESS_KEY", ""),
				SecretKey:  getEnv("S3_SECRET_KEY", ""),
			},
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
			Addr:     fmt.Sprintf("%s:%d", getEnv("REDIS_HOST", "localhost"), getEnvAsInt("REDIS_PORT", 6379)),
			Password: getEnv("REDIS_PASSWORD", ""),
			Username: getEnv("REDIS_USERNAME", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Weather: WeatherConfig{
			APIKey:    getEnv("WEATHER_API_KEY", ""),
			BaseURL:   getEnv("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5/weather"),
			Timeout:   getEnvAsDuration("WEATHER_TIMEOUT", 10*time.Second),
			CacheTTL:  getEnvAsDuration("WEATHER_CACHE_TTL", 10*time.Minute),
			RateLimit: getEnvAsInt("WEATHER_RATE_LIMIT", 60),
			RateEvery: getEnvAsDuration("WEATHER_RATE_WINDOW", time.Minute),
		},
		Tasks: TasksConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 5),
			SweepCron:   getEnv("STORAGE_SWEEP_CRON", "0 3 * * *"),
			SweepGrace:  getEnvAsDuration("STORAGE_SWEEP_GRACE", time.Hour),
		},
		Admin: AdminConfig{
			Enabled:  getEnvAsBool("ADMIN_PANEL_ENABLED", false),
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Storage.Provider {
	case "local", "s3", "r2":
	default:
		return fmt.Errorf("unsupported STORAGE_PROVIDER %q", c.Storage.Provider)
	}
	if c.Admin.Enabled && (c.Admin.Username == "" || c.Admin.Password == "") {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD are required when ADMIN_PANEL_ENABLED is set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// Save writes the configuration as JSON, with secrets redacted.
func (c *Config) Save(path string) error {
	redacted := *c
	redacted.JWT.Secret = "***"
	redacted.Database.Password = "***"
	redacted.Storage.S3.SecretKey = "***"
	redacted.Redis.Password = "***"
	redacted.Weather.APIKey = "***"
	redacted.Admin.Password = "***"
	data, err := json.MarshalIndent(redacted, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
