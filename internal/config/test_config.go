package config

import "time"

// LoadTestConfig returns a configuration for tests: no rate limiting, no
// Redis and local storage.
func LoadTestConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "localhost",
			Port:           8081,
			PublicURL:      "http://localhost:8081",
			RequestTimeout: 5 * time.Second,
			BodyLimit:      "10M",
		},
		Database: DatabaseConfig{
			Driver: "postgres",
			Host:   "localhost",
			Port:   5432,
			Name:   "gestao_template_test",
			User:   "test_user",
		},
		JWT: JWTConfig{
			Secret:     "test-secret",
			TTL:        time.Hour,
			RefreshTTL: 24 * time.Hour,
		},
		Storage: StorageConfig{
			Provider: "local",
			BasePath: "storage",
		},
		Weather: WeatherConfig{
			APIKey:   "test-key",
			Timeout:  2 * time.Second,
			CacheTTL: time.Minute,
		},
		Tasks: TasksConfig{
			Concurrency: 1,
			SweepCron:   "0 3 * * *",
			SweepGrace:  time.Hour,
		},
		LogLevel: "error",
	}
}
