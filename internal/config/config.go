package config

import (
	"os"
	"strconv"
	"time"
)

// Config структура конфигурации приложения
type Config struct {
	Environment string

	Server struct {
		Port int
		Host string
	}
	Database struct {
		Driver     string // postgres | sqlite
		Host       string
		Port       string
		Name       string
		User       string
		Password   string
		SSLMode    string
		SQLitePath string
	}
	GaugeAPI struct {
		BaseURL string
		Timeout int // в секундах
	}
	Validation struct {
		CatalogPath string
		Parallelism int
	}
	Logging struct {
		Level string
	}
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() *Config {
	cfg := &Config{}

	cfg.Environment = getEnv("ENVIRONMENT", "development")

	// Конфигурация сервера
	cfg.Server.Port = getEnvInt("SERVER_PORT", 8080)
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")

	// Конфигурация базы данных
	cfg.Database.Driver = getEnv("DB_DRIVER", "postgres")
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.Name = getEnv("DB_NAME", "edge_gdt")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.SSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.Database.SQLitePath = getEnv("DB_SQLITE_PATH", "edge_gdt.db")

	// Конфигурация API измерительной станции
	cfg.GaugeAPI.BaseURL = getEnv("GAUGE_API_BASE_URL", "") // пусто - стенд не подключен
	cfg.GaugeAPI.Timeout = getEnvInt("GAUGE_API_TIMEOUT_SECONDS", 30)

	// Конфигурация проверки
	cfg.Validation.CatalogPath = getEnv("SPEC_CATALOG_PATH", "")
	cfg.Validation.Parallelism = getEnvInt("VALIDATION_PARALLELISM", 4)

	// Конфигурация логирования
	cfg.Logging.Level = getEnv("LOG_LEVEL", "info")

	return cfg
}

// IsProduction сообщает, запущен ли сервис в production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GaugeTimeout таймаут запросов к измерительной станции
func (c *Config) GaugeTimeout() time.Duration {
	return time.Duration(c.GaugeAPI.Timeout) * time.Second
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает int значение переменной окружения или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
