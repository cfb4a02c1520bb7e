package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config структура конфигурации приложения
type Config struct {
	Server struct {
		Port        int
		Host        string
		Environment string
	}
	Database struct {
		Host     string
		Port     string
		Name     string
		User     string
		Password string
		SSLMode  string
	}
	FaceMeshAPI struct {
		BaseURL string
		Timeout int // в секундах
	}
	Auth struct {
		SecretKey       string
		TokenTTLMinutes int
	}
	Tracking struct {
		EARThreshold            float64
		ConsecFrames            int
		GazeHorizontalThreshold float64
		GazeVerticalThreshold   float64
	}
	Logging struct {
		Level string
	}
}

// DSN строка подключения к PostgreSQL
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User,
		c.Database.Password, c.Database.Name, c.Database.SSLMode,
	)
}

// DSNForLog безопасный вывод DSN без пароля для логирования
func (c *Config) DSNForLog() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=*** dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User,
		c.Database.Name, c.Database.SSLMode,
	)
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() *Config {
	// Загружаем .env файл, если он есть; иначе используем переменные системы
	_ = godotenv.Load()

	cfg := &Config{}

	// Конфигурация сервера
	cfg.Server.Port = getEnvInt("SERVER_PORT", 8080)
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.Server.Environment = getEnv("ENVIRONMENT", "development")

	// Конфигурация базы данных
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.Name = getEnv("DB_NAME", "netracare")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres123")
	cfg.Database.SSLMode = getEnv("DB_SSL_MODE", "disable")

	// Конфигурация Python face mesh сервиса
	cfg.FaceMeshAPI.BaseURL = getEnv("FACEMESH_API_BASE_URL", "http://localhost:8000")
	cfg.FaceMeshAPI.Timeout = getEnvInt("FACEMESH_API_TIMEOUT_SECONDS", 30)

	// Конфигурация аутентификации
	cfg.Auth.SecretKey = getEnv("JWT_SECRET_KEY", "dev-secret-change-me")
	cfg.Auth.TokenTTLMinutes = getEnvInt("JWT_EXP_MINUTES", 60)

	// Параметры конвейера трекинга
	cfg.Tracking.EARThreshold = getEnvFloat("TRACKING_EAR_THRESHOLD", 0.21)
	cfg.Tracking.ConsecFrames = getEnvInt("TRACKING_CONSEC_FRAMES", 2)
	cfg.Tracking.GazeHorizontalThreshold = getEnvFloat("TRACKING_GAZE_HORIZONTAL_THRESHOLD", 5)
	cfg.Tracking.GazeVerticalThreshold = getEnvFloat("TRACKING_GAZE_VERTICAL_THRESHOLD", 3)

	// Конфигурация логирования
	cfg.Logging.Level = getEnv("LOG_LEVEL", "info")

	return cfg
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

// getEnvFloat получает float значение переменной окружения или возвращает значение по умолчанию
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
