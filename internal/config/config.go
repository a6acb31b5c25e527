package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config конфигурация сервера
type Config struct {
	// Сервер
	Port      string `json:"port"`
	StaticDir string `json:"static_dir"`

	// Журнал (активность, проекты, индекс шаблонов)
	JournalDatabasePath string `json:"journal_database_path"`

	// Connection pooling
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`

	// Логирование
	LogLevel string `json:"log_level"`

	// Внешний backend Panel Entreprises
	Backend *BackendConfig `json:"backend"`

	// Сессии браузера
	Session *SessionConfig `json:"session"`

	// Параметры интерфейса
	UI *UIConfig `json:"ui"`
}

// BackendConfig конфигурация клиента внешнего REST API
type BackendConfig struct {
	BaseURL   string        `json:"base_url"`
	Timeout   time.Duration `json:"timeout"` // 0 = без таймаута
	RateLimit float64       `json:"rate_limit"`
	Burst     int           `json:"burst"`

	// Circuit breaker
	BreakerFailures uint32        `json:"breaker_failures"`
	BreakerTimeout  time.Duration `json:"breaker_timeout"`
}

// SessionConfig конфигурация хранилища сессий
type SessionConfig struct {
	CookieName string        `json:"cookie_name"`
	TTL        time.Duration `json:"ttl"`
	MaxEntries int           `json:"max_entries"`
	ConfirmTTL time.Duration `json:"confirm_ttl"`
}

// UIConfig параметры, передаваемые в шаблоны страниц
type UIConfig struct {
	MaxUploadSize  int64         `json:"max_upload_size"`
	PageSize       int           `json:"page_size"`
	AlertDuration  time.Duration `json:"alert_duration"`
	SearchDebounce time.Duration `json:"search_debounce"`
	SupportEmail   string        `json:"support_email"`
}

// LoadConfig загружает конфигурацию из .env (если есть) и переменных окружения
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Не удалось прочитать .env: %v", err)
	}

	config := &Config{
		// Сервер
		Port:      getEnv("SERVER_PORT", "8080"),
		StaticDir: getEnv("STATIC_DIR", "./static"),

		// Журнал
		JournalDatabasePath: getEnv("JOURNAL_DATABASE_PATH", "panel.db"),

		// Connection pooling
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),

		// Логирование
		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		Backend: LoadBackendConfig(),
		Session: LoadSessionConfig(),
		UI:      LoadUIConfig(),
	}

	// Валидация
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// LoadBackendConfig загружает конфигурацию клиента backend
func LoadBackendConfig() *BackendConfig {
	return &BackendConfig{
		BaseURL:         getEnv("BACKEND_URL", "http://localhost:5000"),
		Timeout:         getEnvDuration("BACKEND_TIMEOUT", 0),
		RateLimit:       getEnvFloat("BACKEND_RATE_LIMIT", 20),
		Burst:           getEnvInt("BACKEND_BURST", 10),
		BreakerFailures: uint32(getEnvInt("BACKEND_BREAKER_FAILURES", 5)),
		BreakerTimeout:  getEnvDuration("BACKEND_BREAKER_TIMEOUT", 30*time.Second),
	}
}

// LoadSessionConfig загружает конфигурацию сессий
func LoadSessionConfig() *SessionConfig {
	return &SessionConfig{
		CookieName: getEnv("SESSION_COOKIE", "panel_session"),
		TTL:        getEnvDuration("SESSION_TTL", 2*time.Hour),
		MaxEntries: getEnvInt("SESSION_MAX_ENTRIES", 1000),
		ConfirmTTL: getEnvDuration("CONFIRM_TTL", 15*time.Minute),
	}
}

// LoadUIConfig загружает параметры интерфейса
func LoadUIConfig() *UIConfig {
	return &UIConfig{
		MaxUploadSize:  getEnvInt64("MAX_UPLOAD_SIZE", 10*1024*1024),
		PageSize:       getEnvInt("PAGE_SIZE", 20),
		AlertDuration:  getEnvDuration("ALERT_DURATION", 5*time.Second),
		SearchDebounce: getEnvDuration("SEARCH_DEBOUNCE", 300*time.Millisecond),
		SupportEmail:   getEnv("SUPPORT_EMAIL", "martin.bouvet@edf.fr"),
	}
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvInt64 получает переменную окружения как int64
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat получает переменную окружения как float64
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как Duration или возвращает значение по умолчанию
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
