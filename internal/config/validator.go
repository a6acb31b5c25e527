package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	var errors []string

	// Валидация порта
	if c.Port == "" {
		errors = append(errors, "port is required")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid port: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("port must be between 1 and 65535, got %d", port))
		}
	}

	if c.JournalDatabasePath == "" {
		errors = append(errors, "journal database path is required")
	}

	// Валидация connection pooling
	if c.MaxOpenConns < 1 {
		errors = append(errors, "max open connections must be at least 1")
	}
	if c.MaxIdleConns < 1 {
		errors = append(errors, "max idle connections must be at least 1")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		errors = append(errors, "max idle connections cannot be greater than max open connections")
	}
	if c.ConnMaxLifetime < time.Second {
		errors = append(errors, "connection max lifetime must be at least 1 second")
	}

	// Валидация уровня логирования
	validLogLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	if c.LogLevel != "" {
		valid := false
		logLevelUpper := strings.ToUpper(c.LogLevel)
		for _, level := range validLogLevels {
			if logLevelUpper == level {
				valid = true
				break
			}
		}
		if !valid {
			errors = append(errors, fmt.Sprintf("invalid log level: %s (valid: %s)",
				c.LogLevel, strings.Join(validLogLevels, ", ")))
		}
	}

	if c.Backend == nil {
		errors = append(errors, "backend config is required")
	} else if err := c.Backend.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("backend config: %v", err))
	}

	if c.Session == nil {
		errors = append(errors, "session config is required")
	} else if err := c.Session.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("session config: %v", err))
	}

	if c.UI == nil {
		errors = append(errors, "ui config is required")
	} else if err := c.UI.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("ui config: %v", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// Validate проверяет конфигурацию клиента backend
func (bc *BackendConfig) Validate() error {
	var errors []string

	if bc.BaseURL == "" {
		errors = append(errors, "base url is required")
	} else if u, err := url.Parse(bc.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid base url: %s", bc.BaseURL))
	}

	// Таймаут 0 означает ожидание без ограничения
	if bc.Timeout < 0 {
		errors = append(errors, "timeout cannot be negative")
	}
	if bc.RateLimit <= 0 {
		errors = append(errors, "rate limit must be positive")
	}
	if bc.Burst < 1 {
		errors = append(errors, "burst must be at least 1")
	}
	if bc.BreakerFailures < 1 {
		errors = append(errors, "breaker failures must be at least 1")
	}
	if bc.BreakerTimeout < time.Second {
		errors = append(errors, "breaker timeout must be at least 1 second")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}
	return nil
}

// Validate проверяет конфигурацию сессий
func (sc *SessionConfig) Validate() error {
	var errors []string

	if sc.CookieName == "" {
		errors = append(errors, "cookie name is required")
	}
	if sc.TTL < time.Minute {
		errors = append(errors, "session ttl must be at least 1 minute")
	}
	if sc.MaxEntries < 1 {
		errors = append(errors, "max entries must be at least 1")
	}
	if sc.ConfirmTTL < time.Minute {
		errors = append(errors, "confirmation ttl must be at least 1 minute")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}
	return nil
}

// Validate проверяет параметры интерфейса
func (uc *UIConfig) Validate() error {
	var errors []string

	if uc.MaxUploadSize < 1 {
		errors = append(errors, "max upload size must be positive")
	}
	if uc.PageSize < 1 {
		errors = append(errors, "page size must be at least 1")
	}
	if uc.AlertDuration < 0 {
		errors = append(errors, "alert duration cannot be negative")
	}
	if uc.SearchDebounce < 0 {
		errors = append(errors, "search debounce cannot be negative")
	}
	if uc.SupportEmail == "" {
		errors = append(errors, "support email is required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}
	return nil
}

// GetDefaults возвращает конфигурацию со значениями по умолчанию
func GetDefaults() *Config {
	return &Config{
		Port:                "8080",
		StaticDir:           "./static",
		JournalDatabasePath: "panel.db",
		MaxOpenConns:        10,
		MaxIdleConns:        5,
		ConnMaxLifetime:     5 * time.Minute,
		LogLevel:            "INFO",
		Backend: &BackendConfig{
			BaseURL:         "http://localhost:5000",
			RateLimit:       20,
			Burst:           10,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
		Session: &SessionConfig{
			CookieName: "panel_session",
			TTL:        2 * time.Hour,
			MaxEntries: 1000,
			ConfirmTTL: 15 * time.Minute,
		},
		UI: &UIConfig{
			MaxUploadSize:  10 * 1024 * 1024,
			PageSize:       20,
			AlertDuration:  5 * time.Second,
			SearchDebounce: 300 * time.Millisecond,
			SupportEmail:   "martin.bouvet@edf.fr",
		},
	}
}
