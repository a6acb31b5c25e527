package main

import (
	"fmt"
	"os"

	"panelserver/internal/config"
	"panelserver/internal/domain/wizard"
)

func main() {
	fmt.Println("=== Проверка конфигурации ===")
	fmt.Println("")

	// Загружаем конфигурацию
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("❌ Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Конфигурация успешно загружена")
	fmt.Println("")

	fmt.Println("Основные настройки:")
	fmt.Printf("  Порт: %s\n", cfg.Port)
	fmt.Printf("  Статика: %s\n", cfg.StaticDir)
	fmt.Printf("  Журнал: %s\n", cfg.JournalDatabasePath)
	fmt.Printf("  Уровень логирования: %s\n", cfg.LogLevel)
	fmt.Println("")

	// Выводим настройки connection pooling
	fmt.Println("Connection Pooling:")
	fmt.Printf("  Max Open Connections: %d\n", cfg.MaxOpenConns)
	fmt.Printf("  Max Idle Connections: %d\n", cfg.MaxIdleConns)
	fmt.Printf("  Connection Max Lifetime: %v\n", cfg.ConnMaxLifetime)
	fmt.Println("")

	fmt.Println("Backend:")
	fmt.Printf("  URL: %s\n", cfg.Backend.BaseURL)
	if cfg.Backend.Timeout > 0 {
		fmt.Printf("  Timeout: %v\n", cfg.Backend.Timeout)
	} else {
		fmt.Printf("  Timeout: [без ограничения]\n")
	}
	fmt.Printf("  Rate Limit: %.1f req/s (burst %d)\n", cfg.Backend.RateLimit, cfg.Backend.Burst)
	fmt.Printf("  Circuit Breaker: %d ошибок, пауза %v\n", cfg.Backend.BreakerFailures, cfg.Backend.BreakerTimeout)
	fmt.Println("")

	fmt.Println("Сессии:")
	fmt.Printf("  Cookie: %s\n", cfg.Session.CookieName)
	fmt.Printf("  TTL: %v\n", cfg.Session.TTL)
	fmt.Printf("  Max Entries: %d\n", cfg.Session.MaxEntries)
	fmt.Printf("  Confirmation TTL: %v\n", cfg.Session.ConfirmTTL)
	fmt.Println("")

	fmt.Println("Интерфейс:")
	fmt.Printf("  Max Upload Size: %d\n", cfg.UI.MaxUploadSize)
	fmt.Printf("  Page Size: %d\n", cfg.UI.PageSize)
	fmt.Printf("  Alert Duration: %v\n", cfg.UI.AlertDuration)
	fmt.Printf("  Search Debounce: %v\n", cfg.UI.SearchDebounce)
	fmt.Printf("  Support Email: %s\n", cfg.UI.SupportEmail)
	fmt.Println("")

	// Каталог генерируемых документов встроен в бинарник
	catalog, err := wizard.LoadDocumentCatalog()
	if err != nil {
		fmt.Printf("❌ Ошибка загрузки каталога документов: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Каталог документов:")
	for _, dt := range catalog.All() {
		fmt.Printf("  %s %s (%s, %s)\n", dt.Icon, dt.Title, dt.Key, dt.Format)
	}
	fmt.Println("")

	// Проверяем валидацию
	if err := cfg.Validate(); err != nil {
		fmt.Printf("⚠️  Предупреждения валидации: %v\n", err)
		fmt.Println("")
	} else {
		fmt.Println("✅ Валидация пройдена успешно")
		fmt.Println("")
	}

	fmt.Println("=== Проверка завершена ===")
}
