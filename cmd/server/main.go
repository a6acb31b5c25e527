// @title Panel Entreprises API
// @version 1.0
// @description Серверный интерфейс Panel Entreprises: страницы, события и загрузки файлов

// @contact.name Support Panel Entreprises

// @license.name Internal Use Only

// @BasePath /api
// @schemes http https

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"panelserver/internal/config"
	"panelserver/internal/container"
	"panelserver/server"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════")
	log.Println("🚀 Запуск Panel Entreprises...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger := server.InitLogger(cfg.LogLevel)

	c, err := container.NewContainer(cfg, logger)
	if err != nil {
		log.Fatalf("✗ КРИТИЧЕСКАЯ ОШИБКА: Не удалось создать контейнер зависимостей: %v", err)
	}

	srv := server.NewServer(c)

	// Запускаем сервер в отдельной горутине
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("✗ КРИТИЧЕСКАЯ ОШИБКА: Ошибка запуска сервера: %v", err)
		}
	}()

	log.Println("═══════════════════════════════════════════════════════")
	log.Printf("✓ Сервер успешно запущен на порту %s", cfg.Port)
	log.Printf("✓ Интерфейс: http://localhost:%s", cfg.Port)
	log.Printf("✓ Backend: %s", cfg.Backend.BaseURL)
	log.Printf("✓ Журнал: %s", cfg.JournalDatabasePath)
	log.Println("  Для остановки нажмите Ctrl+C")
	log.Println("═══════════════════════════════════════════════════════")

	// Обработка сигналов для graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("═══════════════════════════════════════════════════════")
	log.Println("⏹  Получен сигнал завершения, останавливаю сервер...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("✗ Ошибка при остановке сервера: %v", err)
		os.Exit(1)
	}
	log.Println("✓ Сервер успешно остановлен")
}
