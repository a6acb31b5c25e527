package server

import (
	"log/slog"
	"os"
	"strings"
)

var (
	// Logger глобальный структурированный логгер
	Logger *slog.Logger = slog.Default()
)

// ParseLevel уровень логирования из конфигурации; неизвестное значение дает INFO
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitLogger создает JSON логгер и делает его логгером по умолчанию
func InitLogger(level string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(level),
		AddSource: true, // Добавляем информацию об источнике (файл, строка)
	}

	Logger = slog.New(slog.NewJSONHandler(os.Stdout, opts))
	slog.SetDefault(Logger)
	return Logger
}
