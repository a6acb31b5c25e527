package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DBConfig конфигурация подключения к БД
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// JournalDB локальная база панели: журнал действий, проекты и индекс шаблонов
type JournalDB struct {
	conn *sql.DB
	path string
}

// NewJournalDB открывает базу с настройками по умолчанию
func NewJournalDB(dbPath string) (*JournalDB, error) {
	return NewJournalDBWithConfig(dbPath, DBConfig{})
}

// NewJournalDBWithConfig открывает базу, применяет схему и миграции
func NewJournalDBWithConfig(dbPath string, config DBConfig) (*JournalDB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	// База в памяти живет, пока жив единственный коннект
	if isMemoryPath(dbPath) {
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
		conn.SetConnMaxLifetime(0)
	} else {
		if config.MaxOpenConns > 0 {
			conn.SetMaxOpenConns(config.MaxOpenConns)
		} else {
			conn.SetMaxOpenConns(10)
		}

		if config.MaxIdleConns > 0 {
			conn.SetMaxIdleConns(config.MaxIdleConns)
		} else {
			conn.SetMaxIdleConns(5)
		}

		if config.ConnMaxLifetime > 0 {
			conn.SetConnMaxLifetime(config.ConnMaxLifetime)
		} else {
			conn.SetConnMaxLifetime(5 * time.Minute)
		}
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping journal database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if !isMemoryPath(dbPath) {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			log.Printf("Warning: failed to enable WAL mode: %v", err)
		}
	}

	if err := MigrateJournalSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}

	return &JournalDB{conn: conn, path: dbPath}, nil
}

// Close закрывает подключение
func (db *JournalDB) Close() error {
	return db.conn.Close()
}

// GetDB возвращает указатель на sql.DB для прямого доступа
func (db *JournalDB) GetDB() *sql.DB {
	return db.conn
}

// Path путь к файлу базы
func (db *JournalDB) Path() string {
	return db.path
}

// Ping проверяет доступность базы (для /health)
func (db *JournalDB) Ping() error {
	return db.conn.Ping()
}

func isMemoryPath(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}
