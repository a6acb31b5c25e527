package database

import (
	"database/sql"
	"fmt"
)

// journalMigrations применяются по порядку, каждая один раз
var journalMigrations = []struct {
	name  string
	apply func(*sql.DB) error
}{
	{name: "001_journal_tables", apply: createJournalTables},
	{name: "002_journal_indexes", apply: createJournalIndexes},
	{name: "003_templates_size", apply: addTemplateSize},
}

// MigrateJournalSchema создает и обновляет схему локальной базы
func MigrateJournalSchema(db *sql.DB) error {
	for _, m := range journalMigrations {
		if err := ensureMigrationApplied(db, m.name, m.apply); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.name, err)
		}
	}
	return nil
}

func createJournalTables(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS activities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			icon TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			companies INTEGER NOT NULL DEFAULT 0,
			documents INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS templates (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			file_name TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			uploaded_at TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

func createJournalIndexes(db *sql.DB) error {
	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_activities_created_at ON activities(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_created_at ON projects(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_templates_type ON templates(type)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

func addTemplateSize(db *sql.DB) error {
	exists, err := columnExists(db, "templates", "size")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if _, err := db.Exec(`ALTER TABLE templates ADD COLUMN size INTEGER NOT NULL DEFAULT 0`); err != nil {
		return fmt.Errorf("failed to add templates.size: %w", err)
	}
	return nil
}

func columnExists(db *sql.DB, table, column string) (bool, error) {
	if err := ValidateTableName(table, true); err != nil {
		return false, err
	}
	if err := ValidateColumnName(column); err != nil {
		return false, err
	}

	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("failed to read %s columns: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, fmt.Errorf("failed to scan %s columns: %w", table, err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
