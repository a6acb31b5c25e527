package database

import (
	"fmt"
	"regexp"
)

var (
	// allowedTableNames таблицы журнала, допустимые в динамических SQL запросах
	allowedTableNames = map[string]bool{
		"activities":        true,
		"projects":          true,
		"templates":         true,
		migrationsTableName: true,
	}

	// identifierPattern alphanumeric + underscore
	identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// ValidateTableName проверяет, что имя таблицы безопасно для использования в SQL запросах.
// Если strict=true, таблица также должна быть в whitelist.
func ValidateTableName(name string, strict bool) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("invalid table name format: %s", name)
	}
	if strict && !allowedTableNames[name] {
		return fmt.Errorf("table name '%s' is not in allowed list", name)
	}
	return nil
}

// ValidateColumnName проверяет формат имени колонки
func ValidateColumnName(name string) error {
	if name == "" {
		return fmt.Errorf("column name cannot be empty")
	}
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("invalid column name format: %s", name)
	}
	return nil
}
