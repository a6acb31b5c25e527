package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ActivityRecord строка журнала действий
type ActivityRecord struct {
	ID        int64
	Icon      string
	Title     string
	CreatedAt time.Time
}

// ProjectRecord строка таблицы projects
type ProjectRecord struct {
	ID          string
	Name        string
	Description string
	Status      string
	Companies   int
	Documents   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectStatusCount агрегат по статусу
type ProjectStatusCount struct {
	Status    string
	Projects  int
	Documents int
}

// TemplateRecord строка индекса шаблонов
type TemplateRecord struct {
	ID          string
	Name        string
	Type        string
	Description string
	FileName    string
	URL         string
	Size        int64
	UploadedAt  time.Time
}

// ErrNotFound запись отсутствует
var ErrNotFound = errors.New("record not found")

// ============================================================================
// Activities
// ============================================================================

// InsertActivity добавляет запись в журнал и возвращает ее ID
func (db *JournalDB) InsertActivity(ctx context.Context, icon, title string, createdAt time.Time) (int64, error) {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO activities(icon, title, created_at) VALUES(?, ?, ?)`,
		icon, title, createdAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert activity: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get activity id: %w", err)
	}
	return id, nil
}

// RecentActivities последние записи журнала, новые первыми
func (db *JournalDB) RecentActivities(ctx context.Context, limit int) ([]ActivityRecord, error) {
	if limit <= 0 {
		return []ActivityRecord{}, nil
	}
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, icon, title, created_at FROM activities ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	records := make([]ActivityRecord, 0, limit)
	for rows.Next() {
		var r ActivityRecord
		if err := rows.Scan(&r.ID, &r.Icon, &r.Title, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ============================================================================
// Projects
// ============================================================================

const projectColumns = `id, name, description, status, companies, documents, created_at, updated_at`

// InsertProject сохраняет проект
func (db *JournalDB) InsertProject(ctx context.Context, p ProjectRecord) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO projects(`+projectColumns+`) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Status, p.Companies, p.Documents, p.CreatedAt.UTC(), p.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert project %s: %w", p.ID, err)
	}
	return nil
}

// GetProject возвращает проект или ErrNotFound
func (db *JournalDB) GetProject(ctx context.Context, id string) (*ProjectRecord, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", id, err)
	}
	return p, nil
}

// SetProjectStatus меняет статус проекта
func (db *JournalDB) SetProjectStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE projects SET status = ?, updated_at = ? WHERE id = ?`, status, updatedAt.UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListProjects проекты, новые первыми; пустой статус означает все
func (db *JournalDB) ListProjects(ctx context.Context, status string) ([]ProjectRecord, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	records := []ProjectRecord{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		records = append(records, *p)
	}
	return records, rows.Err()
}

// ProjectStatusCounts агрегирует проекты и документы по статусам
func (db *JournalDB) ProjectStatusCounts(ctx context.Context) ([]ProjectStatusCount, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT status, COUNT(*), COALESCE(SUM(documents), 0) FROM projects GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}
	defer rows.Close()

	var counts []ProjectStatusCount
	for rows.Next() {
		var c ProjectStatusCount
		if err := rows.Scan(&c.Status, &c.Projects, &c.Documents); err != nil {
			return nil, fmt.Errorf("failed to scan project counts: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(s rowScanner) (*ProjectRecord, error) {
	var p ProjectRecord
	if err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.Companies, &p.Documents, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// ============================================================================
// Templates
// ============================================================================

const templateColumns = `id, name, type, description, file_name, url, size, uploaded_at`

// InsertTemplate добавляет шаблон в индекс; повторная вставка с тем же ID заменяет запись
func (db *JournalDB) InsertTemplate(ctx context.Context, t TemplateRecord) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO templates(`+templateColumns+`) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Type, t.Description, t.FileName, t.URL, t.Size, t.UploadedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert template %s: %w", t.ID, err)
	}
	return nil
}

// GetTemplate возвращает шаблон или ErrNotFound
func (db *JournalDB) GetTemplate(ctx context.Context, id string) (*TemplateRecord, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = ?`, id)
	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template %s: %w", id, err)
	}
	return t, nil
}

// DeleteTemplate удаляет шаблон из индекса
func (db *JournalDB) DeleteTemplate(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete template %s: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListTemplates все шаблоны, новые первыми
func (db *JournalDB) ListTemplates(ctx context.Context) ([]TemplateRecord, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+templateColumns+` FROM templates ORDER BY uploaded_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	records := []TemplateRecord{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		records = append(records, *t)
	}
	return records, rows.Err()
}

func scanTemplate(s rowScanner) (*TemplateRecord, error) {
	var t TemplateRecord
	if err := s.Scan(&t.ID, &t.Name, &t.Type, &t.Description, &t.FileName, &t.URL, &t.Size, &t.UploadedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
