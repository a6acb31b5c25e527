package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"panelserver/database"
	"panelserver/internal/domain/repositories"
)

// templateRepository локальный индекс шаблонов
type templateRepository struct {
	db *database.JournalDB
}

// NewTemplateRepository создает новый репозиторий шаблонов
func NewTemplateRepository(db *database.JournalDB) repositories.TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(ctx context.Context, t *repositories.Template) error {
	if t.UploadedAt.IsZero() {
		t.UploadedAt = time.Now()
	}
	err := r.db.InsertTemplate(ctx, database.TemplateRecord{
		ID:          t.ID,
		Name:        t.Name,
		Type:        t.Type,
		Description: t.Description,
		FileName:    t.FileName,
		URL:         t.URL,
		Size:        t.Size,
		UploadedAt:  t.UploadedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

// GetByID возвращает шаблон или nil, если его нет в индексе
func (r *templateRepository) GetByID(ctx context.Context, id string) (*repositories.Template, error) {
	rec, err := r.db.GetTemplate(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return toDomainTemplate(rec), nil
}

// Delete удаляет шаблон; отсутствие записи не считается ошибкой
func (r *templateRepository) Delete(ctx context.Context, id string) error {
	err := r.db.DeleteTemplate(ctx, id)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

func (r *templateRepository) List(ctx context.Context) ([]repositories.Template, error) {
	records, err := r.db.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	result := make([]repositories.Template, 0, len(records))
	for i := range records {
		result = append(result, *toDomainTemplate(&records[i]))
	}
	return result, nil
}

func toDomainTemplate(rec *database.TemplateRecord) *repositories.Template {
	return &repositories.Template{
		ID:          rec.ID,
		Name:        rec.Name,
		Type:        rec.Type,
		Description: rec.Description,
		FileName:    rec.FileName,
		URL:         rec.URL,
		Size:        rec.Size,
		UploadedAt:  rec.UploadedAt,
	}
}
