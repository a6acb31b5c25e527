package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"panelserver/database"
	"panelserver/internal/domain/repositories"
)

// projectRepository реализация репозитория для проектов консультаций
type projectRepository struct {
	db *database.JournalDB
}

// NewProjectRepository создает новый репозиторий проектов
func NewProjectRepository(db *database.JournalDB) repositories.ProjectRepository {
	return &projectRepository{db: db}
}

// Create создает новый проект
func (r *projectRepository) Create(ctx context.Context, project *repositories.Project) error {
	now := time.Now()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	if project.UpdatedAt.IsZero() {
		project.UpdatedAt = project.CreatedAt
	}

	if err := r.db.InsertProject(ctx, toProjectRecord(project)); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID возвращает проект по ID или nil, если его нет
func (r *projectRepository) GetByID(ctx context.Context, id string) (*repositories.Project, error) {
	rec, err := r.db.GetProject(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return toDomainProject(rec), nil
}

// UpdateStatus меняет статус проекта
func (r *projectRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if err := r.db.SetProjectStatus(ctx, id, status, time.Now()); err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}
	return nil
}

// List возвращает проекты, новые первыми
func (r *projectRepository) List(ctx context.Context, status string) ([]repositories.Project, error) {
	records, err := r.db.ListProjects(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	result := make([]repositories.Project, 0, len(records))
	for i := range records {
		result = append(result, *toDomainProject(&records[i]))
	}
	return result, nil
}

// Counters считает проекты по статусам и общее число документов
func (r *projectRepository) Counters(ctx context.Context) (*repositories.ProjectCounters, error) {
	counts, err := r.db.ProjectStatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	counters := &repositories.ProjectCounters{}
	for _, c := range counts {
		switch c.Status {
		case repositories.ProjectStatusActive:
			counters.Active = c.Projects
		case repositories.ProjectStatusPending:
			counters.Pending = c.Projects
		case repositories.ProjectStatusCompleted:
			counters.Completed = c.Projects
		}
		counters.Documents += c.Documents
	}
	return counters, nil
}

func toProjectRecord(p *repositories.Project) database.ProjectRecord {
	return database.ProjectRecord{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		Companies:   p.Companies,
		Documents:   p.Documents,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toDomainProject(rec *database.ProjectRecord) *repositories.Project {
	return &repositories.Project{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Status:      rec.Status,
		Companies:   rec.Companies,
		Documents:   rec.Documents,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
