package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"panelserver/internal/domain/repositories"
)

var statusByFilter = map[string]string{
	StatusFilterAll:       "",
	StatusFilterActive:    repositories.ProjectStatusActive,
	StatusFilterPending:   repositories.ProjectStatusPending,
	StatusFilterCompleted: repositories.ProjectStatusCompleted,
}

var validStatuses = map[string]bool{
	repositories.ProjectStatusActive:    true,
	repositories.ProjectStatusPending:   true,
	repositories.ProjectStatusCompleted: true,
}

// service реализация панели управления
type service struct {
	activities repositories.ActivityRepository
	projects   repositories.ProjectRepository
	now        func() time.Time
	logger     *slog.Logger
}

// NewService создает сервис панели управления
func NewService(activities repositories.ActivityRepository, projects repositories.ProjectRepository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		activities: activities,
		projects:   projects,
		now:        time.Now,
		logger:     logger,
	}
}

// RecordActivity добавляет запись в журнал
func (s *service) RecordActivity(ctx context.Context, icon, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyActivityTitle
	}
	activity := &Activity{Icon: icon, Title: title, CreatedAt: s.now()}
	if err := s.activities.Create(ctx, activity); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// RecentActivities последние действия, новые первыми
func (s *service) RecentActivities(ctx context.Context) ([]Activity, error) {
	list, err := s.activities.Recent(ctx, RecentActivitiesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent activities: %w", err)
	}
	return list, nil
}

// RecordProject сохраняет проект со статусом "en cours" и отмечает это в журнале
func (s *service) RecordProject(ctx context.Context, p NewProject) (*Project, error) {
	now := s.now()
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = "Projet " + p.ID
	}

	project := &Project{
		ID:          p.ID,
		Name:        name,
		Description: p.Description,
		Status:      repositories.ProjectStatusActive,
		Companies:   p.Companies,
		Documents:   p.Documents,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	if err := s.RecordActivity(ctx, IconProject, "Nouveau projet créé"); err != nil {
		s.logger.Warn("Activity not recorded", "project", project.ID, "error", err)
	}
	return project, nil
}

// Projects возвращает проекты по фильтру статуса и названия
func (s *service) Projects(ctx context.Context, filter ProjectFilter) ([]Project, error) {
	key := filter.Status
	if key == "" {
		key = StatusFilterAll
	}
	status, ok := statusByFilter[key]
	if !ok {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidFilter, filter.Status)
	}

	list, err := s.projects.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	fold := cases.Fold()
	term := fold.String(strings.TrimSpace(filter.Search))
	if term == "" {
		return list, nil
	}

	out := make([]Project, 0, len(list))
	for _, p := range list {
		if strings.Contains(fold.String(p.Name), term) {
			out = append(out, p)
		}
	}
	return out, nil
}

// UpdateProjectStatus меняет статус проекта
func (s *service) UpdateProjectStatus(ctx context.Context, id, status string) (*Project, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}

	if err := s.projects.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update project status: %w", err)
	}
	project.Status = status
	project.UpdatedAt = s.now()
	return project, nil
}

// Counters счетчики для карточек панели
func (s *service) Counters(ctx context.Context) (*ProjectCounters, error) {
	counters, err := s.projects.Counters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}
	return counters, nil
}
