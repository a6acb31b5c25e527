package dashboard

import (
	"context"

	"panelserver/internal/domain/repositories"
)

// Type aliases для удобства
type (
	Activity        = repositories.Activity
	Project         = repositories.Project
	ProjectCounters = repositories.ProjectCounters
)

// Иконки журнала действий
const (
	IconDocuments = "📄"
	IconProject   = "📝"
	IconPanel     = "👥"
)

// RecentActivitiesLimit сколько действий показывается на главной
const RecentActivitiesLimit = 5

// Ключи фильтра статуса в списке проектов
const (
	StatusFilterAll       = "all"
	StatusFilterActive    = "active"
	StatusFilterPending   = "pending"
	StatusFilterCompleted = "completed"
)

// Service интерфейс панели управления
type Service interface {
	RecordActivity(ctx context.Context, icon, title string) error
	RecentActivities(ctx context.Context) ([]Activity, error)

	RecordProject(ctx context.Context, p NewProject) (*Project, error)
	Projects(ctx context.Context, filter ProjectFilter) ([]Project, error)
	UpdateProjectStatus(ctx context.Context, id, status string) (*Project, error)
	Counters(ctx context.Context) (*ProjectCounters, error)
}

// NewProject проект, созданный при генерации документов
type NewProject struct {
	ID          string
	Name        string
	Description string
	Companies   int
	Documents   int
}

// ProjectFilter фильтр списка проектов: ключ статуса и подстрока названия
type ProjectFilter struct {
	Status string `json:"status"`
	Search string `json:"search"`
}
