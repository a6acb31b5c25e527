package repositories

import (
	"context"
)

// ActivityRepository интерфейс журнала действий
type ActivityRepository interface {
	Create(ctx context.Context, activity *Activity) error
	// Recent возвращает последние записи, новые первыми
	Recent(ctx context.Context, limit int) ([]Activity, error)
}

// ProjectRepository интерфейс для работы с проектами консультаций
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// List возвращает проекты, новые первыми; пустой статус означает все
	List(ctx context.Context, status string) ([]Project, error)
	Counters(ctx context.Context) (*ProjectCounters, error)
}

// TemplateRepository интерфейс локального индекса шаблонов
type TemplateRepository interface {
	Create(ctx context.Context, template *Template) error
	GetByID(ctx context.Context, id string) (*Template, error)
	Delete(ctx context.Context, id string) error
	// List возвращает шаблоны, новые первыми
	List(ctx context.Context) ([]Template, error)
}
