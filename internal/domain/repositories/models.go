package repositories

import (
	"time"
)

// ============================================================================
// Dashboard Models
// ============================================================================

// Activity запись журнала действий на главной странице
type Activity struct {
	ID        int64     `json:"id"`
	Icon      string    `json:"icon"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Статусы проекта консультации
const (
	ProjectStatusActive    = "en cours"
	ProjectStatusPending   = "à venir"
	ProjectStatusCompleted = "terminé"
)

// Project проект консультации, созданный при генерации документов
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Companies   int       `json:"companies"`
	Documents   int       `json:"documents"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectCounters счетчики проектов по статусам
type ProjectCounters struct {
	Active    int `json:"active"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Documents int `json:"documents"`
}

// ============================================================================
// Template Models
// ============================================================================

// Template шаблон документа в локальном индексе
type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	FileName    string    `json:"fileName"`
	URL         string    `json:"url"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploadedAt"`
}
