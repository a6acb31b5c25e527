package persistence

import (
	"context"
	"fmt"
	"time"

	"panelserver/database"
	"panelserver/internal/domain/repositories"
)

// activityRepository реализация журнала действий
// Адаптер между domain интерфейсом и infrastructure (database.JournalDB)
type activityRepository struct {
	db *database.JournalDB
}

// NewActivityRepository создает новый репозиторий журнала
func NewActivityRepository(db *database.JournalDB) repositories.ActivityRepository {
	return &activityRepository{db: db}
}

// Create добавляет запись; ID и время заполняются в domain модели
func (r *activityRepository) Create(ctx context.Context, activity *repositories.Activity) error {
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	id, err := r.db.InsertActivity(ctx, activity.Icon, activity.Title, activity.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	activity.ID = id
	return nil
}

// Recent возвращает последние записи, новые первыми
func (r *activityRepository) Recent(ctx context.Context, limit int) ([]repositories.Activity, error) {
	records, err := r.db.RecentActivities(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent activities: %w", err)
	}

	result := make([]repositories.Activity, 0, len(records))
	for _, rec := range records {
		result = append(result, repositories.Activity{
			ID:        rec.ID,
			Icon:      rec.Icon,
			Title:     rec.Title,
			CreatedAt: rec.CreatedAt,
		})
	}
	return result, nil
}
