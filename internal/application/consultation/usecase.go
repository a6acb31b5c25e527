package consultation

import (
	"context"
	"log/slog"

	"panelserver/internal/domain/dashboard"
	"panelserver/internal/domain/wizard"
)

// UseCase связывает мастер консультации с журналом панели управления.
// Ошибки журнала не влияют на результат генерации.
type UseCase struct {
	wizard    wizard.Service
	dashboard dashboard.Service
	logger    *slog.Logger
}

// NewUseCase создает use case консультации
func NewUseCase(wizardService wizard.Service, dashboardService dashboard.Service, logger *slog.Logger) *UseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &UseCase{
		wizard:    wizardService,
		dashboard: dashboardService,
		logger:    logger,
	}
}

// Wizard возвращает сервис мастера для событий без побочных эффектов в журнале
func (uc *UseCase) Wizard() wizard.Service {
	return uc.wizard
}

// GenerateDocuments генерирует документы и записывает проект в журнал
func (uc *UseCase) GenerateDocuments(ctx context.Context, sess *wizard.Session, types []string) (*wizard.GenerationResult, error) {
	result, err := uc.wizard.GenerateDocuments(ctx, sess, types)
	if err != nil {
		return nil, err
	}

	// Журнал пишется и после закрытия вкладки
	ctx = context.WithoutCancel(ctx)
	project, err := uc.dashboard.RecordProject(ctx, dashboard.NewProject{
		ID:          result.Project.ID,
		Name:        result.Project.Title,
		Description: result.Project.Description,
		Companies:   result.Companies,
		Documents:   len(result.Documents),
	})
	if err != nil {
		uc.logger.Warn("Failed to record project", "project", result.Project.ID, "error", err)
		return result, nil
	}

	if err := uc.dashboard.RecordActivity(ctx, dashboard.IconDocuments, "Documents générés pour le projet "+project.Name); err != nil {
		uc.logger.Warn("Failed to record activity", "project", project.ID, "error", err)
	}
	return result, nil
}
