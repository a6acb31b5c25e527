package companies

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"panelserver/internal/domain/dashboard"
	"panelserver/internal/domain/directory"
)

// UseCase операции справочника с отметкой изменений панели в журнале
type UseCase struct {
	directory directory.Service
	dashboard dashboard.Service
	logger    *slog.Logger
}

// NewUseCase создает use case справочника
func NewUseCase(directoryService directory.Service, dashboardService dashboard.Service, logger *slog.Logger) *UseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &UseCase{
		directory: directoryService,
		dashboard: dashboardService,
		logger:    logger,
	}
}

// Load загружает справочник в состояние сессии
func (uc *UseCase) Load(ctx context.Context, b *directory.Browser) (directory.Page, error) {
	return uc.directory.Load(ctx, b)
}

// EnsureLoaded загружает справочник при первом обращении сессии
func (uc *UseCase) EnsureLoaded(ctx context.Context, b *directory.Browser) (directory.Page, error) {
	if b.Loaded() {
		return b.Current(), nil
	}
	return uc.directory.Load(ctx, b)
}

// Save добавляет или изменяет компанию
func (uc *UseCase) Save(ctx context.Context, b *directory.Browser, in directory.CompanyInput) (*directory.SaveResult, error) {
	result, err := uc.directory.Save(ctx, b, in)
	if err != nil {
		return nil, err
	}
	verb := "modifiée"
	if result.Created {
		verb = "ajoutée"
	}
	uc.record(ctx, fmt.Sprintf("Entreprise %s %s au panel", result.Company.Name, verb))
	return result, nil
}

// Delete удаляет компанию
func (uc *UseCase) Delete(ctx context.Context, b *directory.Browser, id string) (directory.Page, error) {
	name := id
	if c, err := b.Find(id); err == nil {
		name = c.Name
	}
	page, err := uc.directory.Delete(ctx, b, id)
	if err != nil {
		return page, err
	}
	uc.record(ctx, fmt.Sprintf("Entreprise %s supprimée du panel", name))
	return page, nil
}

// Import импортирует таблицу компаний
func (uc *UseCase) Import(ctx context.Context, b *directory.Browser, file directory.ImportFile) (*directory.ImportResult, error) {
	result, err := uc.directory.Import(ctx, b, file)
	if err != nil {
		return nil, err
	}
	uc.record(ctx, fmt.Sprintf("%d entreprises importées dans le panel", result.Imported))
	return result, nil
}

// Export пишет отфильтрованный список в xlsx
func (uc *UseCase) Export(b *directory.Browser, w io.Writer) error {
	return uc.directory.Export(b, w)
}

func (uc *UseCase) record(ctx context.Context, title string) {
	if err := uc.dashboard.RecordActivity(context.WithoutCancel(ctx), dashboard.IconPanel, title); err != nil {
		uc.logger.Warn("Failed to record activity", "title", title, "error", err)
	}
}
