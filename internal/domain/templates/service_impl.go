package templates

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"panelserver/internal/domain/repositories"
)

// service реализация каталога шаблонов
type service struct {
	repo   repositories.TemplateRepository
	remote Remote
	types  []TypeOption
	now    func() time.Time
	logger *slog.Logger
}

// NewService создает сервис шаблонов
func NewService(repo repositories.TemplateRepository, remote Remote, types []TypeOption, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:   repo,
		remote: remote,
		types:  append([]TypeOption(nil), types...),
		now:    time.Now,
		logger: logger,
	}
}

// Types типы шаблонов для фильтра и формы загрузки
func (s *service) Types() []TypeOption {
	return append([]TypeOption(nil), s.types...)
}

// List возвращает отфильтрованный список из локального индекса
func (s *service) List(ctx context.Context, filter Filter) ([]Template, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return filter.Apply(list), nil
}

// Get возвращает шаблон из индекса
func (s *service) Get(ctx context.Context, id string) (*Template, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	return t, nil
}

// Upload пересылает файл во внешнее хранилище и записывает шаблон в индекс
func (s *service) Upload(ctx context.Context, upload Upload) (*Template, error) {
	upload.Name = strings.TrimSpace(upload.Name)
	upload.Description = strings.TrimSpace(upload.Description)
	if upload.Name == "" {
		return nil, ErrNameRequired
	}
	if !s.knownType(upload.Type) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, upload.Type)
	}
	if upload.Content == nil || upload.FileName == "" {
		return nil, ErrNoFile
	}

	stored, err := s.remote.UploadTemplate(ctx, upload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to upload template: %w", ErrRemoteFailed, err)
	}

	t := &Template{
		ID:          stored.ID,
		Name:        firstNonEmpty(stored.Name, upload.Name),
		Type:        firstNonEmpty(stored.Type, upload.Type),
		Description: firstNonEmpty(stored.Description, upload.Description),
		FileName:    firstNonEmpty(stored.FileName, upload.FileName),
		URL:         stored.URL,
		Size:        upload.Size,
		UploadedAt:  s.now(),
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to record template: %w", err)
	}

	s.logger.Info("Template uploaded", "id", t.ID, "name", t.Name, "type", t.Type)
	return t, nil
}

// Preview получает предпросмотр и очищает его HTML
func (s *service) Preview(ctx context.Context, id string) (*Preview, error) {
	preview, err := s.remote.GetTemplate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get template preview: %w", ErrRemoteFailed, err)
	}

	clean, err := SanitizePreview(preview.PreviewHTML)
	if err != nil {
		s.logger.Warn("Template preview discarded", "id", id, "error", err)
		clean = ""
	}
	out := *preview
	out.PreviewHTML = clean
	return &out, nil
}

// Delete удаляет шаблон во внешнем хранилище и из индекса
func (s *service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty id", ErrTemplateNotFound)
	}
	if err := s.remote.DeleteTemplate(ctx, id); err != nil {
		return fmt.Errorf("%w: failed to delete template: %w", ErrRemoteFailed, err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to remove template from index: %w", err)
	}
	s.logger.Info("Template deleted", "id", id)
	return nil
}

func (s *service) knownType(key string) bool {
	for _, t := range s.types {
		if t.Key == key {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
