package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// Сообщения по умолчанию, если backend не вернул своего
const (
	UploadFallbackMessage   = "Erreur lors du téléversement du fichier"
	AnalysisFallbackMessage = "Erreur lors de l'analyse du document"
	MatchingFallbackMessage = "Erreur lors de la recherche d'entreprises"
)

// Options параметры контроллера мастера
type Options struct {
	MaxUploadSize int64
	Clock         func() time.Time
	Logger        *slog.Logger
}

// service реализация контроллера мастера
type service struct {
	backend       Backend
	catalog       *DocumentCatalog
	maxUploadSize int64
	now           func() time.Time
	logger        *slog.Logger
}

// NewService создает контроллер мастера
func NewService(backend Backend, catalog *DocumentCatalog, opts Options) Service {
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = DefaultMaxUploadSize
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &service{
		backend:       backend,
		catalog:       catalog,
		maxUploadSize: opts.MaxUploadSize,
		now:           opts.Clock,
		logger:        opts.Logger,
	}
}

// State возвращает копию состояния сессии
func (s *service) State(sess *Session) State {
	return sess.Snapshot()
}

// Reset начинает мастер заново (новая загрузка страницы).
// Пока идет обработка, состояние не сбрасывается: ответ backend применится к нему.
func (s *service) Reset(sess *Session) (State, error) {
	return sess.update(func(st State) (State, error) {
		if st.IsProcessing {
			return st, ErrProcessing
		}
		return NewState(), nil
	})
}

// Catalog возвращает каталог типов документов
func (s *service) Catalog() *DocumentCatalog {
	return s.catalog
}

// Upload загружает и разбирает файл, затем отправляет текст на анализ.
// Переход 1 -> 2 выполняется только после успеха обоих вызовов.
func (s *service) Upload(ctx context.Context, sess *Session, file UploadFile) (State, error) {
	file.MimeType = NormalizeMimeType(file.MimeType, file.Name)

	st, err := sess.update(func(st State) (State, error) {
		if st.IsProcessing {
			return st, ErrProcessing
		}
		if err := ValidateUpload(file, s.maxUploadSize); err != nil {
			return st, err
		}
		return BeginUpload(st)
	})
	if err != nil {
		return st, err
	}
	released := false
	defer func() {
		if !released {
			sess.update(func(st State) (State, error) { return EndProcessing(st), nil })
		}
	}()

	// Запрос не отменяется при закрытии вкладки: ждем ответа backend
	ctx = context.WithoutCancel(ctx)

	parsed, err := s.backend.ParseDocument(ctx, file)
	if err != nil {
		released = true
		return s.failUpload(sess, file, UserMessage(err, UploadFallbackMessage), err)
	}

	analysis, err := s.backend.AnalyzeDocument(ctx, parsed.Text)
	if err != nil {
		released = true
		return s.failUpload(sess, file, UserMessage(err, AnalysisFallbackMessage), err)
	}

	uploaded := UploadedFile{Name: file.Name, MimeType: file.MimeType, Size: file.Size}
	st, _ = sess.update(func(st State) (State, error) {
		return ApplyAnalysis(st, uploaded, parsed.Text, *analysis), nil
	})
	released = true

	s.logger.Info("Document analyzed",
		"file", file.Name,
		"keywords", len(analysis.Keywords),
		"selection_criteria", len(analysis.SelectionCriteria),
		"attribution_criteria", len(analysis.AttributionCriteria),
	)
	return st, nil
}

func (s *service) failUpload(sess *Session, file UploadFile, message string, cause error) (State, error) {
	s.logger.Warn("Document upload failed", "file", file.Name, "error", cause)
	st, _ := sess.update(func(st State) (State, error) {
		return ApplyUploadFailure(st, message), nil
	})
	return st, fmt.Errorf("%w: %w", ErrUploadFailed, cause)
}

// RetryUpload убирает сообщение об ошибке загрузки
func (s *service) RetryUpload(sess *Session) State {
	state, _ := sess.update(func(st State) (State, error) {
		return ClearUploadError(st), nil
	})
	return state
}

// GoToStep переходит на шаг мастера
func (s *service) GoToStep(sess *Session, step Step) (State, error) {
	return sess.update(func(st State) (State, error) {
		return GoToStep(st, step)
	})
}

// ToggleSelectionCriterion меняет выбор критерия отбора
func (s *service) ToggleSelectionCriterion(sess *Session, id int, selected bool) (State, error) {
	return sess.update(func(st State) (State, error) {
		return ToggleSelectionCriterion(st, id, selected)
	})
}

// PreviewAttributionWeight проверяет промежуточное значение ползунка
func (s *service) PreviewAttributionWeight(sess *Session, id, weight int) (int, error) {
	return PreviewAttributionWeight(sess.Snapshot(), id, weight)
}

// CommitAttributionWeight фиксирует вес критерия
func (s *service) CommitAttributionWeight(sess *Session, id, weight int) (AttributionTotal, error) {
	var total AttributionTotal
	_, err := sess.update(func(st State) (State, error) {
		next, t, err := CommitAttributionWeight(st, id, weight)
		total = t
		return next, err
	})
	return total, err
}

// FindMatches подбирает компании по выбранным критериям
func (s *service) FindMatches(ctx context.Context, sess *Session) (State, error) {
	var criteria []SelectionCriterion
	st, err := sess.update(func(st State) (State, error) {
		if st.IsProcessing {
			return st, ErrProcessing
		}
		if !st.Analyzed {
			return st, fmt.Errorf("%w: no analysis yet", ErrStepLocked)
		}
		criteria = SelectedCriteria(st)
		return BeginProcessing(st)
	})
	if err != nil {
		return st, err
	}

	companies, err := s.backend.FindMatchingCompanies(context.WithoutCancel(ctx), criteria)
	if err != nil {
		s.logger.Warn("Company matching failed", "criteria", len(criteria), "error", err)
		st, _ = sess.update(func(st State) (State, error) { return EndProcessing(st), nil })
		return st, fmt.Errorf("%w: %w", ErrMatchingFailed, err)
	}

	st, _ = sess.update(func(st State) (State, error) {
		return ApplyMatches(st, companies), nil
	})
	s.logger.Info("Companies matched", "criteria", len(criteria), "companies", len(companies))
	return st, nil
}

// ToggleCompany меняет выбор компании и возвращает число выбранных
func (s *service) ToggleCompany(sess *Session, id string, selected bool) (int, error) {
	var count int
	_, err := sess.update(func(st State) (State, error) {
		next, n, err := ToggleCompany(st, id, selected)
		count = n
		return next, err
	})
	return count, err
}

// AddManualCompany добавляет компанию вручную
func (s *service) AddManualCompany(sess *Session, in ManualCompanyInput) (State, MatchedCompany, error) {
	var company MatchedCompany
	st, err := sess.update(func(st State) (State, error) {
		next, c, err := AddManualCompany(st, in, s.now())
		company = c
		return next, err
	})
	return st, company, err
}

// CompanyDetails возвращает компанию для окна подробностей
func (s *service) CompanyDetails(sess *Session, id string) (MatchedCompany, error) {
	return FindCompany(sess.Snapshot(), id)
}

// UpdateProjectData обновляет данные проекта
func (s *service) UpdateProjectData(sess *Session, field, value string) (State, error) {
	return sess.update(func(st State) (State, error) {
		return UpdateProjectData(st, field, value)
	})
}

// GenerateDocuments генерирует документы по одному, последовательно, в порядке каталога.
// Ошибка отдельного типа пропускается; результат успешен при хотя бы одном документе.
func (s *service) GenerateDocuments(ctx context.Context, sess *Session, types []string) (*GenerationResult, error) {
	var (
		plan      []DocumentType
		companies []MatchedCompany
		project   GenerationProject
	)

	_, err := sess.update(func(st State) (State, error) {
		if st.IsProcessing {
			return st, ErrProcessing
		}
		if st.CurrentStep != StepDocuments {
			return st, fmt.Errorf("%w: generation is only available on step 4", ErrStepLocked)
		}
		if len(types) == 0 {
			return st, ErrNoDocumentType
		}
		ordered, err := s.catalog.Ordered(types)
		if err != nil {
			return st, err
		}
		selected := SelectedCompanies(st)
		if len(selected) == 0 {
			return st, ErrNoCompanySelected
		}

		plan = ordered
		companies = selected
		project = GenerationProject{
			Title:               st.ProjectData.Title,
			Description:         st.ProjectData.Description,
			ID:                  "P" + strconv.FormatInt(s.now().UnixMilli(), 10),
			SelectionCriteria:   append([]SelectionCriterion{}, st.SelectionCriteria...),
			AttributionCriteria: append([]AttributionCriterion{}, st.AttributionCriteria...),
			CahierDesCharges:    st.ExtractedText,
		}
		return BeginProcessing(st)
	})
	if err != nil {
		return nil, err
	}

	var docs []GeneratedDocument
	released := false
	defer func() {
		if !released {
			sess.update(func(st State) (State, error) { return EndProcessing(st), nil })
		}
	}()

	ctx = context.WithoutCancel(ctx)
	result := &GenerationResult{Project: project, Companies: len(companies)}
	for _, docType := range plan {
		doc, err := s.backend.GenerateDocument(ctx, GenerateRequest{
			TemplateType: docType.Key,
			ProjectData:  project,
			Companies:    companies,
		})
		if err != nil {
			s.logger.Warn("Document generation failed", "type", docType.Key, "project", project.ID, "error", err)
			result.Failed = append(result.Failed, docType.Key)
			continue
		}
		doc.Type = docType.Key
		doc.Title = docType.Title
		doc.Icon = docType.Icon
		docs = append(docs, *doc)
	}

	sess.update(func(st State) (State, error) {
		return ApplyGeneratedDocuments(st, docs), nil
	})
	released = true

	if len(docs) == 0 {
		return nil, ErrNoDocumentGenerated
	}

	result.Documents = docs
	s.logger.Info("Documents generated",
		"project", project.ID,
		"generated", len(docs),
		"failed", len(result.Failed),
		"companies", len(companies),
	)
	return result, nil
}
