package wizard

import (
	"context"
)

// Service интерфейс контроллера мастера консультации
// Все операции работают с состоянием одной сессии
type Service interface {
	// Состояние
	State(sess *Session) State
	Reset(sess *Session) (State, error)
	Catalog() *DocumentCatalog

	// Шаг 1
	Upload(ctx context.Context, sess *Session, file UploadFile) (State, error)
	RetryUpload(sess *Session) State

	// Навигация
	GoToStep(sess *Session, step Step) (State, error)

	// Шаг 2
	ToggleSelectionCriterion(sess *Session, id int, selected bool) (State, error)
	PreviewAttributionWeight(sess *Session, id, weight int) (int, error)
	CommitAttributionWeight(sess *Session, id, weight int) (AttributionTotal, error)
	FindMatches(ctx context.Context, sess *Session) (State, error)

	// Шаг 3
	ToggleCompany(sess *Session, id string, selected bool) (int, error)
	AddManualCompany(sess *Session, in ManualCompanyInput) (State, MatchedCompany, error)
	CompanyDetails(sess *Session, id string) (MatchedCompany, error)

	// Шаг 4
	UpdateProjectData(sess *Session, field, value string) (State, error)
	GenerateDocuments(ctx context.Context, sess *Session, types []string) (*GenerationResult, error)
}

// Backend внешние операции, нужные мастеру
type Backend interface {
	ParseDocument(ctx context.Context, file UploadFile) (*ParsedDocument, error)
	AnalyzeDocument(ctx context.Context, text string) (*Analysis, error)
	FindMatchingCompanies(ctx context.Context, criteria []SelectionCriterion) ([]MatchedCompany, error)
	GenerateDocument(ctx context.Context, req GenerateRequest) (*GeneratedDocument, error)
}

// ParsedDocument результат извлечения текста
type ParsedDocument struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

// Analysis результат AI анализа технического задания
type Analysis struct {
	Keywords            []string               `json:"keywords"`
	SelectionCriteria   []SelectionCriterion   `json:"selectionCriteria"`
	AttributionCriteria []AttributionCriterion `json:"attributionCriteria"`
}

// GenerationProject данные проекта, передаваемые генератору документов
type GenerationProject struct {
	Title               string                 `json:"title"`
	Description         string                 `json:"description"`
	ID                  string                 `json:"id"`
	SelectionCriteria   []SelectionCriterion   `json:"selectionCriteria"`
	AttributionCriteria []AttributionCriterion `json:"attributionCriteria"`
	CahierDesCharges    string                 `json:"cahierDesCharges"`
}

// GenerateRequest запрос генерации одного документа
type GenerateRequest struct {
	TemplateType string            `json:"templateType"`
	ProjectData  GenerationProject `json:"projectData"`
	Companies    []MatchedCompany  `json:"companies"`
}

// GenerationResult итог пакетной генерации
type GenerationResult struct {
	Project   GenerationProject   `json:"project"`
	Documents []GeneratedDocument `json:"documents"`
	Failed    []string            `json:"failed,omitempty"`
	Companies int                 `json:"companies"`
}
