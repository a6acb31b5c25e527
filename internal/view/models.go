package view

import (
	"html/template"
	"strconv"
	"strings"
	"time"

	"panelserver/internal/domain/confirmation"
	"panelserver/internal/domain/dashboard"
	"panelserver/internal/domain/directory"
	"panelserver/internal/domain/repositories"
	"panelserver/internal/domain/templates"
	"panelserver/internal/domain/wizard"
)

// Цели фрагментов на странице
const (
	TargetModal            = "#modal-root"
	TargetStepIndicator    = "#step-indicator"
	TargetWizard           = "#step-content"
	TargetAttributionTotal = "#attribution-total"
	TargetSelectedCount    = "#selected-count"
	TargetMatchedCompanies = "#matched-companies"
	TargetGeneratedDocs    = "#generated-documents"
	TargetCompaniesTable   = "#companies-table"
	TargetPagination       = "#pagination"
	TargetDirectoryFilters = "#directory-filters"
	TargetTemplates        = "#documents-grid"
	TargetActivities       = "#activity-list"
	TargetProjects         = "#project-list"
	TargetCounters         = "#project-counters"
	TargetAssistantAnswer  = "#assistant-answer"
)

// TargetWeightValue цель значения веса одного критерия
func TargetWeightValue(id int) string {
	return "#weight-value-" + strconv.Itoa(id)
}

// Page общие данные страниц
type Page struct {
	Title  string
	Active string
	UI     UISettings
	// Error показывается уведомлением при открытии страницы
	Error string
}

// UISettings параметры интерфейса для JavaScript
type UISettings struct {
	AlertDuration  time.Duration
	SearchDebounce time.Duration
	MaxUploadSize  int64
}

// ============================================================================
// Мастер консультации
// ============================================================================

// StepIndicator состояние одного шага в индикаторе
type StepIndicator struct {
	Number int
	Label  string
	Status string // completed, active, future
}

var stepLabels = []string{"Cahier des charges", "Critères", "Entreprises", "Documents"}

// WizardView модель страницы и фрагментов мастера
type WizardView struct {
	State         wizard.State
	Steps         []StepIndicator
	Total         wizard.AttributionTotal
	SelectedCount int
	DocumentTypes []wizard.DocumentType
	MaxUploadSize int64
	AcceptedTypes string
}

// NewWizardView строит модель по снимку состояния
func NewWizardView(s wizard.State, catalog *wizard.DocumentCatalog, maxUploadSize int64) WizardView {
	v := WizardView{
		State:         s,
		Total:         wizard.ComputeAttributionTotal(s.AttributionCriteria),
		SelectedCount: wizard.SelectedCount(s),
		MaxUploadSize: maxUploadSize,
		AcceptedTypes: strings.Join(wizard.AcceptedMimeTypes(), ","),
	}
	if catalog != nil {
		v.DocumentTypes = catalog.All()
	}
	for i, label := range stepLabels {
		number := i + 1
		status := "future"
		switch {
		case number < int(s.CurrentStep):
			status = "completed"
		case number == int(s.CurrentStep):
			status = "active"
		}
		v.Steps = append(v.Steps, StepIndicator{Number: number, Label: label, Status: status})
	}
	return v
}

// ConnectorDone true, если соединитель после шага n пройден
func (v WizardView) ConnectorDone(n int) bool {
	return n < int(v.State.CurrentStep)
}

// CompanyDetailsView модальное окно деталей компании шага 3
type CompanyDetailsView struct {
	Company wizard.MatchedCompany
}

// ManualCompanyView форма ручного добавления компании
type ManualCompanyView struct {
	Certifications []string
}

// NewManualCompanyView форма с фиксированным списком сертификатов
func NewManualCompanyView() ManualCompanyView {
	return ManualCompanyView{Certifications: wizard.ManualCertifications}
}

// ============================================================================
// Справочник компаний
// ============================================================================

// DirectoryView модель таблицы справочника
type DirectoryView struct {
	Page           directory.Page
	Filter         directory.Filter
	Domains        []string
	Certifications []string
}

// NewDirectoryView снимает состояние браузера сессии
func NewDirectoryView(b *directory.Browser) DirectoryView {
	domains, certs := b.Options()
	return DirectoryView{
		Page:           b.Current(),
		Filter:         b.Filter(),
		Domains:        domains,
		Certifications: certs,
	}
}

// CompanyFormView форма добавления или изменения компании
type CompanyFormView struct {
	Input          directory.CompanyInput
	Certifications []string
	IsUpdate       bool
}

// NewCompanyFormView пустая форма или форма редактирования
func NewCompanyFormView(company *directory.CompanyRecord) CompanyFormView {
	v := CompanyFormView{Certifications: directory.FormCertifications}
	if company != nil {
		v.Input = directory.InputFrom(*company)
		v.IsUpdate = true
	}
	return v
}

// DirectoryDetailsView окно деталей компании справочника
type DirectoryDetailsView struct {
	Company directory.CompanyRecord
}

// ============================================================================
// Шаблоны документов
// ============================================================================

// TemplatesView модель каталога шаблонов
type TemplatesView struct {
	Templates []TemplateCard
	Filter    templates.Filter
	Types     []templates.TypeOption
}

// TemplateCard карточка шаблона
type TemplateCard struct {
	templates.Template
	TypeLabel string
	Uploaded  string
}

// NewTemplatesView строит каталог с подписями типов
func NewTemplatesView(list []templates.Template, filter templates.Filter, types []templates.TypeOption, now time.Time) TemplatesView {
	labels := make(map[string]string, len(types))
	for _, t := range types {
		labels[t.Key] = t.Label
	}
	v := TemplatesView{Filter: filter, Types: types, Templates: make([]TemplateCard, 0, len(list))}
	for _, t := range list {
		label := labels[t.Type]
		if label == "" {
			label = t.Type
		}
		v.Templates = append(v.Templates, TemplateCard{Template: t, TypeLabel: label, Uploaded: RelativeTime(t.UploadedAt, now)})
	}
	return v
}

// PreviewView окно предпросмотра шаблона
type PreviewView struct {
	Preview templates.Preview
	// HTML уже очищен от скриптов
	Content template.HTML
}

// ============================================================================
// Главная страница
// ============================================================================

// ActivityItem запись журнала с относительным временем
type ActivityItem struct {
	Icon  string
	Title string
	When  string
}

// DashboardView модель главной страницы
type DashboardView struct {
	Activities []ActivityItem
	Projects   []dashboard.Project
	Filter     dashboard.ProjectFilter
	Counters   dashboard.ProjectCounters
}

// NewActivityItems переводит журнал в относительное время
func NewActivityItems(list []dashboard.Activity, now time.Time) []ActivityItem {
	items := make([]ActivityItem, 0, len(list))
	for _, a := range list {
		items = append(items, ActivityItem{Icon: a.Icon, Title: a.Title, When: RelativeTime(a.CreatedAt, now)})
	}
	return items
}

// StatusClass CSS класс статуса проекта
func StatusClass(status string) string {
	switch status {
	case repositories.ProjectStatusActive:
		return "active"
	case repositories.ProjectStatusPending:
		return "pending"
	case repositories.ProjectStatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ============================================================================
// Общие окна
// ============================================================================

// ConfirmView модальное окно подтверждения
type ConfirmView struct {
	Token   string
	Message string
}

// NewConfirmView окно для ожидающего подтверждения
func NewConfirmView(p confirmation.Pending) ConfirmView {
	return ConfirmView{Token: p.Token, Message: p.Message}
}

// AssistantAnswerView ответ AI ассистента
type AssistantAnswerView struct {
	Question string
	Answer   string
}

// NewPreviewView доверяет HTML, уже прошедшему SanitizePreview
func NewPreviewView(p templates.Preview) PreviewView {
	return PreviewView{Preview: p, Content: template.HTML(p.PreviewHTML)}
}

// ============================================================================
// Данные страниц
// ============================================================================

// SearchPage страница мастера консультации
type SearchPage struct {
	Page   Page
	Wizard WizardView
}

// DashboardPage главная страница
type DashboardPage struct {
	Page      Page
	Dashboard DashboardView
}

// DatabasePage страница справочника компаний
type DatabasePage struct {
	Page      Page
	Directory DirectoryView
}

// DocumentsPage страница шаблонов документов
type DocumentsPage struct {
	Page      Page
	Templates TemplatesView
}

// SupportPage страница поддержки
type SupportPage struct {
	Page         Page
	SupportEmail string
}
