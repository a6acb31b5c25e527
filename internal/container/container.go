package container

import (
	"fmt"
	"log"
	"log/slog"
	"sync"

	"panelserver/database"
	"panelserver/internal/api/handlers/panel"
	"panelserver/internal/application/companies"
	"panelserver/internal/application/consultation"
	"panelserver/internal/config"
	"panelserver/internal/domain/dashboard"
	"panelserver/internal/domain/directory"
	"panelserver/internal/domain/support"
	"panelserver/internal/domain/templates"
	"panelserver/internal/domain/wizard"
	"panelserver/internal/infrastructure/backend"
	"panelserver/internal/infrastructure/persistence"
	"panelserver/internal/infrastructure/session"
	"panelserver/internal/view"
	apperrors "panelserver/server/errors"
	"panelserver/server/monitoring"
)

// Version версия приложения для /health
const Version = "1.0.0"

// Container контейнер зависимостей
// Управляет жизненным циклом всех компонентов приложения
type Container struct {
	mu sync.RWMutex

	// Конфигурация
	Config *config.Config
	Logger *slog.Logger

	// Базы данных
	JournalDB *database.JournalDB

	// Внешний backend
	Backend *backend.Client

	// Сессии браузеров
	Sessions *session.Store

	// Сервисы (бизнес-логика)
	Catalog          *wizard.DocumentCatalog
	WizardService    wizard.Service
	DirectoryService directory.Service
	DashboardService dashboard.Service
	TemplateService  templates.Service
	SupportService   support.Service

	// Use cases
	ConsultationUseCase *consultation.UseCase
	CompaniesUseCase    *companies.UseCase

	// Представление
	Renderer *view.Renderer

	// Мониторинг
	Metrics       *monitoring.MetricsCollector
	ErrorMetrics  *apperrors.ErrorMetricsCollector
	HealthChecker *monitoring.HealthChecker

	// Обработчики (HTTP handlers)
	PanelHandler *panel.Handler

	closed bool
}

// NewContainer создает контейнер и инициализирует все компоненты
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{Config: cfg, Logger: logger}

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	if err := c.initServices(); err != nil {
		c.Close()
		return nil, err
	}
	c.initMonitoring()
	c.initHandlers()

	return c, nil
}

// initDatabase открывает локальный журнал
func (c *Container) initDatabase() error {
	db, err := database.NewJournalDBWithConfig(c.Config.JournalDatabasePath, database.DBConfig{
		MaxOpenConns:    c.Config.MaxOpenConns,
		MaxIdleConns:    c.Config.MaxIdleConns,
		ConnMaxLifetime: c.Config.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("failed to open journal database: %w", err)
	}
	c.JournalDB = db
	log.Printf("Журнал открыт: %s", c.Config.JournalDatabasePath)
	return nil
}

// initServices создает клиента backend, сервисы и use cases
func (c *Container) initServices() error {
	bc := c.Config.Backend
	c.Backend = backend.NewClient(backend.Config{
		BaseURL:         bc.BaseURL,
		Timeout:         bc.Timeout,
		RateLimit:       bc.RateLimit,
		Burst:           bc.Burst,
		BreakerFailures: bc.BreakerFailures,
		BreakerTimeout:  bc.BreakerTimeout,
		Logger:          c.Logger,
	})

	catalog, err := wizard.LoadDocumentCatalog()
	if err != nil {
		return fmt.Errorf("failed to load document catalog: %w", err)
	}
	c.Catalog = catalog

	renderer, err := view.NewRenderer()
	if err != nil {
		return err
	}
	c.Renderer = renderer

	c.Sessions = session.NewStore(session.Config{
		TTL:        c.Config.Session.TTL,
		MaxEntries: c.Config.Session.MaxEntries,
		ConfirmTTL: c.Config.Session.ConfirmTTL,
		PageSize:   c.Config.UI.PageSize,
		OnEvict: func(id string) {
			c.Logger.Debug("Session evicted", "session_id", id)
		},
	})

	c.DashboardService = dashboard.NewService(
		persistence.NewActivityRepository(c.JournalDB),
		persistence.NewProjectRepository(c.JournalDB),
		c.Logger,
	)
	c.WizardService = wizard.NewService(c.Backend, catalog, wizard.Options{
		MaxUploadSize: c.Config.UI.MaxUploadSize,
		Logger:        c.Logger,
	})
	c.DirectoryService = directory.NewService(c.Backend, c.Logger)
	c.TemplateService = templates.NewService(
		persistence.NewTemplateRepository(c.JournalDB),
		c.Backend,
		TemplateTypes(catalog),
		c.Logger,
	)
	c.SupportService = support.NewService(c.Backend, c.Config.UI.SupportEmail, c.Logger)

	c.ConsultationUseCase = consultation.NewUseCase(c.WizardService, c.DashboardService, c.Logger)
	c.CompaniesUseCase = companies.NewUseCase(c.DirectoryService, c.DashboardService, c.Logger)

	return nil
}

// initMonitoring метрики и проверки здоровья
func (c *Container) initMonitoring() {
	c.Metrics = monitoring.NewMetricsCollector()
	c.ErrorMetrics = apperrors.NewErrorMetricsCollector()

	c.HealthChecker = monitoring.NewHealthChecker(Version)
	c.HealthChecker.RegisterComponent("journal", monitoring.PingCheck(c.JournalDB))
	c.HealthChecker.RegisterComponent("backend", monitoring.BreakerCheck(c.Backend.BreakerState))
}

// initHandlers создает HTTP обработчики
func (c *Container) initHandlers() {
	c.PanelHandler = panel.NewHandler(panel.Deps{
		Sessions:     c.Sessions,
		Consultation: c.ConsultationUseCase,
		Companies:    c.CompaniesUseCase,
		Templates:    c.TemplateService,
		Dashboard:    c.DashboardService,
		Support:      c.SupportService,
		Renderer:     c.Renderer,
		ErrorMetrics: c.ErrorMetrics,
		Metrics:      c.Metrics,
	}, panel.Options{
		CookieName: c.Config.Session.CookieName,
		UI: view.UISettings{
			AlertDuration:  c.Config.UI.AlertDuration,
			SearchDebounce: c.Config.UI.SearchDebounce,
			MaxUploadSize:  c.Config.UI.MaxUploadSize,
		},
		SupportEmail: c.Config.UI.SupportEmail,
		Logger:       c.Logger,
	})
}

// TemplateTypes типы шаблонов: по одному на каждый вид генерируемого документа
func TemplateTypes(catalog *wizard.DocumentCatalog) []templates.TypeOption {
	all := catalog.All()
	types := make([]templates.TypeOption, 0, len(all))
	for _, dt := range all {
		types = append(types, templates.TypeOption{Key: dt.Key, Label: dt.Title})
	}
	return types
}

// Close освобождает ресурсы контейнера
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.JournalDB != nil {
		if err := c.JournalDB.Close(); err != nil {
			return fmt.Errorf("failed to close journal database: %w", err)
		}
	}
	return nil
}
