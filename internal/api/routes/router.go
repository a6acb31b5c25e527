package routes

import (
	"github.com/gin-gonic/gin"

	"panelserver/internal/api/handlers/panel"
	"panelserver/internal/container"
	"panelserver/server/monitoring"
)

// Router управляет маршрутизацией приложения
// Централизует регистрацию всех маршрутов
type Router struct {
	engine       *gin.Engine
	panelHandler *panel.Handler
	health       *monitoring.HealthChecker
	staticDir    string
}

// RegisterOptions задают опции регистрации маршрутов
type RegisterOptions struct {
	SkipStaticRoutes bool
	SkipHealthRoutes bool
}

// NewRouter создает новый роутер
func NewRouter(engine *gin.Engine, c *container.Container) *Router {
	staticDir := "./static"
	if c.Config != nil && c.Config.StaticDir != "" {
		staticDir = c.Config.StaticDir
	}
	return &Router{
		engine:       engine,
		panelHandler: c.PanelHandler,
		health:       c.HealthChecker,
		staticDir:    staticDir,
	}
}

// RegisterAllRoutes регистрирует все маршруты приложения
func (r *Router) RegisterAllRoutes(opts ...RegisterOptions) {
	var options RegisterOptions
	if len(opts) > 0 {
		options = opts[0]
	}

	r.engine.SetHTMLTemplate(r.panelHandler.Renderer.Template())

	r.registerPageRoutes()
	r.registerAPIRoutes()

	if !options.SkipHealthRoutes && r.health != nil {
		r.engine.GET("/health", r.health.GinHandler())
	}
	if !options.SkipStaticRoutes {
		RegisterStaticRoutes(r.engine, r.staticDir)
	}
}

// registerPageRoutes страницы интерфейса
func (r *Router) registerPageRoutes() {
	h := r.panelHandler
	r.engine.GET("/", h.Index)
	r.engine.GET("/dashboard", h.DashboardPage)
	r.engine.GET("/search", h.SearchPage)
	r.engine.GET("/database", h.DatabasePage)
	r.engine.GET("/documents", h.DocumentsPage)
	r.engine.GET("/support", h.SupportPage)
}

// registerAPIRoutes события интерфейса, загрузки и выгрузки файлов
func (r *Router) registerAPIRoutes() {
	h := r.panelHandler
	api := r.engine.Group("/api")
	{
		api.POST("/events", h.HandleEvent)
		api.POST("/wizard/upload", h.UploadSpecification)
		api.POST("/database/import", h.ImportCompanies)
		api.GET("/database/export", h.ExportCompanies)
		api.POST("/templates/upload", h.UploadTemplate)
		api.GET("/metrics", h.MetricsSnapshot)
	}
}

// RegisterStaticRoutes регистрирует маршруты для статического контента
func RegisterStaticRoutes(engine *gin.Engine, staticDir string) {
	if staticDir == "" {
		staticDir = "./static"
	}
	engine.Static("/static", staticDir)
}
