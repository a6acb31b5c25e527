package panel

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"panelserver/internal/api/events"
	"panelserver/internal/api/handlers/common"
	"panelserver/internal/application/companies"
	"panelserver/internal/application/consultation"
	"panelserver/internal/domain/dashboard"
	"panelserver/internal/domain/support"
	"panelserver/internal/domain/templates"
	"panelserver/internal/infrastructure/session"
	"panelserver/internal/view"
	apperrors "panelserver/server/errors"
	"panelserver/server/monitoring"
)

// DefaultCookieName имя cookie сессии по умолчанию
const DefaultCookieName = "panel_session"

// Deps зависимости обработчика интерфейса
type Deps struct {
	Sessions     *session.Store
	Consultation *consultation.UseCase
	Companies    *companies.UseCase
	Templates    templates.Service
	Dashboard    dashboard.Service
	Support      support.Service
	Renderer     *view.Renderer
	ErrorMetrics *apperrors.ErrorMetricsCollector
	Metrics      *monitoring.MetricsCollector
}

// Options параметры обработчика
type Options struct {
	CookieName   string
	UI           view.UISettings
	SupportEmail string
	Clock        func() time.Time
	Logger       *slog.Logger
}

// Handler страницы и фрагментный API Panel Entreprises
type Handler struct {
	Deps
	events *events.Dispatcher
	opts   Options
	logger *slog.Logger
}

// NewHandler создает обработчик и регистрирует таблицу событий
func NewHandler(deps Deps, opts Options) *Handler {
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.UI.AlertDuration <= 0 {
		opts.UI.AlertDuration = 5 * time.Second
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if deps.ErrorMetrics == nil {
		deps.ErrorMetrics = apperrors.NewErrorMetricsCollector()
	}
	if deps.Metrics == nil {
		deps.Metrics = monitoring.NewMetricsCollector()
	}

	h := &Handler{
		Deps:   deps,
		events: events.NewDispatcher(opts.Logger),
		opts:   opts,
		logger: opts.Logger,
	}
	h.registerWizardEvents()
	h.registerDirectoryEvents()
	h.registerTemplateEvents()
	h.registerDashboardEvents()
	h.registerSupportEvents()
	h.registerConfirmEvents()
	return h
}

// EventTypes зарегистрированные типы событий
func (h *Handler) EventTypes() []string {
	return h.events.Types()
}

// session возвращает состояние браузера, создавая сессию и cookie при необходимости
func (h *Handler) session(c *gin.Context) *session.State {
	id, _ := c.Cookie(h.opts.CookieName)
	st, created := h.Sessions.GetOrCreate(id)
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(h.opts.CookieName, st.ID, 0, "/", "", false, true)
	}
	return st
}

// page общие данные страницы
func (h *Handler) page(title, active string) view.Page {
	return view.Page{Title: title, Active: active, UI: h.opts.UI}
}

// add рендерит фрагмент и добавляет его в ответ
func (h *Handler) add(res *events.Result, target, name string, data any) error {
	html, err := h.Renderer.Fragment(name, data)
	if err != nil {
		return apperrors.NewInternalError("failed to render fragment", err).WithContext(name)
	}
	res.Add(target, html)
	return nil
}

// respond пишет результат события или ошибку в конверте JSON
func (h *Handler) respond(c *gin.Context, res *events.Result, err error) {
	if res == nil {
		res = events.NewResult()
	}
	if err != nil {
		appErr := toAppError(err)
		res.Alert = &events.Alert{Type: string(appErr.AlertType()), Message: appErr.UserMessage()}
		h.fillAlert(res)
		common.WriteAppError(c, h.ErrorMetrics, appErr, res)
		return
	}
	h.fillAlert(res)
	common.WriteJSONResponse(c, res, http.StatusOK)
}

func (h *Handler) fillAlert(res *events.Result) {
	if res.Alert != nil && res.Alert.Duration == 0 {
		res.Alert.Duration = h.opts.UI.AlertDuration.Milliseconds()
	}
}

// HandleEvent обрабатывает событие интерфейса
// @Summary Событие интерфейса
// @Description Выполняет событие (wizard.*, directory.*, templates.*, dashboard.*, support.*, confirm.resolve) и возвращает фрагменты HTML
// @Tags events
// @Accept json
// @Produce json
// @Param event body events.Event true "Событие"
// @Success 200 {object} common.JSONResponse{data=events.Result}
// @Failure 500 {object} common.JSONResponse
// @Router /events [post]
func (h *Handler) HandleEvent(c *gin.Context) {
	var ev events.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		h.respond(c, nil, apperrors.NewValidationError("Requête invalide", err))
		return
	}
	st := h.session(c)
	start := time.Now()
	res, err := h.events.Dispatch(c.Request.Context(), st, ev)
	h.Metrics.RecordEvent(ev.Type, err != nil, time.Since(start))
	if err != nil {
		h.logger.Info("Event rejected", "type", ev.Type, "session", st.ID, "error", err)
	}
	h.respond(c, res, err)
}
