package panel

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"panelserver/internal/domain/dashboard"
	"panelserver/internal/domain/templates"
	"panelserver/internal/infrastructure/session"
	"panelserver/internal/view"
)

// Index перенаправляет на главную
func (h *Handler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/dashboard")
}

// DashboardPage главная страница: журнал, счетчики и проекты
func (h *Handler) DashboardPage(c *gin.Context) {
	st := h.session(c)
	data := view.DashboardPage{Page: h.page("Tableau de bord", "dashboard")}

	dv, err := h.dashboardView(c.Request.Context(), st)
	if err != nil {
		h.logger.Error("Failed to load dashboard", "error", err)
		data.Page.Error = toAppError(err).UserMessage()
	}
	data.Dashboard = dv
	c.HTML(http.StatusOK, "dashboard.html", data)
}

// SearchPage мастер консультации; каждая загрузка страницы начинает его заново
func (h *Handler) SearchPage(c *gin.Context) {
	st := h.session(c)
	if _, err := h.Consultation.Wizard().Reset(st.Wizard); err != nil {
		h.logger.Info("Wizard reset skipped", "session", st.ID, "error", err)
	}
	data := view.SearchPage{
		Page:   h.page("Nouvelle consultation", "search"),
		Wizard: h.wizardView(st),
	}
	c.HTML(http.StatusOK, "search.html", data)
}

// DatabasePage справочник компаний; список загружается при первом открытии
func (h *Handler) DatabasePage(c *gin.Context) {
	st := h.session(c)
	data := view.DatabasePage{Page: h.page("Base entreprises", "database")}

	if _, err := h.Companies.EnsureLoaded(c.Request.Context(), st.Directory); err != nil {
		h.logger.Warn("Failed to load companies", "session", st.ID, "error", err)
		data.Page.Error = withFallback(err, msgDirectoryFailed).UserMessage()
	}
	data.Directory = view.NewDirectoryView(st.Directory)
	c.HTML(http.StatusOK, "database.html", data)
}

// DocumentsPage каталог шаблонов документов
func (h *Handler) DocumentsPage(c *gin.Context) {
	st := h.session(c)
	data := view.DocumentsPage{Page: h.page("Documents types", "documents")}

	tv, err := h.templatesView(c.Request.Context(), st)
	if err != nil {
		h.logger.Error("Failed to load templates", "error", err)
		data.Page.Error = toAppError(err).UserMessage()
	}
	data.Templates = tv
	c.HTML(http.StatusOK, "documents.html", data)
}

// SupportPage страница поддержки
func (h *Handler) SupportPage(c *gin.Context) {
	h.session(c)
	c.HTML(http.StatusOK, "support.html", view.SupportPage{
		Page:         h.page("Support", "support"),
		SupportEmail: h.opts.SupportEmail,
	})
}

func (h *Handler) wizardView(st *session.State) view.WizardView {
	wz := h.Consultation.Wizard()
	return view.NewWizardView(wz.State(st.Wizard), wz.Catalog(), h.opts.UI.MaxUploadSize)
}

func (h *Handler) projectFilter(st *session.State) dashboard.ProjectFilter {
	f := st.ProjectFilter()
	if f.Status == "" {
		f.Status = dashboard.StatusFilterAll
	}
	return f
}

func (h *Handler) templateFilter(st *session.State) templates.Filter {
	f := st.TemplateFilter()
	if f.Type == "" {
		f.Type = templates.FilterAll
	}
	return f
}

// dashboardView собирает модель главной; частичные данные отдаются вместе с ошибкой
func (h *Handler) dashboardView(ctx context.Context, st *session.State) (view.DashboardView, error) {
	dv := view.DashboardView{Filter: h.projectFilter(st)}

	activities, err := h.Dashboard.RecentActivities(ctx)
	if err != nil {
		return dv, err
	}
	dv.Activities = view.NewActivityItems(activities, h.opts.Clock())

	counters, err := h.Dashboard.Counters(ctx)
	if err != nil {
		return dv, err
	}
	dv.Counters = *counters

	projects, err := h.Dashboard.Projects(ctx, dv.Filter)
	if err != nil {
		return dv, err
	}
	dv.Projects = projects
	return dv, nil
}

func (h *Handler) templatesView(ctx context.Context, st *session.State) (view.TemplatesView, error) {
	filter := h.templateFilter(st)
	list, err := h.Templates.List(ctx, filter)
	tv := view.NewTemplatesView(list, filter, h.Templates.Types(), h.opts.Clock())
	return tv, err
}
