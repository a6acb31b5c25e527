package panel

import (
	"context"

	"panelserver/internal/api/events"
	"panelserver/internal/domain/dashboard"
	"panelserver/internal/infrastructure/session"
	"panelserver/internal/view"
)

type projectStatusPayload struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (h *Handler) registerDashboardEvents() {
	h.events.Register("dashboard.filterProjects", events.Typed(h.filterProjects))
	h.events.Register("dashboard.updateProjectStatus", events.Typed(h.updateProjectStatus))
}

func (h *Handler) filterProjects(ctx context.Context, st *session.State, f dashboard.ProjectFilter) (*events.Result, error) {
	if f.Status == "" {
		f.Status = dashboard.StatusFilterAll
	}
	projects, err := h.Dashboard.Projects(ctx, f)
	if err != nil {
		return nil, err
	}
	st.SetProjectFilter(f)
	res := events.NewResult()
	return res, h.add(res, view.TargetProjects, "project_list", projects)
}

func (h *Handler) updateProjectStatus(ctx context.Context, st *session.State, p projectStatusPayload) (*events.Result, error) {
	if _, err := h.Dashboard.UpdateProjectStatus(ctx, p.ID, p.Status); err != nil {
		return nil, err
	}

	projects, err := h.Dashboard.Projects(ctx, h.projectFilter(st))
	if err != nil {
		return nil, err
	}
	counters, err := h.Dashboard.Counters(ctx)
	if err != nil {
		return nil, err
	}

	res := events.NewResult()
	if err := h.add(res, view.TargetProjects, "project_list", projects); err != nil {
		return nil, err
	}
	if err := h.add(res, view.TargetCounters, "project_counters", *counters); err != nil {
		return nil, err
	}
	return res.WithAlert(events.AlertSuccess, "Statut du projet mis à jour"), nil
}
