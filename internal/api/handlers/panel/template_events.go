package panel

import (
	"context"

	"panelserver/internal/api/events"
	"panelserver/internal/domain/templates"
	"panelserver/internal/infrastructure/session"
	"panelserver/internal/view"
)

const (
	msgPreviewFailed = "Erreur lors du chargement de la prévisualisation"
	msgDeleteFailed  = "Erreur lors de la suppression du document"
)

func (h *Handler) registerTemplateEvents() {
	h.events.Register("templates.filter", events.Typed(h.filterTemplates))
	h.events.Register("templates.preview", events.Typed(h.previewTemplate))
	h.events.Register("templates.delete", events.Typed(h.deleteTemplate))
}

func (h *Handler) templatesGrid(ctx context.Context, st *session.State, res *events.Result) error {
	tv, err := h.templatesView(ctx, st)
	if err != nil {
		return err
	}
	return h.add(res, view.TargetTemplates, "templates_list", tv)
}

func (h *Handler) filterTemplates(ctx context.Context, st *session.State, f templates.Filter) (*events.Result, error) {
	if f.Type == "" {
		f.Type = templates.FilterAll
	}
	st.SetTemplateFilter(f)
	res := events.NewResult()
	return res, h.templatesGrid(ctx, st, res)
}

func (h *Handler) previewTemplate(ctx context.Context, _ *session.State, p idPayload) (*events.Result, error) {
	preview, err := h.Templates.Preview(ctx, p.ID)
	if err != nil {
		return nil, withFallback(err, msgPreviewFailed)
	}
	res := events.NewResult()
	return res, h.add(res, view.TargetModal, "template_preview", view.NewPreviewView(*preview))
}

func (h *Handler) deleteTemplate(ctx context.Context, st *session.State, p idPayload) (*events.Result, error) {
	if _, err := h.Templates.Get(ctx, p.ID); err != nil {
		return nil, err
	}

	pending := st.Confirmations.Ask(
		"Êtes-vous sûr de vouloir supprimer ce document ?",
		func(ctx context.Context) (any, error) {
			if err := h.Templates.Delete(ctx, p.ID); err != nil {
				return nil, withFallback(err, msgDeleteFailed)
			}
			res := events.NewResult()
			if err := h.templatesGrid(ctx, st, res); err != nil {
				return nil, err
			}
			return res.WithAlert(events.AlertSuccess, "Document supprimé avec succès"), nil
		},
	)
	res := events.NewResult()
	return res, h.add(res, view.TargetModal, "confirm_modal", view.NewConfirmView(pending))
}
