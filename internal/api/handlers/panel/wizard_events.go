package panel

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"panelserver/internal/api/events"
	"panelserver/internal/domain/wizard"
	"panelserver/internal/infrastructure/session"
	"panelserver/internal/view"
)

type stepPayload struct {
	Step events.Int `json:"step"`
}

type idPayload struct {
	ID string `json:"id"`
}

type criterionPayload struct {
	ID       events.Int  `json:"id"`
	Selected events.Bool `json:"selected"`
}

type weightPayload struct {
	ID     events.Int `json:"id"`
	Weight events.Int `json:"weight"`
}

type companyTogglePayload struct {
	ID       string      `json:"id"`
	Selected events.Bool `json:"selected"`
}

type manualCompanyPayload struct {
	Name           string         `json:"name"`
	Location       string         `json:"location"`
	Domain         string         `json:"domain"`
	CA             string         `json:"ca"`
	Employees      string         `json:"employees"`
	Certifications events.Strings `json:"certifications"`
}

type projectDataPayload struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type generatePayload struct {
	Types events.Strings `json:"types"`
}

func (h *Handler) registerWizardEvents() {
	h.events.Register("wizard.goToStep", events.Typed(h.goToStep))
	h.events.Register("wizard.retryUpload", events.Typed(h.retryUpload))
	h.events.Register("wizard.toggleSelectionCriterion", events.Typed(h.toggleSelectionCriterion))
	h.events.Register("wizard.previewAttributionWeight", events.Typed(h.previewAttributionWeight))
	h.events.Register("wizard.commitAttributionWeight", events.Typed(h.commitAttributionWeight))
	h.events.Register("wizard.findMatchingCompanies", events.Typed(h.findMatchingCompanies))
	h.events.Register("wizard.toggleCompany", events.Typed(h.toggleCompany))
	h.events.Register("wizard.openManualCompanyForm", events.Typed(h.openManualCompanyForm))
	h.events.Register("wizard.addManualCompany", events.Typed(h.addManualCompany))
	h.events.Register("wizard.viewCompanyDetails", events.Typed(h.viewCompanyDetails))
	h.events.Register("wizard.updateProjectData", events.Typed(h.updateProjectData))
	h.events.Register("wizard.generateDocuments", events.Typed(h.generateDocuments))
}

// wizardFragments индикатор шагов и панель текущего шага
func (h *Handler) wizardFragments(res *events.Result, st *session.State) error {
	v := h.wizardView(st)
	if err := h.add(res, view.TargetStepIndicator, "wizard_steps", v); err != nil {
		return err
	}
	return h.add(res, view.TargetWizard, "wizard_panel", v)
}

func (h *Handler) goToStep(_ context.Context, st *session.State, p stepPayload) (*events.Result, error) {
	if _, err := h.Consultation.Wizard().GoToStep(st.Wizard, wizard.Step(p.Step)); err != nil {
		return nil, err
	}
	res := events.NewResult()
	return res, h.wizardFragments(res, st)
}

func (h *Handler) retryUpload(_ context.Context, st *session.State, _ struct{}) (*events.Result, error) {
	h.Consultation.Wizard().RetryUpload(st.Wizard)
	res := events.NewResult()
	return res, h.wizardFragments(res, st)
}

func (h *Handler) toggleSelectionCriterion(_ context.Context, st *session.State, p criterionPayload) (*events.Result, error) {
	if _, err := h.Consultation.Wizard().ToggleSelectionCriterion(st.Wizard, int(p.ID), bool(p.Selected)); err != nil {
		return nil, err
	}
	return events.NewResult(), nil
}

// previewAttributionWeight обновляет только подпись ползунка; состояние не меняется
func (h *Handler) previewAttributionWeight(_ context.Context, st *session.State, p weightPayload) (*events.Result, error) {
	weight, err := h.Consultation.Wizard().PreviewAttributionWeight(st.Wizard, int(p.ID), int(p.Weight))
	if err != nil {
		return nil, err
	}
	return events.NewResult().Add(view.TargetWeightValue(int(p.ID)), strconv.Itoa(weight)+"%"), nil
}

func (h *Handler) commitAttributionWeight(_ context.Context, st *session.State, p weightPayload) (*events.Result, error) {
	total, err := h.Consultation.Wizard().CommitAttributionWeight(st.Wizard, int(p.ID), int(p.Weight))
	if err != nil {
		return nil, err
	}
	res := events.NewResult().Add(view.TargetWeightValue(int(p.ID)), strconv.Itoa(int(p.Weight))+"%")
	return res, h.add(res, view.TargetAttributionTotal, "attribution_total", total)
}

func (h *Handler) findMatchingCompanies(ctx context.Context, st *session.State, _ struct{}) (*events.Result, error) {
	if _, err := h.Consultation.Wizard().FindMatches(ctx, st.Wizard); err != nil {
		return nil, err
	}
	res := events.NewResult()
	return res, h.wizardFragments(res, st)
}

func (h *Handler) toggleCompany(_ context.Context, st *session.State, p companyTogglePayload) (*events.Result, error) {
	count, err := h.Consultation.Wizard().ToggleCompany(st.Wizard, p.ID, bool(p.Selected))
	if err != nil {
		return nil, err
	}
	res := events.NewResult()
	return res, h.add(res, view.TargetSelectedCount, "selected_count", count)
}

func (h *Handler) openManualCompanyForm(_ context.Context, _ *session.State, _ struct{}) (*events.Result, error) {
	res := events.NewResult()
	return res, h.add(res, view.TargetModal, "manual_company_form", view.NewManualCompanyView())
}

func (h *Handler) addManualCompany(_ context.Context, st *session.State, p manualCompanyPayload) (*events.Result, error) {
	_, _, err := h.Consultation.Wizard().AddManualCompany(st.Wizard, wizard.ManualCompanyInput{
		Name:           p.Name,
		Location:       p.Location,
		Domain:         p.Domain,
		CA:             p.CA,
		Employees:      p.Employees,
		Certifications: p.Certifications,
	})
	if err != nil {
		return nil, err
	}
	// Обновляется только таблица и счетчик, остальной мастер не трогается
	v := h.wizardView(st)
	res := events.NewResult().Add(view.TargetModal, "")
	if err := h.add(res, view.TargetMatchedCompanies, "matched_companies_table", v); err != nil {
		return nil, err
	}
	if err := h.add(res, view.TargetSelectedCount, "selected_count", v.SelectedCount); err != nil {
		return nil, err
	}
	return res.WithAlert(events.AlertSuccess, "Entreprise ajoutée avec succès."), nil
}

func (h *Handler) viewCompanyDetails(_ context.Context, st *session.State, p idPayload) (*events.Result, error) {
	company, err := h.Consultation.Wizard().CompanyDetails(st.Wizard, p.ID)
	if err != nil {
		return nil, err
	}
	res := events.NewResult()
	return res, h.add(res, view.TargetModal, "matched_company_details", view.CompanyDetailsView{Company: company})
}

func (h *Handler) updateProjectData(_ context.Context, st *session.State, p projectDataPayload) (*events.Result, error) {
	if _, err := h.Consultation.Wizard().UpdateProjectData(st.Wizard, p.Field, p.Value); err != nil {
		return nil, err
	}
	return events.NewResult(), nil
}

func (h *Handler) generateDocuments(ctx context.Context, st *session.State, p generatePayload) (*events.Result, error) {
	result, err := h.Consultation.GenerateDocuments(ctx, st.Wizard, p.Types)
	if err != nil {
		return nil, err
	}

	res := events.NewResult()
	if err := h.add(res, view.TargetGeneratedDocs, "generated_documents", result.Documents); err != nil {
		return nil, err
	}
	if len(result.Failed) > 0 {
		return res.WithAlert(events.AlertWarning, fmt.Sprintf(
			"%d document(s) généré(s). Échec pour : %s.", len(result.Documents), h.documentTitles(result.Failed))), nil
	}
	return res.WithAlert(events.AlertSuccess, "Documents générés avec succès."), nil
}

func (h *Handler) documentTitles(keys []string) string {
	catalog := h.Consultation.Wizard().Catalog()
	titles := make([]string, 0, len(keys))
	for _, key := range keys {
		if dt, ok := catalog.Get(key); ok {
			titles = append(titles, dt.Title)
			continue
		}
		titles = append(titles, key)
	}
	return strings.Join(titles, ", ")
}
