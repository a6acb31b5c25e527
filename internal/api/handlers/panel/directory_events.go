package panel

import (
	"context"
	"fmt"

	"panelserver/internal/api/events"
	"panelserver/internal/domain/directory"
	"panelserver/internal/infrastructure/session"
	"panelserver/internal/view"
)

type pagePayload struct {
	Page events.Int `json:"page"`
}

type companyPayload struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Domain         string         `json:"domain"`
	Location       string         `json:"location"`
	CA             string         `json:"ca"`
	Employees      string         `json:"employees"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	Experience     string         `json:"experience"`
	Certifications events.Strings `json:"certifications"`
}

func (p companyPayload) input() directory.CompanyInput {
	return directory.CompanyInput{
		ID:             p.ID,
		Name:           p.Name,
		Domain:         p.Domain,
		Location:       p.Location,
		CA:             p.CA,
		Employees:      p.Employees,
		Email:          p.Email,
		Phone:          p.Phone,
		Experience:     p.Experience,
		Certifications: p.Certifications,
	}
}

func (h *Handler) registerDirectoryEvents() {
	h.events.Register("directory.filter", events.Typed(h.filterCompanies))
	h.events.Register("directory.changePage", events.Typed(h.changePage))
	h.events.Register("directory.clearFilters", events.Typed(h.clearFilters))
	h.events.Register("directory.viewDetails", events.Typed(h.viewDirectoryDetails))
	h.events.Register("directory.editCompany", events.Typed(h.editCompany))
	h.events.Register("directory.saveCompany", events.Typed(h.saveCompany))
	h.events.Register("directory.deleteCompany", events.Typed(h.deleteCompany))
}

// loadedDirectory гарантирует, что справочник сессии загружен
func (h *Handler) loadedDirectory(ctx context.Context, st *session.State) (*directory.Browser, error) {
	if _, err := h.Companies.EnsureLoaded(ctx, st.Directory); err != nil {
		return nil, withFallback(err, msgDirectoryFailed)
	}
	return st.Directory, nil
}

// directoryFragments таблица и пагинация; withFilters добавляет форму фильтров
func (h *Handler) directoryFragments(res *events.Result, b *directory.Browser, withFilters bool) error {
	v := view.NewDirectoryView(b)
	if withFilters {
		if err := h.add(res, view.TargetDirectoryFilters, "directory_filters", v); err != nil {
			return err
		}
	}
	if err := h.add(res, view.TargetCompaniesTable, "directory_table", v); err != nil {
		return err
	}
	return h.add(res, view.TargetPagination, "directory_pagination", v)
}

// filterCompanies не перерисовывает форму, чтобы не сбить ввод
func (h *Handler) filterCompanies(ctx context.Context, st *session.State, f directory.Filter) (*events.Result, error) {
	b, err := h.loadedDirectory(ctx, st)
	if err != nil {
		return nil, err
	}
	b.SetFilter(f)
	res := events.NewResult()
	return res, h.directoryFragments(res, b, false)
}

func (h *Handler) changePage(ctx context.Context, st *session.State, p pagePayload) (*events.Result, error) {
	b, err := h.loadedDirectory(ctx, st)
	if err != nil {
		return nil, err
	}
	b.ChangePage(int(p.Page))
	res := events.NewResult()
	return res, h.directoryFragments(res, b, false)
}

func (h *Handler) clearFilters(ctx context.Context, st *session.State, _ struct{}) (*events.Result, error) {
	b, err := h.loadedDirectory(ctx, st)
	if err != nil {
		return nil, err
	}
	b.ClearFilters()
	res := events.NewResult()
	return res, h.directoryFragments(res, b, true)
}

func (h *Handler) viewDirectoryDetails(ctx context.Context, st *session.State, p idPayload) (*events.Result, error) {
	b, err := h.loadedDirectory(ctx, st)
	if err != nil {
		return nil, err
	}
	company, err := b.Find(p.ID)
	if err != nil {
		return nil, err
	}
	res := events.NewResult()
	return res, h.add(res, view.TargetModal, "directory_details", view.DirectoryDetailsView{Company: company})
}

// editCompany открывает пустую форму или форму редактирования, если передан id
func (h *Handler) editCompany(ctx context.Context, st *session.State, p idPayload) (*events.Result, error) {
	form := view.NewCompanyFormView(nil)
	if p.ID != "" {
		b, err := h.loadedDirectory(ctx, st)
		if err != nil {
			return nil, err
		}
		company, err := b.Find(p.ID)
		if err != nil {
			return nil, err
		}
		form = view.NewCompanyFormView(&company)
	}
	res := events.NewResult()
	return res, h.add(res, view.TargetModal, "company_form", form)
}

func (h *Handler) saveCompany(ctx context.Context, st *session.State, p companyPayload) (*events.Result, error) {
	b, err := h.loadedDirectory(ctx, st)
	if err != nil {
		return nil, err
	}
	result, err := h.Companies.Save(ctx, b, p.input())
	if err != nil {
		return nil, withFallback(err, msgDirectoryFailed)
	}

	res := events.NewResult().Add(view.TargetModal, "")
	if err := h.directoryFragments(res, b, true); err != nil {
		return nil, err
	}
	message := "Entreprise modifiée avec succès"
	if result.Created {
		message = "Entreprise ajoutée avec succès"
	}
	return res.WithAlert(events.AlertSuccess, message), nil
}

// deleteCompany спрашивает подтверждение; удаление выполняет confirm.resolve
func (h *Handler) deleteCompany(ctx context.Context, st *session.State, p idPayload) (*events.Result, error) {
	b, err := h.loadedDirectory(ctx, st)
	if err != nil {
		return nil, err
	}
	company, err := b.Find(p.ID)
	if err != nil {
		return nil, err
	}

	pending := st.Confirmations.Ask(
		fmt.Sprintf("Êtes-vous sûr de vouloir supprimer l'entreprise \"%s\" ?", company.Name),
		func(ctx context.Context) (any, error) {
			if _, err := h.Companies.Delete(ctx, b, company.ID); err != nil {
				return nil, withFallback(err, msgDirectoryFailed)
			}
			res := events.NewResult()
			if err := h.directoryFragments(res, b, true); err != nil {
				return nil, err
			}
			return res.WithAlert(events.AlertSuccess, "Entreprise supprimée avec succès"), nil
		},
	)
	res := events.NewResult()
	return res, h.add(res, view.TargetModal, "confirm_modal", view.NewConfirmView(pending))
}
