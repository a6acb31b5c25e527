package view

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelserver/internal/domain/confirmation"
	"panelserver/internal/domain/directory"
	"panelserver/internal/domain/wizard"
)

func renderDoc(t *testing.T, r *Renderer, name string, data any) *goquery.Document {
	t.Helper()
	html, err := r.Fragment(name, data)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	return r
}

func TestRenderConfirmModal(t *testing.T) {
	r := newTestRenderer(t)
	doc := renderDoc(t, r, "confirm_modal", NewConfirmView(confirmation.Pending{Token: "tok-1", Message: `Supprimer "<b>A</b>" ?`}))

	assert.Equal(t, `Supprimer "<b>A</b>" ?`, doc.Find(".confirm-message").Text())
	assert.Equal(t, 0, doc.Find(".confirm-message b").Length())

	confirm := doc.Find(`[data-confirmed="true"]`)
	require.Equal(t, 1, confirm.Length())
	token, _ := confirm.Attr("data-token")
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, 2, doc.Find(`[data-confirmed="false"]`).Length())
}

func TestRenderWizardSteps(t *testing.T) {
	r := newTestRenderer(t)
	catalog, err := wizard.LoadDocumentCatalog()
	require.NoError(t, err)

	doc := renderDoc(t, r, "wizard_steps", NewWizardView(wizard.NewState(), catalog, wizard.DefaultMaxUploadSize))

	assert.Equal(t, 4, doc.Find(".step").Length())
	assert.True(t, doc.Find(`.step[data-step="1"]`).HasClass("active"))
	assert.Equal(t, 3, doc.Find(".step-connector").Length())
	assert.Equal(t, 0, doc.Find(".step-connector.completed").Length())
}

func TestRenderWizardStepOneUpload(t *testing.T) {
	r := newTestRenderer(t)
	catalog, err := wizard.LoadDocumentCatalog()
	require.NoError(t, err)

	doc := renderDoc(t, r, "wizard_panel", NewWizardView(wizard.NewState(), catalog, wizard.DefaultMaxUploadSize))

	form := doc.Find("form[data-upload]")
	require.Equal(t, 1, form.Length())
	action, _ := form.Attr("data-upload")
	assert.Equal(t, "/api/wizard/upload", action)
	assert.Equal(t, 1, form.Find(`input[type="file"][data-autosubmit]`).Length())
	assert.Equal(t, "10485760", form.AttrOr("data-max-size", ""))
	assert.Equal(t, strings.Join(wizard.AcceptedMimeTypes(), ","), form.AttrOr("data-accept-types", ""))
	assert.NotEmpty(t, form.AttrOr("data-type-error", ""))
}

func TestRenderDirectoryTable(t *testing.T) {
	r := newTestRenderer(t)

	b := directory.NewBrowser(1)
	b.Replace([]directory.CompanyRecord{
		{ID: "a1", Name: "Elec Ouest", Domain: "Électricité", Certifications: []string{"MASE", "ISO 9001"}},
		{ID: "a2", Name: "Hydro Services", Domain: "Hydraulique"},
	})
	v := NewDirectoryView(b)

	doc := renderDoc(t, r, "directory_table", v)
	rows := doc.Find("tbody tr")
	require.Equal(t, 1, rows.Length())
	assert.Equal(t, "EO", rows.Find(".company-avatar").Text())
	assert.True(t, rows.Find(".domain-badge").HasClass("domain-electricity"))
	assert.Equal(t, 2, rows.Find(".certification-badge").Length())

	pagination := renderDoc(t, r, "directory_pagination", v)
	assert.Contains(t, pagination.Find(".pagination-info").Text(), "Affichage de 1-1 sur 2 entreprises")
	_, prevDisabled := pagination.Find(`[data-page="0"]`).Attr("disabled")
	assert.True(t, prevDisabled)
	_, nextDisabled := pagination.Find(`[data-page="2"]`).Attr("disabled")
	assert.False(t, nextDisabled)
}

func TestRenderDirectoryTableEmpty(t *testing.T) {
	r := newTestRenderer(t)
	doc := renderDoc(t, r, "directory_table", NewDirectoryView(directory.NewBrowser(10)))

	assert.Equal(t, "Aucune entreprise ne correspond à vos critères", strings.TrimSpace(doc.Find(".empty-state").Text()))
}

func TestRenderUnknownTemplate(t *testing.T) {
	r := newTestRenderer(t)
	_, err := r.Fragment("missing_fragment", nil)
	assert.Error(t, err)
}
