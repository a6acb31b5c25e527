package consultation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelserver/database"
	"panelserver/internal/domain/dashboard"
	"panelserver/internal/domain/wizard"
	"panelserver/internal/infrastructure/persistence"
)

// fakeBackend внешний сервис с заранее заданными ответами
type fakeBackend struct {
	mu        sync.Mutex
	generated []string
	failType  string
}

func (f *fakeBackend) ParseDocument(ctx context.Context, file wizard.UploadFile) (*wizard.ParsedDocument, error) {
	return &wizard.ParsedDocument{FileName: file.Name, MimeType: file.MimeType, Text: "cahier des charges"}, nil
}

func (f *fakeBackend) AnalyzeDocument(ctx context.Context, text string) (*wizard.Analysis, error) {
	return &wizard.Analysis{
		Keywords:            []string{"maintenance"},
		SelectionCriteria:   []wizard.SelectionCriterion{{ID: 1, Name: "MASE", Selected: true}},
		AttributionCriteria: []wizard.AttributionCriterion{{ID: 1, Name: "Prix", Weight: 100}},
	}, nil
}

func (f *fakeBackend) FindMatchingCompanies(ctx context.Context, criteria []wizard.SelectionCriterion) ([]wizard.MatchedCompany, error) {
	return []wizard.MatchedCompany{
		{ID: "c1", Name: "Alpha", Score: 90},
		{ID: "c2", Name: "Beta", Score: 70},
	}, nil
}

func (f *fakeBackend) GenerateDocument(ctx context.Context, req wizard.GenerateRequest) (*wizard.GeneratedDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if req.TemplateType == f.failType {
		return nil, errors.New("generator down")
	}
	f.generated = append(f.generated, req.TemplateType)
	return &wizard.GeneratedDocument{FileName: req.TemplateType + ".docx", FileURL: "/files/" + req.TemplateType}, nil
}

func newTestUseCase(t *testing.T, backend wizard.Backend) (*UseCase, dashboard.Service) {
	t.Helper()

	db, err := database.NewJournalDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	catalog, err := wizard.LoadDocumentCatalog()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dash := dashboard.NewService(persistence.NewActivityRepository(db), persistence.NewProjectRepository(db), logger)
	wiz := wizard.NewService(backend, catalog, wizard.Options{Logger: logger})
	return NewUseCase(wiz, dash, logger), dash
}

func readySession(t *testing.T, uc *UseCase) *wizard.Session {
	t.Helper()
	ctx := context.Background()
	sess := wizard.NewSession()

	_, err := uc.Wizard().Upload(ctx, sess, wizard.UploadFile{
		Name: "cdc.txt", MimeType: wizard.MimeText, Size: 18, Content: strings.NewReader("cahier des charges"),
	})
	require.NoError(t, err)
	_, err = uc.Wizard().FindMatches(ctx, sess)
	require.NoError(t, err)
	_, err = uc.Wizard().GoToStep(sess, wizard.StepDocuments)
	require.NoError(t, err)
	_, err = uc.Wizard().UpdateProjectData(sess, "title", "Maintenance réacteur")
	require.NoError(t, err)
	return sess
}

func TestGenerateDocumentsRecordsProject(t *testing.T) {
	backend := &fakeBackend{}
	uc, dash := newTestUseCase(t, backend)
	sess := readySession(t, uc)

	result, err := uc.GenerateDocuments(context.Background(), sess, []string{"grilleEvaluation", "projetMarche"})
	require.NoError(t, err)
	assert.Len(t, result.Documents, 2)
	// Порядок каталога, а не порядок выбора
	assert.Equal(t, []string{"projetMarche", "grilleEvaluation"}, backend.generated)

	projects, err := dash.Projects(context.Background(), dashboard.ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Maintenance réacteur", projects[0].Name)
	assert.Equal(t, 2, projects[0].Documents)
	assert.Equal(t, 2, projects[0].Companies)
	assert.Equal(t, result.Project.ID, projects[0].ID)

	activities, err := dash.RecentActivities(context.Background())
	require.NoError(t, err)
	titles := make([]string, 0, len(activities))
	for _, a := range activities {
		titles = append(titles, a.Title)
	}
	assert.Contains(t, titles, "Documents générés pour le projet Maintenance réacteur")
	assert.Contains(t, titles, "Nouveau projet créé")
}

func TestGenerateDocumentsFailureRecordsNothing(t *testing.T) {
	backend := &fakeBackend{failType: "projetMarche"}
	uc, dash := newTestUseCase(t, backend)
	sess := readySession(t, uc)

	_, err := uc.GenerateDocuments(context.Background(), sess, []string{"projetMarche"})
	assert.ErrorIs(t, err, wizard.ErrNoDocumentGenerated)

	projects, err := dash.Projects(context.Background(), dashboard.ProjectFilter{})
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestGenerateDocumentsPartialFailure(t *testing.T) {
	backend := &fakeBackend{failType: "reglementConsultation"}
	uc, dash := newTestUseCase(t, backend)
	sess := readySession(t, uc)

	result, err := uc.GenerateDocuments(context.Background(), sess, []string{"reglementConsultation", "lettreConsultation"})
	require.NoError(t, err)
	assert.Equal(t, []string{"reglementConsultation"}, result.Failed)

	counters, err := dash.Counters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, counters.Active)
	assert.Equal(t, 1, counters.Documents)
}
