package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelserver/internal/domain/directory"
	"panelserver/internal/domain/templates"
	"panelserver/internal/domain/wizard"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, failures uint32) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(Config{
		BaseURL:         srv.URL,
		BreakerFailures: failures,
		BreakerTimeout:  time.Minute,
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return client, srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestListCompanies(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/companies", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data": []map[string]any{
				{"id": "ENT_001", "name": "Électro Services", "domain": "Électricité", "certifications": []string{"MASE"},
					"contact": map[string]string{"email": "contact@electro.fr"}},
			},
		})
	}, 5)

	companies, err := client.ListCompanies(context.Background())
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "ENT_001", companies[0].ID)
	assert.Equal(t, "contact@electro.fr", companies[0].Email())
}

func TestRejectedCallCarriesBackendMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"success": false, "message": "Type de fichier non autorisé"})
	}, 5)

	_, err := client.ParseDocument(context.Background(), wizard.UploadFile{Name: "a.pdf", MimeType: "application/pdf", Content: strings.NewReader("x")})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Rejected)
	assert.False(t, apiErr.Transient())
	assert.Equal(t, "Type de fichier non autorisé", wizard.UserMessage(err, wizard.UploadFallbackMessage))
}

func TestErrorFieldUsedWhenMessageMissing(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"success": false, "error": "quota dépassé"})
	}, 5)

	_, err := client.AskAgent(context.Background(), "question")
	assert.Equal(t, "quota dépassé", wizard.UserMessage(err, "fallback"))
}

func TestHTTPStatusError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}, 5)

	_, err := client.ListCompanies(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.True(t, apiErr.Transient())
	assert.Empty(t, apiErr.UserMessage())
	assert.Equal(t, wizard.MatchingFallbackMessage, wizard.UserMessage(err, wizard.MatchingFallbackMessage))
}

func TestTransportError(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, 5)
	srv.Close()

	_, err := client.ListCompanies(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.StatusCode)
	assert.True(t, apiErr.Transient())
}

func TestBreakerOpensOnServerErrors(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}, 2)

	for i := 0; i < 2; i++ {
		_, err := client.ListCompanies(context.Background())
		require.Error(t, err)
	}

	_, err := client.ListCompanies(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, "open", client.BreakerState())
	assert.NotEmpty(t, wizard.UserMessage(err, ""))
}

func TestBreakerIgnoresRejections(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(t, w, http.StatusOK, map[string]any{"success": false, "message": "Les critères sont requis"})
	}, 2)

	for i := 0; i < 4; i++ {
		_, err := client.FindMatchingCompanies(context.Background(), nil)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnavailable)
	}
	assert.Equal(t, int32(4), hits.Load())
	assert.Equal(t, "closed", client.BreakerState())
}

func TestParseDocumentMultipart(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/files/parse-document", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, _ := io.ReadAll(file)

		assert.Equal(t, "cahier.pdf", header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))
		assert.Equal(t, "%PDF-1.4", string(content))

		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]string{"fileName": "cahier.pdf", "mimeType": "application/pdf", "text": "Maintenance"},
		})
	}, 5)

	parsed, err := client.ParseDocument(context.Background(), wizard.UploadFile{
		Name: "cahier.pdf", MimeType: "application/pdf", Size: 8, Content: strings.NewReader("%PDF-1.4"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Maintenance", parsed.Text)
}

func TestAnalyzeDocument(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "texte", body["documentText"])
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"keywords":            []string{"maintenance", "nucléaire"},
				"selectionCriteria":   []map[string]any{{"id": 1, "name": "MASE", "selected": true}},
				"attributionCriteria": []map[string]any{{"id": 1, "name": "Prix", "weight": 60}},
			},
		})
	}, 5)

	analysis, err := client.AnalyzeDocument(context.Background(), "texte")
	require.NoError(t, err)
	assert.Equal(t, []string{"maintenance", "nucléaire"}, analysis.Keywords)
	require.Len(t, analysis.SelectionCriteria, 1)
	assert.True(t, analysis.SelectionCriteria[0].Selected)
	assert.Equal(t, 60, analysis.AttributionCriteria[0].Weight)
}

func TestFindMatchingCompaniesKeepsDetailOrder(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Criteria []wizard.SelectionCriterion `json:"criteria"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Criteria, 1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"ENT_002","name":"Méca","score":87,
			"matchDetails":{"Zone":90,"Certification":70,"Expérience":100}}]}`))
	}, 5)

	companies, err := client.FindMatchingCompanies(context.Background(), []wizard.SelectionCriterion{{ID: 1, Name: "MASE", Selected: true}})
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, wizard.MatchDetails{
		{Criterion: "Zone", Score: 90},
		{Criterion: "Certification", Score: 70},
		{Criterion: "Expérience", Score: 100},
	}, companies[0].MatchDetails)
}

func TestGenerateDocument(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body wizard.GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "grilleEvaluation", body.TemplateType)
		assert.Equal(t, "P1", body.ProjectData.ID)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]string{"fileName": "grille.xlsx", "fileUrl": "/api/documents/download/grille.xlsx"},
		})
	}, 5)

	doc, err := client.GenerateDocument(context.Background(), wizard.GenerateRequest{
		TemplateType: "grilleEvaluation",
		ProjectData:  wizard.GenerationProject{ID: "P1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "grille.xlsx", doc.FileName)
	assert.Equal(t, "/api/documents/download/grille.xlsx", doc.FileURL)
}

func TestCompanyCRUD(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()
		if r.URL.Path == "/api/database/delete-company" {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ENT_009", body["id"])
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"success": true})
	}, 5)

	ctx := context.Background()
	require.NoError(t, client.AddCompany(ctx, directory.CompanyRecord{Name: "Nouvelle"}))
	require.NoError(t, client.UpdateCompany(ctx, directory.CompanyRecord{ID: "ENT_009", Name: "Modifiée"}))
	require.NoError(t, client.DeleteCompany(ctx, "ENT_009"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"POST /api/database/add-company",
		"POST /api/database/update-company",
		"DELETE /api/database/delete-company",
	}, calls)
}

func TestImportCompanies(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "top level counter", body: `{"success":true,"imported":12}`, want: 12},
		{name: "counter in data", body: `{"success":true,"data":{"imported":7}}`, want: 7},
		{name: "no counter", body: `{"success":true}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, header, err := r.FormFile("file")
				require.NoError(t, err)
				assert.Equal(t, "entreprises.xlsx", header.Filename)
				_, _ = w.Write([]byte(tt.body))
			}, 5)

			n, err := client.ImportCompanies(context.Background(), directory.ImportFile{
				Name: "entreprises.xlsx", Content: strings.NewReader("PK"),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestTemplateOperations(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/documents/template/upload":
			assert.Equal(t, "Lettre type", r.FormValue("name"))
			assert.Equal(t, "lettreConsultation", r.FormValue("type"))
			writeJSON(t, w, http.StatusOK, map[string]any{"success": true, "data": map[string]string{"id": "tpl-7", "url": "/files/lettre.docx"}})
		case r.Method == http.MethodGet:
			assert.Equal(t, "/api/documents/template/tpl%207", r.URL.EscapedPath())
			writeJSON(t, w, http.StatusOK, map[string]any{"success": true, "data": map[string]string{
				"name": "Lettre type", "fileName": "lettre.docx", "previewHtml": "<p>Bonjour</p>",
			}})
		case r.Method == http.MethodDelete:
			writeJSON(t, w, http.StatusOK, map[string]any{"success": true})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}, 5)

	ctx := context.Background()
	tpl, err := client.UploadTemplate(ctx, templates.Upload{
		Name: "Lettre type", Type: "lettreConsultation", FileName: "lettre.docx", Size: 42, Content: strings.NewReader("docx"),
	})
	require.NoError(t, err)
	assert.Equal(t, "tpl-7", tpl.ID)
	assert.Equal(t, "lettre.docx", tpl.FileName)
	assert.Equal(t, int64(42), tpl.Size)

	preview, err := client.GetTemplate(ctx, "tpl 7")
	require.NoError(t, err)
	assert.True(t, preview.Available())

	require.NoError(t, client.DeleteTemplate(ctx, "tpl-7"))
}

func TestCanceledContext(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"success": true})
	}, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListCompanies(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, "closed", client.BreakerState())
}
