package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelserver/database"
	"panelserver/internal/domain/repositories"
)

func newTestDB(t *testing.T) *database.JournalDB {
	t.Helper()
	db, err := database.NewJournalDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestActivityRepository(t *testing.T) {
	repo := NewActivityRepository(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		a := &repositories.Activity{Icon: "📄", Title: "Action", CreatedAt: base.Add(time.Duration(i) * time.Second)}
		require.NoError(t, repo.Create(ctx, a))
		assert.NotZero(t, a.ID)
	}

	list, err := repo.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.True(t, list[0].CreatedAt.After(list[4].CreatedAt))
}

func TestProjectRepository(t *testing.T) {
	repo := NewProjectRepository(newTestDB(t))
	ctx := context.Background()

	p := &repositories.Project{ID: "P1700000000000", Name: "Projet", Status: repositories.ProjectStatusActive, Companies: 4, Documents: 3}
	require.NoError(t, repo.Create(ctx, p))
	assert.False(t, p.CreatedAt.IsZero())

	require.NoError(t, repo.Create(ctx, &repositories.Project{ID: "P2", Name: "Autre", Status: repositories.ProjectStatusPending, Documents: 1}))

	got, err := repo.GetByID(ctx, "P1700000000000")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 4, got.Companies)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.UpdateStatus(ctx, "P1700000000000", repositories.ProjectStatusCompleted))
	assert.Error(t, repo.UpdateStatus(ctx, "nope", repositories.ProjectStatusCompleted))

	completed, err := repo.List(ctx, repositories.ProjectStatusCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "P1700000000000", completed[0].ID)

	counters, err := repo.Counters(ctx)
	require.NoError(t, err)
	assert.Equal(t, repositories.ProjectCounters{Active: 0, Pending: 1, Completed: 1, Documents: 4}, *counters)
}

func TestTemplateRepository(t *testing.T) {
	repo := NewTemplateRepository(newTestDB(t))
	ctx := context.Background()

	tpl := &repositories.Template{ID: "tpl-1", Name: "Lettre type", Type: "lettreConsultation", FileName: "lettre.docx", Size: 1536}
	require.NoError(t, repo.Create(ctx, tpl))
	assert.False(t, tpl.UploadedAt.IsZero())

	got, err := repo.GetByID(ctx, "tpl-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1536), got.Size)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, "tpl-1"))
	require.NoError(t, repo.Delete(ctx, "tpl-1"))

	got, err = repo.GetByID(ctx, "tpl-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
