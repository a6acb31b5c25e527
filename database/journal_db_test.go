package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

// setupTestJournalDB создает временную базу журнала
func setupTestJournalDB(t *testing.T) *JournalDB {
	t.Helper()
	db, err := NewJournalDB(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Failed to create journal DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestJournalDB_MigrationsAppliedOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	db, err := NewJournalDB(path)
	if err != nil {
		t.Fatalf("Failed to open: %v", err)
	}
	db.Close()

	// Повторное открытие не должно падать на уже примененных миграциях
	db, err = NewJournalDB(path)
	if err != nil {
		t.Fatalf("Failed to reopen: %v", err)
	}
	defer db.Close()

	names, err := AppliedMigrations(db.GetDB())
	if err != nil {
		t.Fatalf("Failed to list migrations: %v", err)
	}
	if len(names) != len(journalMigrations) {
		t.Fatalf("Expected %d migrations, got %v", len(journalMigrations), names)
	}

	exists, err := columnExists(db.GetDB(), "templates", "size")
	if err != nil || !exists {
		t.Errorf("Expected templates.size column, exists=%v err=%v", exists, err)
	}
}

func TestJournalDB_InMemory(t *testing.T) {
	db, err := NewJournalDB(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory DB: %v", err)
	}
	defer db.Close()

	if _, err := db.InsertActivity(context.Background(), "📄", "Documents générés", time.Now()); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	list, err := db.RecentActivities(context.Background(), 5)
	if err != nil || len(list) != 1 {
		t.Fatalf("Expected one activity, got %d (%v)", len(list), err)
	}
}

func TestJournalDB_RecentActivitiesOrder(t *testing.T) {
	db := setupTestJournalDB(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, title := range []string{"premier", "deuxième", "troisième"} {
		if _, err := db.InsertActivity(ctx, "📝", title, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	list, err := db.RecentActivities(ctx, 2)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 activities, got %d", len(list))
	}
	if list[0].Title != "troisième" || list[1].Title != "deuxième" {
		t.Errorf("Unexpected order: %q, %q", list[0].Title, list[1].Title)
	}
	if !list[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("Unexpected timestamp %v", list[0].CreatedAt)
	}
}

func TestJournalDB_Projects(t *testing.T) {
	db := setupTestJournalDB(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	projects := []ProjectRecord{
		{ID: "P1", Name: "Projet P1", Status: "en cours", Companies: 3, Documents: 2, CreatedAt: now, UpdatedAt: now},
		{ID: "P2", Name: "Projet P2", Status: "terminé", Companies: 1, Documents: 4, CreatedAt: now.Add(time.Hour), UpdatedAt: now},
	}
	for _, p := range projects {
		if err := db.InsertProject(ctx, p); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	if err := db.InsertProject(ctx, projects[0]); err == nil {
		t.Error("Expected duplicate project ID to fail")
	}

	all, err := db.ListProjects(ctx, "")
	if err != nil || len(all) != 2 || all[0].ID != "P2" {
		t.Fatalf("Unexpected list: %+v (%v)", all, err)
	}

	active, err := db.ListProjects(ctx, "en cours")
	if err != nil || len(active) != 1 || active[0].ID != "P1" {
		t.Fatalf("Unexpected active list: %+v (%v)", active, err)
	}

	if err := db.SetProjectStatus(ctx, "P1", "terminé", now.Add(2*time.Hour)); err != nil {
		t.Fatalf("Status update failed: %v", err)
	}
	got, err := db.GetProject(ctx, "P1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != "terminé" || got.Companies != 3 {
		t.Errorf("Unexpected project: %+v", got)
	}

	if err := db.SetProjectStatus(ctx, "P404", "terminé", now); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := db.GetProject(ctx, "P404"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	counts, err := db.ProjectStatusCounts(ctx)
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if len(counts) != 1 || counts[0].Projects != 2 || counts[0].Documents != 6 {
		t.Errorf("Unexpected counts: %+v", counts)
	}
}

func TestJournalDB_Templates(t *testing.T) {
	db := setupTestJournalDB(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tpl := TemplateRecord{ID: "T1", Name: "Grille", Type: "grilleEvaluation", FileName: "grille.docx", Size: 2048, UploadedAt: now}
	if err := db.InsertTemplate(ctx, tpl); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := db.InsertTemplate(ctx, TemplateRecord{ID: "T2", Name: "Lettre", Type: "lettreConsultation", UploadedAt: now.Add(time.Minute)}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	list, err := db.ListTemplates(ctx)
	if err != nil || len(list) != 2 || list[0].ID != "T2" {
		t.Fatalf("Unexpected list: %+v (%v)", list, err)
	}

	got, err := db.GetTemplate(ctx, "T1")
	if err != nil || got.Size != 2048 || got.FileName != "grille.docx" {
		t.Fatalf("Unexpected template: %+v (%v)", got, err)
	}

	if err := db.DeleteTemplate(ctx, "T1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := db.DeleteTemplate(ctx, "T1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestColumnExistsRejectsUnknownTable(t *testing.T) {
	db := setupTestJournalDB(t)

	exists, err := columnExists(db.GetDB(), "templates", "size")
	if err != nil || !exists {
		t.Fatalf("expected templates.size to exist, got %v, %v", exists, err)
	}

	tests := []struct {
		name   string
		table  string
		column string
	}{
		{"table outside whitelist", "uploads", "id"},
		{"injection in table", "templates; DROP TABLE projects", "id"},
		{"injection in column", "templates", "size OR 1=1"},
		{"empty column", "templates", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := columnExists(db.GetDB(), tt.table, tt.column); err == nil {
				t.Errorf("columnExists(%q, %q) expected error", tt.table, tt.column)
			}
		})
	}
}
