package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"panelserver/internal/domain/repositories"
)

// MockActivityRepository мок журнала действий
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *Activity) error {
	return m.Called(ctx, activity).Error(0)
}

func (m *MockActivityRepository) Recent(ctx context.Context, limit int) ([]Activity, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Activity), args.Error(1)
}

// MockProjectRepository мок хранилища проектов
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id string) (*Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Project), args.Error(1)
}

func (m *MockProjectRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockProjectRepository) List(ctx context.Context, status string) ([]Project, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Project), args.Error(1)
}

func (m *MockProjectRepository) Counters(ctx context.Context) (*ProjectCounters, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProjectCounters), args.Error(1)
}

func newTestService(activities *MockActivityRepository, projects *MockProjectRepository) *service {
	svc := NewService(activities, projects, slog.New(slog.NewTextHandler(io.Discard, nil))).(*service)
	svc.now = func() time.Time { return time.Date(2025, 4, 2, 15, 0, 0, 0, time.UTC) }
	return svc
}

func TestRecordActivity(t *testing.T) {
	activities := new(MockActivityRepository)
	activities.On("Create", mock.Anything, mock.MatchedBy(func(a *Activity) bool {
		return a.Icon == IconPanel && a.Title == "Panel d'entreprises mis à jour"
	})).Return(nil)

	svc := newTestService(activities, new(MockProjectRepository))
	require.NoError(t, svc.RecordActivity(context.Background(), IconPanel, " Panel d'entreprises mis à jour "))
	assert.ErrorIs(t, svc.RecordActivity(context.Background(), IconPanel, " "), ErrEmptyActivityTitle)
	activities.AssertNumberOfCalls(t, "Create", 1)
}

func TestRecentActivitiesLimit(t *testing.T) {
	activities := new(MockActivityRepository)
	activities.On("Recent", mock.Anything, RecentActivitiesLimit).Return([]Activity{{ID: 1, Title: "a"}}, nil)

	list, err := newTestService(activities, new(MockProjectRepository)).RecentActivities(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
	activities.AssertExpectations(t)
}

func TestRecordProject(t *testing.T) {
	activities := new(MockActivityRepository)
	activities.On("Create", mock.Anything, mock.MatchedBy(func(a *Activity) bool {
		return a.Icon == IconProject
	})).Return(nil)
	projects := new(MockProjectRepository)
	projects.On("Create", mock.Anything, mock.MatchedBy(func(p *Project) bool {
		return p.ID == "P1" && p.Status == repositories.ProjectStatusActive && p.Documents == 2
	})).Return(nil)

	p, err := newTestService(activities, projects).RecordProject(context.Background(), NewProject{ID: "P1", Companies: 3, Documents: 2})
	require.NoError(t, err)
	assert.Equal(t, "Projet P1", p.Name)
	activities.AssertExpectations(t)
	projects.AssertExpectations(t)
}

func TestRecordProjectSurvivesJournalFailure(t *testing.T) {
	activities := new(MockActivityRepository)
	activities.On("Create", mock.Anything, mock.Anything).Return(errors.New("locked"))
	projects := new(MockProjectRepository)
	projects.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := newTestService(activities, projects).RecordProject(context.Background(), NewProject{ID: "P2", Name: "Lot 2"})
	assert.NoError(t, err)
}

func TestProjectsFilter(t *testing.T) {
	all := []Project{
		{ID: "1", Name: "Maintenance réacteur", Status: repositories.ProjectStatusActive},
		{ID: "2", Name: "Travaux électriques", Status: repositories.ProjectStatusActive},
	}
	projects := new(MockProjectRepository)
	projects.On("List", mock.Anything, "").Return(all, nil)
	projects.On("List", mock.Anything, repositories.ProjectStatusActive).Return(all, nil)
	projects.On("List", mock.Anything, repositories.ProjectStatusCompleted).Return([]Project{}, nil)

	svc := newTestService(new(MockActivityRepository), projects)

	tests := []struct {
		name    string
		filter  ProjectFilter
		want    int
		wantErr error
	}{
		{name: "default is all", filter: ProjectFilter{}, want: 2},
		{name: "active", filter: ProjectFilter{Status: StatusFilterActive}, want: 2},
		{name: "completed", filter: ProjectFilter{Status: StatusFilterCompleted}, want: 0},
		{name: "name search", filter: ProjectFilter{Status: StatusFilterAll, Search: "ÉLECTRIQUES"}, want: 1},
		{name: "unknown status", filter: ProjectFilter{Status: "archived"}, wantErr: ErrInvalidFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := svc.Projects(context.Background(), tt.filter)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, list, tt.want)
		})
	}
}

func TestUpdateProjectStatus(t *testing.T) {
	projects := new(MockProjectRepository)
	projects.On("GetByID", mock.Anything, "P1").Return(&Project{ID: "P1", Status: repositories.ProjectStatusActive}, nil)
	projects.On("GetByID", mock.Anything, "P9").Return(nil, nil)
	projects.On("UpdateStatus", mock.Anything, "P1", repositories.ProjectStatusCompleted).Return(nil)

	svc := newTestService(new(MockActivityRepository), projects)

	p, err := svc.UpdateProjectStatus(context.Background(), "P1", repositories.ProjectStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, repositories.ProjectStatusCompleted, p.Status)

	_, err = svc.UpdateProjectStatus(context.Background(), "P9", repositories.ProjectStatusCompleted)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, err = svc.UpdateProjectStatus(context.Background(), "P1", "archivé")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
