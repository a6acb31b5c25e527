package directory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// MockStore мок хранилища компаний
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListCompanies(ctx context.Context) ([]CompanyRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]CompanyRecord), args.Error(1)
}

func (m *MockStore) AddCompany(ctx context.Context, company CompanyRecord) error {
	return m.Called(ctx, company).Error(0)
}

func (m *MockStore) UpdateCompany(ctx context.Context, company CompanyRecord) error {
	return m.Called(ctx, company).Error(0)
}

func (m *MockStore) DeleteCompany(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) ImportCompanies(ctx context.Context, file ImportFile) (int, error) {
	args := m.Called(ctx, file)
	return args.Int(0), args.Error(1)
}

func newTestService(store Store) Service {
	return NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestServiceLoad(t *testing.T) {
	store := new(MockStore)
	store.On("ListCompanies", mock.Anything).Return(fakeCompanies(25), nil).Once()

	b := NewBrowser(20)
	page, err := newTestService(store).Load(context.Background(), b)
	require.NoError(t, err)

	assert.Equal(t, 25, page.Total)
	assert.Len(t, page.Items, 20)
	assert.True(t, b.Loaded())
	store.AssertExpectations(t)
}

func TestServiceLoadFailure(t *testing.T) {
	store := new(MockStore)
	store.On("ListCompanies", mock.Anything).Return(nil, errors.New("connection refused"))

	b := NewBrowser(20)
	_, err := newTestService(store).Load(context.Background(), b)
	assert.ErrorIs(t, err, ErrStoreFailed)
	assert.False(t, b.Loaded())
}

func TestServiceSaveAddsOrUpdates(t *testing.T) {
	store := new(MockStore)
	store.On("AddCompany", mock.Anything, mock.MatchedBy(func(c CompanyRecord) bool {
		return c.ID == "" && c.Name == "Acme"
	})).Return(nil).Once()
	store.On("UpdateCompany", mock.Anything, mock.MatchedBy(func(c CompanyRecord) bool {
		return c.ID == "ENT_001" && c.Name == "Électro Rhône SA"
	})).Return(nil).Once()
	store.On("ListCompanies", mock.Anything).Return(sampleCompanies(), nil).Twice()

	svc := newTestService(store)
	b := NewBrowser(20)

	result, err := svc.Save(context.Background(), b, CompanyInput{Name: "Acme"})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, 4, result.Page.Total)

	result, err = svc.Save(context.Background(), b, CompanyInput{ID: "ENT_001", Name: "Électro Rhône SA"})
	require.NoError(t, err)
	assert.False(t, result.Created)

	store.AssertExpectations(t)
}

func TestServiceSaveValidationSkipsStore(t *testing.T) {
	store := new(MockStore)
	_, err := newTestService(store).Save(context.Background(), NewBrowser(20), CompanyInput{Name: "Acme", Email: "pas-un-email"})
	assert.ErrorIs(t, err, ErrInvalidEmail)
	store.AssertNotCalled(t, "AddCompany", mock.Anything, mock.Anything)
}

func TestServiceSaveFailureKeepsList(t *testing.T) {
	store := new(MockStore)
	store.On("AddCompany", mock.Anything, mock.Anything).Return(errors.New("duplicate"))

	b := NewBrowser(20)
	b.Replace(sampleCompanies())

	_, err := newTestService(store).Save(context.Background(), b, CompanyInput{Name: "Acme"})
	assert.ErrorIs(t, err, ErrStoreFailed)
	assert.Equal(t, 4, b.Current().Total)
	store.AssertNotCalled(t, "ListCompanies", mock.Anything)
}

func TestServiceDelete(t *testing.T) {
	store := new(MockStore)
	store.On("DeleteCompany", mock.Anything, "ENT_002").Return(nil).Once()
	store.On("ListCompanies", mock.Anything).Return(sampleCompanies()[:3], nil).Once()

	b := NewBrowser(20)
	b.Replace(sampleCompanies())

	page, err := newTestService(store).Delete(context.Background(), b, "ENT_002")
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)

	_, err = newTestService(store).Delete(context.Background(), b, "")
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestServiceImport(t *testing.T) {
	store := new(MockStore)
	store.On("ImportCompanies", mock.Anything, mock.MatchedBy(func(f ImportFile) bool {
		return f.Name == "entreprises.xlsx"
	})).Return(12, nil).Once()
	store.On("ListCompanies", mock.Anything).Return(fakeCompanies(12), nil).Once()

	svc := newTestService(store)
	b := NewBrowser(20)

	result, err := svc.Import(context.Background(), b, ImportFile{Name: "entreprises.xlsx", Size: 3, Content: strings.NewReader("xls")})
	require.NoError(t, err)
	assert.Equal(t, 12, result.Imported)
	assert.Equal(t, 12, result.Page.Total)

	_, err = svc.Import(context.Background(), b, ImportFile{Name: "entreprises.csv", Content: strings.NewReader("a;b")})
	assert.ErrorIs(t, err, ErrUnsupportedImportFile)

	_, err = svc.Import(context.Background(), b, ImportFile{})
	assert.ErrorIs(t, err, ErrNoImportFile)

	store.AssertExpectations(t)
}

func TestServiceExportWritesFilteredList(t *testing.T) {
	b := NewBrowser(20)
	b.Replace(sampleCompanies())
	b.SetFilter(Filter{Search: "lyon"})

	var buf bytes.Buffer
	require.NoError(t, newTestService(new(MockStore)).Export(b, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Nom", rows[0][1])
	assert.Equal(t, "Électro Rhône", rows[1][1])
	assert.Equal(t, "MASE, ISO 9001", rows[1][4])
	assert.Equal(t, "Hydro Services", rows[2][1])
}
