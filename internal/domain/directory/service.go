package directory

import (
	"context"
	"io"
)

// Service интерфейс справочника компаний
type Service interface {
	// Load получает весь список из хранилища и сохраняет его в состоянии сессии
	Load(ctx context.Context, b *Browser) (Page, error)
	Save(ctx context.Context, b *Browser, in CompanyInput) (*SaveResult, error)
	Delete(ctx context.Context, b *Browser, id string) (Page, error)
	Import(ctx context.Context, b *Browser, file ImportFile) (*ImportResult, error)
	// Export пишет отфильтрованный список в книгу xlsx
	Export(b *Browser, w io.Writer) error
}

// Store внешнее хранилище компаний
type Store interface {
	ListCompanies(ctx context.Context) ([]CompanyRecord, error)
	AddCompany(ctx context.Context, company CompanyRecord) error
	UpdateCompany(ctx context.Context, company CompanyRecord) error
	DeleteCompany(ctx context.Context, id string) error
	ImportCompanies(ctx context.Context, file ImportFile) (int, error)
}

// ImportFile таблица для массового импорта; содержимое передается как есть
type ImportFile struct {
	Name    string
	Size    int64
	Content io.Reader
}

// SaveResult итог сохранения компании
type SaveResult struct {
	Created bool
	Company CompanyRecord
	Page    Page
}

// ImportResult итог импорта
type ImportResult struct {
	Imported int
	Page     Page
}
