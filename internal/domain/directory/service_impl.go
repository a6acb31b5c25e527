package directory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

var importExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
}

// service реализация справочника компаний
type service struct {
	store  Store
	logger *slog.Logger
}

// NewService создает сервис справочника
func NewService(store Store, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{store: store, logger: logger}
}

// Load загружает список компаний целиком
func (s *service) Load(ctx context.Context, b *Browser) (Page, error) {
	companies, err := s.store.ListCompanies(ctx)
	if err != nil {
		return b.Current(), fmt.Errorf("%w: failed to list companies: %w", ErrStoreFailed, err)
	}
	s.logger.Debug("Companies loaded", "count", len(companies))
	return b.Replace(companies), nil
}

// Save добавляет компанию без ID или изменяет существующую, затем перезагружает список
func (s *service) Save(ctx context.Context, b *Browser, in CompanyInput) (*SaveResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	record := in.Record()
	created := !in.IsUpdate()
	if created {
		if err := s.store.AddCompany(ctx, record); err != nil {
			return nil, fmt.Errorf("%w: failed to add company: %w", ErrStoreFailed, err)
		}
	} else {
		if err := s.store.UpdateCompany(ctx, record); err != nil {
			return nil, fmt.Errorf("%w: failed to update company %s: %w", ErrStoreFailed, record.ID, err)
		}
	}

	page, err := s.Load(ctx, b)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Company saved", "id", record.ID, "name", record.Name, "created", created)
	return &SaveResult{Created: created, Company: record, Page: page}, nil
}

// Delete удаляет компанию и перезагружает список
func (s *service) Delete(ctx context.Context, b *Browser, id string) (Page, error) {
	if strings.TrimSpace(id) == "" {
		return b.Current(), fmt.Errorf("%w: empty id", ErrCompanyNotFound)
	}
	if err := s.store.DeleteCompany(ctx, id); err != nil {
		return b.Current(), fmt.Errorf("%w: failed to delete company %s: %w", ErrStoreFailed, id, err)
	}
	s.logger.Info("Company deleted", "id", id)
	return s.Load(ctx, b)
}

// Import пересылает таблицу в хранилище без разбора и перезагружает список
func (s *service) Import(ctx context.Context, b *Browser, file ImportFile) (*ImportResult, error) {
	if file.Content == nil || file.Name == "" {
		return nil, ErrNoImportFile
	}
	if !importExtensions[strings.ToLower(filepath.Ext(file.Name))] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImportFile, file.Name)
	}

	imported, err := s.store.ImportCompanies(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to import %s: %w", ErrStoreFailed, file.Name, err)
	}

	page, err := s.Load(ctx, b)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Companies imported", "file", file.Name, "imported", imported)
	return &ImportResult{Imported: imported, Page: page}, nil
}

// Export пишет отфильтрованный список
func (s *service) Export(b *Browser, w io.Writer) error {
	return WriteWorkbook(w, b.Filtered())
}
