package backend

import (
	"context"
	"fmt"
	"net/http"

	"panelserver/internal/domain/directory"
)

var _ directory.Store = (*Client)(nil)

// ListCompanies загружает весь справочник компаний
func (c *Client) ListCompanies(ctx context.Context) ([]directory.CompanyRecord, error) {
	env, err := c.do(ctx, request{op: "list companies", method: http.MethodGet, path: "/api/companies"})
	if err != nil {
		return nil, err
	}
	companies := []directory.CompanyRecord{}
	if err := env.decodeData(&companies); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// AddCompany создает компанию
func (c *Client) AddCompany(ctx context.Context, company directory.CompanyRecord) error {
	req, err := jsonRequest("add company", http.MethodPost, "/api/database/add-company", company)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, req)
	return err
}

// UpdateCompany сохраняет изменения компании
func (c *Client) UpdateCompany(ctx context.Context, company directory.CompanyRecord) error {
	req, err := jsonRequest("update company", http.MethodPost, "/api/database/update-company", company)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, req)
	return err
}

// DeleteCompany удаляет компанию по ID
func (c *Client) DeleteCompany(ctx context.Context, id string) error {
	req, err := jsonRequest("delete company", http.MethodDelete, "/api/database/delete-company", map[string]string{"id": id})
	if err != nil {
		return err
	}
	_, err = c.do(ctx, req)
	return err
}

// ImportCompanies пересылает таблицу как есть и возвращает число импортированных компаний
func (c *Client) ImportCompanies(ctx context.Context, file directory.ImportFile) (int, error) {
	req, err := multipartRequest("import companies", "/api/database/import-excel", nil, multipartFile{
		field:   "file",
		name:    file.Name,
		content: file.Content,
	})
	if err != nil {
		return 0, err
	}

	env, err := c.do(ctx, req)
	if err != nil {
		return 0, err
	}
	if env.Imported != nil {
		return *env.Imported, nil
	}

	// Некоторые версии backend кладут счетчик в data
	var data struct {
		Imported int `json:"imported"`
	}
	if err := env.decodeData(&data); err != nil {
		return 0, fmt.Errorf("import companies: %w", err)
	}
	return data.Imported, nil
}
