package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"panelserver/internal/domain/templates"
)

var _ templates.Remote = (*Client)(nil)

// UploadTemplate загружает шаблон во внешнее хранилище
// Поля, которые backend не вернул, заполняются из формы
func (c *Client) UploadTemplate(ctx context.Context, upload templates.Upload) (*templates.Template, error) {
	fields := map[string]string{
		"name":        upload.Name,
		"type":        upload.Type,
		"description": upload.Description,
	}
	req, err := multipartRequest("upload template", "/api/documents/template/upload", fields, multipartFile{
		field:   "file",
		name:    upload.FileName,
		content: upload.Content,
	})
	if err != nil {
		return nil, err
	}

	env, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	tpl := &templates.Template{}
	if err := env.decodeData(tpl); err != nil {
		return nil, fmt.Errorf("upload template: %w", err)
	}
	if tpl.Name == "" {
		tpl.Name = upload.Name
	}
	if tpl.Type == "" {
		tpl.Type = upload.Type
	}
	if tpl.Description == "" {
		tpl.Description = upload.Description
	}
	if tpl.FileName == "" {
		tpl.FileName = upload.FileName
	}
	if tpl.Size == 0 {
		tpl.Size = upload.Size
	}
	return tpl, nil
}

// GetTemplate возвращает данные предпросмотра шаблона
func (c *Client) GetTemplate(ctx context.Context, id string) (*templates.Preview, error) {
	env, err := c.do(ctx, request{
		op:     "get template",
		method: http.MethodGet,
		path:   "/api/documents/template/" + url.PathEscape(id),
	})
	if err != nil {
		return nil, err
	}
	preview := &templates.Preview{}
	if err := env.decodeData(preview); err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	return preview, nil
}

// DeleteTemplate удаляет шаблон во внешнем хранилище
func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	_, err := c.do(ctx, request{
		op:     "delete template",
		method: http.MethodDelete,
		path:   "/api/documents/template/" + url.PathEscape(id),
	})
	return err
}
