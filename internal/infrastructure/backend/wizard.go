package backend

import (
	"context"
	"fmt"
	"net/http"

	"panelserver/internal/domain/support"
	"panelserver/internal/domain/wizard"
)

var (
	_ wizard.Backend    = (*Client)(nil)
	_ support.Assistant = (*Client)(nil)
)

// ParseDocument отправляет файл на извлечение текста
func (c *Client) ParseDocument(ctx context.Context, file wizard.UploadFile) (*wizard.ParsedDocument, error) {
	req, err := multipartRequest("parse document", "/api/files/parse-document", nil, multipartFile{
		field:    "file",
		name:     file.Name,
		mimeType: file.MimeType,
		content:  file.Content,
	})
	if err != nil {
		return nil, err
	}

	env, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	parsed := &wizard.ParsedDocument{}
	if err := env.decodeData(parsed); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return parsed, nil
}

// AnalyzeDocument запрашивает ключевые слова и критерии у AI сервиса
func (c *Client) AnalyzeDocument(ctx context.Context, text string) (*wizard.Analysis, error) {
	req, err := jsonRequest("analyze document", http.MethodPost, "/api/ia/analyze-document", map[string]string{
		"documentText": text,
	})
	if err != nil {
		return nil, err
	}

	env, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	analysis := &wizard.Analysis{}
	if err := env.decodeData(analysis); err != nil {
		return nil, fmt.Errorf("analyze document: %w", err)
	}
	return analysis, nil
}

// FindMatchingCompanies возвращает компании, оцененные по критериям
func (c *Client) FindMatchingCompanies(ctx context.Context, criteria []wizard.SelectionCriterion) ([]wizard.MatchedCompany, error) {
	req, err := jsonRequest("find matching companies", http.MethodPost, "/api/ia/find-matching-companies", map[string]any{
		"criteria": criteria,
	})
	if err != nil {
		return nil, err
	}

	env, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	companies := []wizard.MatchedCompany{}
	if err := env.decodeData(&companies); err != nil {
		return nil, fmt.Errorf("find matching companies: %w", err)
	}
	return companies, nil
}

// GenerateDocument генерирует один документ консультации
func (c *Client) GenerateDocument(ctx context.Context, in wizard.GenerateRequest) (*wizard.GeneratedDocument, error) {
	req, err := jsonRequest("generate document", http.MethodPost, "/api/documents/generate", in)
	if err != nil {
		return nil, err
	}

	env, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	doc := &wizard.GeneratedDocument{}
	if err := env.decodeData(doc); err != nil {
		return nil, fmt.Errorf("generate document: %w", err)
	}
	return doc, nil
}

// AskAgent задает вопрос AI ассистенту
func (c *Client) AskAgent(ctx context.Context, question string) (string, error) {
	req, err := jsonRequest("agent query", http.MethodPost, "/api/ia/agent-query", map[string]string{
		"question": question,
	})
	if err != nil {
		return "", err
	}

	env, err := c.do(ctx, req)
	if err != nil {
		return "", err
	}
	var data struct {
		Answer string `json:"answer"`
	}
	if err := env.decodeData(&data); err != nil {
		return "", fmt.Errorf("agent query: %w", err)
	}
	return data.Answer, nil
}
