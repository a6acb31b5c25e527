package templates

import "errors"

// Доменные ошибки шаблонов документов
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrNameRequired     = errors.New("template name is required")
	ErrUnknownType      = errors.New("unknown template type")
	ErrNoFile           = errors.New("template file is required")
	ErrRemoteFailed     = errors.New("template storage request failed")
)
