package dashboard

import "errors"

// Доменные ошибки панели управления
var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidStatus      = errors.New("invalid project status")
	ErrInvalidFilter      = errors.New("invalid project filter")
	ErrEmptyActivityTitle = errors.New("activity title is required")
)
