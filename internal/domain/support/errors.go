package support

import "errors"

// Доменные ошибки поддержки
var (
	ErrMissingFields    = errors.New("all contact fields are required")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrQuestionRequired = errors.New("question is required")
	ErrAssistantFailed  = errors.New("assistant request failed")
)
