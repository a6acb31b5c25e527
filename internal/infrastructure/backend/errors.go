package backend

import (
	"fmt"
	"net/http"
)

// APIError ошибка вызова backend
// Message содержит текст из конверта ответа, если backend его прислал
type APIError struct {
	Op         string
	StatusCode int
	Message    string
	// Rejected backend ответил success=false
	Rejected bool
	Err      error
}

func (e *APIError) Error() string {
	switch {
	case e.Rejected:
		return fmt.Sprintf("%s: rejected by backend: %s", e.Op, e.Message)
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %v (%s)", e.Op, e.Err, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: backend error %d", e.Op, e.StatusCode)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// UserMessage сообщение backend для показа пользователю, может быть пустым
func (e *APIError) UserMessage() string {
	return e.Message
}

// Transient сбой транспорта или 5xx; учитывается circuit breaker
func (e *APIError) Transient() bool {
	if e.Rejected {
		return false
	}
	return e.StatusCode == 0 || e.StatusCode >= http.StatusInternalServerError
}
