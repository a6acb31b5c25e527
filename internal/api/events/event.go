package events

import (
	"encoding/json"
)

// Event событие интерфейса: тип и данные элемента, вызвавшего его
type Event struct {
	Type    string          `json:"type" binding:"required"`
	Payload json.RawMessage `json:"payload" swaggertype:"object"`
}

// Типы уведомлений
const (
	AlertSuccess = "success"
	AlertError   = "error"
	AlertWarning = "warning"
	AlertInfo    = "info"
)

// Alert всплывающее уведомление; Duration в миллисекундах
type Alert struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Duration int64  `json:"duration"`
}

// Fragment HTML для замены содержимого элемента target
type Fragment struct {
	Target string `json:"target"`
	HTML   string `json:"html"`
}

// Result ответ на событие
type Result struct {
	Fragments []Fragment `json:"fragments"`
	Alert     *Alert     `json:"alert,omitempty"`
	State     any        `json:"state,omitempty"`
	// Location адрес, который браузер должен открыть (mailto для поддержки)
	Location string `json:"location,omitempty"`
}

// NewResult создает пустой ответ
func NewResult() *Result {
	return &Result{Fragments: []Fragment{}}
}

// Add добавляет фрагмент
func (r *Result) Add(target, html string) *Result {
	r.Fragments = append(r.Fragments, Fragment{Target: target, HTML: html})
	return r
}

// WithAlert задает уведомление
func (r *Result) WithAlert(alertType, message string) *Result {
	r.Alert = &Alert{Type: alertType, Message: message}
	return r
}

// WithState прикладывает снимок состояния
func (r *Result) WithState(state any) *Result {
	r.State = state
	return r
}
