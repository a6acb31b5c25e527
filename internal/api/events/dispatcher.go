package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"panelserver/internal/infrastructure/session"
)

// Ошибки диспетчера
var (
	ErrUnknownEvent   = errors.New("unknown event type")
	ErrInvalidPayload = errors.New("invalid event payload")
)

// Handler обработчик события в рамках одной сессии
type Handler func(ctx context.Context, st *session.State, payload json.RawMessage) (*Result, error)

// Typed декодирует данные события в P перед вызовом fn
func Typed[P any](fn func(ctx context.Context, st *session.State, p P) (*Result, error)) Handler {
	return func(ctx context.Context, st *session.State, payload json.RawMessage) (*Result, error) {
		var p P
		if len(payload) > 0 && string(payload) != "null" {
			if err := json.Unmarshal(payload, &p); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
			}
		}
		return fn(ctx, st, p)
	}
}

// Dispatcher таблица обработчиков по типу события
type Dispatcher struct {
	handlers map[string]Handler
	logger   *slog.Logger
}

// NewDispatcher создает пустую таблицу
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{handlers: make(map[string]Handler), logger: logger}
}

// Register добавляет обработчик; повторная регистрация типа это ошибка программы
func (d *Dispatcher) Register(eventType string, h Handler) {
	if _, exists := d.handlers[eventType]; exists {
		panic("events: duplicate handler for " + eventType)
	}
	d.handlers[eventType] = h
}

// Types зарегистрированные типы в алфавитном порядке
func (d *Dispatcher) Types() []string {
	types := make([]string, 0, len(d.handlers))
	for t := range d.handlers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Dispatch вызывает обработчик события
func (d *Dispatcher) Dispatch(ctx context.Context, st *session.State, ev Event) (*Result, error) {
	h, ok := d.handlers[ev.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}

	start := time.Now()
	res, err := h(ctx, st, ev.Payload)
	d.logger.Debug("Event dispatched",
		"type", ev.Type,
		"session", st.ID,
		"duration_ms", time.Since(start).Milliseconds(),
		"error", err,
	)
	if err != nil {
		// Обработчик может вернуть фрагменты вместе с ошибкой
		return res, err
	}
	if res == nil {
		res = NewResult()
	}
	return res, nil
}
