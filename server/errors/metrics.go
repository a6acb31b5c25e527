package errors

import (
	"sync"
	"time"
)

// ErrorMetricsCollector собирает счетчики ошибок для /health
type ErrorMetricsCollector struct {
	mu sync.RWMutex

	totalErrors      int64
	errorsByType     map[string]int64 // По типу ошибки (ValidationError, BadGatewayError и т.д.)
	errorsByEndpoint map[string]int64 // По событию или маршруту

	lastErrors    []ErrorRecord
	maxLastErrors int

	startTime time.Time
}

// ErrorRecord запись об ошибке
type ErrorRecord struct {
	Timestamp   time.Time `json:"timestamp"`
	Type        string    `json:"type"`
	Code        int       `json:"code"`
	Endpoint    string    `json:"endpoint"`
	RequestID   string    `json:"request_id,omitempty"`
	UserMessage string    `json:"user_message"`
}

// ErrorMetricsSnapshot снимок метрик ошибок
type ErrorMetricsSnapshot struct {
	TotalErrors      int64            `json:"total_errors"`
	ErrorsByType     map[string]int64 `json:"errors_by_type"`
	ErrorsByEndpoint map[string]int64 `json:"errors_by_endpoint"`
	LastErrors       []ErrorRecord    `json:"last_errors"`
	Uptime           string           `json:"uptime"`
}

// NewErrorMetricsCollector создает новый сборщик метрик ошибок
func NewErrorMetricsCollector() *ErrorMetricsCollector {
	return &ErrorMetricsCollector{
		errorsByType:     make(map[string]int64),
		errorsByEndpoint: make(map[string]int64),
		lastErrors:       make([]ErrorRecord, 0),
		maxLastErrors:    20,
		startTime:        time.Now(),
	}
}

// RecordError записывает ошибку в метрики
func (emc *ErrorMetricsCollector) RecordError(err *AppError, endpoint, requestID string) {
	if err == nil {
		return
	}

	emc.mu.Lock()
	defer emc.mu.Unlock()

	emc.totalErrors++

	errorType := errorTypeOf(err)
	emc.errorsByType[errorType]++
	if endpoint != "" {
		emc.errorsByEndpoint[endpoint]++
	}

	record := ErrorRecord{
		Timestamp:   time.Now(),
		Type:        errorType,
		Code:        err.Code,
		Endpoint:    endpoint,
		RequestID:   requestID,
		UserMessage: err.UserMessage(),
	}
	emc.lastErrors = append([]ErrorRecord{record}, emc.lastErrors...)
	if len(emc.lastErrors) > emc.maxLastErrors {
		emc.lastErrors = emc.lastErrors[:emc.maxLastErrors]
	}
}

// Snapshot возвращает копию текущих метрик
func (emc *ErrorMetricsCollector) Snapshot() ErrorMetricsSnapshot {
	emc.mu.RLock()
	defer emc.mu.RUnlock()

	byType := make(map[string]int64, len(emc.errorsByType))
	for k, v := range emc.errorsByType {
		byType[k] = v
	}
	byEndpoint := make(map[string]int64, len(emc.errorsByEndpoint))
	for k, v := range emc.errorsByEndpoint {
		byEndpoint[k] = v
	}
	last := make([]ErrorRecord, len(emc.lastErrors))
	copy(last, emc.lastErrors)

	return ErrorMetricsSnapshot{
		TotalErrors:      emc.totalErrors,
		ErrorsByType:     byType,
		ErrorsByEndpoint: byEndpoint,
		LastErrors:       last,
		Uptime:           time.Since(emc.startTime).Round(time.Second).String(),
	}
}

// errorTypeOf определяет тип ошибки по коду
func errorTypeOf(err *AppError) string {
	switch err.Code {
	case 400:
		if err.AlertType() == AlertWarning {
			return "WarningError"
		}
		return "ValidationError"
	case 404:
		return "NotFoundError"
	case 409:
		return "ConflictError"
	case 500:
		return "InternalError"
	case 502:
		return "BadGatewayError"
	case 503:
		return "ServiceUnavailableError"
	default:
		return "UnknownError"
	}
}
