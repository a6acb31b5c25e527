package common

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "panelserver/server/errors"
	"panelserver/server/middleware"
)

// JSONResponse стандартная структура JSON ответа
type JSONResponse struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
}

// WriteJSONResponse записывает успешный ответ
func WriteJSONResponse(c *gin.Context, data any, statusCode int) {
	c.JSON(statusCode, JSONResponse{
		Success:   statusCode >= 200 && statusCode < 300,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// WriteAppError записывает ошибку приложения, логирует ее и учитывает в метриках.
// Ошибки, показываемые пользователю, отдаются со статусом 200, чтобы страница
// обработала их как обычный ответ с уведомлением.
func WriteAppError(c *gin.Context, metrics *apperrors.ErrorMetricsCollector, appErr *apperrors.AppError, data any) {
	reqID := middleware.GetRequestIDFromGin(c)
	if metrics != nil {
		metrics.RecordError(appErr, c.Request.URL.Path, reqID)
	}

	level := slog.LevelWarn
	statusCode := http.StatusOK
	if appErr.Code == http.StatusInternalServerError {
		level = slog.LevelError
		statusCode = appErr.Code
	}
	slog.Log(c.Request.Context(), level, "HTTP error",
		"error", appErr.Err,
		"user_message", appErr.UserMessage(),
		"context", appErr.GetContext(),
		"status_code", appErr.Code,
		"request_id", reqID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	c.JSON(statusCode, JSONResponse{
		Success:   false,
		Data:      data,
		Error:     appErr.UserMessage(),
		Message:   appErr.UserMessage(),
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
