package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestRecorder учитывает завершенные HTTP запросы
type RequestRecorder interface {
	RecordHTTPRequest(success bool, duration time.Duration)
}

// skipLogPaths служебные пути без журналирования
var skipLogPaths = []string{"/health", "/favicon.ico", "/static/"}

// GinRequestIDMiddleware добавляет уникальный request ID к каждому запросу в Gin
func GinRequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Генерируем или получаем request ID из заголовка
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}

		c.Set("request_id", reqID)
		c.Request = c.Request.WithContext(SetRequestID(c.Request.Context(), reqID))
		c.Header("X-Request-ID", reqID)

		c.Next()
	}
}

// GetRequestIDFromGin извлекает request ID из Gin context
func GetRequestIDFromGin(c *gin.Context) string {
	if c == nil {
		return ""
	}

	reqID, exists := c.Get("request_id")
	if !exists {
		return ""
	}

	if id, ok := reqID.(string); ok {
		return id
	}

	return ""
}

// GinSecurityHeadersMiddleware добавляет заголовки безопасности.
// Страницы и API одного origin, поэтому CORS заголовки не выставляются.
func GinSecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// GinGzipMiddleware включает сжатие ответов; выгрузка xlsx уже сжата
func GinGzipMiddleware() gin.HandlerFunc {
	return gzip.Gzip(gzip.BestSpeed, gzip.WithExcludedPaths([]string{"/api/database/export"}))
}

// GinLoggerMiddleware логирует запросы через slog и учитывает их в метриках
func GinLoggerMiddleware(recorder RequestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		if recorder != nil {
			recorder.RecordHTTPRequest(statusCode < http.StatusInternalServerError, latency)
		}
		if skipLogging(path) {
			return
		}

		if raw != "" {
			path = path + "?" + raw
		}
		attrs := []any{
			"request_id", GetRequestIDFromGin(c),
			"method", c.Request.Method,
			"path", path,
			"status", statusCode,
			"duration_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
			"size", c.Writer.Size(),
		}
		if err := c.Errors.Last(); err != nil {
			attrs = append(attrs, "error", err.Error())
		}

		switch {
		case statusCode >= http.StatusInternalServerError:
			slog.Error("Request completed", attrs...)
		case statusCode >= http.StatusBadRequest:
			slog.Warn("Request completed", attrs...)
		default:
			slog.Info("Request completed", attrs...)
		}
	}
}

func skipLogging(path string) bool {
	for _, p := range skipLogPaths {
		if path == p || (strings.HasSuffix(p, "/") && strings.HasPrefix(path, p)) {
			return true
		}
	}
	return false
}

// GinRecoveryMiddleware обрабатывает паники в Gin
func GinRecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				reqID := GetRequestIDFromGin(c)

				slog.Error("[GIN] Panic recovered",
					"panic", fmt.Sprint(err),
					"stack", string(debug.Stack()),
					"request_id", reqID,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success":    false,
					"error":      "Erreur interne du serveur",
					"message":    "Erreur interne du serveur",
					"request_id": reqID,
					"timestamp":  time.Now().Format(time.RFC3339),
				})
			}
		}()

		c.Next()
	}
}
