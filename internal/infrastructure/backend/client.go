package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// ErrUnavailable backend временно недоступен (circuit breaker открыт)
var ErrUnavailable = errors.New("backend temporarily unavailable")

// unavailableMessage сообщение пользователю при открытом breaker
const unavailableMessage = "Le service est temporairement indisponible. Veuillez réessayer dans quelques instants."

// Config конфигурация клиента внешнего REST API
type Config struct {
	BaseURL   string
	Timeout   time.Duration // 0 = без таймаута
	RateLimit float64       // запросов в секунду, 0 = без ограничения
	Burst     int

	BreakerFailures uint32
	BreakerTimeout  time.Duration

	Logger *slog.Logger
}

// Client клиент backend Panel Entreprises
// Все запросы проходят через rate limiter и circuit breaker
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// NewClient создает клиента backend
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:5000"
	}
	if config.Burst <= 0 {
		config.Burst = 1
	}
	if config.BreakerFailures == 0 {
		config.BreakerFailures = 5
	}
	if config.BreakerTimeout <= 0 {
		config.BreakerTimeout = 30 * time.Second
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	limit := rate.Inf
	if config.RateLimit > 0 {
		limit = rate.Limit(config.RateLimit)
	}

	logger := config.Logger.With("component", "backend")
	failures := config.BreakerFailures

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "panel-backend",
		MaxRequests: 1,
		Timeout:     config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// Отказ бизнес-логики backend не говорит о его недоступности
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return !apiErr.Transient()
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(limit, config.Burst),
		breaker:    breaker,
		logger:     logger,
	}
}

// BreakerState текущее состояние breaker (для /health)
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// envelope общий формат ответа backend
type envelope struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data"`
	Message  string          `json:"message"`
	Error    string          `json:"error"`
	Imported *int            `json:"imported"`
}

func (e *envelope) userMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// decodeData разбирает поле data; пустое data оставляет out без изменений
func (e *envelope) decodeData(out any) error {
	if out == nil || len(e.Data) == 0 || string(e.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}

// request описание одного вызова
type request struct {
	op          string
	method      string
	path        string
	body        io.Reader
	contentType string
}

// jsonRequest готовит запрос с JSON телом
func jsonRequest(op, method, path string, payload any) (request, error) {
	req := request{op: op, method: method, path: path}
	if payload == nil {
		return req, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return req, fmt.Errorf("%s: failed to encode request: %w", op, err)
	}
	req.body = bytes.NewReader(data)
	req.contentType = "application/json"
	return req, nil
}

// multipartFile файл для multipart запроса
type multipartFile struct {
	field    string
	name     string
	mimeType string
	content  io.Reader
}

// multipartRequest собирает multipart/form-data тело
func multipartRequest(op, path string, fields map[string]string, file multipartFile) (request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return request{}, fmt.Errorf("%s: failed to write field %s: %w", op, key, err)
		}
	}

	part, err := createFilePart(w, file)
	if err != nil {
		return request{}, fmt.Errorf("%s: failed to create file part: %w", op, err)
	}
	if file.content != nil {
		if _, err := io.Copy(part, file.content); err != nil {
			return request{}, fmt.Errorf("%s: failed to copy file: %w", op, err)
		}
	}
	if err := w.Close(); err != nil {
		return request{}, fmt.Errorf("%s: failed to finalize form: %w", op, err)
	}

	return request{
		op:          op,
		method:      http.MethodPost,
		path:        path,
		body:        &buf,
		contentType: w.FormDataContentType(),
	}, nil
}

func createFilePart(w *multipart.Writer, file multipartFile) (io.Writer, error) {
	if file.mimeType == "" {
		return w.CreateFormFile(file.field, file.name)
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(file.field), escapeQuotes(file.name)))
	h.Set("Content-Type", file.mimeType)
	return w.CreatePart(h)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// do выполняет запрос и возвращает конверт с success=true
func (c *Client) do(ctx context.Context, r request) (*envelope, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: rate limit wait: %w", r.op, err)
	}

	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.roundTrip(ctx, r)
	})
	duration := time.Since(start)

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Warn("Backend call rejected by circuit breaker", "op", r.op, "path", r.path)
		return nil, &APIError{Op: r.op, Message: unavailableMessage, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	}
	if err != nil {
		c.logger.Warn("Backend call failed", "op", r.op, "path", r.path, "duration", duration, "error", err)
		return nil, err
	}

	c.logger.Debug("Backend call", "op", r.op, "path", r.path, "duration", duration)
	return result.(*envelope), nil
}

func (c *Client) roundTrip(ctx context.Context, r request) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return nil, &APIError{Op: r.op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "PanelServer/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Op: r.op, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Op: r.op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	var env envelope
	decodeErr := json.Unmarshal(body, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Op: r.op, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
		if decodeErr == nil {
			apiErr.Message = env.userMessage()
		}
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, &APIError{Op: r.op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", decodeErr)}
	}
	if !env.Success {
		return nil, &APIError{Op: r.op, StatusCode: resp.StatusCode, Message: env.userMessage(), Rejected: true}
	}
	return &env, nil
}
