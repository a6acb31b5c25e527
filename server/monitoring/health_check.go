package monitoring

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthStatus статус здоровья компонента
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// ComponentHealth здоровье отдельного компонента
type ComponentHealth struct {
	Name      string        `json:"name"`
	Status    HealthStatus  `json:"status"`
	Message   string        `json:"message,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Latency   time.Duration `json:"latency,omitempty"`
}

// HealthCheckResult результат проверки здоровья сервера
type HealthCheckResult struct {
	Status     HealthStatus               `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Uptime     string                     `json:"uptime"`
	Version    string                     `json:"version"`
	Components map[string]ComponentHealth `json:"components"`
	System     SystemHealth               `json:"system"`
}

// SystemHealth системные метрики процесса
type SystemHealth struct {
	HeapAllocBytes uint64 `json:"heap_alloc_bytes"`
	Goroutines     int    `json:"goroutines"`
}

// HealthCheckFunc функция проверки здоровья компонента
type HealthCheckFunc func(ctx context.Context) ComponentHealth

// Pinger компонент с проверкой доступности
type Pinger interface {
	Ping() error
}

// HealthChecker проверяет здоровье зарегистрированных компонентов
type HealthChecker struct {
	mu         sync.RWMutex
	components map[string]HealthCheckFunc
	startTime  time.Time
	version    string
	now        func() time.Time
}

// NewHealthChecker создает HealthChecker
func NewHealthChecker(version string) *HealthChecker {
	return &HealthChecker{
		components: make(map[string]HealthCheckFunc),
		startTime:  time.Now(),
		version:    version,
		now:        time.Now,
	}
}

// RegisterComponent регистрирует компонент для проверки здоровья
func (hc *HealthChecker) RegisterComponent(name string, checkFunc HealthCheckFunc) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.components[name] = checkFunc
}

// Check выполняет проверку всех компонентов.
// Итоговый статус равен худшему статусу компонента.
func (hc *HealthChecker) Check(ctx context.Context) HealthCheckResult {
	hc.mu.RLock()
	names := make([]string, 0, len(hc.components))
	for name := range hc.components {
		names = append(names, name)
	}
	checks := make(map[string]HealthCheckFunc, len(hc.components))
	for name, fn := range hc.components {
		checks[name] = fn
	}
	hc.mu.RUnlock()
	sort.Strings(names)

	components := make(map[string]ComponentHealth, len(names))
	overallStatus := HealthStatusHealthy
	for _, name := range names {
		componentHealth := checks[name](ctx)
		componentHealth.Name = name
		components[name] = componentHealth
		overallStatus = worse(overallStatus, componentHealth.Status)
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return HealthCheckResult{
		Status:     overallStatus,
		Timestamp:  hc.now(),
		Uptime:     time.Since(hc.startTime).Round(time.Second).String(),
		Version:    hc.version,
		Components: components,
		System: SystemHealth{
			HeapAllocBytes: m.HeapAlloc,
			Goroutines:     runtime.NumGoroutine(),
		},
	}
}

func worse(a, b HealthStatus) HealthStatus {
	rank := map[HealthStatus]int{HealthStatusHealthy: 0, HealthStatusDegraded: 1, HealthStatusUnhealthy: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}

// PingCheck проверка через Ping; недоступность делает сервер unhealthy
func PingCheck(p Pinger) HealthCheckFunc {
	return func(ctx context.Context) ComponentHealth {
		start := time.Now()
		err := p.Ping()
		h := ComponentHealth{Status: HealthStatusHealthy, Timestamp: time.Now(), Latency: time.Since(start)}
		if err != nil {
			h.Status = HealthStatusUnhealthy
			h.Message = fmt.Sprintf("ping failed: %v", err)
		}
		return h
	}
}

// BreakerCheck состояние circuit breaker: открытый breaker это деградация, а не отказ
func BreakerCheck(state func() string) HealthCheckFunc {
	return func(ctx context.Context) ComponentHealth {
		s := state()
		h := ComponentHealth{Status: HealthStatusHealthy, Message: "breaker " + s, Timestamp: time.Now()}
		if s != "closed" {
			h.Status = HealthStatusDegraded
		}
		return h
	}
}

// GinHandler обработчик /health
func (hc *HealthChecker) GinHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result := hc.Check(ctx)
		statusCode := http.StatusOK
		if result.Status == HealthStatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, result)
	}
}

// LogHealthStatus логирует статус здоровья
func (hc *HealthChecker) LogHealthStatus(ctx context.Context) {
	result := hc.Check(ctx)

	slog.Info("Health check",
		"status", result.Status,
		"uptime", result.Uptime,
		"components", len(result.Components),
		"goroutines", result.System.Goroutines,
	)

	for name, component := range result.Components {
		if component.Status != HealthStatusHealthy {
			slog.Warn("Component health issue",
				"component", name,
				"status", component.Status,
				"message", component.Message,
			)
		}
	}
}
