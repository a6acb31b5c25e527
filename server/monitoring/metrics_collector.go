package monitoring

import (
	"sort"
	"sync"
	"time"
)

// maxDurations сколько последних длительностей хранится для среднего
const maxDurations = 1000

// MetricsCollector собирает метрики HTTP запросов и событий интерфейса
type MetricsCollector struct {
	mu sync.RWMutex

	httpRequestsTotal   int64
	httpRequestsSuccess int64
	httpRequestsError   int64
	httpRequestDuration []time.Duration

	events map[string]*eventStats

	startTime     time.Time
	lastResetTime time.Time
}

type eventStats struct {
	total     int64
	failed    int64
	durations []time.Duration
}

// EventMetrics метрики одного типа события
type EventMetrics struct {
	Type          string  `json:"type"`
	Total         int64   `json:"total"`
	Failed        int64   `json:"failed"`
	AvgDurationMs float64 `json:"avg_duration_ms"`
}

// MetricsSnapshot снимок метрик
type MetricsSnapshot struct {
	HTTP struct {
		RequestsTotal     int64   `json:"requests_total"`
		RequestsSuccess   int64   `json:"requests_success"`
		RequestsError     int64   `json:"requests_error"`
		SuccessRate       float64 `json:"success_rate"`
		AvgDurationMs     float64 `json:"avg_duration_ms"`
		RequestsPerSecond float64 `json:"requests_per_second"`
	} `json:"http"`
	Events        []EventMetrics `json:"events"`
	UptimeSeconds float64        `json:"uptime_seconds"`
	StartTime     time.Time      `json:"start_time"`
	LastResetTime time.Time      `json:"last_reset_time"`
}

// NewMetricsCollector создает новый сборщик метрик
func NewMetricsCollector() *MetricsCollector {
	now := time.Now()
	return &MetricsCollector{
		events:        make(map[string]*eventStats),
		startTime:     now,
		lastResetTime: now,
	}
}

// RecordHTTPRequest записывает HTTP запрос
func (mc *MetricsCollector) RecordHTTPRequest(success bool, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.httpRequestsTotal++
	if success {
		mc.httpRequestsSuccess++
	} else {
		mc.httpRequestsError++
	}
	mc.httpRequestDuration = appendBounded(mc.httpRequestDuration, duration)
}

// RecordEvent записывает обработку события интерфейса
func (mc *MetricsCollector) RecordEvent(eventType string, failed bool, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	stats, ok := mc.events[eventType]
	if !ok {
		stats = &eventStats{}
		mc.events[eventType] = stats
	}
	stats.total++
	if failed {
		stats.failed++
	}
	stats.durations = appendBounded(stats.durations, duration)
}

// Snapshot возвращает текущие метрики
func (mc *MetricsCollector) Snapshot() MetricsSnapshot {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	var s MetricsSnapshot
	s.HTTP.RequestsTotal = mc.httpRequestsTotal
	s.HTTP.RequestsSuccess = mc.httpRequestsSuccess
	s.HTTP.RequestsError = mc.httpRequestsError
	s.HTTP.AvgDurationMs = averageMs(mc.httpRequestDuration)
	if mc.httpRequestsTotal > 0 {
		s.HTTP.SuccessRate = float64(mc.httpRequestsSuccess) / float64(mc.httpRequestsTotal) * 100
	}

	uptime := time.Since(mc.startTime).Seconds()
	if uptime > 0 {
		s.HTTP.RequestsPerSecond = float64(mc.httpRequestsTotal) / uptime
	}

	s.Events = make([]EventMetrics, 0, len(mc.events))
	for eventType, stats := range mc.events {
		s.Events = append(s.Events, EventMetrics{
			Type:          eventType,
			Total:         stats.total,
			Failed:        stats.failed,
			AvgDurationMs: averageMs(stats.durations),
		})
	}
	sort.Slice(s.Events, func(i, j int) bool { return s.Events[i].Type < s.Events[j].Type })

	s.UptimeSeconds = uptime
	s.StartTime = mc.startTime
	s.LastResetTime = mc.lastResetTime
	return s
}

// Reset сбрасывает метрики
func (mc *MetricsCollector) Reset() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.httpRequestsTotal = 0
	mc.httpRequestsSuccess = 0
	mc.httpRequestsError = 0
	mc.httpRequestDuration = nil
	mc.events = make(map[string]*eventStats)
	mc.lastResetTime = time.Now()
}

func appendBounded(list []time.Duration, d time.Duration) []time.Duration {
	list = append(list, d)
	if len(list) > maxDurations {
		list = list[len(list)-maxDurations:]
	}
	return list
}

func averageMs(list []time.Duration) float64 {
	if len(list) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range list {
		total += d
	}
	return float64(total.Microseconds()) / float64(len(list)) / 1000
}
