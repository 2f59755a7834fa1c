package api

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/annel0/mmo-globe/internal/globe"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// ServerMetrics содержит метрики процесса сервера
type ServerMetrics struct {
	StartTime time.Time
}

// NewServerMetrics создает новый экземпляр метрик
func NewServerMetrics() *ServerMetrics {
	return &ServerMetrics{
		StartTime: time.Now(),
	}
}

// GetUptime возвращает время работы сервера
func (sm *ServerMetrics) GetUptime() string {
	uptime := time.Since(sm.StartTime)

	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	default:
		return fmt.Sprintf("%dс", seconds)
	}
}

// GetMemoryUsage возвращает использование памяти в MB
func (sm *ServerMetrics) GetMemoryUsage() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.Alloc) / 1024 / 1024
}

// GetCPUUsage возвращает использование CPU процессом в процентах
func (sm *ServerMetrics) GetCPUUsage() (float64, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		// Если метрика процесса недоступна, берем системную
		cpuPercents, err := cpu.Percent(100*time.Millisecond, false)
		if err != nil || len(cpuPercents) == 0 {
			return 0, err
		}
		return cpuPercents[0], nil
	}

	return cpuPercent, nil
}

// ResolverMetrics счетчики запросов к резолверу эквивалентности
type ResolverMetrics struct {
	queries *prometheus.CounterVec
	rejects prometheus.Counter
}

// NewResolverMetrics регистрирует счетчики в reg (nil — дефолтный регистр)
func NewResolverMetrics(reg prometheus.Registerer) *ResolverMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	rm := &ResolverMetrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "globe",
			Name:      "equivalence_queries_total",
			Help:      "Число разрешенных точек по регионам.",
		}, []string{"region"}),
		rejects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "globe",
			Name:      "rejected_points_total",
			Help:      "Число точек, отклоненных проверкой границ.",
		}),
	}
	reg.MustRegister(rm.queries, rm.rejects)
	return rm
}

// Observe учитывает успешно классифицированную точку
func (rm *ResolverMetrics) Observe(region globe.Region) {
	rm.queries.WithLabelValues(region.String()).Inc()
}

// Reject учитывает точку вне границ панели
func (rm *ResolverMetrics) Reject() {
	rm.rejects.Inc()
}
