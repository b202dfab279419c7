// Package metrics expõe os contadores do painel para o Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dropship"

// Metrics mantém os coletores em um registry próprio
type Metrics struct {
	registry *prometheus.Registry

	taskRuns       *prometheus.CounterVec
	taskDuration   *prometheus.HistogramVec
	searches       *prometheus.CounterVec
	imports        *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	scheduledTasks prometheus.Gauge
}

// New cria e registra todos os coletores
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		taskRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_runs_total",
			Help:      "Scheduled task executions by type and final status",
		}, []string{"type", "status"}),
		taskDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_duration_seconds",
			Help:      "Scheduled task execution time",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120},
		}, []string{"type"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "product_searches_total",
			Help:      "Catalog searches by platform and outcome",
		}, []string{"platform", "outcome"}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "product_imports_total",
			Help:      "Product imports by outcome",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		scheduledTasks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scheduled_tasks",
			Help:      "Tasks currently registered with the scheduler",
		}),
	}

	registry.MustRegister(
		m.taskRuns,
		m.taskDuration,
		m.searches,
		m.imports,
		m.httpRequests,
		m.httpDuration,
		m.scheduledTasks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveTask registra uma execução de tarefa
func (m *Metrics) ObserveTask(taskType, status string, elapsed time.Duration) {
	m.taskRuns.WithLabelValues(taskType, status).Inc()
	m.taskDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
}

// SetScheduledTasks define o número de tarefas registradas
func (m *Metrics) SetScheduledTasks(n int) {
	m.scheduledTasks.Set(float64(n))
}

// ObserveSearch registra uma busca no catálogo. outcome é "ok", "empty" ou "error".
func (m *Metrics) ObserveSearch(platform, outcome string) {
	m.searches.WithLabelValues(platform, outcome).Inc()
}

// ObserveImport registra uma importação de produto. outcome é "ok" ou "error".
func (m *Metrics) ObserveImport(outcome string) {
	m.imports.WithLabelValues(outcome).Inc()
}

// ObserveRequest registra uma requisição HTTP
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serve o registry no formato texto do Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
