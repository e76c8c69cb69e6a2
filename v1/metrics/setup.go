package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing application metrics.
//
// Metrics implements observability.Observer, so it can be handed directly to
// the mongo client and the listing service.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each service maintains its own isolated registry to prevent metric name collisions.
	Registry *prometheus.Registry

	// registerer applies the service label to everything registered through it.
	registerer prometheus.Registerer
	namespace  string

	operationsTotal    *prometheus.CounterVec
	operationDuration  *prometheus.HistogramVec
	operationDocuments *prometheus.HistogramVec
}

const readHeaderTimeout = 5 * time.Second

// documentBuckets spans single-item lookups up to unpaginated exports.
var documentBuckets = prometheus.ExponentialBuckets(1, 4, 10)

// NewMetrics creates an isolated registry with the operation metrics fed by
// ObserveOperation:
//
//	operations_total{component,operation,resource,status}
//	operation_duration_seconds{component,operation}
//	operation_documents{component,operation}
//
// Every metric carries service="<ServiceName>". The returned Server is not
// started; FXModule starts it, or call ListenAndServe yourself.
func NewMetrics(cfg Config) *Metrics {
	cfg = cfg.withDefaults()

	registry := prometheus.NewRegistry()

	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry:   registry,
		registerer: wrappedRegistry,
		namespace:  cfg.Namespace,
	}

	m.operationsTotal = createCounterVec(cfg.Namespace, "operations_total",
		"Total number of observed operations", []string{"component", "operation", "resource", "status"})
	m.operationDuration = createHistogramVec(cfg.Namespace, "operation_duration_seconds",
		"Duration of observed operations in seconds", []string{"component", "operation"}, prometheus.DefBuckets)
	m.operationDocuments = createHistogramVec(cfg.Namespace, "operation_documents",
		"Documents returned or counted per operation", []string{"component", "operation"}, documentBuckets)

	wrappedRegistry.MustRegister(
		m.operationsTotal,
		m.operationDuration,
		m.operationDocuments,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	m.Server = &http.Server{
		Addr:              cfg.Address,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return m
}
