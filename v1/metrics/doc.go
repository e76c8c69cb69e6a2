// Package metrics provides Prometheus-based monitoring for the listing layer.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: Defines the contract for metrics operations
//   - Metrics struct: Concrete implementation of the MetricsCollector interface
//   - NewMetrics constructor: Returns *Metrics (concrete type)
//   - FX module: Provides *Metrics, MetricsCollector and observability.Observer
//
// Metrics implements observability.Observer. Every operation reported by the
// mongo client and the listing service is recorded as:
//
//	operations_total{component, operation, resource, status}
//	operation_duration_seconds{component, operation}
//	operation_documents{component, operation}
//
// status is "success" or "error". operation_documents is only observed for
// successful operations.
//
// # Direct Usage (Without FX)
//
//	import "github.com/Aleph-Alpha/querypipe/v1/metrics"
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:                 ":9090",
//		EnableDefaultCollectors: true,
//		ServiceName:             "orders-api",
//	})
//	go m.Server.ListenAndServe()
//
//	mongoClient.WithObserver(m)
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,  // Optional: lifecycle logs
//		metrics.FXModule, // Provides *Metrics and observability.Observer
//		mongo.FXModule,   // Picks up the observer
//		fx.Provide(func() metrics.Config {
//			return metrics.Config{Address: ":9090", ServiceName: "orders-api"}
//		}),
//	)
//
// # Custom Metrics
//
//	exports := m.CreateCounter("exports_total", "Unpaginated exports served", []string{"collection"})
//	exports.WithLabelValues("orders").Inc()
//
// Custom metrics share the namespace and the service label.
package metrics
