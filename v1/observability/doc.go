// Package observability defines the hook through which the mongo and listing
// packages report completed operations. The metrics package provides a
// Prometheus-backed Observer; tests typically record operations in memory.
package observability
