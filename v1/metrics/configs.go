package metrics

// Defaults for the metrics server.
const (
	DefaultMetricsAddress = ":9090"
	DefaultMetricsPath    = "/metrics"
)

// Config configures the Prometheus registry and the HTTP server exposing it.
type Config struct {
	// Address the metrics server listens on, e.g. ":9090" or "127.0.0.1:9100".
	// Default: ":9090"
	Address string `mapstructure:"address"`

	// Path the registry is served under.
	// Default: "/metrics"
	Path string `mapstructure:"path"`

	// EnableDefaultCollectors registers the Go runtime, process and build info collectors.
	EnableDefaultCollectors bool `mapstructure:"enable_default_collectors"`

	// Namespace prefixes every metric name: "querypipe" yields
	// "querypipe_operations_total".
	Namespace string `mapstructure:"namespace"`

	// ServiceName is attached to every metric as the "service" label.
	ServiceName string `mapstructure:"service_name"`
}

func (c Config) withDefaults() Config {
	if c.Address == "" {
		c.Address = DefaultMetricsAddress
	}
	if c.Path == "" {
		c.Path = DefaultMetricsPath
	}
	return c
}
