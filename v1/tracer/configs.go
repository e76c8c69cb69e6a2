package tracer

// Config holds the tracing settings.
type Config struct {
	// ServiceName is reported as the service.name resource attribute.
	ServiceName string `mapstructure:"service_name"`

	// AppEnv is reported as deployment.environment.
	AppEnv string `mapstructure:"app_env"`

	// EnableExport sends spans to an OTLP/HTTP collector. The collector is
	// configured through the standard OTEL_EXPORTER_OTLP_* variables unless
	// Endpoint is set.
	EnableExport bool `mapstructure:"enable_export"`

	// Endpoint overrides the collector host:port.
	Endpoint string `mapstructure:"endpoint"`

	// Insecure disables TLS towards the collector.
	Insecure bool `mapstructure:"insecure"`
}
