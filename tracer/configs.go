package tracer

// Exporters accepted by Config.Exporter.
const (
	ExporterOTLP   = "otlp"
	ExporterStdout = "stdout"
)

// Config defines the configuration for the OpenTelemetry tracer.
type Config struct {
	// ServiceName identifies the service in exported spans. It is set as
	// the service.name resource attribute.
	//
	// Example values: "search-store", "checkout"
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv is the deployment environment, e.g. "staging" or
	// "production". It is set as the deployment.environment and
	// environment resource attributes.
	AppEnv string `yaml:"app_env" envconfig:"TRACER_APP_ENV"`

	// EnableExport sends finished spans to Exporter. When false, spans are
	// still created and propagated, and log lines still carry trace ids,
	// but nothing leaves the process.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`

	// Exporter is "otlp" (default), which sends spans over OTLP/HTTP to the
	// collector named by the standard OTEL_EXPORTER_OTLP_* variables, or
	// "stdout", which prints them for local debugging.
	Exporter string `yaml:"exporter" envconfig:"TRACER_EXPORTER"`
}
