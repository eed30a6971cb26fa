package exporter

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Defaults applied by New when the corresponding Config field is unset.
const (
	DefaultSystemMetricsAddress      = ":9090"
	DefaultApplicationMetricsAddress = ":9091"
	DefaultPath                      = "/metrics"
)

// Config defines where the exporter serves its two scrape endpoints.
//
// The exporter runs two HTTP servers:
//  1. System endpoint (default :9090): Go runtime, process and build info
//     metrics, collected by the Prometheus client.
//  2. Application endpoint (default :9091): the application's own registry,
//     rendered by the exposition package.
type Config struct {
	// SystemMetricsAddress is the listen address of the system endpoint.
	//
	// Example values:
	//   - ":9090"          → all interfaces, port 9090
	//   - "127.0.0.1:9090" → localhost only
	//   - nil (or omitted) → the default ":9090"
	//
	// An empty string disables the endpoint:
	//   SystemMetricsAddress: exporter.Ptr(""),
	//
	// YAML key "system_metrics_address", environment METRICS_SYSTEM_ADDRESS.
	SystemMetricsAddress *string `yaml:"system_metrics_address" envconfig:"METRICS_SYSTEM_ADDRESS"`

	// ApplicationMetricsAddress is the listen address of the application
	// endpoint. nil means ":9091"; an empty string disables the endpoint,
	// though the application registry is still created.
	//
	// YAML key "application_metrics_address", environment
	// METRICS_APPLICATION_ADDRESS.
	ApplicationMetricsAddress *string `yaml:"application_metrics_address" envconfig:"METRICS_APPLICATION_ADDRESS"`

	// Path is the HTTP path both endpoints answer on. Default "/metrics".
	//
	// YAML key "path", environment METRICS_PATH.
	Path string `yaml:"path" envconfig:"METRICS_PATH"`

	// ServiceName is added as a constant service label to every sample of
	// both endpoints.
	//
	// Example:
	//   ServiceName: "document-index"
	//   → samples carry service="document-index"
	//
	// YAML key "service_name", environment METRICS_SERVICE_NAME.
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME"`
}

// Ptr returns a pointer to s. Use it to set or disable an address.
//
// Example:
//
//	cfg := exporter.Config{
//	    SystemMetricsAddress:      exporter.Ptr(""), // disabled
//	    ApplicationMetricsAddress: nil,              // default
//	    ServiceName:               "my-service",
//	}
func Ptr(s string) *string {
	return &s
}

// LoadConfig reads a Config from the YAML file at path, then applies the
// METRICS_* environment variables on top. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read metrics config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse metrics config %s: %w", path, err)
		}
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("metrics config from environment: %w", err)
	}
	return cfg, nil
}

func (c Config) systemAddress() string {
	if c.SystemMetricsAddress == nil {
		return DefaultSystemMetricsAddress
	}
	return *c.SystemMetricsAddress
}

func (c Config) applicationAddress() string {
	if c.ApplicationMetricsAddress == nil {
		return DefaultApplicationMetricsAddress
	}
	return *c.ApplicationMetricsAddress
}

func (c Config) path() string {
	if c.Path == "" {
		return DefaultPath
	}
	return c.Path
}
