// Package config loads the pmcice service configuration from YAML files or
// SQLite databases through a common provider interface.
package config

import "github.com/nlcsci/pmcice/pkg/icemodel"

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Configuration management
	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	HTTP    HTTPData    `json:"http"`
	Storage StorageData `json:"storage,omitempty"`
	Model   ModelData   `json:"model,omitempty"`
}

// HTTPData holds the REST server listener configuration
type HTTPData struct {
	ListenAddr string `json:"listen_addr,omitempty"`
	Port       int    `json:"port,omitempty"`
}

// StorageData holds the configuration for run-summary persistence
type StorageData struct {
	SQLite *SQLiteData `json:"sqlite,omitempty"`
}

// SQLiteData holds SQLite-specific storage configuration
type SQLiteData struct {
	Path string `json:"path"`
}

// ModelData holds model defaults applied when a request leaves them unset
type ModelData struct {
	// DefaultParameterization selects the saturation vapor pressure
	// correlation (1=Murphy-Koop, 2=Mauersberger-Krankowsky,
	// 3=Marti-Mauersberger)
	DefaultParameterization int `json:"default_parameterization,omitempty"`
	// BatchWorkers bounds the number of profiles computed concurrently
	// by the batch endpoint
	BatchWorkers int `json:"batch_workers,omitempty"`
}

// ApplyDefaults fills in unset fields with the service defaults
func (c *ConfigData) ApplyDefaults() {
	if c.HTTP.ListenAddr == "" {
		c.HTTP.ListenAddr = "0.0.0.0"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.Model.DefaultParameterization == 0 {
		c.Model.DefaultParameterization = int(icemodel.MurphyKoop)
	}
	if c.Model.BatchWorkers == 0 {
		c.Model.BatchWorkers = 4
	}
}
