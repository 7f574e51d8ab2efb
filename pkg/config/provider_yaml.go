package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	// Load into temporary struct with YAML tags
	var yamlConfig struct {
		HTTP struct {
			ListenAddr string `yaml:"listen_addr"`
			Port       int    `yaml:"port"`
		} `yaml:"http"`
		Storage struct {
			SQLite *struct {
				Path string `yaml:"path"`
			} `yaml:"sqlite,omitempty"`
		} `yaml:"storage,omitempty"`
		Model struct {
			DefaultParameterization int `yaml:"default_parameterization"`
			BatchWorkers            int `yaml:"batch_workers"`
		} `yaml:"model,omitempty"`
	}

	err = yaml.Unmarshal(cfgFile, &yamlConfig)
	if err != nil {
		return nil, err
	}

	// Convert to our internal format
	config := &ConfigData{
		HTTP: HTTPData{
			ListenAddr: yamlConfig.HTTP.ListenAddr,
			Port:       yamlConfig.HTTP.Port,
		},
		Model: ModelData{
			DefaultParameterization: yamlConfig.Model.DefaultParameterization,
			BatchWorkers:            yamlConfig.Model.BatchWorkers,
		},
	}
	if yamlConfig.Storage.SQLite != nil {
		config.Storage.SQLite = &SQLiteData{Path: yamlConfig.Storage.SQLite.Path}
	}

	config.ApplyDefaults()
	return config, nil
}

// IsReadOnly returns true since YAML files are read-only in this implementation
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML providers
func (y *YAMLProvider) Close() error {
	return nil
}
