package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file looked up when no path is given.
const DefaultConfigFile = "edgeship.yaml"

// LoadFile reads, defaults, and validates the configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse unmarshals, defaults, and validates raw YAML configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// FindConfigFile returns the default config file path if it exists in the
// working directory.
func FindConfigFile() (string, error) {
	if _, err := os.Stat(DefaultConfigFile); err != nil {
		return "", fmt.Errorf("config file %s not found", DefaultConfigFile)
	}
	return DefaultConfigFile, nil
}

func (c *Config) applyDefaults() {
	if c.Network.CIDR == "" {
		c.Network.CIDR = DefaultNetworkCIDR
	}
	if c.Network.SubnetCIDR == "" {
		c.Network.SubnetCIDR = DefaultSubnetCIDR
	}
	if c.Network.Zone == "" {
		c.Network.Zone = DefaultNetworkZone
	}
	if c.Instance.Type == "" {
		c.Instance.Type = DefaultServerType
	}
	if c.Instance.Image == "" {
		c.Instance.Image = DefaultImage
	}
	if c.Instance.AppPort == 0 {
		c.Instance.AppPort = DefaultAppPort
	}
	if c.Deploy.Branch == "" {
		c.Deploy.Branch = DefaultBranch
	}
	if c.Deploy.Registry == "" {
		c.Deploy.Registry = DefaultRegistry
	}
	if c.State.Path == "" {
		c.State.Path = DefaultStatePath
	}
}
