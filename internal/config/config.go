// Package config loads the optional YAML configuration file. Everything in
// it can also be set on the command line; the file exists so a release
// engineer can pin the output settings and release translations for a whole
// documentation build in one place.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Document DocumentConfig `yaml:"document"`
}

// OutputConfig controls where and in which schema documents are written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	DTD       string `yaml:"dtd"` // "ahelp" or "sxml"
}

// DocumentConfig carries per-release facts stamped into every document.
type DocumentConfig struct {
	LastModified string `yaml:"last_modified,omitempty"`

	// Releases maps internal release labels to CIAO releases, on top of
	// the built-in translation table.
	Releases map[string]string `yaml:"releases,omitempty"`
}

// Load loads configuration from the specified file. An empty path means no
// config file was requested and yields the defaults.
func Load(configPath string) (*Config, error) {
	config := &Config{}
	if configPath == "" {
		applyDefaults(config)
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if config.Output.DTD != "" && config.Output.DTD != "ahelp" && config.Output.DTD != "sxml" {
		return nil, fmt.Errorf("output.dtd must be \"ahelp\" or \"sxml\", got %q", config.Output.DTD)
	}

	applyDefaults(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.Output.Directory == "" {
		config.Output.Directory = "./out"
	}
	if config.Output.DTD == "" {
		config.Output.DTD = "ahelp"
	}
}
