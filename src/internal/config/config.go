package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/merretbuurman/iptables-stats-comparison/src/internal/log"
)

// LoadConfig reads a TOML configuration file. Settings missing from the
// file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %v", err)
		} else {
			configFile = path
		}
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(content, config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			log.Errorf("%s", derr.String())
			row, col := derr.Position()
			log.Errorf("Error at line %d, column %d", row, col)
			return nil, fmt.Errorf("failed to parse config file")
		}
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	config._absConfigFilePath = configFile

	log.Debugf("Configuration file path: %s", configFile)

	return config, nil
}

// LoadConfigOrDefault is LoadConfig, except that a missing file yields the
// default configuration.
func LoadConfigOrDefault(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	cfg, err := LoadConfig(configPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Debugf("Configuration file %s not found, using defaults", configPath)
		return DefaultConfig(), nil
	}
	return cfg, err
}

func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return &buf, nil
}

// WriteConfig writes the configuration to path.
func (c *Config) WriteConfig(path string) error {
	config, err := c.SerializeConfig()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %v", err)
	}
	return os.WriteFile(path, config.Bytes(), 0644)
}
