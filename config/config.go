package config

import (
	"fmt"

	"github.com/kbukum/filterkit/httpsink"
	"github.com/kbukum/filterkit/logger"
)

// Config is the top-level filterkit configuration.
type Config struct {
	Logger logger.Config   `yaml:"logger" mapstructure:"logger"`
	Sink   httpsink.Config `yaml:"sink" mapstructure:"sink"`
}

// ApplyDefaults fills in zero-valued fields with defaults.
func (c *Config) ApplyDefaults() {
	c.Logger.ApplyDefaults()
	c.Sink.ApplyDefaults()
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	if err := c.Sink.Validate(); err != nil {
		return fmt.Errorf("sink: %w", err)
	}
	return nil
}
