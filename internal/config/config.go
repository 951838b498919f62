// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/donut-profit/internal/optimizer"
	"github.com/iwvelando/donut-profit/internal/params"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variable overrides, e.g.
// DONUT_PARAMETERS_DONUTPRICE=3.
const EnvPrefix = "DONUT"

// Configuration holds all configuration for donut-profit.
type Configuration struct {
	Parameters params.Parameters `yaml:"parameters" mapstructure:"parameters"`
	Optimizer  optimizer.Options `yaml:"optimizer,omitempty" mapstructure:"optimizer"`
	Logging    LoggingConfig     `yaml:"logging,omitempty" mapstructure:"logging"`
	Output     OutputConfig      `yaml:"output,omitempty" mapstructure:"output"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json, xlsx
	File   string `yaml:"file,omitempty" mapstructure:"file"`     // optional, required for xlsx
}

// Default returns the configuration used when no file is present.
func Default() *Configuration {
	return &Configuration{Parameters: params.Defaults()}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Registering every parameter as a default fills the ones a file leaves
	// out and lets AutomaticEnv see them.
	for name, value := range params.Defaults().Map() {
		v.SetDefault("parameters."+name, value)
	}
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Hard errors come from Parameters.Validate.
func (c *Configuration) ValidateConfiguration() []string {
	return c.Parameters.OutOfRange()
}
