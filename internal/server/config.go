package server

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/donut-profit/internal/config"
	"github.com/iwvelando/donut-profit/pkg/constants"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides of the server configuration, e.g.
// DONUT_SERVER_ADDRESS=:9090.
const EnvPrefix = config.EnvPrefix + "_SERVER"

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address         string               `mapstructure:"address"`
	MaxBodySize     string               `mapstructure:"maxBodySize"`
	ReadTimeout     time.Duration        `mapstructure:"readTimeout"`
	WriteTimeout    time.Duration        `mapstructure:"writeTimeout"`
	ShutdownTimeout time.Duration        `mapstructure:"shutdownTimeout"`
	Version         string               `mapstructure:"version"`
	Logging         config.LoggingConfig `mapstructure:"logging"`

	bodySizeBytes int64
}

var sizeUnits = map[string]int64{
	"":   1,
	"B":  1,
	"K":  1 << 10,
	"KB": 1 << 10,
	"M":  1 << 20,
	"MB": 1 << 20,
	"G":  1 << 30,
	"GB": 1 << 30,
}

// LoadConfig reads the server configuration. A missing file is not an error,
// the defaults and any environment overrides apply.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("address", constants.DefaultServerAddress)
	v.SetDefault("maxBodySize", strconv.FormatInt(constants.DefaultMaxBodySizeBytes, 10))
	v.SetDefault("readTimeout", constants.DefaultReadTimeout)
	v.SetDefault("writeTimeout", constants.DefaultWriteTimeout)
	v.SetDefault("shutdownTimeout", constants.DefaultShutdownTimeout)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read server config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// BodySizeBytes returns the configured request body limit in bytes.
func (c *Config) BodySizeBytes() int64 {
	return c.bodySizeBytes
}

// SetBodySizeBytes overrides the configured request body limit.
func (c *Config) SetBodySizeBytes(size int64) {
	if size > 0 {
		c.bodySizeBytes = size
		c.MaxBodySize = strconv.FormatInt(size, 10)
	}
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.Address) == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = constants.DefaultReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = constants.DefaultWriteTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	size, err := ParseSize(c.MaxBodySize)
	if err != nil {
		return err
	}
	if size <= 0 {
		size = constants.DefaultMaxBodySizeBytes
	}
	c.bodySizeBytes = size
	return nil
}

// ParseSize converts a byte count with an optional unit suffix ("64K", "1MB")
// into bytes. An empty string yields the default body limit.
func ParseSize(value string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(value))
	if s == "" {
		return constants.DefaultMaxBodySizeBytes, nil
	}

	split := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if split == -1 {
		split = len(s)
	}
	if split == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	multiplier, ok := sizeUnits[strings.TrimSpace(s[split:])]
	if !ok {
		return 0, fmt.Errorf("unsupported size unit %q", strings.TrimSpace(s[split:]))
	}

	n, err := strconv.ParseInt(s[:split], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}
	if n > (1<<63-1)/multiplier {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return n * multiplier, nil
}
