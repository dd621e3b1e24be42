package blocksource

import (
	"fmt"
	"time"

	"github.com/spvproof/spvproof/config/types"
)

const (
	// TypeElectrum talks the Electrum protocol over TCP or TLS
	TypeElectrum = "electrum"
	// TypeEsplora talks to an Esplora REST API
	TypeEsplora = "esplora"

	defaultTimeout       = 30 * time.Second
	defaultRetryInterval = time.Second
)

// Config is the configuration of the block data source
type Config struct {
	// Type of the backend: electrum or esplora
	Type string `mapstructure:"Type" jsonschema:"enum=electrum,enum=esplora"`
	// URL of the server. tcp://host:port or ssl://host:port for electrum,
	// http(s)://host/api for esplora
	URL string `mapstructure:"URL"`
	// Timeout for every request sent to the server
	Timeout types.Duration `mapstructure:"Timeout"`
	// MaxRetries is the number of retries after a transport error. Not found
	// errors are never retried
	MaxRetries int `mapstructure:"MaxRetries"`
	// RetryInterval is the initial wait between retries, doubled on each attempt
	RetryInterval types.Duration `mapstructure:"RetryInterval"`
	// CacheSize is the number of block roots kept in memory. 0 disables the cache
	CacheSize int `mapstructure:"CacheSize"`
	// TLSSkipVerify disables the certificate check of ssl:// electrum servers
	TLSSkipVerify bool `mapstructure:"TLSSkipVerify"`
}

// GetTimeout returns the request timeout, using a default if not set
func (c *Config) GetTimeout() time.Duration {
	if c.Timeout.Duration == 0 {
		return defaultTimeout
	}
	return c.Timeout.Duration
}

// GetRetryInterval returns the initial retry interval, using a default if not set
func (c *Config) GetRetryInterval() time.Duration {
	if c.RetryInterval.Duration == 0 {
		return defaultRetryInterval
	}
	return c.RetryInterval.Duration
}

// Validate checks the config is usable
func (c *Config) Validate() error {
	switch c.Type {
	case TypeElectrum, TypeEsplora:
	default:
		return fmt.Errorf("unsupported block data source type %q", c.Type)
	}
	if c.URL == "" {
		return fmt.Errorf("block data source URL is empty")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("MaxRetries can't be negative: %d", c.MaxRetries)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("CacheSize can't be negative: %d", c.CacheSize)
	}
	return nil
}
