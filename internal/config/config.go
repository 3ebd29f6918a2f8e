package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config represents the main configuration structure
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	SessionCache SessionCacheConfig `yaml:"session_cache"`
	SharedCache  SharedCacheConfig  `yaml:"shared_cache"`
	L2           L2Config           `yaml:"l2"`
	Transport    TransportConfig    `yaml:"transport"`
	Prefetch     PrefetchConfig     `yaml:"prefetch"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	ListenAddress   string `yaml:"listen_address"`
	ReadTimeout     int    `yaml:"read_timeout"`     // milliseconds
	WriteTimeout    int    `yaml:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `yaml:"shutdown_timeout"` // milliseconds
}

// SessionCacheConfig bounds the per-session fragment store
type SessionCacheConfig struct {
	Capacity int `yaml:"capacity"`
}

// SharedCacheConfig holds the optional in-process shared tier settings
type SharedCacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	LifeWindow int  `yaml:"life_window"` // seconds
	MaxSizeMB  int  `yaml:"max_size_mb"`
	Propagate  bool `yaml:"propagate"`
}

// L2Config holds the optional Redis tier settings
type L2Config struct {
	Enabled      bool   `yaml:"enabled"`
	URL          string `yaml:"url"`
	ReadTimeout  int    `yaml:"read_timeout"`  // milliseconds
	WriteTimeout int    `yaml:"write_timeout"` // milliseconds
	TTL          int    `yaml:"ttl"`           // seconds
}

// TransportConfig points at the storefront rendering upstream
type TransportConfig struct {
	UpstreamURL    string `yaml:"upstream_url"`
	RequestTimeout int    `yaml:"request_timeout"` // milliseconds
}

// PrefetchConfig tunes the speculative prefetch delays
type PrefetchConfig struct {
	IdleAvailable    *bool `yaml:"idle_available"`
	IdleDelay        int   `yaml:"idle_delay"`         // milliseconds
	FallbackDelay    int   `yaml:"fallback_delay"`     // milliseconds
	PostChangeDelay  int   `yaml:"post_change_delay"`  // milliseconds
	HoverSettleDelay int   `yaml:"hover_settle_delay"` // milliseconds
}

// LoadConfig loads configuration from file path
func LoadConfig(configPath string, logger *zap.Logger) (*Config, error) {
	logger.Info("Loading configuration", zap.String("path", configPath))

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var config Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode YAML config: %w", err)
	}

	// Apply defaults
	config.applyDefaults()
	return &config, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Server.ListenAddress == "" {
		c.Server.ListenAddress = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 5000
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10000
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 5000
	}
	if c.SessionCache.Capacity == 0 {
		c.SessionCache.Capacity = 50
	}
	if c.SharedCache.LifeWindow == 0 {
		c.SharedCache.LifeWindow = 600
	}
	if c.SharedCache.MaxSizeMB == 0 {
		c.SharedCache.MaxSizeMB = 64
	}
	if c.L2.ReadTimeout == 0 {
		c.L2.ReadTimeout = 200
	}
	if c.L2.WriteTimeout == 0 {
		c.L2.WriteTimeout = 200
	}
	if c.L2.TTL == 0 {
		c.L2.TTL = 600
	}
	if c.Transport.RequestTimeout == 0 {
		c.Transport.RequestTimeout = 5000
	}
	if c.Prefetch.IdleAvailable == nil {
		enabled := true
		c.Prefetch.IdleAvailable = &enabled
	}
	if c.Prefetch.IdleDelay == 0 {
		c.Prefetch.IdleDelay = 200
	}
	if c.Prefetch.FallbackDelay == 0 {
		c.Prefetch.FallbackDelay = 500
	}
	if c.Prefetch.PostChangeDelay == 0 {
		c.Prefetch.PostChangeDelay = 200
	}
	if c.Prefetch.HoverSettleDelay == 0 {
		c.Prefetch.HoverSettleDelay = 100
	}
}

// GetReadTimeout returns the server read timeout as duration
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeout) * time.Millisecond
}

// GetWriteTimeout returns the server write timeout as duration
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeout) * time.Millisecond
}

// GetShutdownTimeout returns the graceful shutdown window as duration
func (c *Config) GetShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeout) * time.Millisecond
}

// GetRequestTimeout returns the upstream request timeout as duration
func (c *Config) GetRequestTimeout() time.Duration {
	return time.Duration(c.Transport.RequestTimeout) * time.Millisecond
}

// GetL2ReadTimeout returns the Redis read timeout as duration
func (c *Config) GetL2ReadTimeout() time.Duration {
	return time.Duration(c.L2.ReadTimeout) * time.Millisecond
}

// GetL2WriteTimeout returns the Redis write timeout as duration
func (c *Config) GetL2WriteTimeout() time.Duration {
	return time.Duration(c.L2.WriteTimeout) * time.Millisecond
}

// GetL2TTL returns the Redis entry lifetime as duration
func (c *Config) GetL2TTL() time.Duration {
	return time.Duration(c.L2.TTL) * time.Second
}

// GetSharedLifeWindow returns the shared tier entry lifetime as duration
func (c *Config) GetSharedLifeWindow() time.Duration {
	return time.Duration(c.SharedCache.LifeWindow) * time.Second
}

// GetIdleDelay returns the attach-pass idle delay as duration
func (c *Config) GetIdleDelay() time.Duration {
	return time.Duration(c.Prefetch.IdleDelay) * time.Millisecond
}

// GetFallbackDelay returns the attach-pass fallback delay as duration
func (c *Config) GetFallbackDelay() time.Duration {
	return time.Duration(c.Prefetch.FallbackDelay) * time.Millisecond
}

// GetPostChangeDelay returns the post-change prefetch delay as duration
func (c *Config) GetPostChangeDelay() time.Duration {
	return time.Duration(c.Prefetch.PostChangeDelay) * time.Millisecond
}

// GetHoverSettleDelay returns the hover settle delay as duration
func (c *Config) GetHoverSettleDelay() time.Duration {
	return time.Duration(c.Prefetch.HoverSettleDelay) * time.Millisecond
}

// IdleAvailable reports whether idle scheduling should drive the attach pass
func (c *Config) IdleAvailable() bool {
	if c.Prefetch.IdleAvailable == nil {
		return true
	}
	return *c.Prefetch.IdleAvailable
}
