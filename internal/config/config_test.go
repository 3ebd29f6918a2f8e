package config

import (
	"os"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func createTestConfigFile(t *testing.T, content string) string {
	tmpFile, err := os.CreateTemp("", "variant_cache_config_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}

	if err := tmpFile.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}

	return tmpFile.Name()
}

func TestLoadConfig(t *testing.T) {
	logger := zaptest.NewLogger(t)

	validConfig := `
server:
  listen_address: ":9090"
  read_timeout: 2000
  write_timeout: 4000

session_cache:
  capacity: 25

shared_cache:
  enabled: true
  life_window: 1200
  max_size_mb: 128

l2:
  enabled: true
  url: redis://localhost:6379/0
  read_timeout: 100
  write_timeout: 100
  ttl: 300

transport:
  upstream_url: http://storefront:3000
  request_timeout: 2500

prefetch:
  idle_available: false
  idle_delay: 150
  fallback_delay: 400
  post_change_delay: 150
  hover_settle_delay: 80
`

	configFile := createTestConfigFile(t, validConfig)
	defer os.Remove(configFile)

	config, err := LoadConfig(configFile, logger)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Server.ListenAddress != ":9090" {
		t.Errorf("LoadConfig() Server.ListenAddress = %v, want :9090", config.Server.ListenAddress)
	}
	if config.SessionCache.Capacity != 25 {
		t.Errorf("LoadConfig() SessionCache.Capacity = %v, want 25", config.SessionCache.Capacity)
	}
	if !config.SharedCache.Enabled {
		t.Errorf("LoadConfig() SharedCache.Enabled = false, want true")
	}
	if config.SharedCache.MaxSizeMB != 128 {
		t.Errorf("LoadConfig() SharedCache.MaxSizeMB = %v, want 128", config.SharedCache.MaxSizeMB)
	}
	if !config.L2.Enabled {
		t.Errorf("LoadConfig() L2.Enabled = false, want true")
	}
	if config.L2.URL != "redis://localhost:6379/0" {
		t.Errorf("LoadConfig() L2.URL = %v, want redis://localhost:6379/0", config.L2.URL)
	}
	if config.Transport.UpstreamURL != "http://storefront:3000" {
		t.Errorf("LoadConfig() Transport.UpstreamURL = %v, want http://storefront:3000", config.Transport.UpstreamURL)
	}
	if config.IdleAvailable() {
		t.Errorf("LoadConfig() IdleAvailable() = true, want false")
	}
}

func TestLoadConfig_WithDefaults(t *testing.T) {
	logger := zaptest.NewLogger(t)

	minimalConfig := `
transport:
  upstream_url: http://storefront:3000
`

	configFile := createTestConfigFile(t, minimalConfig)
	defer os.Remove(configFile)

	config, err := LoadConfig(configFile, logger)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Server.ListenAddress != ":8080" {
		t.Errorf("LoadConfig() Server.ListenAddress = %v, want :8080 (default)", config.Server.ListenAddress)
	}
	if config.SessionCache.Capacity != 50 {
		t.Errorf("LoadConfig() SessionCache.Capacity = %v, want 50 (default)", config.SessionCache.Capacity)
	}
	if config.Transport.RequestTimeout != 5000 {
		t.Errorf("LoadConfig() Transport.RequestTimeout = %v, want 5000 (default)", config.Transport.RequestTimeout)
	}
	if !config.IdleAvailable() {
		t.Errorf("LoadConfig() IdleAvailable() = false, want true (default)")
	}
	if config.Prefetch.IdleDelay != 200 {
		t.Errorf("LoadConfig() Prefetch.IdleDelay = %v, want 200 (default)", config.Prefetch.IdleDelay)
	}
	if config.Prefetch.FallbackDelay != 500 {
		t.Errorf("LoadConfig() Prefetch.FallbackDelay = %v, want 500 (default)", config.Prefetch.FallbackDelay)
	}
	if config.Prefetch.HoverSettleDelay != 100 {
		t.Errorf("LoadConfig() Prefetch.HoverSettleDelay = %v, want 100 (default)", config.Prefetch.HoverSettleDelay)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	logger := zaptest.NewLogger(t)

	_, err := LoadConfig("/nonexistent/file.yaml", logger)
	if err == nil {
		t.Fatal("LoadConfig() should return error for nonexistent file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	logger := zaptest.NewLogger(t)

	invalidConfig := `
server:
  listen_address: ":8080"
  invalid yaml syntax [
`

	configFile := createTestConfigFile(t, invalidConfig)
	defer os.Remove(configFile)

	_, err := LoadConfig(configFile, logger)
	if err == nil {
		t.Fatal("LoadConfig() should return error for invalid YAML")
	}
}

func TestConfig_TimeoutMethods(t *testing.T) {
	config := &Config{
		Server: ServerConfig{
			ReadTimeout:     1500,
			WriteTimeout:    2500,
			ShutdownTimeout: 3500,
		},
		Transport: TransportConfig{
			RequestTimeout: 4500,
		},
		L2: L2Config{
			ReadTimeout:  100,
			WriteTimeout: 150,
			TTL:          300,
		},
		Prefetch: PrefetchConfig{
			IdleDelay:        200,
			FallbackDelay:    500,
			PostChangeDelay:  250,
			HoverSettleDelay: 80,
		},
	}

	tests := []struct {
		name     string
		method   func() time.Duration
		expected time.Duration
	}{
		{"GetReadTimeout", config.GetReadTimeout, 1500 * time.Millisecond},
		{"GetWriteTimeout", config.GetWriteTimeout, 2500 * time.Millisecond},
		{"GetShutdownTimeout", config.GetShutdownTimeout, 3500 * time.Millisecond},
		{"GetRequestTimeout", config.GetRequestTimeout, 4500 * time.Millisecond},
		{"GetL2ReadTimeout", config.GetL2ReadTimeout, 100 * time.Millisecond},
		{"GetL2WriteTimeout", config.GetL2WriteTimeout, 150 * time.Millisecond},
		{"GetL2TTL", config.GetL2TTL, 300 * time.Second},
		{"GetIdleDelay", config.GetIdleDelay, 200 * time.Millisecond},
		{"GetFallbackDelay", config.GetFallbackDelay, 500 * time.Millisecond},
		{"GetPostChangeDelay", config.GetPostChangeDelay, 250 * time.Millisecond},
		{"GetHoverSettleDelay", config.GetHoverSettleDelay, 80 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.method()
			if result != tt.expected {
				t.Errorf("%s() = %v, want %v", tt.name, result, tt.expected)
			}
		})
	}
}

func TestConfig_PartialDefaults(t *testing.T) {
	config := &Config{
		SessionCache: SessionCacheConfig{
			Capacity: 10, // Custom value
		},
	}

	config.applyDefaults()

	if config.SessionCache.Capacity != 10 {
		t.Errorf("applyDefaults() should preserve custom SessionCache.Capacity = %v", config.SessionCache.Capacity)
	}
	if config.Server.ListenAddress != ":8080" {
		t.Errorf("applyDefaults() Server.ListenAddress = %v, want :8080 (default)", config.Server.ListenAddress)
	}
	if config.L2.ReadTimeout != 200 {
		t.Errorf("applyDefaults() L2.ReadTimeout = %v, want 200 (default)", config.L2.ReadTimeout)
	}
}
