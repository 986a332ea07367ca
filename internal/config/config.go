// Package config handles loading and hot-reloading configuration.
package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds qrb configuration.
type Config struct {
	// OutputDir is where chapter files are written. Empty means the
	// per-document chapters directory under the qrb home.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	// ChunkSize is the character target for the last-resort fixed-size
	// split.
	ChunkSize int `mapstructure:"chunk_size" yaml:"chunk_size"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "",
		ChunkSize: 50000,
		LogLevel:  "info",
	}
}

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a new config manager and loads initial config.
func NewManager(cfgFile string) (*Manager, error) {
	m := &Manager{}

	if err := m.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := m.load()
	if err != nil {
		return nil, err
	}
	m.config = cfg

	return m, nil
}

// initViper sets up viper with defaults and config file.
func (m *Manager) initViper(cfgFile string) error {
	defaults := DefaultConfig()
	viper.SetDefault("output_dir", defaults.OutputDir)
	viper.SetDefault("chunk_size", defaults.ChunkSize)
	viper.SetDefault("log_level", defaults.LogLevel)

	// Environment variables with QRB_ prefix
	viper.SetEnvPrefix("QRB")
	viper.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.qrb")
	}

	// Try to read config file (not required)
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (m *Manager) load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// OnChange registers a callback for config changes.
func (m *Manager) OnChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration.
func (m *Manager) WatchConfig() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := m.load()
		if err != nil {
			return
		}

		m.mu.Lock()
		m.config = cfg
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	viper.WatchConfig()
}
