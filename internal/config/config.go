// Package config loads client settings from an optional YAML file with
// environment overrides, via viper. A watcher can hot-reload the file
// and notify subscribers, so a long-lived CLI session picks up a base
// URL change without restarting.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type Config struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	TokenFile string        `mapstructure:"token_file"`
	LogFile   string        `mapstructure:"log_file"`

	MockAPI MockAPIConfig `mapstructure:"mockapi"`
}

// MockAPIConfig configures the local development backend.
type MockAPIConfig struct {
	Addr string `mapstructure:"addr"`
	DSN  string `mapstructure:"dsn"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("base_url", "http://localhost:3000")
	v.SetDefault("timeout", 15*time.Second)
	v.SetDefault("token_file", defaultTokenFile())
	v.SetDefault("log_file", "")
	v.SetDefault("mockapi.addr", ":3000")
	v.SetDefault("mockapi.dsn", "stuma.db")
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stuma-token"
	}
	return filepath.Join(home, ".stuma-token")
}

// Load reads configFile (skipped when empty or missing) and applies
// STUMA_* environment overrides, e.g. STUMA_BASE_URL.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix("stuma")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// Watcher re-reads the config file on change and fans the new value out
// to subscribers.
type Watcher struct {
	mu          sync.RWMutex
	cur         *Config
	viper       *viper.Viper
	subscribers []func(*Config)
}

// Watch loads configFile and starts watching it. The file must exist.
func Watch(configFile string) (*Watcher, error) {
	v := viper.New()
	defaults(v)
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := &Watcher{cur: cfg, viper: v}
	v.OnConfigChange(func(fsnotify.Event) {
		next := &Config{}
		if err := v.Unmarshal(next); err != nil {
			return
		}
		if err := next.Validate(); err != nil {
			return
		}
		w.mu.Lock()
		w.cur = next
		subs := slices.Clone(w.subscribers)
		w.mu.Unlock()
		for _, fn := range subs {
			fn(next)
		}
	})
	v.WatchConfig()
	return w, nil
}

// Current returns the latest valid config.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cur
}

// Subscribe registers fn to run after each successful reload.
func (w *Watcher) Subscribe(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.subscribers = append(w.subscribers, fn)
}
