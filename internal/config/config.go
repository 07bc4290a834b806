// Package config loads the deduce.yaml project file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "deduce.yaml"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

type Config struct {
	// Rules is a catalog file or a directory of rule documents. Empty selects
	// the built-in catalog.
	Rules string `yaml:"rules"`
	// Vocabulary is a vocabulary file. Empty selects the built-in one.
	Vocabulary string `yaml:"vocabulary"`
	MaxSweeps  int    `yaml:"max_sweeps"`
	LogLevel   string `yaml:"log_level"`

	Store StoreConfig `yaml:"store"`
	HTTP  HTTPConfig  `yaml:"http"`
	MCP   MCPConfig   `yaml:"mcp"`
}

type StoreConfig struct {
	Backend string      `yaml:"backend"`
	Path    string      `yaml:"path"`
	Redis   RedisConfig `yaml:"redis"`
	// EncryptionKey is a base64 AES-256 key. When set, reports are sealed
	// before they reach the backend.
	EncryptionKey string `yaml:"encryption_key"`
	// FallbackKeys are older base64 keys still accepted for decryption.
	FallbackKeys []string `yaml:"fallback_keys"`
	// Redact lists regular expressions masked out of the raw input line.
	Redact []string `yaml:"redact"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

type HTTPConfig struct {
	Port string `yaml:"port"`
}

type MCPConfig struct {
	Transport string `yaml:"transport"`
	Port      int    `yaml:"port"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		LogLevel: "warn",
		Store: StoreConfig{
			Backend: BackendFile,
			Path:    ".deduce/reports",
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		HTTP: HTTPConfig{Port: "8080"},
		MCP: MCPConfig{
			Transport: "stdio",
			Port:      8080,
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("DEDUCE_RULES"); ok {
		c.Rules = v
	}
	if v, ok := lookup("DEDUCE_LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup("DEDUCE_REDIS_ADDR"); ok && v != "" {
		c.Store.Redis.Addr = v
	}
	if v, ok := lookup("DEDUCE_STORE_KEY"); ok && v != "" {
		c.Store.EncryptionKey = v
	}
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch strings.ToLower(c.Store.Backend) {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("unknown store backend %q (memory, file, redis)", c.Store.Backend)
	}
	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		return fmt.Errorf("unknown mcp transport %q (stdio, sse)", c.MCP.Transport)
	}
	if c.MaxSweeps < 0 {
		return fmt.Errorf("max_sweeps must not be negative")
	}
	return nil
}
