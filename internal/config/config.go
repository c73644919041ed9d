package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Transport modes accepted by Validate.
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config defines service configuration.
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Journal   JournalConfig   `yaml:"journal"`
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Log       LogConfig       `yaml:"log"`
}

// DataConfig points at the application data root. Every storage path is
// resolved relative to Root.
type DataConfig struct {
	Root string `yaml:"root"`
}

type PipelineConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// JournalConfig locates the SQLite run journal. ":memory:" keeps it process-local.
type JournalConfig struct {
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	APIToken string `yaml:"api_token"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Data: DataConfig{
			Root: ".",
		},
		Pipeline: PipelineConfig{
			Concurrency: 4,
		},
		Journal: JournalConfig{
			Path: ":memory:",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: TransportHTTP,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("PORTFOLIO_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if root := os.Getenv("PORTFOLIO_DATA_ROOT"); root != "" {
		cfg.Data.Root = root
	}
	if v := os.Getenv("PORTFOLIO_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORTFOLIO_CONCURRENCY: %w", err)
		}
		cfg.Pipeline.Concurrency = n
	}
	if path := os.Getenv("PORTFOLIO_JOURNAL_PATH"); path != "" {
		cfg.Journal.Path = path
	}
	if host := os.Getenv("PORTFOLIO_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("PORTFOLIO_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORTFOLIO_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if token := os.Getenv("PORTFOLIO_API_TOKEN"); token != "" {
		cfg.Server.APIToken = token
	}
	if mode := os.Getenv("PORTFOLIO_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if level := os.Getenv("PORTFOLIO_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings the service cannot run with.
func (c Config) Validate() error {
	if c.Data.Root == "" {
		return fmt.Errorf("data.root must not be empty")
	}
	if c.Pipeline.Concurrency < 1 {
		return fmt.Errorf("pipeline.concurrency must be at least 1, got %d", c.Pipeline.Concurrency)
	}
	switch c.Transport.Mode {
	case TransportHTTP, TransportStdio:
	default:
		return fmt.Errorf("unknown transport.mode %q", c.Transport.Mode)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
