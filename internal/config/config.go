// Package config loads the service configuration, the semantic taxonomy and
// the currency rate table. Everything is read once at startup and treated as
// immutable for the lifetime of the process; reload requires restart.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/trhprace/intelligence/internal/logger"
)

// Default configuration values.
const (
	defaultServiceName     = "trh-intelligence"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8090
	defaultStorePath       = "./data/intelligence.db"
	defaultExpiryDays      = 14
	defaultBatchSize       = 100
	defaultIngestRPS       = 200
	defaultEvictionCron    = "17 3 * * *"
	defaultTaxonomyPath    = "./configs/taxonomy.yaml"
	defaultReadTimeoutSec  = 30
	defaultWriteTimeoutSec = 60
)

// Config holds all configuration for the intelligence service.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Store    StoreConfig    `yaml:"store"`
	Enrich   EnrichConfig   `yaml:"enrich"`
	Taxonomy TaxonomyConfig `yaml:"taxonomy"`
	Logging  logger.Config  `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name         string        `yaml:"name"`
	Version      string        `yaml:"version"`
	Port         int           `yaml:"port"`
	Debug        bool          `yaml:"debug"`
	BatchSize    int           `yaml:"batch_size"`
	IngestRPS    int           `yaml:"ingest_rps"`
	EvictionCron string        `yaml:"eviction_cron"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// StoreConfig holds the embedded store configuration.
type StoreConfig struct {
	Path       string `yaml:"path"`
	ExpiryDays int    `yaml:"expiry_days"`
}

// EnrichConfig holds enrichment-pipeline configuration.
type EnrichConfig struct {
	// RatesPath points at the currency rate YAML. Missing file falls back
	// to built-in defaults; a malformed file is fatal.
	RatesPath string `yaml:"rates_path"`
	// UseEmbeddings enables the embedding fallback classifier when one is
	// wired in. There is deliberately no process-wide toggle for this.
	UseEmbeddings bool `yaml:"use_embeddings"`
	// EmbeddingURL is the base URL of the embedding sidecar. Ignored
	// unless UseEmbeddings is set.
	EmbeddingURL string `yaml:"embedding_url"`
}

// TaxonomyConfig points at the semantic taxonomy file.
type TaxonomyConfig struct {
	Path string `yaml:"path"`
}

// Load reads the YAML config at path and applies environment overrides.
// A .env file next to the binary is loaded first if present. Any failure
// here is fatal at startup by contract.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		// No config file: run on defaults plus environment.
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = defaultServiceName
	}
	if c.Service.Version == "" {
		c.Service.Version = defaultServiceVersion
	}
	if c.Service.Port == 0 {
		c.Service.Port = defaultServicePort
	}
	if c.Service.BatchSize == 0 {
		c.Service.BatchSize = defaultBatchSize
	}
	if c.Service.IngestRPS == 0 {
		c.Service.IngestRPS = defaultIngestRPS
	}
	if c.Service.EvictionCron == "" {
		c.Service.EvictionCron = defaultEvictionCron
	}
	if c.Service.ReadTimeout == 0 {
		c.Service.ReadTimeout = defaultReadTimeoutSec * time.Second
	}
	if c.Service.WriteTimeout == 0 {
		c.Service.WriteTimeout = defaultWriteTimeoutSec * time.Second
	}
	if c.Store.Path == "" {
		c.Store.Path = defaultStorePath
	}
	if c.Store.ExpiryDays == 0 {
		c.Store.ExpiryDays = defaultExpiryDays
	}
	if c.Taxonomy.Path == "" {
		c.Taxonomy.Path = defaultTaxonomyPath
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("INTEL_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("INTEL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Service.Port = port
		}
	}
	if v := os.Getenv("INTEL_TAXONOMY_PATH"); v != "" {
		c.Taxonomy.Path = v
	}
	if v := os.Getenv("INTEL_RATES_PATH"); v != "" {
		c.Enrich.RatesPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) validate() error {
	if c.Store.ExpiryDays < 0 {
		return fmt.Errorf("store.expiry_days must not be negative, got %d", c.Store.ExpiryDays)
	}
	if c.Service.Port <= 0 || c.Service.Port > 65535 {
		return fmt.Errorf("service.port out of range: %d", c.Service.Port)
	}
	return nil
}
