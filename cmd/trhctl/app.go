package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/trhprace/intelligence/internal/analytics"
	"github.com/trhprace/intelligence/internal/classify"
	"github.com/trhprace/intelligence/internal/config"
	"github.com/trhprace/intelligence/internal/enrich"
	"github.com/trhprace/intelligence/internal/logger"
	"github.com/trhprace/intelligence/internal/metrics"
	"github.com/trhprace/intelligence/internal/processor"
	"github.com/trhprace/intelligence/internal/salary"
	"github.com/trhprace/intelligence/internal/storage"
	"github.com/trhprace/intelligence/internal/tagger"
)

// app wires the whole pipeline together for the CLI commands.
type app struct {
	cfg       *config.Config
	log       logger.Logger
	store     *storage.Store
	pipeline  *processor.Pipeline
	analytics *analytics.Service
	metrics   *metrics.Metrics
}

// newApp loads configuration and builds every component a command might
// need. Config and taxonomy failures are fatal by contract.
func newApp(cfgPath string, debug bool) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Service.Debug = true
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	tax, err := config.LoadTaxonomy(cfg.Taxonomy.Path)
	if err != nil {
		return nil, err
	}

	rates, err := config.LoadRates(cfg.Enrich.RatesPath)
	if err != nil {
		return nil, err
	}

	tags, err := tagger.New(tax, log)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.Store.Path, log)
	if err != nil {
		return nil, err
	}

	var embedding classify.EmbeddingClassifier
	if cfg.Enrich.UseEmbeddings && cfg.Enrich.EmbeddingURL != "" {
		embedding = classify.NewHTTPEmbeddingClassifier(cfg.Enrich.EmbeddingURL, log)
	}

	enricher := enrich.NewEnricher(
		salary.NewParser(rates, log),
		classify.NewRoleClassifier(classify.Config{UseEmbeddings: cfg.Enrich.UseEmbeddings}, embedding, log),
		tags,
		log,
	)

	m := metrics.New(prometheus.DefaultRegisterer)
	limiter := processor.NewRateLimiter(cfg.Service.IngestRPS, cfg.Service.IngestRPS, log)
	pipeline := processor.NewPipeline(enricher, store, limiter, m, 0, log)

	return &app{
		cfg:       cfg,
		log:       log,
		store:     store,
		pipeline:  pipeline,
		analytics: analytics.NewService(store.Reader(), log),
		metrics:   m,
	}, nil
}

// Close releases the store and flushes the logger.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Error("store close failed", logger.Error(err))
	}
	_ = a.log.Sync()
}
