// Package processor runs raw signals through enrichment and into the store,
// batch by batch, with worker-pool concurrency and ingest rate limiting.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/trhprace/intelligence/internal/domain"
	"github.com/trhprace/intelligence/internal/enrich"
	"github.com/trhprace/intelligence/internal/logger"
	"github.com/trhprace/intelligence/internal/metrics"
	"github.com/trhprace/intelligence/internal/storage"
)

// DefaultConcurrency is the worker pool size when the caller passes zero.
// Enrichment is pure CPU work, so a small pool saturates it.
const DefaultConcurrency = 8

// Summary is the per-run tally the pipeline logs when a batch finishes.
// Parsed counts signals whose salary string produced a value or sentinel.
type Summary struct {
	Received        int   `json:"received"`
	Parsed          int   `json:"parsed"`
	ClassifiedOther int   `json:"classified_other"`
	StoreErrors     int   `json:"store_errors"`
	Created         int   `json:"created"`
	Refreshed       int   `json:"refreshed"`
	Updated         int   `json:"updated"`
	Reposts         int   `json:"reposts"`
	Expired         int64 `json:"expired"`
}

// Pipeline ties the enricher and the store together.
type Pipeline struct {
	enricher    *enrich.Enricher
	store       *storage.Store
	limiter     *RateLimiter
	metrics     *metrics.Metrics
	concurrency int
	log         logger.Logger
}

// NewPipeline assembles the ingest pipeline.
func NewPipeline(enricher *enrich.Enricher, store *storage.Store, limiter *RateLimiter, m *metrics.Metrics, concurrency int, log logger.Logger) *Pipeline {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &Pipeline{
		enricher:    enricher,
		store:       store,
		limiter:     limiter,
		metrics:     m,
		concurrency: concurrency,
		log:         log,
	}
}

// ProcessOne ingests a single raw signal. Store failures are returned;
// parse and classification misses are not errors.
func (p *Pipeline) ProcessOne(ctx context.Context, raw domain.RawSignal) (storage.UpsertOutcome, error) {
	res := p.process(ctx, raw)
	return res.outcome, res.err
}

// ProcessBatch ingests a batch through the worker pool. A per-signal
// failure never halts the batch; only context cancellation stops early.
func (p *Pipeline) ProcessBatch(ctx context.Context, batch []domain.RawSignal) Summary {
	summary := Summary{Received: len(batch)}
	if len(batch) == 0 {
		return summary
	}

	p.log.Info("batch started",
		logger.Int("size", len(batch)),
		logger.Int("concurrency", p.concurrency))
	started := time.Now()

	jobs := make(chan domain.RawSignal, len(batch))
	results := make(chan signalResult, len(batch))

	var wg sync.WaitGroup
	for i := 0; i < p.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for raw := range jobs {
				if ctx.Err() != nil {
					return
				}
				results <- p.process(ctx, raw)
			}
		}()
	}

	for _, raw := range batch {
		jobs <- raw
	}
	close(jobs)
	wg.Wait()
	close(results)

	for res := range results {
		summary.tally(res)
	}

	p.log.Info("batch finished",
		logger.Int("received", summary.Received),
		logger.Int("parsed", summary.Parsed),
		logger.Int("classified_other", summary.ClassifiedOther),
		logger.Int("store_errors", summary.StoreErrors),
		logger.Int("created", summary.Created),
		logger.Int("refreshed", summary.Refreshed),
		logger.Int("updated", summary.Updated),
		logger.Int("reposts", summary.Reposts),
		logger.Duration("duration", time.Since(started)))

	return summary
}

// Cleanup removes expired signals and folds the count into metrics.
func (p *Pipeline) Cleanup(ctx context.Context, threshold time.Duration) (int64, error) {
	deleted, err := p.store.CleanupExpired(ctx, threshold)
	if err != nil {
		return 0, err
	}
	p.metrics.RecordExpired(deleted)
	return deleted, nil
}

type signalResult struct {
	signal  domain.EnrichedSignal
	outcome storage.UpsertOutcome
	err     error
}

func (p *Pipeline) process(ctx context.Context, raw domain.RawSignal) signalResult {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return signalResult{err: err}
		}
	}

	started := time.Now()
	sig := p.enricher.Enrich(raw, time.Now().UTC())
	p.metrics.ObserveEnrichment(time.Since(started).Seconds())

	p.metrics.RecordClassification(string(sig.RoleType))
	p.metrics.RecordSalaryParse(salaryParseResult(sig))

	outcome, err := p.store.Upsert(ctx, sig)
	if err != nil {
		p.metrics.RecordStoreError()
		p.log.Error("store write failed",
			logger.String("link", raw.Link),
			logger.Error(err))
		return signalResult{signal: sig, err: err}
	}

	p.metrics.RecordSignal(sig.Source, string(outcome))
	return signalResult{signal: sig, outcome: outcome}
}

func (s *Summary) tally(res signalResult) {
	if res.err != nil {
		s.StoreErrors++
		return
	}

	switch res.outcome {
	case storage.OutcomeCreated:
		s.Created++
	case storage.OutcomeRefreshed:
		s.Refreshed++
	case storage.OutcomeUpdated:
		s.Updated++
	case storage.OutcomeRepost:
		s.Reposts++
	}

	if res.signal.AvgSalary != nil {
		s.Parsed++
	}
	if res.signal.RoleType == domain.RoleOther {
		s.ClassifiedOther++
	}
}

func salaryParseResult(sig domain.EnrichedSignal) string {
	switch {
	case sig.AvgSalary == nil:
		return "unparsable"
	case *sig.AvgSalary <= 0:
		return "sentinel"
	default:
		return "parsed"
	}
}
