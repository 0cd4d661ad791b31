package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gridscan/chargescan/pkg/budget"
	"github.com/gridscan/chargescan/pkg/cache"
	"github.com/gridscan/chargescan/pkg/fetch"
	"github.com/gridscan/chargescan/pkg/logging"
	"github.com/gridscan/chargescan/pkg/sink"
	"github.com/gridscan/chargescan/pkg/target"
)

// DefaultCacheTTL bounds cached payload freshness when a cache is
// configured without an explicit TTL.
const DefaultCacheTTL = 10 * time.Minute

// PayloadCache is the slice of the cache manager the engine uses. A hit
// skips both the sleep policy and the fetch; misses and cache errors fall
// back to fetching. Nil disables caching entirely.
type PayloadCache interface {
	Get(ctx context.Context, key cache.Key) (*cache.Entry, error)
	Set(ctx context.Context, key cache.Key, entry *cache.Entry) error
}

// Config holds the engine configuration for one job.
type Config struct {
	// Keyword is the run's name tag, used in log context, metric labels
	// and output filenames. Required.
	Keyword string

	// OutPath is the directory the JSON dump is written to when SaveJSON
	// is set.
	OutPath string

	// Identifiers is the ordered list of fetch targets. Required. Order
	// determines shard assignment; the merged map is order-free.
	Identifiers []string

	// URLTemplate is the URL pattern with exactly one {} slot. Required.
	URLTemplate string

	// Silent limits the engine's own logging to warnings and errors.
	Silent bool

	// SaveJSON dumps the merged result map to OutPath after a clean run.
	SaveJSON bool

	// SleepPerCall is the delay each worker observes before every fetch.
	// Zero disables the delay. The delay is per worker, not global.
	SleepPerCall time.Duration

	// MaxFailures is the per-shard transient failure budget
	// (default budget.DefaultMaxFailures).
	MaxFailures int

	// Cache, when non-nil, is probed before every fetch and updated after
	// every success.
	Cache PayloadCache

	// CacheTTL bounds how long cached payloads stay valid (default
	// DefaultCacheTTL; only meaningful with Cache set).
	CacheTTL time.Duration
}

// Engine drives full fetch-and-aggregate cycles over the configured
// identifiers. It keeps no result state between runs; callers own the maps
// Run returns.
type Engine struct {
	cfg     Config
	fetcher fetch.Fetcher
	builder *target.Builder
	sleep   fetch.SleepFunc
	logger  zerolog.Logger
}

// New validates cfg and builds the engine. Validation failures are
// *ConfigError, or *target.ConfigError for the URL template, and happen
// before any network activity.
func New(cfg Config, fetcher fetch.Fetcher) (*Engine, error) {
	if cfg.Keyword == "" {
		return nil, &ConfigError{Field: "keyword", Reason: "must be a non-empty name tag"}
	}
	if fetcher == nil {
		return nil, &ConfigError{Field: "fetcher", Reason: "a fetch capability is required"}
	}
	if len(cfg.Identifiers) == 0 {
		return nil, &ConfigError{Field: "identifiers", Reason: "at least one identifier is required"}
	}

	tmpl, err := target.ParseTemplate(cfg.URLTemplate)
	if err != nil {
		return nil, err
	}

	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = budget.DefaultMaxFailures
	}
	if cfg.Cache != nil && cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}

	logger := logging.NewLogger("scrape-engine")
	if cfg.Silent {
		logger = logger.Level(zerolog.WarnLevel)
	}

	return &Engine{
		cfg:     cfg,
		fetcher: fetcher,
		builder: target.NewBuilder(tmpl, cfg.Identifiers),
		sleep:   fetch.SleepPolicy(cfg.SleepPerCall),
		logger:  logger,
	}, nil
}

// Run executes one full fetch cycle across workers shards and returns the
// merged result map plus one Report per shard. workers must be positive;
// workers == 1 bypasses partitioning and runs all identifiers as a single
// batch.
//
// A fatal error (undecodable payload, failed setup, cancelled context)
// aborts its own shard only; sibling shards run to their natural end. Run
// then returns the partial results together with the first such error in
// shard order, and skips the JSON dump.
func (e *Engine) Run(ctx context.Context, workers int) (map[string]json.RawMessage, []Report, error) {
	if workers <= 0 {
		return nil, nil, &ConfigError{Field: "workers", Reason: fmt.Sprintf("must be a positive integer, got %d", workers)}
	}

	logger := e.logger.With().
		Str("run_id", uuid.NewString()).
		Str("keyword", e.cfg.Keyword).
		Logger()

	start := time.Now()
	logger.Info().
		Int("identifiers", len(e.cfg.Identifiers)).
		Int("workers", workers).
		Msg("starting scrape run")

	var (
		results map[string]json.RawMessage
		reports []Report
		runErr  error
	)
	if workers == 1 {
		res, rep, err := e.runBatch(ctx, logger, 0, e.cfg.Identifiers)
		results, reports = res, []Report{rep}
		if err != nil {
			runErr = fmt.Errorf("shard 0: %w", err)
		}
	} else {
		results, reports, runErr = e.runShards(ctx, logger, workers)
	}

	runIdentifiers.WithLabelValues(e.cfg.Keyword, "requested").Set(float64(len(e.cfg.Identifiers)))
	runIdentifiers.WithLabelValues(e.cfg.Keyword, "collected").Set(float64(len(results)))

	if runErr != nil {
		logger.Warn().
			Err(runErr).
			Int("collected", len(results)).
			Msg("run aborted, returning partial results")
		return results, reports, runErr
	}

	if e.cfg.SaveJSON {
		if _, err := sink.WriteJSON(e.cfg.OutPath, e.cfg.Keyword, results); err != nil {
			return results, reports, fmt.Errorf("dump results: %w", err)
		}
	}

	logger.Info().
		Int("collected", len(results)).
		Int("requested", len(e.cfg.Identifiers)).
		Dur("duration", time.Since(start)).
		Msg("run complete")

	return results, reports, nil
}

// runShards fans the identifiers out over one goroutine per shard and
// merges the shard maps after the join barrier. Each goroutine owns its
// index in the outcomes slice, so the barrier is the only synchronization.
func (e *Engine) runShards(ctx context.Context, logger zerolog.Logger, workers int) (map[string]json.RawMessage, []Report, error) {
	shards := partition(e.cfg.Identifiers, workers)

	type outcome struct {
		results map[string]json.RawMessage
		report  Report
		err     error
	}
	outcomes := make([]outcome, len(shards))

	var wg sync.WaitGroup
	for i, ids := range shards {
		wg.Add(1)
		go func(shard int, ids []string) {
			defer wg.Done()
			res, rep, err := e.runBatch(ctx, logger, shard, ids)
			outcomes[shard] = outcome{results: res, report: rep, err: err}
		}(i, ids)
	}
	wg.Wait()

	// Key union: shards partition the identifier set, so no collisions.
	merged := make(map[string]json.RawMessage, len(e.cfg.Identifiers))
	reports := make([]Report, len(shards))
	var firstErr error
	for i, oc := range outcomes {
		reports[i] = oc.report
		for id, payload := range oc.results {
			merged[id] = payload
		}
		if oc.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("shard %d: %w", i, oc.err)
		}
	}
	return merged, reports, firstErr
}
