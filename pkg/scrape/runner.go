package scrape

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gridscan/chargescan/pkg/budget"
	"github.com/gridscan/chargescan/pkg/cache"
	"github.com/gridscan/chargescan/pkg/fetch"
)

// runBatch processes one shard's identifiers strictly in input order. It
// sets up the shard's transport tools once, records successes into the
// shard's own result map, and consults the shard's failure budget on every
// transient failure. A budget halt abandons the rest of the shard without
// error; anything outside the transport taxonomy aborts the shard with one.
func (e *Engine) runBatch(ctx context.Context, logger zerolog.Logger, shard int, ids []string) (map[string]json.RawMessage, Report, error) {
	log := logger.With().Int("shard", shard).Logger()
	report := Report{Shard: shard, Size: len(ids)}
	results := make(map[string]json.RawMessage, len(ids))

	tools, err := e.fetcher.Setup(ctx)
	if err != nil {
		report.Status = StatusAborted
		return results, report, fmt.Errorf("fetcher setup: %w", err)
	}
	defer tools.Close()

	tracker := budget.NewTracker(e.cfg.MaxFailures, log)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			report.Status = StatusAborted
			return results, report, err
		}

		if e.probeCache(ctx, log, id, results) {
			report.CacheHits++
			continue
		}

		if err := e.sleep(ctx); err != nil {
			report.Status = StatusAborted
			return results, report, err
		}

		url, ok := e.builder.URL(id)
		if !ok {
			// Unreachable for identifiers from the engine config; guards
			// future callers handing the runner foreign ids.
			report.Status = StatusAborted
			return results, report, fmt.Errorf("no url cached for identifier %q", id)
		}

		report.Attempted++
		start := time.Now()
		payload, err := e.fetcher.FetchOne(ctx, url, tools)
		fetchDuration.WithLabelValues(e.cfg.Keyword).Observe(time.Since(start).Seconds())

		switch {
		case err == nil:
			results[id] = payload
			report.Succeeded++
			fetchesTotal.WithLabelValues(e.cfg.Keyword, resultSuccess).Inc()
			e.storeCache(ctx, log, id, payload)
			log.Debug().
				Str("identifier", id).
				Dur("duration", time.Since(start)).
				Msg("scraped")

		case fetch.IsTimeout(err):
			report.Timeouts++
			fetchesTotal.WithLabelValues(e.cfg.Keyword, resultTimeout).Inc()
			log.Warn().
				Str("identifier", id).
				Err(err).
				Msg("connection timeout, server took too long to respond")
			if tracker.RecordTimeout() == budget.Halt {
				report.Status = StatusHalted
				shardsHaltedTotal.WithLabelValues(e.cfg.Keyword).Inc()
				return results, report, nil
			}

		case fetch.IsTransient(err):
			report.TransportFailures++
			fetchesTotal.WithLabelValues(e.cfg.Keyword, resultTransport).Inc()
			log.Warn().
				Str("identifier", id).
				Err(err).
				Msg("request failed")
			if tracker.RecordTransport() == budget.Halt {
				report.Status = StatusHalted
				shardsHaltedTotal.WithLabelValues(e.cfg.Keyword).Inc()
				return results, report, nil
			}

		default:
			// Outside the transport taxonomy: never counted, fatal to the
			// shard.
			report.Status = StatusAborted
			fetchesTotal.WithLabelValues(e.cfg.Keyword, resultFatal).Inc()
			log.Error().
				Str("identifier", id).
				Err(err).
				Msg("fatal fetch error")
			return results, report, err
		}
	}

	if report.Collected() == report.Size {
		report.Status = StatusSuccess
	} else {
		report.Status = StatusDegraded
	}
	log.Debug().
		Int("collected", report.Collected()).
		Int("size", report.Size).
		Str("status", string(report.Status)).
		Msg("shard complete")
	return results, report, nil
}

// probeCache serves id from the payload cache when possible. A hit fills
// results directly, skipping both the sleep policy and the fetch; misses
// and cache errors fall back to fetching.
func (e *Engine) probeCache(ctx context.Context, log zerolog.Logger, id string, results map[string]json.RawMessage) bool {
	if e.cfg.Cache == nil {
		return false
	}

	key := cache.Key{Keyword: e.cfg.Keyword, Identifier: id}
	entry, err := e.cfg.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn().Str("identifier", id).Err(err).Msg("cache get failed, fetching")
		}
		return false
	}

	results[id] = entry.Payload
	log.Debug().Str("identifier", id).Msg("cache hit")
	return true
}

// storeCache records a fresh payload. Cache errors only log; they never
// fail the fetch that produced the payload.
func (e *Engine) storeCache(ctx context.Context, log zerolog.Logger, id string, payload json.RawMessage) {
	if e.cfg.Cache == nil {
		return
	}

	key := cache.Key{Keyword: e.cfg.Keyword, Identifier: id}
	if err := e.cfg.Cache.Set(ctx, key, cache.NewEntry(payload, e.cfg.CacheTTL)); err != nil {
		log.Warn().Str("identifier", id).Err(err).Msg("cache set failed")
	}
}
