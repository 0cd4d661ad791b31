// Package fetch defines the transport capability the scrape engine runs on:
// set up per-shard tools once, then fetch one URL at a time.
//
// Two implementations are provided. HTTPFetcher talks to JSON APIs through
// a resty client. PageFetcher retrieves HTML pages through a resty client
// with a browser-fingerprint transport and extracts values with a goquery
// selector.
//
// Transport failures are reported as *Error with a Kind of timeout or
// transport; both are transient and counted against the shard's failure
// budget. A response body the fetcher cannot decode is a *PayloadError,
// which is fatal to the run.
package fetch

import (
	"context"
	"encoding/json"
	"time"
)

// DefaultTimeout is the per-request timeout applied when none is configured.
const DefaultTimeout = 30 * time.Second

// Tools carries per-shard transport state created by Setup. Tools must not
// be shared across shards; each worker acquires its own and closes it when
// the shard finishes, on every exit path.
type Tools interface {
	Close() error
}

// Fetcher is the capability the engine drives: one-time setup per shard,
// then one fetch per identifier.
type Fetcher interface {
	// Setup creates the transport state for one shard.
	Setup(ctx context.Context) (Tools, error)

	// FetchOne retrieves url and returns the raw payload. Transient
	// transport failures are *Error; undecodable bodies are *PayloadError.
	FetchOne(ctx context.Context, url string, tools Tools) (json.RawMessage, error)
}

// SleepFunc blocks the calling worker before a fetch.
type SleepFunc func(ctx context.Context) error

// SleepPolicy resolves the configured per-call delay into a SleepFunc once.
// A zero or negative delay yields a no-op; otherwise the returned function
// waits for d before every call, aborting early if the context is done.
func SleepPolicy(d time.Duration) SleepFunc {
	if d <= 0 {
		return func(context.Context) error { return nil }
	}
	return func(ctx context.Context) error {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	}
}
