// Package scrape implements the concurrent fetch-and-aggregate engine.
//
// An Engine is built once per job from a Config and a fetch.Fetcher. Run
// splits the configured identifiers into contiguous shards, one per worker,
// and drives each shard through a sequential batch runner: probe the
// payload cache, apply the sleep policy, resolve the identifier's URL from
// the read-only cache, fetch, classify. Shards share nothing mutable; each
// acquires its own transport tools and its own failure budget, so one shard
// exhausting its budget never stops or slows its siblings.
//
// Only successful payloads enter the merged result map. Identifiers that
// failed transiently, or were abandoned after a budget halt, are simply
// absent; the per-shard Reports record how far each shard got and why it
// stopped. Anything outside the transport error taxonomy aborts its shard
// and surfaces as the run's error, with the partial results still returned.
package scrape
