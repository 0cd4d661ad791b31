package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gridscan/chargescan/pkg/cache"
	"github.com/gridscan/chargescan/pkg/chargers"
	"github.com/gridscan/chargescan/pkg/fetch"
	"github.com/gridscan/chargescan/pkg/logging"
	"github.com/gridscan/chargescan/pkg/scrape"
	"github.com/gridscan/chargescan/pkg/sink"
)

var (
	configPath  string
	flagWorkers int
	flagOut     string
	flagVerbose bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a scrape job from a YAML config",
	Long: `Run loads a job config, fetches availability for every identifier
through the configured worker shards, and writes the JSON dump and CSV
table the job asks for.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		job, err := loadJob(configPath)
		if err != nil {
			return err
		}
		if flagWorkers > 0 {
			job.Workers = flagWorkers
		}
		if flagOut != "" {
			job.OutPath = flagOut
		}
		if flagVerbose {
			job.Silent = false
		}
		return runJob(cmd.Context(), job)
	},
}

func init() {
	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the job config YAML")
	runCmd.MarkFlagRequired("config")
	runCmd.Flags().IntVarP(&flagWorkers, "workers", "w", 0, "override the job's worker count")
	runCmd.Flags().StringVarP(&flagOut, "out", "o", "", "override the job's output directory")
	runCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable per-fetch debug logging")

	rootCmd.AddCommand(runCmd)
}

// runJob executes one scrape job end to end.
func runJob(ctx context.Context, job *Job) error {
	logging.Setup(logging.Config{
		Level:  logging.LevelForSilent(job.Silent),
		Pretty: true,
		Output: os.Stderr,
	})
	logger := logging.NewLogger("cli")

	if job.MetricsAddr != "" {
		stop := serveMetrics(job.MetricsAddr, logger)
		defer stop()
	}

	if err := os.MkdirAll(job.OutPath, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fetcher, err := buildFetcher(job)
	if err != nil {
		return err
	}

	cfg := scrape.Config{
		Keyword:      job.Keyword,
		OutPath:      job.OutPath,
		Identifiers:  job.Identifiers,
		URLTemplate:  job.URLTemplate,
		Silent:       job.Silent,
		SaveJSON:     job.SaveJSON,
		SleepPerCall: job.sleepPerCall(),
		MaxFailures:  job.MaxFailures,
	}

	if job.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: job.RedisAddr})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("connect to redis at %s: %w", job.RedisAddr, err)
		}
		defer redisClient.Close()

		cfg.Cache = cache.NewManager(redisClient)
		cfg.CacheTTL = job.cacheTTL()
		logger.Info().Str("addr", job.RedisAddr).Msg("payload cache enabled")
	}

	engine, err := scrape.New(cfg, fetcher)
	if err != nil {
		return err
	}

	results, reports, runErr := engine.Run(ctx, job.Workers)
	logReports(logger, reports)
	if runErr != nil {
		return fmt.Errorf("scrape run: %w", runErr)
	}

	if job.WriteCSV {
		rows, err := chargers.Rows(job.Identifiers, results)
		if err != nil {
			return fmt.Errorf("expand rows: %w", err)
		}
		path, err := sink.WriteCSV(job.OutPath, job.chargerType(), rows)
		if err != nil {
			return err
		}
		logger.Info().Str("path", path).Int("rows", len(rows)).Msg("wrote availability table")
	}

	return nil
}

// buildFetcher picks the transport the job calls for: the page fetcher
// when a page block is present, the JSON API fetcher otherwise.
func buildFetcher(job *Job) (fetch.Fetcher, error) {
	if job.Page != nil {
		return fetch.NewPageFetcher(fetch.PageConfig{
			Selector:       job.Page.Selector,
			Attribute:      job.Page.Attribute,
			Timeout:        job.timeout(),
			UserAgent:      job.UserAgent,
			AllowedDomains: job.Page.AllowedDomains,
		})
	}

	return fetch.NewHTTPFetcher(fetch.HTTPConfig{
		Timeout:     job.timeout(),
		UserAgent:   job.UserAgent,
		Headers:     job.Headers,
		QueryParams: job.QueryParams,
	}), nil
}

// serveMetrics starts the Prometheus listener and returns its shutdown.
func serveMetrics(addr string, logger zerolog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		logger.Info().Str("addr", addr).Msg("metrics listener started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics listener failed")
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}

func logReports(logger zerolog.Logger, reports []scrape.Report) {
	for _, rep := range reports {
		evt := logger.Info()
		if rep.Status != scrape.StatusSuccess {
			evt = logger.Warn()
		}
		evt.Int("shard", rep.Shard).
			Int("size", rep.Size).
			Int("collected", rep.Collected()).
			Int("cache_hits", rep.CacheHits).
			Int("timeouts", rep.Timeouts).
			Int("transport_failures", rep.TransportFailures).
			Str("status", string(rep.Status)).
			Msg("shard report")
	}
}
