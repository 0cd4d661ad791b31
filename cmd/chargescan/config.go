package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// PageJob configures HTML page extraction. Its presence in the config
// switches the job from the JSON API fetcher to the page fetcher.
type PageJob struct {
	Selector       string   `yaml:"selector"`
	Attribute      string   `yaml:"attribute"`
	AllowedDomains []string `yaml:"allowed_domains"`
}

// Job is one scrape job as described by a YAML config file.
//
// Settings resolve with flag > environment > file precedence: the
// CHARGESCAN_REDIS_ADDR, CHARGESCAN_METRICS_ADDR and CHARGESCAN_USER_AGENT
// variables override their file counterparts, and command-line flags
// override both.
type Job struct {
	Keyword     string `yaml:"keyword"`
	URLTemplate string `yaml:"url_template"`

	// Identifiers may be listed inline, loaded from a file (one per
	// line, # comments allowed), or both.
	Identifiers     []string `yaml:"identifiers"`
	IdentifiersFile string   `yaml:"identifiers_file"`

	OutPath        string  `yaml:"out_path"`
	Workers        int     `yaml:"workers"`
	SleepInSeconds float64 `yaml:"sleep_in_seconds"`
	MaxFailures    int     `yaml:"max_failures"`
	TimeoutSeconds float64 `yaml:"timeout_seconds"`

	Silent   bool `yaml:"silent"`
	SaveJSON bool `yaml:"save_json"`

	// WriteCSV expands results into the tabular availability file named
	// after ChargerType (default: the keyword).
	WriteCSV    bool   `yaml:"write_csv"`
	ChargerType string `yaml:"charger_type"`

	UserAgent   string            `yaml:"user_agent"`
	Headers     map[string]string `yaml:"headers"`
	QueryParams map[string]string `yaml:"query_params"`

	Page *PageJob `yaml:"page"`

	RedisAddr       string  `yaml:"redis_addr"`
	CacheTTLSeconds float64 `yaml:"cache_ttl_seconds"`
	MetricsAddr     string  `yaml:"metrics_addr"`
}

// loadJob reads and validates a job config file. Fields absent from the
// file keep their defaults; environment fallbacks apply after parsing.
func loadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Defaults, overridden by whatever the file sets.
	job := Job{
		OutPath:  ".",
		Workers:  1,
		Silent:   true,
		SaveJSON: true,
	}
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	job.RedisAddr = getEnv("CHARGESCAN_REDIS_ADDR", job.RedisAddr)
	job.MetricsAddr = getEnv("CHARGESCAN_METRICS_ADDR", job.MetricsAddr)
	job.UserAgent = getEnv("CHARGESCAN_USER_AGENT", job.UserAgent)

	if job.IdentifiersFile != "" {
		ids, err := readIdentifiers(job.IdentifiersFile)
		if err != nil {
			return nil, err
		}
		job.Identifiers = append(job.Identifiers, ids...)
	}

	if err := job.validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

func (j *Job) validate() error {
	if j.Keyword == "" {
		return fmt.Errorf("config: keyword is required")
	}
	if j.URLTemplate == "" {
		return fmt.Errorf("config: url_template is required")
	}
	if len(j.Identifiers) == 0 {
		return fmt.Errorf("config: no identifiers (set identifiers or identifiers_file)")
	}
	if j.Workers < 1 {
		return fmt.Errorf("config: workers must be at least 1, got %d", j.Workers)
	}
	if j.Page != nil && j.Page.Selector == "" {
		return fmt.Errorf("config: page.selector is required when the page block is set")
	}
	return nil
}

// chargerType names the CSV table; it falls back to the keyword.
func (j *Job) chargerType() string {
	if j.ChargerType != "" {
		return j.ChargerType
	}
	return j.Keyword
}

func (j *Job) sleepPerCall() time.Duration {
	return time.Duration(j.SleepInSeconds * float64(time.Second))
}

func (j *Job) timeout() time.Duration {
	return time.Duration(j.TimeoutSeconds * float64(time.Second))
}

func (j *Job) cacheTTL() time.Duration {
	return time.Duration(j.CacheTTLSeconds * float64(time.Second))
}

// readIdentifiers loads one identifier per line, skipping blanks and
// # comment lines.
func readIdentifiers(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read identifiers file: %w", err)
	}

	var ids []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	return ids, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
