package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// HTTPConfig configures the plain JSON API fetcher. Header, query and
// timeout settings are resolved once at Setup and apply to every fetch in
// the shard; they are opaque to the engine.
type HTTPConfig struct {
	// Timeout is the per-request deadline (default: DefaultTimeout).
	Timeout time.Duration

	// UserAgent is sent with every request when non-empty.
	UserAgent string

	// Headers are extra headers passed through to the transport.
	Headers map[string]string

	// QueryParams are appended to every request URL.
	QueryParams map[string]string

	// Debug enables verbose request/response dumps on the transport.
	Debug bool
}

// HTTPFetcher fetches JSON payloads over plain HTTP. The HTTP status code
// is not inspected: any response whose body is valid JSON is a success,
// matching transports that only fail on network-level errors.
type HTTPFetcher struct {
	cfg    HTTPConfig
	logger zerolog.Logger
}

// NewHTTPFetcher creates a JSON API fetcher.
func NewHTTPFetcher(cfg HTTPConfig) *HTTPFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		cfg:    cfg,
		logger: log.With().Str("component", "http-fetcher").Logger(),
	}
}

type httpTools struct {
	client *resty.Client
}

func (t *httpTools) Close() error {
	t.client.GetClient().CloseIdleConnections()
	return nil
}

// Setup builds the shard's resty client.
func (f *HTTPFetcher) Setup(ctx context.Context) (Tools, error) {
	client := resty.New()
	client.SetTimeout(f.cfg.Timeout)
	client.SetHeader("Accept", "application/json")
	if f.cfg.UserAgent != "" {
		client.SetHeader("User-Agent", f.cfg.UserAgent)
	}
	for k, v := range f.cfg.Headers {
		client.SetHeader(k, v)
	}
	if len(f.cfg.QueryParams) > 0 {
		client.SetQueryParams(f.cfg.QueryParams)
	}
	client.SetDebug(f.cfg.Debug)

	return &httpTools{client: client}, nil
}

// FetchOne retrieves url and returns its body as raw JSON.
func (f *HTTPFetcher) FetchOne(ctx context.Context, url string, tools Tools) (json.RawMessage, error) {
	ht, ok := tools.(*httpTools)
	if !ok {
		return nil, fmt.Errorf("tools were not created by HTTPFetcher.Setup")
	}

	start := time.Now()
	resp, err := ht.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, Classify(url, err)
	}

	body := resp.Body()
	if !json.Valid(body) {
		return nil, &PayloadError{URL: url, Err: ErrInvalidJSON}
	}

	f.logger.Debug().
		Str("url", url).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("fetched")

	return json.RawMessage(body), nil
}
