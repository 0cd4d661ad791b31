package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/cookiejar"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// PageConfig configures the HTML page fetcher.
type PageConfig struct {
	// Selector is the goquery selector whose matches become the payload.
	Selector string

	// Attribute names an attribute to read from each match; empty reads
	// the trimmed text content.
	Attribute string

	// Timeout is the per-request deadline (default: DefaultTimeout).
	Timeout time.Duration

	// UserAgent is sent with every request when non-empty.
	UserAgent string

	// AllowedDomains confines redirects when non-empty.
	AllowedDomains []string

	// Debug enables verbose request/response dumps on the transport.
	Debug bool
}

// PageFetcher fetches HTML pages through a browser-fingerprint transport
// and extracts selector matches as a JSON string array payload.
type PageFetcher struct {
	cfg    PageConfig
	logger zerolog.Logger
}

// NewPageFetcher creates an HTML page fetcher.
func NewPageFetcher(cfg PageConfig) (*PageFetcher, error) {
	if cfg.Selector == "" {
		return nil, fmt.Errorf("selector is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &PageFetcher{
		cfg:    cfg,
		logger: log.With().Str("component", "page-fetcher").Logger(),
	}, nil
}

type pageTools struct {
	client *resty.Client
}

func (t *pageTools) Close() error {
	t.client.GetClient().CloseIdleConnections()
	return nil
}

// Setup builds the shard's resty client with a cookie jar and the
// browser-fingerprint transport.
func (f *PageFetcher) Setup(ctx context.Context) (Tools, error) {
	client := resty.New()
	client.SetTimeout(f.cfg.Timeout)

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	if f.cfg.UserAgent != "" {
		client.SetHeader("User-Agent", f.cfg.UserAgent)
	}
	if len(f.cfg.AllowedDomains) > 0 {
		client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(f.cfg.AllowedDomains...))
	}
	client.SetDebug(f.cfg.Debug)

	return &pageTools{client: client}, nil
}

// FetchOne retrieves url, parses the HTML and returns the selector matches
// as a JSON string array. No matches yields an empty array, not an error.
func (f *PageFetcher) FetchOne(ctx context.Context, url string, tools Tools) (json.RawMessage, error) {
	pt, ok := tools.(*pageTools)
	if !ok {
		return nil, fmt.Errorf("tools were not created by PageFetcher.Setup")
	}

	start := time.Now()
	resp, err := pt.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, Classify(url, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, &PayloadError{URL: url, Err: err}
	}

	values := []string{}
	doc.Find(f.cfg.Selector).Each(func(_ int, s *goquery.Selection) {
		if f.cfg.Attribute != "" {
			if v, ok := s.Attr(f.cfg.Attribute); ok {
				values = append(values, v)
			}
			return
		}
		values = append(values, strings.TrimSpace(s.Text()))
	})

	payload, err := json.Marshal(values)
	if err != nil {
		return nil, &PayloadError{URL: url, Err: err}
	}

	f.logger.Debug().
		Str("url", url).
		Int("matches", len(values)).
		Dur("duration", time.Since(start)).
		Msg("fetched page")

	return payload, nil
}
