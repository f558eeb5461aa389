package convert

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"golang.org/x/sync/semaphore"
)

// ServiceConfig bounds the resources one Service may use.
type ServiceConfig struct {
	// MaxConcurrent caps conversions running at once.
	MaxConcurrent int64

	// AcquireTimeout is how long a conversion waits for a slot before
	// giving up.
	AcquireTimeout time.Duration

	// MaxFetchBytes caps the size of a CSV fetched by URL.
	MaxFetchBytes int64

	// FetchTimeout bounds a remote CSV download.
	FetchTimeout time.Duration
}

// ErrBusy is returned when no conversion slot frees up within the acquire
// timeout.
var ErrBusy = fmt.Errorf("too many concurrent conversions")

// Service runs conversions with a concurrency cap and an HTTP fetcher for
// remote CSV sources. Conversions share nothing: each run allocates its own
// column pool and document builders.
type Service struct {
	cfg    ServiceConfig
	sem    *semaphore.Weighted
	client *http.Client
}

// NewService creates a Service. Zero config values select sane defaults.
func NewService(cfg ServiceConfig) *Service {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 5
	}
	if cfg.AcquireTimeout <= 0 {
		cfg.AcquireTimeout = 30 * time.Second
	}
	if cfg.MaxFetchBytes <= 0 {
		cfg.MaxFetchBytes = 100 << 20
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = time.Minute
	}
	return &Service{
		cfg:    cfg,
		sem:    semaphore.NewWeighted(cfg.MaxConcurrent),
		client: &http.Client{Timeout: cfg.FetchTimeout},
	}
}

// acquire claims a conversion slot or fails with ErrBusy.
func (s *Service) acquire(ctx context.Context) (release func(), err error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.AcquireTimeout)
	defer cancel()

	if err := s.sem.Acquire(ctx, 1); err != nil {
		if ctx.Err() != nil {
			return nil, ErrBusy
		}
		return nil, err
	}
	return func() { s.sem.Release(1) }, nil
}

// Convert runs one conversion from r under the concurrency cap.
func (s *Service) Convert(ctx context.Context, r io.Reader, filename string, opts Options, w io.Writer) (*Result, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	return Convert(r, filename, opts, w)
}

// ConvertURL fetches a CSV by URL and converts it. The fetch bypasses
// caches and is size-capped; everything after the download is identical to
// Convert.
func (s *Service) ConvertURL(ctx context.Context, rawURL string, opts Options, w io.Writer) (*Result, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	opts.report(Progress{Phase: PhaseDownload})

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		err = fmt.Errorf("invalid csv url %q", rawURL)
		opts.report(Progress{Phase: PhaseFailed, Message: err.Error()})
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		opts.report(Progress{Phase: PhaseFailed, Message: err.Error()})
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := s.client.Do(req)
	if err != nil {
		opts.report(Progress{Phase: PhaseFailed, Message: err.Error()})
		return nil, fmt.Errorf("downloading csv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("download failed: %s", resp.Status)
		opts.report(Progress{Phase: PhaseFailed, Message: err.Error()})
		return nil, err
	}

	body := io.LimitReader(resp.Body, s.cfg.MaxFetchBytes)
	return Convert(body, path.Base(u.Path), opts, w)
}
