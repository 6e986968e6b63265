package assets

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Store is the persistent half of the probe memo; the SQLite card cache
// implements it. A nil Store keeps answers in memory only.
type Store interface {
	GetProbe(ctx context.Context, url string) (exists, found bool, err error)
	PutProbe(ctx context.Context, url string, exists bool) error
}

// Prober answers "does this asset URL resolve" with a memoized HEAD request.
// It is safe for concurrent use; the in-memory memo is mutex-guarded and the
// store write-through is best effort.
type Prober struct {
	HTTPClient *http.Client
	Logger     *zap.Logger
	Store      Store

	mu   sync.Mutex
	memo map[string]bool
}

// NewProber returns a prober with a default client timeout.
func NewProber(logger *zap.Logger, store Store) *Prober {
	return &Prober{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     logger,
		Store:      store,
		memo:       map[string]bool{},
	}
}

// Exists reports whether url resolves. Network failures are treated as
// "absent" but are not memoized, so a transient outage does not poison the
// cache.
func (p *Prober) Exists(ctx context.Context, url string) bool {
	if url == "" {
		return false
	}
	p.mu.Lock()
	if p.memo == nil {
		p.memo = map[string]bool{}
	}
	if v, ok := p.memo[url]; ok {
		p.mu.Unlock()
		return v
	}
	p.mu.Unlock()

	if p.Store != nil {
		if exists, found, err := p.Store.GetProbe(ctx, url); err == nil && found {
			p.remember(url, exists)
			return exists
		}
	}

	exists, definitive := p.head(ctx, url)
	if definitive {
		p.remember(url, exists)
		if p.Store != nil {
			if err := p.Store.PutProbe(ctx, url, exists); err != nil && p.Logger != nil {
				p.Logger.Warn("asset probe write failed", zap.String("url", url), zap.Error(err))
			}
		}
	}
	return exists
}

// head runs the HEAD request. The second return is false when the answer is
// not worth remembering.
func (p *Prober) head(ctx context.Context, url string) (exists, definitive bool) {
	client := p.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, true
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, false
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, true
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return false, true
	default:
		return false, false
	}
}

func (p *Prober) remember(url string, exists bool) {
	p.mu.Lock()
	if p.memo == nil {
		p.memo = map[string]bool{}
	}
	p.memo[url] = exists
	p.mu.Unlock()
}
