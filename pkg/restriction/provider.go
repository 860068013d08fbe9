package restriction

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CatalogSource lists restriction records from the system of record.
type CatalogSource interface {
	List(ctx context.Context) ([]*TradingRestriction, error)
}

const defaultRefreshEvery = 30 * time.Second

// Provider maintains the current Catalog snapshot. Refresh builds a whole new
// Catalog and swaps it in atomically, so a validation already holding a
// snapshot never observes a mid-call update.
type Provider struct {
	source       CatalogSource
	refreshEvery time.Duration

	cache    *redis.Client // optional warm-start snapshot cache
	cacheKey string
	cacheTTL time.Duration

	version atomic.Int64
	current atomic.Pointer[Catalog]
	stopCh  chan struct{}
}

type ProviderOption func(*Provider)

// WithRefreshInterval overrides how often the snapshot is rebuilt.
func WithRefreshInterval(d time.Duration) ProviderOption {
	return func(p *Provider) {
		if d > 0 {
			p.refreshEvery = d
		}
	}
}

// WithSnapshotCache keeps the latest snapshot in redis so a restart can serve
// validations before the database is reachable.
func WithSnapshotCache(client *redis.Client, key string, ttl time.Duration) ProviderOption {
	return func(p *Provider) {
		p.cache = client
		p.cacheKey = key
		p.cacheTTL = ttl
	}
}

func NewProvider(source CatalogSource, opts ...ProviderOption) *Provider {
	p := &Provider{
		source:       source,
		refreshEvery: defaultRefreshEvery,
		stopCh:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start loads the initial snapshot, retrying with exponential backoff, then
// refreshes in the background until Stop.
func (p *Provider) Start(ctx context.Context) error {
	boff := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	err := backoff.Retry(func() error {
		return p.Refresh(ctx)
	}, boff)
	if err != nil {
		// fall back to the cached snapshot if one exists
		if cacheErr := p.loadFromCache(ctx); cacheErr != nil {
			return err
		}
		zap.S().Warnw("restriction source unreachable, serving cached snapshot", "err", err)
	}

	go p.run()
	return nil
}

func (p *Provider) Stop() {
	close(p.stopCh)
}

// Snapshot returns the current immutable catalog. Nil only before a
// successful Start.
func (p *Provider) Snapshot() *Catalog {
	return p.current.Load()
}

// Refresh rebuilds the catalog from the source and swaps it in.
func (p *Provider) Refresh(ctx context.Context) error {
	restrictions, err := p.source.List(ctx)
	if err != nil {
		return err
	}

	catalog, err := NewCatalog(p.version.Add(1), restrictions)
	if err != nil {
		// malformed records will not heal on retry
		return backoff.Permanent(err)
	}

	p.current.Store(catalog)
	p.writeCache(ctx, restrictions)
	zap.S().Debugw("restriction snapshot refreshed",
		"version", catalog.Version(), "restrictions", catalog.Len())
	return nil
}

func (p *Provider) run() {
	ticker := time.NewTicker(p.refreshEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), p.refreshEvery)
			if err := p.Refresh(ctx); err != nil {
				// keep serving the previous snapshot
				zap.S().Warnw("restriction snapshot refresh failed", "err", err)
			}
			cancel()
		case <-p.stopCh:
			return
		}
	}
}

func (p *Provider) writeCache(ctx context.Context, restrictions []*TradingRestriction) {
	if p.cache == nil {
		return
	}
	b, err := json.Marshal(restrictions)
	if err != nil {
		zap.S().Warnw("marshal restriction snapshot failed", "err", err)
		return
	}
	if err := p.cache.Set(ctx, p.cacheKey, b, p.cacheTTL).Err(); err != nil {
		zap.S().Warnw("write restriction snapshot cache failed", "err", err)
	}
}

func (p *Provider) loadFromCache(ctx context.Context) error {
	if p.cache == nil {
		return redis.Nil
	}
	b, err := p.cache.Get(ctx, p.cacheKey).Bytes()
	if err != nil {
		return err
	}

	var restrictions []*TradingRestriction
	if err := json.Unmarshal(b, &restrictions); err != nil {
		return err
	}

	catalog, err := NewCatalog(p.version.Add(1), restrictions)
	if err != nil {
		return err
	}
	p.current.Store(catalog)
	return nil
}
