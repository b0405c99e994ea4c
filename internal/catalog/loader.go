package catalog

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/domain"
)

// ErrStale is returned to a fetch that a newer fetch for the same view superseded
var ErrStale = errors.New("catalog request superseded by a newer one")

// Source yields raw backend product records
type Source interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
}

// SourceFunc adapts a function to Source
type SourceFunc func(ctx context.Context) ([]*domain.Product, error)

func (f SourceFunc) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return f(ctx)
}

type inflight struct {
	seq    uint64
	cancel context.CancelFunc
}

// Loader fetches and queries the catalog on behalf of views. Each view key
// carries a monotonic request sequence: when a newer fetch is issued for a
// key, the older one is cancelled and its result discarded.
type Loader struct {
	source Source
	logger *zap.Logger

	mu      sync.Mutex
	seq     uint64
	pending map[string]inflight
}

// NewLoader creates a catalog loader over source
func NewLoader(source Source, logger *zap.Logger) *Loader {
	return &Loader{
		source:  source,
		logger:  logger,
		pending: make(map[string]inflight),
	}
}

// Load fetches the catalog and applies c. key identifies the requesting view
// (a session id); an empty key opts out of supersession.
func (l *Loader) Load(ctx context.Context, key string, c Criteria) ([]Product, error) {
	products, err := l.fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	return Query(products, c), nil
}

// All fetches the normalized catalog without filtering.
func (l *Loader) All(ctx context.Context) ([]Product, error) {
	return l.fetch(ctx, "")
}

func (l *Loader) fetch(ctx context.Context, key string) ([]Product, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	seq := l.begin(key, cancel)

	raws, err := l.source.ListProducts(ctx)

	if !l.finish(key, seq) {
		l.logger.Debug("Discarding stale catalog response",
			zap.String("key", key),
			zap.Uint64("seq", seq),
		)
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}

	return NormalizeAll(raws), nil
}

func (l *Loader) begin(key string, cancel context.CancelFunc) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	if key == "" {
		return l.seq
	}
	if prev, ok := l.pending[key]; ok {
		prev.cancel()
	}
	l.pending[key] = inflight{seq: l.seq, cancel: cancel}
	return l.seq
}

// finish reports whether seq is still the latest request for key.
func (l *Loader) finish(key string, seq uint64) bool {
	if key == "" {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cur, ok := l.pending[key]
	if !ok || cur.seq != seq {
		return false
	}
	delete(l.pending, key)
	return true
}
