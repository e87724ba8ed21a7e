package catalog

import (
	"context"
	"sync"

	"makwell-storefront/internal/logger"
	"makwell-storefront/internal/metrics"

	"go.uber.org/zap"
)

// Store holds the session catalog. It is loaded at most once; until then
// (and after a failed load) it behaves as an empty catalog.
type Store struct {
	once    sync.Once
	mu      sync.RWMutex
	loaded  bool
	err     error
	items   []Product
	index   map[string]int
	metrics *metrics.Registry
}

func NewStore(reg *metrics.Registry) *Store {
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &Store{index: map[string]int{}, metrics: reg}
}

// Load runs the loader the first time it is called and returns that outcome on
// every later call. A failure leaves the catalog empty and is returned as *LoadError.
func (s *Store) Load(ctx context.Context, loader Loader) error {
	s.once.Do(func() {
		s.load(ctx, loader)
	})

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Store) load(ctx context.Context, loader Loader) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "catalog"),
		zap.String("method", "Load"),
		zap.String("source", loader.Source()),
	)
	timer := metrics.StartTimer()
	s.metrics.Counter(metrics.CatalogLoads).Inc()

	products, err := loader.Fetch(ctx)
	if err != nil {
		s.metrics.Counter(metrics.CatalogLoadFailures).Inc()
		log.Warn("products load failed, catalog is empty",
			zap.Error(err),
			zap.Duration("duration", timer.Duration()),
		)

		s.mu.Lock()
		s.loaded = true
		s.err = &LoadError{Source: loader.Source(), Err: err}
		s.mu.Unlock()
		return
	}

	items := make([]Product, 0, len(products))
	index := make(map[string]int, len(products))
	for _, p := range products {
		if p.ID == "" {
			log.Warn("dropping product without id", zap.String("name", p.Name))
			continue
		}
		if _, dup := index[p.ID]; dup {
			log.Warn("dropping duplicate product id", zap.String("product_id", p.ID))
			continue
		}
		index[p.ID] = len(items)
		items = append(items, p)
	}

	s.mu.Lock()
	s.items = items
	s.index = index
	s.loaded = true
	s.mu.Unlock()

	s.metrics.Counter(metrics.CatalogProducts).Set(uint64(len(items)))
	log.Info("catalog loaded",
		zap.Int("count", len(items)),
		zap.Duration("duration", timer.Duration()),
	)
}

// Loaded reports whether a load attempt has finished, successful or not.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Err returns the load failure, if any.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Products returns the catalog in source order. The slice is shared; do not modify.
func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) ByID(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return Product{}, false
	}
	return s.items[i], true
}

// Categories returns AllCategories followed by each distinct category in
// first-seen order. Products without a category are skipped.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	out := []string{AllCategories}
	for _, p := range s.items {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
