package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const (
	CatalogLoads        = "catalog_loads"
	CatalogLoadFailures = "catalog_load_failures"
	CatalogProducts     = "catalog_products"
	ImageFallbacks      = "image_fallbacks"
	ImagePlaceholders   = "image_placeholders"
	CartMutations       = "cart_mutations"
	CartPersistFailures = "cart_persist_failures"
	Checkouts           = "checkouts"
	CheckoutsRejected   = "checkouts_rejected"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

// Set overwrites the value; used for gauges such as the catalog size.
func (c *Counter) Set(n uint64) {
	atomic.StoreUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Registry hands out named counters. The zero value is ready to use.
type Registry struct {
	mu       sync.Mutex
	counters map[string]*Counter
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Counter returns the counter registered under name, creating it on first use.
func (r *Registry) Counter(name string) *Counter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.counters == nil {
		r.counters = make(map[string]*Counter)
	}
	c, ok := r.counters[name]
	if !ok {
		c = &Counter{}
		r.counters[name] = c
	}
	return c
}

// Snapshot copies every counter value.
func (r *Registry) Snapshot() map[string]uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]uint64, len(r.counters))
	for name, c := range r.counters {
		out[name] = c.Load()
	}
	return out
}

// Names lists registered counters in lexical order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.counters))
	for name := range r.counters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
