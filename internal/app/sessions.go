package app

import (
	"context"
	"sync"
	"time"

	"makwell-storefront/internal/catalog"
	"makwell-storefront/internal/imageresolver"
	"makwell-storefront/internal/kvstore"
	"makwell-storefront/internal/logger"
	"makwell-storefront/internal/metrics"

	"go.uber.org/zap"
)

const anonymousVisitor = "anonymous"

type session struct {
	app      *App
	lastSeen time.Time
}

// Sessions keeps one App per visitor over a shared catalog. Each visitor's
// cart and preferences live under their own key prefix in the base store,
// so an evicted session is restored on the next request.
type Sessions struct {
	mu   sync.Mutex
	deps Deps
	apps map[string]*session
	now  func() time.Time
}

func NewSessions(deps Deps) *Sessions {
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewRegistry()
	}
	if deps.Catalog == nil {
		deps.Catalog = catalog.NewStore(deps.Metrics)
	}
	if deps.Images == nil {
		deps.Images = imageresolver.New("", "")
	}
	if deps.Store == nil {
		deps.Store = kvstore.NewMemory()
	}
	if deps.Currency == "" {
		deps.Currency = DefaultCurrency
	}

	return &Sessions{
		deps: deps,
		apps: make(map[string]*session),
		now:  time.Now,
	}
}

func (s *Sessions) Catalog() *catalog.Store {
	return s.deps.Catalog
}

func (s *Sessions) Metrics() *metrics.Registry {
	return s.deps.Metrics
}

// Get returns the visitor's App, creating it on first use.
func (s *Sessions) Get(ctx context.Context, visitor string) *App {
	if visitor == "" {
		visitor = anonymousVisitor
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.apps[visitor]; ok {
		sess.lastSeen = s.now()
		return sess.app
	}

	deps := s.deps
	deps.Store = kvstore.Namespaced(s.deps.Store, visitor+":")
	a := New(ctx, deps)
	a.now = s.clock

	s.apps[visitor] = &session{app: a, lastSeen: s.now()}
	logger.FromCtx(ctx).Debug("session created", zap.Int("sessions", len(s.apps)))
	return a
}

func (s *Sessions) clock() time.Time {
	return s.now()
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.apps)
}

// Evict drops sessions idle for longer than maxIdle. Idle time counts from
// the later of the last Get and the last command the App ran. An App with a
// command in flight is never dropped.
func (s *Sessions) Evict(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for visitor, sess := range s.apps {
		last := sess.lastSeen
		if active := sess.app.lastActivity(); active.After(last) {
			last = active
		}
		if now.Sub(last) <= maxIdle {
			continue
		}
		if !sess.app.mu.TryLock() {
			continue
		}
		sess.app.mu.Unlock()

		delete(s.apps, visitor)
		removed++
	}
	return removed
}

// Run evicts idle sessions every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Evict(maxIdle); n > 0 {
				logger.L().Info("idle sessions evicted", zap.Int("count", n))
			}
		}
	}
}
