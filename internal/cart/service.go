package cart

import (
	"context"
	"strings"
	"sync"

	"makwell-storefront/internal/logger"
	"makwell-storefront/internal/metrics"

	"go.uber.org/zap"
)

// Service defines the cart operations the storefront exposes.
type Service interface {
	Summary() Summary
	Ledger() *Ledger
	Add(ctx context.Context, productID string) (Summary, error)
	SetQuantity(ctx context.Context, productID string, quantity int) (Summary, error)
	Remove(ctx context.Context, productID string) (Summary, error)
	Clear(ctx context.Context) (Summary, error)
}

type service struct {
	mu       sync.Mutex
	ledger   *Ledger
	repo     Repository
	products Lookup
	metrics  *metrics.Registry
}

// NewService restores the persisted ledger and validates later mutations
// against products.
func NewService(ctx context.Context, repo Repository, products Lookup, reg *metrics.Registry) Service {
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &service{
		ledger:   repo.Load(ctx),
		repo:     repo,
		products: products,
		metrics:  reg,
	}
}

func (s *service) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summarize(s.ledger, s.products)
}

// Ledger returns a copy of the current ledger.
func (s *service) Ledger() *Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Clone()
}

// Add puts one more unit of productID in the cart. Products with a known
// stock are capped at that stock.
func (s *service) Add(ctx context.Context, productID string) (Summary, error) {
	productID = strings.TrimSpace(productID)
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddToCart"),
		zap.String("product_id", productID),
	)

	if productID == "" {
		return Summary{}, ErrInvalidProductID
	}

	p, ok := s.products.ByID(productID)
	if !ok {
		log.Warn("add to cart rejected, unknown product")
		return Summary{}, ErrProductNotFound
	}
	if !p.Purchasable() {
		log.Warn("add to cart rejected, out of stock")
		return Summary{}, ErrOutOfStock
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	qty := s.ledger.Add(productID)
	if p.Stock != nil && qty > *p.Stock {
		s.ledger.Set(productID, *p.Stock)
		qty = *p.Stock
		log.Info("quantity capped at stock", zap.Int("stock", *p.Stock))
	}

	s.persist(ctx)
	log.Info("cart item added", zap.Int("final_qty", qty))
	return Summarize(s.ledger, s.products), nil
}

// SetQuantity sets an absolute quantity; quantity <= 0 removes the entry.
// Removing an id that is not in the cart is a no-op.
func (s *service) SetQuantity(ctx context.Context, productID string, quantity int) (Summary, error) {
	productID = strings.TrimSpace(productID)
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SetQuantity"),
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
	)

	if productID == "" {
		return Summary{}, ErrInvalidProductID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		if s.ledger.Has(productID) {
			s.ledger.Remove(productID)
			s.persist(ctx)
			log.Info("cart item removed")
		}
		return Summarize(s.ledger, s.products), nil
	}

	p, known := s.products.ByID(productID)
	if !known && !s.ledger.Has(productID) {
		log.Warn("set quantity rejected, unknown product")
		return Summary{}, ErrProductNotFound
	}
	if known && !p.Purchasable() {
		return Summary{}, ErrOutOfStock
	}
	if known && p.Stock != nil && quantity > *p.Stock {
		quantity = *p.Stock
	}

	s.ledger.Set(productID, quantity)
	s.persist(ctx)
	log.Info("cart quantity updated", zap.Int("final_qty", quantity))
	return Summarize(s.ledger, s.products), nil
}

func (s *service) Remove(ctx context.Context, productID string) (Summary, error) {
	return s.SetQuantity(ctx, productID, 0)
}

func (s *service) Clear(ctx context.Context) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.Clear()
	s.persist(ctx)
	logger.FromCtx(ctx).Info("cart cleared", zap.String("layer", "service"))
	return Summarize(s.ledger, s.products), nil
}

// persist writes the whole ledger. A failed write keeps the in-memory
// change; the ledger is written again in full on the next mutation.
func (s *service) persist(ctx context.Context) {
	s.metrics.Counter(metrics.CartMutations).Inc()
	if err := s.repo.Save(ctx, s.ledger); err != nil {
		s.metrics.Counter(metrics.CartPersistFailures).Inc()
		logger.FromCtx(ctx).Warn("cart change not persisted", zap.Error(err))
	}
}
