package checkout

import (
	"context"
	"fmt"
	"time"

	"makwell-storefront/internal/cart"
	"makwell-storefront/internal/logger"
	"makwell-storefront/internal/metrics"

	"go.uber.org/zap"
)

type Service interface {
	Checkout(ctx context.Context, ledger *cart.Ledger) (*Receipt, error)
}

type service struct {
	brand    string
	currency string
	sink     Sink
	metrics  *metrics.Registry
	now      func() time.Time
}

func NewService(brand, currency string, sink Sink, reg *metrics.Registry) Service {
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &service{
		brand:    brand,
		currency: currency,
		sink:     sink,
		metrics:  reg,
		now:      time.Now,
	}
}

func (s *service) Checkout(ctx context.Context, ledger *cart.Ledger) (*Receipt, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
	)

	now := s.now()
	payload, err := Build(ledger, s.brand, s.currency, now)
	if err != nil {
		s.metrics.Counter(metrics.CheckoutsRejected).Inc()
		log.Info("checkout rejected", zap.Error(err))
		return nil, err
	}

	if s.sink == nil {
		return nil, ErrMissingSink
	}

	ref := GenerateReference(now)
	if err := s.sink.Submit(ctx, ref, payload); err != nil {
		log.Error("checkout sink failed", zap.String("reference", ref), zap.Error(err))
		return nil, fmt.Errorf("submit checkout %s: %w", ref, err)
	}

	s.metrics.Counter(metrics.Checkouts).Inc()
	log.Info("checkout submitted", zap.String("reference", ref), zap.Int("units", ledger.Count()))
	return &Receipt{Reference: ref, Payload: payload}, nil
}
