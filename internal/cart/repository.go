package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"makwell-storefront/internal/kvstore"
	"makwell-storefront/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// Load never fails: a missing or unreadable ledger is an empty ledger.
	Load(ctx context.Context) *Ledger
	Save(ctx context.Context, ledger *Ledger) error
}

type repository struct {
	store kvstore.Store
	key   string
}

func NewRepository(store kvstore.Store) Repository {
	return &repository{store: store, key: LedgerKey}
}

func (r *repository) Load(ctx context.Context) *Ledger {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "LoadLedger"),
		zap.String("key", r.key),
	)

	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		log.Warn("cart unreadable, starting empty", zap.Error(err))
		return NewLedger()
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return NewLedger()
	}

	ledger, dropped, err := decodeLedger(raw)
	if err != nil {
		log.Warn("cart corrupt, starting empty", zap.Error(err))
		return NewLedger()
	}
	if dropped > 0 {
		log.Warn("dropped invalid cart entries", zap.Int("dropped", dropped))
	}

	log.Debug("cart restored", zap.Int("entries", ledger.Len()))
	return ledger
}

func (r *repository) Save(ctx context.Context, ledger *Ledger) error {
	raw, err := encodeLedger(ledger)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.key, raw); err != nil {
		logger.FromCtx(ctx).Error("failed to persist cart",
			zap.String("layer", "repository"),
			zap.String("key", r.key),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// encodeLedger writes the ledger as a JSON object of id -> quantity.
func encodeLedger(ledger *Ledger) (string, error) {
	raw, err := json.Marshal(ledger.items)
	if err != nil {
		return "", fmt.Errorf("failed to encode cart: %w", err)
	}
	return string(raw), nil
}

// decodeLedger keeps valid entries and reports how many it dropped.
// Anything that is not a JSON object of numbers is corrupt.
func decodeLedger(raw string) (*Ledger, int, error) {
	var entries map[string]float64
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrCorruptLedger, err)
	}

	ledger := NewLedger()
	dropped := 0
	for id, q := range entries {
		n := int(q)
		if strings.TrimSpace(id) == "" || n <= 0 || float64(n) != q {
			dropped++
			continue
		}
		ledger.items[id] = n
	}
	return ledger, dropped, nil
}
