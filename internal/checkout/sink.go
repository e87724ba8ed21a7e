package checkout

import (
	"context"
	"encoding/json"
	"sync"

	"makwell-storefront/internal/logger"

	"go.uber.org/zap"
)

// Sink receives a finished payload. Transport is up to the implementation.
type Sink interface {
	Submit(ctx context.Context, reference string, payload Payload) error
}

// LogSink writes the payload to the log, which is all the storefront does
// with a checkout today.
type LogSink struct{}

func (LogSink) Submit(ctx context.Context, reference string, payload Payload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("checkout payload",
		zap.String("reference", reference),
		zap.Int("items", len(payload.Items)),
		zap.ByteString("payload", raw),
	)
	return nil
}

// RecordingSink keeps every submitted payload in memory.
type RecordingSink struct {
	mu       sync.Mutex
	receipts []Receipt
}

func (s *RecordingSink) Submit(_ context.Context, reference string, payload Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts = append(s.receipts, Receipt{Reference: reference, Payload: payload})
	return nil
}

func (s *RecordingSink) Receipts() []Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Receipt, len(s.receipts))
	copy(out, s.receipts)
	return out
}
