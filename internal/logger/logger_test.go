package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, observed := observer.New(zapcore.InfoLevel)
	restore := Replace(zap.New(core))
	t.Cleanup(restore)
	return observed
}

func TestInit(t *testing.T) {
	restore := Replace(nil)
	defer restore()

	t.Run("Production", func(t *testing.T) {
		Init("production")
		assert.NotNil(t, L())
	})

	t.Run("Development", func(t *testing.T) {
		Init("development")
		assert.NotNil(t, L())
	})
}

func TestL_LazyInit(t *testing.T) {
	restore := Replace(nil)
	defer restore()

	t.Setenv("APP_ENV", "test")

	assert.NotNil(t, L())
}

func TestReplace(t *testing.T) {
	original := L()
	replacement := zap.NewNop()

	restore := Replace(replacement)
	assert.Same(t, replacement, L())

	restore()
	assert.Same(t, original, L())
}

func TestContextFunctions(t *testing.T) {
	ctx := context.Background()

	t.Run("RequestID", func(t *testing.T) {
		assert.Equal(t, "", RequestIDFrom(ctx))
		assert.Equal(t, "req-1", RequestIDFrom(WithRequestID(ctx, "req-1")))
	})

	t.Run("Visitor", func(t *testing.T) {
		assert.Equal(t, "", VisitorFrom(ctx))
		assert.Equal(t, "ip:10.0.0.1", VisitorFrom(WithVisitor(ctx, "ip:10.0.0.1")))
	})
}

func TestFromCtx(t *testing.T) {
	observed := observe(t)

	t.Run("WithFields", func(t *testing.T) {
		ctx := WithVisitor(WithRequestID(context.Background(), "req-abc-123"), "device:d1")

		FromCtx(ctx).Info("test message with id")

		logs := observed.TakeAll()
		require.Len(t, logs, 1)
		fields := logs[0].ContextMap()
		assert.Equal(t, "req-abc-123", fields["request_id"])
		assert.Equal(t, "device:d1", fields["visitor"])
	})

	t.Run("WithoutFields", func(t *testing.T) {
		FromCtx(context.Background()).Info("test message without id")

		logs := observed.TakeAll()
		require.Len(t, logs, 1)
		_, ok := logs[0].ContextMap()["request_id"]
		assert.False(t, ok)
	})
}

func TestSync(t *testing.T) {
	assert.NotPanics(t, func() {
		Sync()
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, RequestIDFrom(r.Context()))
	}))

	t.Run("Generates ID when missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("Preserves existing ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set(RequestIDHeader, "test-id-123")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "test-id-123", w.Header().Get(RequestIDHeader))
	})
}

func TestLoggingMiddleware(t *testing.T) {
	observed := observe(t)

	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	logs := observed.TakeAll()
	require.Len(t, logs, 1)
	assert.Equal(t, "incoming request", logs[0].Message)
	assert.Equal(t, "/cart", logs[0].ContextMap()["path"])
	assert.Equal(t, int64(http.StatusTeapot), logs[0].ContextMap()["status"])
}
