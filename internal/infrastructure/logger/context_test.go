package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newCaptureLogger returns a logger writing JSON entries into buf
func newCaptureLogger(buf *bytes.Buffer) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:  "msg",
		LevelKey:    "level",
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

func TestWithContext(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := WithContext(context.Background(), logger)

	retrieved := FromContext(ctx)
	assert.NotNil(t, retrieved)
}

func TestFromContext_NotFound(t *testing.T) {
	logger := FromContext(context.Background())

	// Should return a no-op logger
	assert.NotNil(t, logger)
}

func TestWithRequestID(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	newCtx, newLogger := WithRequestID(context.Background(), logger, "req-123")

	assert.NotNil(t, newLogger)
	assert.Equal(t, "req-123", GetRequestID(newCtx))
}

func TestWithUserID(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	newCtx, newLogger := WithUserID(context.Background(), logger, "user-456")

	assert.NotNil(t, newLogger)
	assert.Equal(t, "user-456", GetUserID(newCtx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	assert.Equal(t, "", GetRequestID(context.Background()))
}

func TestGetUserID_NotFound(t *testing.T) {
	assert.Equal(t, "", GetUserID(context.Background()))
}

func TestContextLogger(t *testing.T) {
	t.Run("injects request_id and user_id into entries", func(t *testing.T) {
		var buf bytes.Buffer
		base := newCaptureLogger(&buf)

		ctx := context.WithValue(context.Background(), RequestIDKey, "req-789")
		ctx = context.WithValue(ctx, UserIDKey, "user-001")
		ctx = WithContext(ctx, base)

		L(ctx).Info("order generated")

		out := buf.String()
		assert.Contains(t, out, "order generated")
		assert.Contains(t, out, "req-789")
		assert.Contains(t, out, "user-001")
	})

	t.Run("works without any context values", func(t *testing.T) {
		var buf bytes.Buffer
		base := newCaptureLogger(&buf)

		ctx := WithContext(context.Background(), base)
		L(ctx).Warn("low stock")

		assert.Contains(t, buf.String(), "low stock")
	})

	t.Run("nil logger falls back to no-op", func(t *testing.T) {
		cl := &ContextLogger{ctx: context.Background()}
		assert.NotPanics(t, func() {
			cl.Info("ignored")
		})
	})

	t.Run("With adds fields", func(t *testing.T) {
		var buf bytes.Buffer
		base := newCaptureLogger(&buf)

		cl := WithLogger(context.Background(), base).With(zap.String("route", "morning-1"))
		cl.Info("deliveries confirmed")

		out := buf.String()
		assert.Contains(t, out, "deliveries confirmed")
		assert.Contains(t, out, "morning-1")
	})

	t.Run("Zap returns enriched logger", func(t *testing.T) {
		var buf bytes.Buffer
		base := newCaptureLogger(&buf)

		ctx := context.WithValue(context.Background(), RequestIDKey, "req-zap")
		cl := WithLogger(ctx, base)

		cl.Zap().Info("direct")
		assert.Contains(t, buf.String(), "req-zap")
	})
}
