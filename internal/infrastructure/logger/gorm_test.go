package logger

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gormlogger "gorm.io/gorm/logger"
)

func TestNewGormLogger(t *testing.T) {
	var buf bytes.Buffer
	gl := NewGormLogger(newCaptureLogger(&buf), gormlogger.Warn)

	assert.NotNil(t, gl)
	assert.Equal(t, gormlogger.Warn, gl.logLevel)
	assert.Equal(t, 200*time.Millisecond, gl.slowThreshold)
	assert.True(t, gl.ignoreRecordNotFoundError)
}

func TestGormLogger_LogMode(t *testing.T) {
	var buf bytes.Buffer
	gl := NewGormLogger(newCaptureLogger(&buf), gormlogger.Warn)

	info := gl.LogMode(gormlogger.Info)

	// Original is unchanged, returned copy has the new level
	assert.Equal(t, gormlogger.Warn, gl.logLevel)
	assert.Equal(t, gormlogger.Info, info.(*GormLogger).logLevel)
}

func TestGormLogger_Trace(t *testing.T) {
	t.Run("logs error for failed query", func(t *testing.T) {
		var buf bytes.Buffer
		gl := NewGormLogger(newCaptureLogger(&buf), gormlogger.Error)

		gl.Trace(context.Background(), time.Now(), func() (string, int64) {
			return "SELECT * FROM customers", 0
		}, assert.AnError)

		out := buf.String()
		assert.Contains(t, out, "SQL Error")
		assert.Contains(t, out, "SELECT * FROM customers")
	})

	t.Run("ignores record not found by default", func(t *testing.T) {
		var buf bytes.Buffer
		gl := NewGormLogger(newCaptureLogger(&buf), gormlogger.Error)

		gl.Trace(context.Background(), time.Now(), func() (string, int64) {
			return "SELECT * FROM customers WHERE id = $1", 0
		}, gormlogger.ErrRecordNotFound)

		assert.Empty(t, buf.String())
	})

	t.Run("logs slow query at warn level", func(t *testing.T) {
		var buf bytes.Buffer
		gl := NewGormLogger(newCaptureLogger(&buf), gormlogger.Warn)

		begin := time.Now().Add(-time.Second)
		gl.Trace(context.Background(), begin, func() (string, int64) {
			return "SELECT * FROM daily_orders", 100
		}, nil)

		assert.Contains(t, buf.String(), "SLOW SQL")
	})

	t.Run("silent level logs nothing", func(t *testing.T) {
		var buf bytes.Buffer
		gl := NewGormLogger(newCaptureLogger(&buf), gormlogger.Silent)

		gl.Trace(context.Background(), time.Now(), func() (string, int64) {
			return "SELECT 1", 1
		}, nil)

		assert.Empty(t, buf.String())
	})

	t.Run("includes request ID from context", func(t *testing.T) {
		var buf bytes.Buffer
		gl := NewGormLogger(newCaptureLogger(&buf), gormlogger.Error)

		ctx := context.WithValue(context.Background(), RequestIDKey, "req-sql-1")
		gl.Trace(ctx, time.Now(), func() (string, int64) {
			return "UPDATE invoices SET status = $1", 0
		}, assert.AnError)

		assert.Contains(t, buf.String(), "req-sql-1")
	})
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"unknown", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, MapGormLogLevel(tt.input))
		})
	}
}
