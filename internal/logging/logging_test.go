package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warning", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, FormatJSON, "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "table", "character")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"table":"character"`)

	_, err = New(&buf, "xml", "info")
	assert.Error(t, err)
	_, err = New(&buf, FormatText, "loud")
	assert.Error(t, err)
}

func newBufferLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})), &buf
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := context.Background()
	stmt := func() (string, int64) { return "SELECT * FROM `planet`", 2 }

	t.Run("debug traces statements", func(t *testing.T) {
		l, buf := newBufferLogger(slog.LevelDebug)
		NewGormLogger(l).Trace(ctx, time.Now(), stmt, nil)
		assert.Contains(t, buf.String(), "msg=query")
		assert.Contains(t, buf.String(), "rows=2")
	})

	t.Run("info skips statements", func(t *testing.T) {
		l, buf := newBufferLogger(slog.LevelInfo)
		NewGormLogger(l).Trace(ctx, time.Now(), stmt, nil)
		assert.Empty(t, buf.String())
	})

	t.Run("errors are logged", func(t *testing.T) {
		l, buf := newBufferLogger(slog.LevelInfo)
		NewGormLogger(l).Trace(ctx, time.Now(), stmt, errors.New("FOREIGN KEY constraint failed"))
		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "FOREIGN KEY constraint failed")
	})

	t.Run("record not found is not an error", func(t *testing.T) {
		l, buf := newBufferLogger(slog.LevelInfo)
		NewGormLogger(l).Trace(ctx, time.Now(), stmt, gorm.ErrRecordNotFound)
		assert.NotContains(t, buf.String(), "level=ERROR")
	})

	t.Run("slow statements warn", func(t *testing.T) {
		l, buf := newBufferLogger(slog.LevelInfo)
		NewGormLogger(l).Trace(ctx, time.Now().Add(-time.Second), stmt, nil)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "slow query")
	})

	t.Run("silent mode", func(t *testing.T) {
		l, buf := newBufferLogger(slog.LevelDebug)
		NewGormLogger(l).LogMode(gormlogger.Silent).Trace(ctx, time.Now(), stmt, errors.New("boom"))
		assert.Empty(t, buf.String())
	})
}

func TestGormLogger_Messages(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelDebug)
	g := NewGormLogger(l)

	g.Info(context.Background(), "migrating %s", "planet")
	g.Warn(context.Background(), "column %s changed", "name")
	g.Error(context.Background(), "failed: %v", "boom")

	out := buf.String()
	assert.Contains(t, out, `msg="migrating planet"`)
	assert.Contains(t, out, `msg="column name changed"`)
	assert.Contains(t, out, `msg="failed: boom"`)
}
