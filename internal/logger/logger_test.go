package logger_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/wordflash/internal/logger"
)

func TestLookupLevel(t *testing.T) {
	tests := []struct {
		in    string
		want  logger.Level
		known bool
	}{
		{"debug", logger.DEBUG, true},
		{"INFO", logger.INFO, true},
		{"warning", logger.WARN, true},
		{" error ", logger.ERROR, true},
		{"verbose", logger.INFO, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lvl, ok := logger.LookupLevel(tt.in)
			assert.Equal(t, tt.want, lvl)
			assert.Equal(t, tt.known, ok)
		})
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Info("hidden")
	log.Warn("shown %d", 1)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 1")
}

func TestLogger_FieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false), logger.WithCaller(false))

	log.WithPrefix("drill").WithFields(map[string]any{"mode": "learn", "answer": "x"}).Info("submitted")

	assert.Contains(t, buf.String(), "[drill] submitted answer=x mode=learn")
}

func TestContextRoundTrip(t *testing.T) {
	log := logger.New(logger.WithPrefix("ctx"))
	ctx := logger.NewContext(context.Background(), log)

	assert.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
