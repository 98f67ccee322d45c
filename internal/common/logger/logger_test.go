package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapWrapper_FieldsAreForwarded(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).With(map[string]interface{}{"component": "assistant"})

	log.Info("classified", map[string]interface{}{"intent": "skills"})

	entries := logs.All()
	assert.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "assistant", ctx["component"])
	assert.Equal(t, "skills", ctx["intent"])
}

func TestZapWrapper_ErrorValuesBecomeNamedErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core))

	log.Warn("fetch failed", map[string]interface{}{"cause": errors.New("connection refused")})

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "connection refused", entries[0].ContextMap()["cause"])
}

func TestZapWrapper_WithError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithError(errors.New("boom"))

	log.Error("failed", nil)

	assert.Equal(t, "boom", logs.All()[0].ContextMap()["error"])
}

func TestNew_LevelFiltering(t *testing.T) {
	l := New("warn", "json", "stderr")
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l = New("unknown", "console", "")
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNoOpLogger(t *testing.T) {
	log := NewNoOpLogger()
	assert.NotPanics(t, func() {
		log.Debug("x", nil)
		log.WithFields(map[string]interface{}{"a": 1}).Info("y", nil)
	})
}
