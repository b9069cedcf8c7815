package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetRoutesHelpers(t *testing.T) {
	prev := L()
	t.Cleanup(func() { Set(prev) })

	core, logs := observer.New(zapcore.InfoLevel)
	Set(zap.New(core))

	Debug("dropped")
	Info("pantry loaded", zap.Int("items", 3))
	Warn("redis unavailable")
	Error("upstream failed", zap.String("service", "llm"))

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "pantry loaded", entries[0].Message)
	assert.Equal(t, int64(3), entries[0].ContextMap()["items"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "llm", entries[2].ContextMap()["service"])
}

func TestInit(t *testing.T) {
	prev := L()
	t.Cleanup(func() { Set(prev) })

	require.NoError(t, Init(false))
	assert.True(t, L().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Init(true))
	assert.False(t, L().Core().Enabled(zapcore.DebugLevel))
}
