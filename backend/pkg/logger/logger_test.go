package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInit_LevelOverride(t *testing.T) {
	t.Cleanup(func() { Logger = nil })

	require.NoError(t, Init("production", "warn"))
	assert.False(t, Get().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Get().Core().Enabled(zapcore.WarnLevel))
}

func TestInit_DevelopmentDefaultsToDebug(t *testing.T) {
	t.Cleanup(func() { Logger = nil })

	require.NoError(t, Init("development", ""))
	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))
}

func TestInit_BadLevel(t *testing.T) {
	t.Cleanup(func() { Logger = nil })

	assert.Error(t, Init("development", "loud"))
}

func TestGet_BeforeInit(t *testing.T) {
	Logger = nil
	assert.NotNil(t, Get())
	assert.NotNil(t, Named("graph"))
}
