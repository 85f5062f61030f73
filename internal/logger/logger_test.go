package logger

import (
	"testing"

	"quiz-gen/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	t.Run("DebugConsole", func(t *testing.T) {
		assert.NoError(t, Initialize(config.LoggerConfig{Level: "debug", Env: "development"}))
		assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("DefaultLevelProduction", func(t *testing.T) {
		assert.NoError(t, Initialize(config.LoggerConfig{Env: "production"}))
		assert.False(t, Get().Core().Enabled(zapcore.DebugLevel))
		assert.True(t, Get().Core().Enabled(zapcore.InfoLevel))
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		assert.Error(t, Initialize(config.LoggerConfig{Level: "loud"}))
	})
}
