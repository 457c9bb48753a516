package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_LevelFallback(t *testing.T) {
	l, err := New(Config{Level: "loud", Encoding: "yaml"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.InfoLevel))
	assert.False(t, l.Core().Enabled(zap.DebugLevel))

	l, err = New(Config{Level: "DEBUG"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))
}

func TestEncodingForEnv(t *testing.T) {
	assert.Equal(t, "console", EncodingForEnv("development"))
	assert.Equal(t, "json", EncodingForEnv("production"))
}
