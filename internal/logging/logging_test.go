package logging

import (
	"path/filepath"
	"testing"

	"github.com/ganot/unolims/internal/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	require.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	require.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	require.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		logger, err := New("debug", format, "unolims-test")
		require.NoError(t, err)
		require.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	}
}

func TestOrNop(t *testing.T) {
	require.NotNil(t, OrNop(nil))
}

func TestFromConfig(t *testing.T) {
	logger, closeFn, err := FromConfig(config.LogConfig{Level: "warn", Format: "json"}, "unolims-test")
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	require.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "server.log")
	logger, closeFn, err = FromConfig(config.LogConfig{Level: "debug", Path: path}, "unolims-test")
	require.NoError(t, err)
	logger.Debug("to file")
	require.NoError(t, closeFn())
	require.FileExists(t, path)
}
