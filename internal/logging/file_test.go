package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogFile_KeepsNewestBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	w, err := openLogFile(path, 10, 4)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	_, err = w.Write([]byte("abcdef"))
	require.NoError(t, err)
	_, err = w.Write([]byte("ghijkl"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "ijkl", string(data))

	_, err = w.Write([]byte("mn"))
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "ijklmn", string(data))
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unolims.log")
	logger, closeFn, err := NewFile("info", "json", "unolims-test", path)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown")
	require.NoError(t, logger.Sync())
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `"msg":"shown"`))
	require.False(t, strings.Contains(string(data), "hidden"))
	require.Contains(t, string(data), `"service_name":"unolims-test"`)
}
