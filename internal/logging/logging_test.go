package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, LevelFromString(tc.in), "level %q", tc.in)
	}
}

func TestSetup_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grounder.log")
	logger, cleanup, err := Setup(Config{
		Level:    "warn",
		FilePath: path,
	})
	require.NoError(t, err)

	logger.Info("filtered out")
	logger.Warn("kept", "domain", "medical")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "filtered out")
	assert.Contains(t, string(data), `"msg":"kept"`)
	assert.Contains(t, string(data), `"domain":"medical"`)
}

func TestSetup_NoFilePathStillReturnsLogger(t *testing.T) {
	logger, cleanup, err := Setup(Config{Level: "debug"})
	require.NoError(t, err)
	require.NotNil(t, logger)
	cleanup()
}

func TestDataDir_EnvOverride(t *testing.T) {
	t.Setenv("GROUNDER_DATA_DIR", "/tmp/grounder-test-data")
	assert.Equal(t, "/tmp/grounder-test-data", DataDir())
	assert.Equal(t, filepath.Join("/tmp/grounder-test-data", "logs"), LogDir())
	assert.Equal(t, filepath.Join("/tmp/grounder-test-data", "logs", "grounder.log"), DefaultLogPath())
}
