package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_LevelParsing(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		enabled zapcore.Level
		muted   zapcore.Level
		wantErr bool
	}{
		{name: "default is info", level: "", enabled: zapcore.InfoLevel, muted: zapcore.DebugLevel},
		{name: "debug", level: "debug", enabled: zapcore.DebugLevel, muted: zapcore.DebugLevel - 1},
		{name: "warn", level: "warn", enabled: zapcore.WarnLevel, muted: zapcore.InfoLevel},
		{name: "uppercase accepted", level: "ERROR", enabled: zapcore.ErrorLevel, muted: zapcore.WarnLevel},
		{name: "unknown level", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(Options{Level: tt.level})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid log level")
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			assert.False(t, logger.Core().Enabled(tt.muted))
		})
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compass.log")

	logger, err := New(Options{File: path})
	require.NoError(t, err)

	logger.Info("server started", zap.String("addr", ":8080"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"server started"`)
	assert.Contains(t, string(data), `"addr":":8080"`)
}
