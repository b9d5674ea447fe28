package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{"console debug", "debug", "console", zapcore.DebugLevel, false},
		{"default format warn", "warn", "", zapcore.WarnLevel, false},
		{"json info", "info", "json", zapcore.InfoLevel, false},
		{"json error", "error", "json", zapcore.ErrorLevel, false},
		{"invalid level", "loud", "json", 0, true},
		{"invalid format", "info", "xml", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Init(tt.level, tt.format)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			core := L().Core()
			assert.True(t, core.Enabled(tt.wantLevel))
			assert.False(t, core.Enabled(tt.wantLevel-1))
		})
	}
}

func TestSetLevel(t *testing.T) {
	require.NoError(t, Init("warn", "console"))

	assert.False(t, L().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, SetLevel("debug"))
	assert.True(t, L().Core().Enabled(zapcore.DebugLevel))

	assert.Error(t, SetLevel("nope"))
}
