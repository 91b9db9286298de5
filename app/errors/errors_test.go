package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	err := IO("rename", "/config/Game.ini", os.ErrPermission)
	assert.Equal(t, "io: rename /config/Game.ini: permission denied", err.Error())

	err = MissingConfig("CONFIG_PATH is required")
	assert.Equal(t, "missing_config: CONFIG_PATH is required", err.Error())
}

func TestError_Unwrap(t *testing.T) {
	err := IO("open", "/config/Engine.ini", os.ErrNotExist)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	wrapped := fmt.Errorf("materialize: %w", err)
	assert.True(t, IsKind(wrapped, KindIO))
	assert.False(t, IsKind(wrapped, KindMissingConfig))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain error", errors.New("boom"), 1},
		{"io", IO("write", "x", nil), 1},
		{"missing config", MissingConfig("CONFIG_PATH is required"), 2},
		{"missing dependency", MissingDependency("steamcmd not found", nil), 3},
		{"wrapped", fmt.Errorf("startup: %w", MissingDependency("steamcmd not found", nil)), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
