package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTouchFile_CreatesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Game.ini")

	require.NoError(t, TouchFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestTouchFile_KeepsExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Engine.ini")
	require.NoError(t, os.WriteFile(path, []byte("[Core.Log]\nLogNet=Verbose\n"), 0644))

	require.NoError(t, TouchFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[Core.Log]\nLogNet=Verbose\n", string(data))
}

func TestCreateFolder_Nested(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, CreateFolder(dir))
	assert.True(t, CheckFileExists(dir))

	require.NoError(t, CreateFolder(dir))
}

func TestSetupLoggers_WritesLogFiles(t *testing.T) {
	dir := t.TempDir()
	defer SetupLoggers("", false)

	require.NoError(t, SetupLoggers(dir, true))

	InfoLogger.Println("hello")
	SteamLogger.Println("Update state (0x61) downloading")

	combined, err := os.ReadFile(filepath.Join(dir, "VeinLauncher-combined.log"))
	require.NoError(t, err)
	assert.Contains(t, string(combined), "[ INFO ] ")
	assert.Contains(t, string(combined), "hello")

	steam, err := os.ReadFile(filepath.Join(dir, "VeinLauncher-steam.log"))
	require.NoError(t, err)
	assert.Contains(t, string(steam), "downloading")
	assert.NotContains(t, string(steam), "hello")
}
