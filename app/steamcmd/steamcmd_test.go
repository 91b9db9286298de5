package steamcmd

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/SatisfactoryServerManager/VeinLauncher/app/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallCommands(t *testing.T) {
	tests := []struct {
		name string
		opts InstallOptions
		want string
	}{
		{"public", InstallOptions{AppID: 2131400, Branch: "public"}, "app_update 2131400"},
		{"no branch", InstallOptions{AppID: 2131400}, "app_update 2131400"},
		{"beta", InstallOptions{AppID: 2131400, Branch: "experimental"}, "app_update 2131400 -beta experimental"},
		{"beta with password", InstallOptions{AppID: 1, Branch: "qa", BranchPassword: "secret"}, "app_update 1 -beta qa -betapassword secret"},
		{"validate", InstallOptions{AppID: 1, Validate: true}, "app_update 1 validate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []string{tt.want}, InstallCommands(tt.opts))
		})
	}
}

func TestBuildScriptFile(t *testing.T) {
	path, err := BuildScriptFile("/home/steam/vein", []string{"app_update 2131400"})
	require.NoError(t, err)
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "@ShutdownOnFailedCommand 1\n@NoPromptForPassword 1\n"+
		"force_install_dir /home/steam/vein\nlogin anonymous\napp_update 2131400\nquit\n", string(data))
}

func TestBuildScriptFile_NoInstallDir(t *testing.T) {
	path, err := BuildScriptFile("", nil)
	require.NoError(t, err)
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "@ShutdownOnFailedCommand 1\n@NoPromptForPassword 1\nlogin anonymous\nquit\n", string(data))
}

func TestPreflight(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, Preflight(dir, true))

	err := Preflight(dir, false)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindMissingDependency))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	writeFakeSteamCMD(t, dir, "exit 0")
	assert.NoError(t, Preflight(dir, false))
}

func TestInitSteamCMD_AlreadyInstalled(t *testing.T) {
	dir := t.TempDir()
	writeFakeSteamCMD(t, dir, "exit 0")

	require.NoError(t, InitSteamCMD(dir, false))
	assert.Equal(t, dir, SteamDir)
	assert.True(t, IsInstalled())
}

func TestInitSteamCMD_MissingWithoutDownload(t *testing.T) {
	err := InitSteamCMD(filepath.Join(t.TempDir(), "steamcmd"), false)
	require.Error(t, err)
	assert.Equal(t, 3, apperrors.ExitCode(err))
}

func writeFakeSteamCMD(t *testing.T, dir, body string) {
	t.Helper()
	script := "#!/bin/sh\necho \"Redirecting stderr to '/tmp/stderr.txt'\"\necho \"$@\"\n" + body + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "steamcmd.sh"), []byte(script), 0755))
}

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"success", "exit 0", false},
		{"exit status 7 is tolerated", "exit 7", false},
		{"failure", "echo 'ERROR! Failed to install app' >&2\nexit 8", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SteamDir = t.TempDir()
			writeFakeSteamCMD(t, SteamDir, tt.body)

			err := Run(context.Background(), t.TempDir(), []string{"app_update 2131400"})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "Failed to install app")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestInstallServer_CreatesInstallDir(t *testing.T) {
	SteamDir = t.TempDir()
	writeFakeSteamCMD(t, SteamDir, "exit 0")
	installDir := filepath.Join(t.TempDir(), "vein")

	err := InstallServer(context.Background(), InstallOptions{InstallDir: installDir, AppID: 2131400})
	require.NoError(t, err)

	info, err := os.Stat(installDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func buildArchive(t *testing.T, files map[string]string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gzw)

	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "linux32/", Typeflag: tar.TypeDir, Mode: 0755}))
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Typeflag: tar.TypeReg,
			Mode:     0755,
			Size:     int64(len(content)),
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gzw.Close())
	return &buf
}

func TestExtractArchive(t *testing.T) {
	SteamDir = t.TempDir()
	archive := buildArchive(t, map[string]string{
		"steamcmd.sh":            "#!/bin/sh\n",
		"linux32/steamcmd":       "binary",
		"linux64/steamclient.so": "library",
	})

	require.NoError(t, ExtractArchive(archive))

	info, err := os.Stat(filepath.Join(SteamDir, "steamcmd.sh"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0100, "steamcmd.sh must stay executable")

	data, err := os.ReadFile(filepath.Join(SteamDir, "linux64", "steamclient.so"))
	require.NoError(t, err)
	assert.Equal(t, "library", string(data))
	assert.True(t, IsInstalled())
}

func TestExtractArchive_RejectsTraversal(t *testing.T) {
	SteamDir = t.TempDir()
	archive := buildArchive(t, map[string]string{"../escape.sh": "x"})

	err := ExtractArchive(archive)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(SteamDir), "escape.sh"))
}
