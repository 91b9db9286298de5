package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeIni(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadServerSettings(t *testing.T) {
	dir := t.TempDir()
	writeIni(t, dir, "Game.ini", `[/Script/Engine.GameSession]
MaxPlayers=24

[/Script/Vein.VeinGameSession]
SuperAdminSteamIDs=111
+SuperAdminSteamIDs=222
+SuperAdminSteamIDs=333
AdminSteamIDs=444
ServerName=Vein ; Test
Password=hunter2
bPublic=True
HeartbeatInterval=5.5

[URL]
Port=7777

[OnlineSubsystemSteam]
GameServerQueryPort=27015
bVACEnabled=False
`)
	writeIni(t, dir, "Engine.ini", "[ConsoleVariables]\nvein.PvP=True\n")

	settings, err := LoadServerSettings(dir)
	require.NoError(t, err)

	assert.Equal(t, int64(24), settings.MaxPlayers)
	assert.Equal(t, "Vein ; Test", settings.ServerName)
	assert.Equal(t, "hunter2", settings.Password)
	assert.True(t, settings.Public)
	assert.InDelta(t, 5.5, settings.HeartbeatInterval, 0.001)
	assert.Equal(t, []string{"111", "222", "333"}, settings.SuperAdminSteamIDs)
	assert.Equal(t, []string{"444"}, settings.AdminSteamIDs)
	assert.Equal(t, int64(7777), settings.Port)
	assert.Equal(t, int64(27015), settings.QueryPort)
	assert.False(t, settings.VACEnabled)
	assert.True(t, settings.PvP)
}

func TestLoadServerSettings_MissingFiles(t *testing.T) {
	settings, err := LoadServerSettings(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, &ServerSettings{}, settings)
}

func TestServerSettings_SummaryHidesPassword(t *testing.T) {
	settings := &ServerSettings{ServerName: "Vein", MaxPlayers: 8, Password: "hunter2", AdminSteamIDs: []string{"1", "2"}}

	summary := settings.Summary()

	assert.Contains(t, summary, "Server Name: Vein")
	assert.Contains(t, summary, "Max Players: 8")
	assert.Contains(t, summary, "Password: set")
	assert.Contains(t, summary, "Admins: 2")
	assert.NotContains(t, summary, "hunter2")
}
