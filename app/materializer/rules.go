package materializer

import (
	"sort"
	"strings"
)

const (
	GameIni   = "Game.ini"
	EngineIni = "Engine.ini"
)

// Rule maps every environment variable starting with Prefix to a key in
// Section of File.
type Rule struct {
	File        string
	Section     string
	Prefix      string
	MultiValued []string
}

var DefaultRules = []Rule{
	{File: GameIni, Section: "/Script/Engine.GameSession", Prefix: "GAME_GAMESESSION_"},
	{
		File:        GameIni,
		Section:     "/Script/Vein.VeinGameSession",
		Prefix:      "GAME_VEIN_GAMESESSION_",
		MultiValued: []string{"SuperAdminSteamIDs", "AdminSteamIDs"},
	},
	{File: GameIni, Section: "OnlineSubsystemSteam", Prefix: "GAME_ONLINE_SUBSYSTEM_STEAM_"},
	{File: GameIni, Section: "URL", Prefix: "GAME_URL_"},
	{File: GameIni, Section: "/Script/Vein.ServerSettings", Prefix: "GAME_SERVERSETTINGS_"},
	{File: EngineIni, Section: "Core.Log", Prefix: "ENGINE_CORE_LOG_"},
	{File: EngineIni, Section: "ConsoleVariables", Prefix: "ENGINE_CONSOLEVARIABLES_"},
}

func (r Rule) IsMultiValued(key string) bool {
	for _, k := range r.MultiValued {
		if k == key {
			return true
		}
	}
	return false
}

// Match returns the names of the variables in env carrying this rule's
// prefix, sorted.
func (r Rule) Match(env map[string]string) []string {
	var names []string
	for name := range env {
		if strings.HasPrefix(name, r.Prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Files returns the distinct file names used by rules, in first-use order.
func Files(rules []Rule) []string {
	var files []string
	seen := make(map[string]bool)
	for _, rule := range rules {
		if !seen[rule.File] {
			seen[rule.File] = true
			files = append(files, rule.File)
		}
	}
	return files
}
