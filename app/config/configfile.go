package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	apperrors "github.com/SatisfactoryServerManager/VeinLauncher/app/errors"
	"github.com/SatisfactoryServerManager/VeinLauncher/app/utils"
	"gopkg.in/ini.v1"
)

// ServerSettings is the subset of Game.ini and Engine.ini reported at
// startup. Fields are filled by LoadGameConfigFile from their ini* tags.
type ServerSettings struct {
	MaxPlayers int64 `inifile:"Game.ini" inisection:"/Script/Engine.GameSession" inikey:"MaxPlayers"`

	ServerName         string   `inifile:"Game.ini" inisection:"/Script/Vein.VeinGameSession" inikey:"ServerName"`
	ServerDescription  string   `inifile:"Game.ini" inisection:"/Script/Vein.VeinGameSession" inikey:"ServerDescription"`
	Password           string   `inifile:"Game.ini" inisection:"/Script/Vein.VeinGameSession" inikey:"Password"`
	Public             bool     `inifile:"Game.ini" inisection:"/Script/Vein.VeinGameSession" inikey:"bPublic"`
	HeartbeatInterval  float64  `inifile:"Game.ini" inisection:"/Script/Vein.VeinGameSession" inikey:"HeartbeatInterval"`
	SuperAdminSteamIDs []string `inifile:"Game.ini" inisection:"/Script/Vein.VeinGameSession" inikey:"SuperAdminSteamIDs"`
	AdminSteamIDs      []string `inifile:"Game.ini" inisection:"/Script/Vein.VeinGameSession" inikey:"AdminSteamIDs"`

	Port       int64 `inifile:"Game.ini" inisection:"URL" inikey:"Port"`
	QueryPort  int64 `inifile:"Game.ini" inisection:"OnlineSubsystemSteam" inikey:"GameServerQueryPort"`
	VACEnabled bool  `inifile:"Game.ini" inisection:"OnlineSubsystemSteam" inikey:"bVACEnabled"`

	PvP bool `inifile:"Engine.ini" inisection:"ConsoleVariables" inikey:"vein.PvP"`
}

var iniLoadOptions = ini.LoadOptions{
	AllowShadows:            true,
	IgnoreInlineComment:     true,
	SkipUnrecognizableLines: true,
	KeyValueDelimiters:      "=",
}

func LoadServerSettings(configDir string) (*ServerSettings, error) {
	settings := &ServerSettings{}
	if err := LoadGameConfigFile(configDir, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// LoadGameConfigFile fills the tagged fields of obj from the INI files in
// configDir. Missing files, sections and keys leave the field untouched.
// Slice fields collect the "Key=" value followed by every "+Key=" value.
func LoadGameConfigFile(configDir string, obj interface{}) error {
	t := reflect.TypeOf(obj)
	tv := reflect.ValueOf(obj)

	if t.Kind() == reflect.Ptr {
		tv = reflect.Indirect(tv)
		t = t.Elem()
	}

	files := make(map[string]*ini.File)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		fileName := field.Tag.Get("inifile")
		sectionName := field.Tag.Get("inisection")
		key := field.Tag.Get("inikey")
		if fileName == "" || sectionName == "" || key == "" {
			continue
		}

		cfg, ok := files[fileName]
		if !ok {
			var err error
			cfg, err = loadIniFile(filepath.Join(configDir, fileName))
			if err != nil {
				return err
			}
			files[fileName] = cfg
		}

		section, err := cfg.GetSection(sectionName)
		if err != nil {
			continue
		}

		mVal := tv.Field(i)

		if field.Type.Kind() == reflect.Slice {
			mVal.Set(reflect.ValueOf(listValues(section, key)))
			continue
		}

		if !section.HasKey(key) {
			continue
		}
		iniKey := section.Key(key)

		switch field.Type.Kind() {
		case reflect.Float32, reflect.Float64:
			val, _ := iniKey.Float64()
			mVal.SetFloat(val)
		case reflect.Int, reflect.Int32, reflect.Int64:
			val, _ := iniKey.Int64()
			mVal.SetInt(val)
		case reflect.Bool:
			val, _ := iniKey.Bool()
			mVal.SetBool(val)
		case reflect.String:
			mVal.SetString(iniKey.String())
		}
	}

	return nil
}

func loadIniFile(filePath string) (*ini.File, error) {
	if !utils.CheckFileExists(filePath) {
		return ini.Empty(iniLoadOptions), nil
	}

	cfg, err := ini.LoadSources(iniLoadOptions, filePath)
	if err != nil {
		return nil, apperrors.IO("parse", filePath, err)
	}
	return cfg, nil
}

func listValues(section *ini.Section, key string) []string {
	values := make([]string, 0)
	for _, name := range []string{key, "+" + key} {
		if !section.HasKey(name) {
			continue
		}
		for _, v := range section.Key(name).ValueWithShadows() {
			if v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}

// Summary renders the settings for the startup log. The password is never
// printed.
func (s *ServerSettings) Summary() string {
	password := "not set"
	if s.Password != "" {
		password = "set"
	}

	lines := []string{
		fmt.Sprintf("Server Name: %s", s.ServerName),
		fmt.Sprintf("Max Players: %d", s.MaxPlayers),
		fmt.Sprintf("Public: %t, Password: %s, PvP: %t, VAC: %t", s.Public, password, s.PvP, s.VACEnabled),
		fmt.Sprintf("Ports (ini): game %d, query %d", s.Port, s.QueryPort),
		fmt.Sprintf("Super Admins: %d, Admins: %d", len(s.SuperAdminSteamIDs), len(s.AdminSteamIDs)),
	}
	return strings.Join(lines, "\n")
}
