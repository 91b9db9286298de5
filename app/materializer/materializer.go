// Package materializer writes Game.ini and Engine.ini from environment
// variables.
//
// Each Rule ties an environment prefix to an INI section. The remainder of a
// matching variable name is decoded into the key (see DecodeKey) and the
// value is written into the section. Keys listed as multi-valued take a
// comma separated list and are written as a "Key=" / "+Key=" run.
package materializer

import (
	"path/filepath"
	"strings"

	apperrors "github.com/SatisfactoryServerManager/VeinLauncher/app/errors"
	"github.com/SatisfactoryServerManager/VeinLauncher/app/inifile"
	"github.com/SatisfactoryServerManager/VeinLauncher/app/utils"
)

type Materializer struct {
	ConfigPath string
	Rules      []Rule
}

type Result struct {
	// Paths of every managed file, in rule order.
	Files []string
	// Changed lists the files that were rewritten.
	Changed []string
	Applied int
}

func New(configPath string) (*Materializer, error) {
	if configPath == "" {
		return nil, apperrors.MissingConfig("CONFIG_PATH is required")
	}
	return &Materializer{ConfigPath: configPath, Rules: DefaultRules}, nil
}

// Environ converts os.Environ style "NAME=value" pairs into a map.
func Environ(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		env[name] = value
	}
	return env
}

func (m *Materializer) Path(file string) string {
	return filepath.Join(m.ConfigPath, file)
}

// Apply writes every matching variable of env into its INI file.
//
// Both files are loaded first and edited in memory. They are only written
// once all rules have been applied, so a failure before that point leaves
// the files as they were.
func (m *Materializer) Apply(env map[string]string) (*Result, error) {
	if err := utils.CreateFolder(m.ConfigPath); err != nil {
		return nil, apperrors.IO("create directory", m.ConfigPath, err)
	}

	result := &Result{}
	docs := make(map[string]*inifile.Document)

	for _, file := range Files(m.Rules) {
		path := m.Path(file)
		if err := utils.TouchFile(path); err != nil {
			return nil, apperrors.IO("create", path, err)
		}

		doc, err := inifile.Load(path)
		if err != nil {
			return nil, err
		}
		docs[file] = doc
		result.Files = append(result.Files, path)
	}

	for _, rule := range m.Rules {
		doc := docs[rule.File]

		for _, name := range rule.Match(env) {
			key := DecodeKey(strings.TrimPrefix(name, rule.Prefix))
			if key == "" {
				utils.WarnLogger.Printf("Skipping %s: no key after prefix", name)
				continue
			}

			value := env[name]
			if strings.ContainsAny(value, "\r\n") {
				utils.WarnLogger.Printf("Skipping %s: value spans multiple lines", name)
				continue
			}

			if rule.IsMultiValued(key) {
				values := SplitList(value)
				utils.DebugLogger.Printf("[%s] %s: %d value(s) in %s", rule.Section, key, len(values), rule.File)
				doc.ReplaceRun(rule.Section, key, values)
			} else {
				utils.DebugLogger.Printf("[%s] %s=%s in %s", rule.Section, key, value, rule.File)
				doc.Set(rule.Section, key, value)
				doc.NormalizeEntry(rule.Section, entryPattern(key), key)
			}
			result.Applied++
		}
	}

	for _, file := range Files(m.Rules) {
		doc := docs[file]
		if !doc.Changed() {
			continue
		}
		if err := doc.Save(); err != nil {
			return nil, err
		}
		result.Changed = append(result.Changed, doc.Path)
	}

	utils.InfoLogger.Printf("Applied %d setting(s) from the environment, %d file(s) changed", result.Applied, len(result.Changed))
	return result, nil
}
