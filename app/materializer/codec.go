package materializer

import (
	"regexp"
	"strings"
)

const (
	DotMarker        = "_DOT_"
	UnderscoreMarker = "_UNDERSCORE_"
)

// DecodeKey turns the tail of an environment variable name back into an INI
// key. Dots are restored before underscores, since the dot marker itself
// contains underscores.
func DecodeKey(token string) string {
	key := strings.ReplaceAll(token, DotMarker, ".")
	return strings.ReplaceAll(key, UnderscoreMarker, "_")
}

// EscapeForPattern quotes key for literal use inside a regular expression.
func EscapeForPattern(key string) string {
	return regexp.QuoteMeta(key)
}

// entryPattern matches an INI line assigning key, with any amount of
// whitespace around the key and the "=".
func entryPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*` + EscapeForPattern(key) + `\s*=`)
}

// SplitList splits a comma separated list for a multi-valued key. Elements
// are taken verbatim. The first element is always kept, even when empty, and
// becomes the "Key=" line. Later empty elements are dropped. A list with no
// value at all yields nil, which removes the key.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")

	values := []string{parts[0]}
	for _, part := range parts[1:] {
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 1 && values[0] == "" {
		return nil
	}
	return values
}
