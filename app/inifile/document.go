// Package inifile edits Unreal Engine style INI files in place.
//
// A Document keeps every line of the file as a record. Lines that are not
// touched by an edit are written back exactly as they were read, so comments,
// spacing and unknown syntax survive a rewrite.
package inifile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/SatisfactoryServerManager/VeinLauncher/app/errors"
)

type LineKind int

const (
	KindBlank LineKind = iota
	KindComment
	KindSection
	KindEntry
	KindOther
)

// Line is one line of a Document. Section is set on section lines; Key and
// Value on entry lines, with Continuation marking the "+Key=Value" form.
type Line struct {
	Raw          string
	Kind         LineKind
	Section      string
	Key          string
	Value        string
	Continuation bool
}

type Document struct {
	Path  string
	lines []Line
	mode  os.FileMode
	read  []byte
}

func Parse(data []byte) *Document {
	doc := &Document{mode: 0644, read: data}

	text := string(data)
	if text == "" {
		return doc
	}
	text = strings.TrimSuffix(text, "\n")

	for _, raw := range strings.Split(text, "\n") {
		doc.lines = append(doc.lines, parseLine(raw))
	}
	return doc
}

func parseLine(raw string) Line {
	trimmed := strings.TrimSpace(raw)

	switch {
	case trimmed == "":
		return Line{Raw: raw, Kind: KindBlank}
	case trimmed[0] == ';' || trimmed[0] == '#':
		return Line{Raw: raw, Kind: KindComment}
	case len(trimmed) >= 2 && trimmed[0] == '[' && trimmed[len(trimmed)-1] == ']':
		return Line{Raw: raw, Kind: KindSection, Section: trimmed[1 : len(trimmed)-1]}
	}

	idx := strings.IndexByte(trimmed, '=')
	if idx < 0 {
		return Line{Raw: raw, Kind: KindOther}
	}

	key := strings.TrimSpace(trimmed[:idx])
	continuation := false
	if strings.HasPrefix(key, "+") {
		continuation = true
		key = strings.TrimSpace(key[1:])
	}
	if key == "" {
		return Line{Raw: raw, Kind: KindOther}
	}

	return Line{
		Raw:          raw,
		Kind:         KindEntry,
		Key:          key,
		Value:        strings.TrimLeft(trimmed[idx+1:], " \t"),
		Continuation: continuation,
	}
}

func sectionLine(section string) Line {
	return Line{Raw: "[" + section + "]", Kind: KindSection, Section: section}
}

func entryLine(key, value string, continuation bool) Line {
	raw := key + "=" + value
	if continuation {
		raw = "+" + raw
	}
	return Line{Raw: raw, Kind: KindEntry, Key: key, Value: value, Continuation: continuation}
}

// Load reads the document at path. The file must exist.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.IO("read", path, err)
	}

	doc := Parse(data)
	doc.Path = path

	if info, err := os.Stat(path); err == nil {
		doc.mode = info.Mode().Perm()
	}
	return doc, nil
}

func (d *Document) Bytes() []byte {
	if len(d.lines) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, line := range d.lines {
		buf.WriteString(line.Raw)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func (d *Document) String() string {
	return string(d.Bytes())
}

// Changed reports whether the serialized document differs from what was read.
func (d *Document) Changed() bool {
	return !bytes.Equal(d.Bytes(), d.read)
}

// Save replaces the file at d.Path with the document contents. The data is
// written to a temporary file in the same directory which is then renamed
// over the original. Nothing is written when the document is unchanged.
func (d *Document) Save() error {
	if !d.Changed() {
		return nil
	}

	data := d.Bytes()
	dir := filepath.Dir(d.Path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(d.Path)+".*")
	if err != nil {
		return apperrors.IO("create temp file in", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return apperrors.IO("write", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return apperrors.IO("sync", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.IO("close", tmpName, err)
	}
	if err := os.Chmod(tmpName, d.mode); err != nil {
		return apperrors.IO("chmod", tmpName, err)
	}
	if err := os.Rename(tmpName, d.Path); err != nil {
		return apperrors.IO("rename", d.Path, err)
	}

	d.read = data
	return nil
}

func (d *Document) Lines() []Line {
	out := make([]Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// Sections returns section names in file order. A name appears once per
// header, so repeated sections are listed repeatedly.
func (d *Document) Sections() []string {
	var out []string
	for _, line := range d.lines {
		if line.Kind == KindSection {
			out = append(out, line.Section)
		}
	}
	return out
}

func (d *Document) HasSection(section string) bool {
	return d.sectionIndex(section) >= 0
}

// Get returns the value of the ordinary key in section.
func (d *Document) Get(section, key string) (string, bool) {
	for _, idx := range d.entries(section, key) {
		if !d.lines[idx].Continuation {
			return d.lines[idx].Value, true
		}
	}
	return "", false
}

// Values returns the values of key in section, the "Key=" line first
// followed by every "+Key=" line in file order.
func (d *Document) Values(section, key string) []string {
	var head []string
	var rest []string
	for _, idx := range d.entries(section, key) {
		line := d.lines[idx]
		if line.Continuation {
			rest = append(rest, line.Value)
		} else {
			head = append(head, line.Value)
		}
	}
	return append(head, rest...)
}

func (d *Document) sectionIndex(section string) int {
	for i, line := range d.lines {
		if line.Kind == KindSection && line.Section == section {
			return i
		}
	}
	return -1
}

// entries returns the indexes of every entry for key inside any occurrence
// of section.
func (d *Document) entries(section, key string) []int {
	var out []int
	inSection := false
	for i, line := range d.lines {
		switch {
		case line.Kind == KindSection:
			inSection = line.Section == section
		case inSection && line.Kind == KindEntry && line.Key == key:
			out = append(out, i)
		}
	}
	return out
}

// sectionEnd returns the index just past the last non-blank line of the
// section whose header is at start.
func (d *Document) sectionEnd(start int) int {
	end := start + 1
	for i := start + 1; i < len(d.lines); i++ {
		if d.lines[i].Kind == KindSection {
			break
		}
		if d.lines[i].Kind != KindBlank {
			end = i + 1
		}
	}
	return end
}

func (d *Document) insert(at int, lines ...Line) {
	d.lines = append(d.lines[:at], append(append([]Line(nil), lines...), d.lines[at:]...)...)
}
