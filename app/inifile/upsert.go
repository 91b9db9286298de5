package inifile

import "regexp"

// Set makes section contain exactly one "key=value" line.
//
// An existing entry is replaced where it stands and any duplicates of it in
// the section are removed. A new key goes after the last non-blank line of
// the section, and a missing section is appended to the end of the document.
func (d *Document) Set(section, key, value string) {
	entry := entryLine(key, value, false)

	var existing []int
	for _, idx := range d.entries(section, key) {
		if !d.lines[idx].Continuation {
			existing = append(existing, idx)
		}
	}

	if len(existing) > 0 {
		d.lines[existing[0]] = entry
		for i := len(existing) - 1; i > 0; i-- {
			d.lines = append(d.lines[:existing[i]], d.lines[existing[i]+1:]...)
		}
		return
	}

	if start := d.sectionIndex(section); start >= 0 {
		d.insert(d.sectionEnd(start), entry)
		return
	}

	if n := len(d.lines); n > 0 && d.lines[n-1].Kind != KindBlank {
		d.lines = append(d.lines, Line{Kind: KindBlank})
	}
	d.lines = append(d.lines, sectionLine(section), entry)
}

// NormalizeEntry rewrites ordinary entries of section whose raw text matches
// pattern into the canonical "key=value" form, dropping whitespace around
// the "=".
func (d *Document) NormalizeEntry(section string, pattern *regexp.Regexp, key string) {
	inSection := false
	for i, line := range d.lines {
		if line.Kind == KindSection {
			inSection = line.Section == section
			continue
		}
		if !inSection || line.Kind != KindEntry || line.Continuation {
			continue
		}
		if pattern.MatchString(line.Raw) {
			d.lines[i] = entryLine(key, line.Value, false)
		}
	}
}

// ReplaceRun replaces every "key=" and "+key=" line in section with a single
// contiguous run placed right after the section header: values[0] as
// "key=", the rest as "+key=". An empty values removes the key from the
// section altogether.
//
// When the section does not exist a non-empty run is appended to the end
// of the document under a new header, and an empty run is a no-op.
func (d *Document) ReplaceRun(section, key string, values []string) {
	var block []Line
	for i, value := range values {
		block = append(block, entryLine(key, value, i > 0))
	}

	if !d.HasSection(section) {
		if len(block) == 0 {
			return
		}
		d.lines = append(d.lines, Line{Kind: KindBlank}, sectionLine(section))
		d.lines = append(d.lines, block...)
		return
	}

	out := make([]Line, 0, len(d.lines)+len(block))
	inSection := false
	emitted := false
	for _, line := range d.lines {
		if line.Kind == KindSection {
			inSection = line.Section == section
			out = append(out, line)
			if inSection && !emitted {
				out = append(out, block...)
				emitted = true
			}
			continue
		}
		if inSection && line.Kind == KindEntry && line.Key == key {
			continue
		}
		out = append(out, line)
	}
	d.lines = out
}
