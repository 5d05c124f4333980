package teamabbr

import "strings"

// Table is an immutable bidirectional lookup between canonical team names and
// short display codes. Tables are built once at process start and shared
// read-only across adapters.
type Table struct {
	abbrByName map[string]string
	nameByAbbr map[string]string
}

// New builds a Table from a name→abbreviation mapping.
func New(abbrByName map[string]string) *Table {
	t := &Table{
		abbrByName: make(map[string]string, len(abbrByName)),
		nameByAbbr: make(map[string]string, len(abbrByName)),
	}
	for name, abbr := range abbrByName {
		t.abbrByName[name] = abbr
		t.nameByAbbr[abbr] = name
	}
	return t
}

// Abbr returns the code for a canonical team name. Names absent from the
// table fall back to Synthesize so repeated runs stay deterministic.
func (t *Table) Abbr(name string) string {
	if abbr, ok := t.abbrByName[name]; ok {
		return abbr
	}
	return Synthesize(name)
}

// Name returns the canonical name for a code, or the code itself when the
// code is unmapped.
func (t *Table) Name(abbr string) string {
	if name, ok := t.nameByAbbr[abbr]; ok {
		return name
	}
	return abbr
}

// Synthesize derives a fallback code from a team name: the first three
// letters, upper-cased. Same name always yields the same code.
func Synthesize(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "UNK"
	}
	runes := []rune(strings.ToUpper(trimmed))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}
