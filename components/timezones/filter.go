package timezones

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeSearch trims surrounding whitespace and lower-cases raw input, the
// form Filter expects.
func NormalizeSearch(raw string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(raw))
}

// Filter returns the records matching searchText, in their original order.
// searchText must already be normalized. cityZones are identifiers a city
// lookup resolved for the same text; records with those identifiers match
// regardless of their text fields.
//
// An empty searchText matches every record.
func Filter(records []Record, searchText string, cityZones []string) []Record {
	m := newMatcher(searchText, cityZones)
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if m.match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Matches reports whether a single record passes Filter.
func Matches(rec Record, searchText string, cityZones []string) bool {
	return newMatcher(searchText, cityZones).match(rec)
}

type matcher struct {
	text  string
	zones map[string]struct{}
	lower cases.Caser
}

func newMatcher(searchText string, cityZones []string) *matcher {
	zones := make(map[string]struct{}, len(cityZones))
	for _, id := range cityZones {
		zones[id] = struct{}{}
	}
	return &matcher{
		text:  searchText,
		zones: zones,
		lower: cases.Lower(language.Und),
	}
}

func (m *matcher) match(rec Record) bool {
	if _, ok := m.zones[rec.Value]; ok {
		return true
	}
	for _, field := range [...]string{rec.Value, rec.Title, rec.Label, rec.Abbrev, rec.AltName} {
		if strings.Contains(m.lower.String(field), m.text) {
			return true
		}
	}
	return false
}
