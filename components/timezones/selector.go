package timezones

import (
	"errors"
	"fmt"
)

// ErrUnknownZone is returned when a selection names an identifier missing
// from the catalog.
var ErrUnknownZone = errors.New("timezones: unknown zone")

// Selector is the per-session state behind a timezone select widget: the
// options currently visible and the selected identifier. Each widget
// instance owns its own Selector; it is not safe for concurrent use.
type Selector struct {
	catalog *Catalog
	cities  CityLookup
	all     []Record
	visible []Record
	query   string
	value   string
}

// NewSelector starts a session showing the whole catalog with nothing
// selected. cities may be nil to match on record text only.
func NewSelector(catalog *Catalog, cities CityLookup) *Selector {
	s := &Selector{catalog: catalog, cities: cities, all: catalog.Records()}
	s.visible = s.all
	return s
}

// Options returns the visible records.
func (s *Selector) Options() []Record {
	return append([]Record{}, s.visible...)
}

// Titles returns the visible records as identifier to title.
func (s *Selector) Titles() map[string]string {
	return TitleMap(s.visible)
}

// Query is the raw input last applied successfully.
func (s *Selector) Query() string {
	return s.query
}

// OnInputChange narrows the visible options to those matching value. Empty
// input restores the whole catalog. When the city lookup fails the error is
// returned and the previous options stay visible.
func (s *Selector) OnInputChange(value string) error {
	if value == "" {
		s.visible = s.all
		s.query = ""
		return nil
	}

	text := NormalizeSearch(value)
	var zones []string
	if s.cities != nil && text != "" {
		found, err := s.cities.Timezones(text)
		if err != nil {
			return fmt.Errorf("timezones: city lookup %q: %w", text, err)
		}
		zones = found
	}

	s.visible = Filter(s.all, text, zones)
	s.query = value
	return nil
}

// Value is the selected identifier, or "" when nothing is selected.
func (s *Selector) Value() string {
	return s.value
}

// Selected returns the record for the current selection.
func (s *Selector) Selected() (Record, bool) {
	if s.value == "" {
		return Record{}, false
	}
	return s.catalog.Lookup(s.value)
}

// OnChange selects id. An empty id clears the selection; identifiers outside
// the catalog are rejected with ErrUnknownZone and the selection is kept.
func (s *Selector) OnChange(id string) error {
	if id == "" {
		s.value = ""
		return nil
	}
	if _, ok := s.catalog.Lookup(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownZone, id)
	}
	s.value = id
	return nil
}

// Reset shows the whole catalog again and clears query and selection.
func (s *Selector) Reset() {
	s.visible = s.all
	s.query = ""
	s.value = ""
}
