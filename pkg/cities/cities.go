// Package cities resolves free text such as "mumbai" or "texas" to the IANA
// timezones of matching cities, using an embedded gazetteer.
package cities

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/cities.yaml
var dataFS embed.FS

const defaultGazetteerPath = "data/cities.yaml"

// City is a single gazetteer row.
type City struct {
	City     string `json:"city" yaml:"city"`
	Province string `json:"province" yaml:"province"`
	Country  string `json:"country" yaml:"country"`
	ISO2     string `json:"iso2" yaml:"iso2"`
	Timezone string `json:"timezone" yaml:"timezone"`
}

// Index answers city, state/province and country queries over a fixed set of
// cities. It is read-only after construction and safe for concurrent use.
type Index struct {
	cities    []City
	haystacks []string
}

var (
	defaultOnce  sync.Once
	defaultIndex *Index
	defaultErr   error
)

// Default returns the index over the embedded gazetteer.
func Default() (*Index, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultGazetteerPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		defaultIndex, defaultErr = Load(f)
	})
	return defaultIndex, defaultErr
}

// Load parses a YAML list of cities. Rows without a city name or timezone are
// rejected.
func Load(r io.Reader) (*Index, error) {
	if r == nil {
		return nil, fmt.Errorf("cities: missing reader")
	}

	var rows []City
	if err := yaml.NewDecoder(r).Decode(&rows); err != nil && err != io.EOF {
		return nil, fmt.Errorf("cities: decode gazetteer: %w", err)
	}

	for idx, row := range rows {
		if strings.TrimSpace(row.City) == "" {
			return nil, fmt.Errorf("cities: row %d has no city name", idx)
		}
		if strings.TrimSpace(row.Timezone) == "" {
			return nil, fmt.Errorf("cities: row %d (%s) has no timezone", idx, row.City)
		}
	}
	return NewIndex(rows), nil
}

// NewIndex builds an index over cities.
func NewIndex(cities []City) *Index {
	idx := &Index{
		cities:    append([]City(nil), cities...),
		haystacks: make([]string, len(cities)),
	}
	for i, c := range idx.cities {
		idx.haystacks[i] = fold(c.City + " " + c.Province + " " + c.Country)
	}
	return idx
}

// FindFromCityStateProvince returns every city whose name, province or
// country contains all whitespace separated words of text. Matching ignores
// case and diacritics. Empty text matches nothing.
func (i *Index) FindFromCityStateProvince(text string) []City {
	if i == nil {
		return nil
	}
	words := strings.Fields(fold(text))
	if len(words) == 0 {
		return nil
	}

	var out []City
	for n, haystack := range i.haystacks {
		if containsAll(haystack, words) {
			out = append(out, i.cities[n])
		}
	}
	return out
}

// Timezones returns the distinct timezone identifiers of the cities matching
// text, in gazetteer order.
func (i *Index) Timezones(text string) ([]string, error) {
	matches := i.FindFromCityStateProvince(text)
	if len(matches) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, c := range matches {
		if _, ok := seen[c.Timezone]; ok {
			continue
		}
		seen[c.Timezone] = struct{}{}
		out = append(out, c.Timezone)
	}
	return out, nil
}

// Len reports the number of cities in the index.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.cities)
}

func containsAll(haystack string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(haystack, w) {
			return false
		}
	}
	return true
}
