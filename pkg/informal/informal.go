// Package informal maps IANA timezone identifiers to the informal
// abbreviations and long names people use for them ("CST", "Central Standard
// Time"), with separate standard and daylight variants.
package informal

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/informal.yaml
var dataFS embed.FS

const defaultTablePath = "data/informal.yaml"

// Name is one variant of a zone's informal naming.
type Name struct {
	Abbrev string `json:"abbrev" yaml:"abbrev"`
	Name   string `json:"name" yaml:"name"`
}

// IsZero reports whether the variant carries no data.
func (n Name) IsZero() bool {
	return n.Abbrev == "" && n.Name == ""
}

// Display holds the standard variant and, for zones observing daylight
// saving, the daylight variant.
type Display struct {
	Standard Name  `json:"standard" yaml:"standard"`
	Daylight *Name `json:"daylight,omitempty" yaml:"daylight,omitempty"`
}

// Pick returns the daylight variant when dst is set and one exists, the
// standard variant otherwise.
func (d Display) Pick(dst bool) Name {
	if dst && d.Daylight != nil && !d.Daylight.IsZero() {
		return *d.Daylight
	}
	return d.Standard
}

// Table is an immutable identifier to Display index.
type Table struct {
	entries map[string]Display
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Default returns the embedded table. It is parsed once per process.
func Default() (*Table, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultTablePath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		defaultTable, defaultErr = Load(f)
	})
	return defaultTable, defaultErr
}

// Load parses a YAML document keyed by identifier.
func Load(r io.Reader) (*Table, error) {
	if r == nil {
		return nil, fmt.Errorf("informal: missing reader")
	}

	raw := map[string]Display{}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("informal: decode table: %w", err)
	}

	entries := make(map[string]Display, len(raw))
	for id, display := range raw {
		key := strings.TrimSpace(id)
		if key == "" {
			return nil, fmt.Errorf("informal: table contains an empty identifier")
		}
		if display.Daylight != nil && display.Daylight.IsZero() {
			display.Daylight = nil
		}
		entries[key] = display
	}
	return &Table{entries: entries}, nil
}

// Lookup returns the naming for id. The error is always nil for an in-memory
// table; it exists so remote lookups can share the same contract.
func (t *Table) Lookup(id string) (Display, bool, error) {
	if t == nil {
		return Display{}, false, nil
	}
	display, ok := t.entries[id]
	if !ok || display.Standard.IsZero() {
		return Display{}, false, nil
	}
	return display, true, nil
}

// Len reports the number of identifiers in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
