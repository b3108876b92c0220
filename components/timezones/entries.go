package timezones

import (
	"embed"
	"fmt"
	"html"
	"io"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

//go:embed data/curated.yaml
var dataFS embed.FS

const defaultEntriesPath = "data/curated.yaml"

// Entry is one curated catalog row: an IANA identifier and the region title
// shown next to it.
type Entry struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

var (
	defaultOnce    sync.Once
	defaultEntries []Entry
	defaultErr     error

	titlePolicyOnce sync.Once
	titlePolicy     *bluemonday.Policy
)

// DefaultEntries returns a copy of the embedded curated mapping, in curated
// order.
func DefaultEntries() ([]Entry, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultEntriesPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		entries, err := LoadEntries(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultEntries = entries
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]Entry{}, defaultEntries...), nil
}

// LoadEntries parses a YAML list of {id, title} rows. Titles are reduced to
// plain text, blank ids or titles are rejected and repeated ids keep their
// first occurrence.
func LoadEntries(r io.Reader) ([]Entry, error) {
	if r == nil {
		return nil, fmt.Errorf("timezones: missing reader")
	}

	var rows []Entry
	if err := yaml.NewDecoder(r).Decode(&rows); err != nil && err != io.EOF {
		return nil, fmt.Errorf("timezones: decode entries: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	seen := map[string]struct{}{}
	for idx, row := range rows {
		id := strings.TrimSpace(row.ID)
		if id == "" {
			return nil, fmt.Errorf("timezones: entry %d has an empty id", idx)
		}
		title := sanitizeTitle(row.Title)
		if title == "" {
			return nil, fmt.Errorf("timezones: entry %q has an empty title", id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		entries = append(entries, Entry{ID: id, Title: title})
	}
	return entries, nil
}

func sanitizeTitle(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	titlePolicyOnce.Do(func() {
		titlePolicy = bluemonday.StrictPolicy()
	})
	// StrictPolicy escapes what it keeps; titles are stored unescaped and
	// escaped again by whoever renders them.
	return strings.TrimSpace(html.UnescapeString(titlePolicy.Sanitize(trimmed)))
}
