package timezones

import "fmt"

const (
	searchKindEmpty = "empty"
	searchKindText  = "text"
	searchKindError = "error"
)

// Option is the value/label pair select widgets render.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Search narrows records for a raw query and truncates the result to limit
// (clamped by opts). An empty query returns the leading records when
// opts.EmptySearchMode is EmptySearchTop and nothing otherwise. A failing
// city lookup fails the search.
func Search(records []Record, lookup CityLookup, query string, limit int, opts Options) ([]Record, error) {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil, nil
	}

	text := NormalizeSearch(query)
	if text == "" {
		if opts.EmptySearchMode != EmptySearchTop {
			opts.Metrics.observeSearch(searchKindEmpty, 0)
			return nil, nil
		}
		out := head(records, limit)
		opts.Metrics.observeSearch(searchKindEmpty, len(out))
		return out, nil
	}

	var zones []string
	if lookup != nil {
		found, err := lookup.Timezones(text)
		if err != nil {
			opts.Metrics.observeSearch(searchKindError, 0)
			return nil, fmt.Errorf("timezones: city lookup %q: %w", text, err)
		}
		zones = found
	}

	matches := head(Filter(records, text, zones), limit)
	opts.Metrics.observeSearch(searchKindText, len(matches))
	return matches, nil
}

// SearchOptions runs Search and renders each record with opts.LabelStyle.
func SearchOptions(records []Record, lookup CityLookup, query string, limit int, opts Options) ([]Option, error) {
	results, err := Search(records, lookup, query, limit, opts)
	if err != nil || len(results) == 0 {
		return nil, err
	}
	return toOptions(results, opts.LabelStyle), nil
}

func toOptions(records []Record, style LabelStyle) []Option {
	out := make([]Option, 0, len(records))
	for _, rec := range records {
		out = append(out, Option{Value: rec.Value, Label: rec.Display(style)})
	}
	return out
}

func head(records []Record, limit int) []Record {
	if len(records) <= limit {
		return append([]Record{}, records...)
	}
	return append([]Record{}, records[:limit]...)
}
