package timezones

import (
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Record is one selectable timezone, resolved at the catalog build instant.
type Record struct {
	Value   string `json:"value"`
	Title   string `json:"title"`
	Label   string `json:"label"`
	Offset  int    `json:"offset"`
	Abbrev  string `json:"abbrev"`
	AltName string `json:"altName"`
	DST     bool   `json:"dst"`
}

// Catalog is an immutable set of records keyed by identifier and ordered by
// ascending UTC offset.
type Catalog struct {
	records []Record
	index   map[string]int
	builtAt time.Time
}

// NewCatalog keeps the first record for each identifier and stable sorts the
// result by offset, so records sharing an offset stay in input order.
func NewCatalog(records []Record, builtAt time.Time) *Catalog {
	kept := make([]Record, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if _, ok := seen[rec.Value]; ok {
			continue
		}
		seen[rec.Value] = struct{}{}
		kept = append(kept, rec)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Offset < kept[j].Offset
	})

	index := make(map[string]int, len(kept))
	for i, rec := range kept {
		index[rec.Value] = i
	}
	return &Catalog{records: kept, index: index, builtAt: builtAt}
}

// Records returns a copy of the catalog in offset order.
func (c *Catalog) Records() []Record {
	if c == nil {
		return nil
	}
	return append([]Record{}, c.records...)
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Lookup returns the record for identifier id.
func (c *Catalog) Lookup(id string) (Record, bool) {
	if c == nil {
		return Record{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return Record{}, false
	}
	return c.records[i], true
}

// BuiltAt is the instant offsets and abbreviations were resolved against.
func (c *Catalog) BuiltAt() time.Time {
	if c == nil {
		return time.Time{}
	}
	return c.builtAt
}

// Titles maps every identifier in the catalog to its curated title.
func (c *Catalog) Titles() map[string]string {
	if c == nil {
		return map[string]string{}
	}
	return TitleMap(c.records)
}

// TitleMap maps the identifiers of records to their titles, the shape select
// widgets consume.
func TitleMap(records []Record) map[string]string {
	out := make(map[string]string, len(records))
	for _, rec := range records {
		out[rec.Value] = rec.Title
	}
	return out
}

// Builder turns curated entries into a Catalog.
type Builder struct {
	opts Options
}

func NewBuilder(fns ...OptionFn) *Builder {
	return &Builder{opts: NewOptions(fns...)}
}

// BuildCatalog is shorthand for NewBuilder(fns...).Build().
func BuildCatalog(fns ...OptionFn) (*Catalog, error) {
	return NewBuilder(fns...).Build()
}

// Build resolves every entry against the current instant of the configured
// clock. A failure for any entry fails the whole build; all failures are
// reported together.
func (b *Builder) Build() (*Catalog, error) {
	logger := b.opts.logger()

	catalog, err := b.build()
	if err != nil {
		b.opts.Metrics.observeBuild(0, err)
		logger.Error().Err(err).Msg("timezone catalog build failed")
		return nil, err
	}

	b.opts.Metrics.observeBuild(catalog.Len(), nil)
	logger.Debug().
		Int("records", catalog.Len()).
		Time("at", catalog.BuiltAt()).
		Msg("timezone catalog built")
	return catalog, nil
}

func (b *Builder) build() (*Catalog, error) {
	entries, err := b.opts.entries()
	if err != nil {
		return nil, fmt.Errorf("timezones: load entries: %w", err)
	}
	names, err := b.opts.names()
	if err != nil {
		return nil, fmt.Errorf("timezones: load informal names: %w", err)
	}
	resolver := b.opts.resolver()
	now := b.opts.clock().Now()

	var errs *multierror.Error
	records := make([]Record, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if _, ok := seen[entry.ID]; ok {
			continue
		}
		seen[entry.ID] = struct{}{}

		rec, err := buildRecord(entry, now, resolver, names)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		records = append(records, rec)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("timezones: build catalog: %w", err)
	}

	return NewCatalog(records, now), nil
}

func buildRecord(entry Entry, now time.Time, resolver ZoneResolver, names NameLookup) (Record, error) {
	state, err := resolver.Resolve(entry.ID, now)
	if err != nil {
		return Record{}, fmt.Errorf("timezones: resolve %q: %w", entry.ID, err)
	}

	display, ok, err := names.Lookup(entry.ID)
	if err != nil {
		return Record{}, fmt.Errorf("timezones: informal names for %q: %w", entry.ID, err)
	}

	abbrev, altName := entry.ID, entry.ID
	if ok {
		picked := display.Pick(state.DST)
		abbrev, altName = picked.Abbrev, picked.Name
	}

	return Record{
		Value:   entry.ID,
		Title:   entry.Title,
		Label:   composeLabel(state.OffsetMinutes, entry.Title, abbrev),
		Offset:  state.OffsetMinutes,
		Abbrev:  abbrev,
		AltName: altName,
		DST:     state.DST,
	}, nil
}
