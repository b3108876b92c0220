package timezones

import (
	"fmt"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-tzselect/pkg/cities"
	"github.com/goliatone/go-tzselect/pkg/informal"
)

type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchTop  EmptySearchMode = "top"
)

// ParseEmptySearchMode validates a configured mode; blank means top.
func ParseEmptySearchMode(raw string) (EmptySearchMode, error) {
	switch EmptySearchMode(raw) {
	case "", EmptySearchTop:
		return EmptySearchTop, nil
	case EmptySearchNone:
		return EmptySearchNone, nil
	default:
		return "", fmt.Errorf("timezones: unknown empty search mode %q", raw)
	}
}

type GuardFunc func(r *http.Request) error

// NameLookup resolves the informal standard and daylight names of a zone.
// A miss is reported with ok false, not with an error.
type NameLookup interface {
	Lookup(id string) (display informal.Display, ok bool, err error)
}

// CityLookup resolves free text to the timezone identifiers of matching
// cities, states or provinces.
type CityLookup interface {
	Timezones(text string) ([]string, error)
}

type Options struct {
	RoutePath       string
	SearchParam     string
	LimitParam      string
	FormatParam     string
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode
	LabelStyle      LabelStyle
	Guard           GuardFunc

	// Entries overrides the embedded curated mapping.
	Entries []Entry
	// Catalog, when set, is served as is and no build takes place.
	Catalog  *Catalog
	Resolver ZoneResolver
	Names    NameLookup
	Cities   CityLookup
	Clock    clockwork.Clock
	Logger   *zerolog.Logger
	Metrics  *Metrics
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:       "/api/timezones",
		SearchParam:     "q",
		LimitParam:      "limit",
		FormatParam:     "format",
		DefaultLimit:    50,
		MaxLimit:        200,
		EmptySearchMode: EmptySearchTop,
		LabelStyle:      LabelOriginal,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 50
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 200
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = EmptySearchTop
	}
	if opts.LabelStyle == "" {
		opts.LabelStyle = LabelOriginal
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/timezones"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.FormatParam == "" {
		opts.FormatParam = "format"
	}
	if opts.Entries != nil {
		opts.Entries = append([]Entry{}, opts.Entries...)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithFormatParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.FormatParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.EmptySearchMode = mode
	}
}

func WithLabelStyle(style LabelStyle) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LabelStyle = style
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithEntries(entries []Entry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if entries == nil {
			o.Entries = nil
			return
		}
		o.Entries = append([]Entry{}, entries...)
	}
}

func WithCatalog(catalog *Catalog) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Catalog = catalog
	}
}

func WithResolver(resolver ZoneResolver) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Resolver = resolver
	}
}

func WithNames(names NameLookup) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Names = names
	}
}

func WithCities(lookup CityLookup) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Cities = lookup
	}
}

func WithClock(clock clockwork.Clock) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Clock = clock
	}
}

func WithLogger(logger zerolog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = &logger
	}
}

func WithMetrics(metrics *Metrics) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Metrics = metrics
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}

func (o Options) entries() ([]Entry, error) {
	if o.Entries != nil {
		return o.Entries, nil
	}
	return DefaultEntries()
}

func (o Options) resolver() ZoneResolver {
	if o.Resolver != nil {
		return o.Resolver
	}
	return NewLocationResolver()
}

func (o Options) names() (NameLookup, error) {
	if o.Names != nil {
		return o.Names, nil
	}
	table, err := informal.Default()
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (o Options) cities() (CityLookup, error) {
	if o.Cities != nil {
		return o.Cities, nil
	}
	index, err := cities.Default()
	if err != nil {
		return nil, err
	}
	return index, nil
}

func (o Options) clock() clockwork.Clock {
	if o.Clock != nil {
		return o.Clock
	}
	return clockwork.NewRealClock()
}

func (o Options) logger() zerolog.Logger {
	if o.Logger != nil {
		return *o.Logger
	}
	return zerolog.Nop()
}
