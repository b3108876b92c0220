package timezones

import "net/http"

// Component bundles the options, the lazily built catalog and the routing
// helpers. Handlers and selectors obtained from one Component share a single
// catalog build.
type Component struct {
	opts   Options
	source *catalogSource
}

// New constructs a new component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	return &Component{opts: opts, source: newCatalogSource(opts)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Catalog builds the catalog on first call and returns the same one after.
func (c *Component) Catalog() (*Catalog, error) {
	if c == nil {
		return BuildCatalog()
	}
	return c.source.get()
}

// Selector starts a new selection session over the component catalog.
func (c *Component) Selector() (*Selector, error) {
	catalog, err := c.Catalog()
	if err != nil {
		return nil, err
	}
	opts := c.Options()
	lookup, err := opts.cities()
	if err != nil {
		return nil, err
	}
	return NewSelector(catalog, lookup), nil
}

// Search runs Search over the component catalog with the component options.
func (c *Component) Search(query string, limit int) ([]Record, error) {
	catalog, err := c.Catalog()
	if err != nil {
		return nil, err
	}
	opts := c.Options()
	lookup, err := opts.cities()
	if err != nil {
		return nil, err
	}
	return Search(catalog.Records(), lookup, query, limit, opts)
}

// Handler returns a net/http handler for timezone queries.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return searchHandler(c.opts, c.source)
}

// LookupHandler returns a net/http handler resolving a single identifier.
func (c *Component) LookupHandler() http.Handler {
	if c == nil {
		return LookupHandlerWithOptions(DefaultOptions())
	}
	return lookupHandler(c.opts, c.source)
}

// RegisterRoutes registers the component handlers under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return registerRoutes(mux, basePath, c.opts, c.source)
}
