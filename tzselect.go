// Package tzselect builds curated, offset-labeled timezone catalogs and
// narrows them from free text, for select widgets on the web and in the
// terminal.
//
// The catalog, filter, HTTP handlers and selection sessions live in
// components/timezones; this package re-exports the entry points most callers
// need together with the browser asset.
package tzselect

import (
	"net/http"

	"github.com/goliatone/go-tzselect/components/timezones"
	"github.com/goliatone/go-tzselect/components/timezones/widget"
)

type (
	Record    = timezones.Record
	Catalog   = timezones.Catalog
	Selector  = timezones.Selector
	Component = timezones.Component
	OptionFn  = timezones.OptionFn
)

// New constructs a timezone component; see timezones.New.
func New(fns ...OptionFn) *Component {
	return timezones.New(fns...)
}

// BuildCatalog builds a catalog with the given options.
func BuildCatalog(fns ...OptionFn) (*Catalog, error) {
	return timezones.BuildCatalog(fns...)
}

// Handler returns the JSON search handler.
func Handler(fns ...OptionFn) http.Handler {
	return timezones.Handler(fns...)
}

// WidgetConfig describes the search endpoint mounted under basePath for the
// browser script in AssetsFS.
func WidgetConfig(fieldPath, basePath string, fns ...OptionFn) widget.Config {
	return widget.Endpoint(fieldPath, basePath, fns...)
}
