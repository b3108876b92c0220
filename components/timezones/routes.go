package timezones

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux and chi.Router.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

const lookupSuffix = "/lookup"

// MountPath returns the full mount path for the search route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// LookupPath returns the mount path of the single record lookup route.
func LookupPath(basePath string, fns ...OptionFn) string {
	return lookupPattern(MountPath(basePath, fns...))
}

// RegisterRoutes registers the search and lookup handlers under basePath on
// mux and returns the search pattern.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers both handlers using a pre-built Options value.
// Callers are expected to pass an Options value produced by NewOptions (or equivalent) so defaults apply.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	opts = NewOptions(func(o *Options) { *o = opts })
	return registerRoutes(mux, basePath, opts, newCatalogSource(opts))
}

func registerRoutes(mux Mux, basePath string, opts Options, source *catalogSource) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("timezones: missing mux")
	}
	pattern := mountPath(basePath, opts.RoutePath)
	mux.Handle(pattern, searchHandler(opts, source))
	mux.Handle(lookupPattern(pattern), lookupHandler(opts, source))
	return pattern, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}
	routePath = strings.TrimRight(routePath, "/")
	if routePath == "" {
		routePath = "/"
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	if routePath == "/" {
		return basePath
	}
	return basePath + routePath
}

func lookupPattern(pattern string) string {
	return strings.TrimRight(pattern, "/") + lookupSuffix
}
