// Package openapi describes the timezone search and lookup endpoints as an
// OpenAPI 3 document, adjusted to the mount path and query parameter names a
// server is configured with.
package openapi

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-tzselect/components/timezones"
)

//go:embed data/openapi.yaml
var embedded []byte

const (
	templateSearchPath = "/api/timezones"
	templateLookupPath = "/api/timezones/lookup"
)

// Params are the deployment specific parts of the document.
type Params struct {
	ServerURL    string
	SearchPath   string
	LookupPath   string
	SearchParam  string
	LimitParam   string
	FormatParam  string
	DefaultLimit int
	MaxLimit     int
}

// ParamsFromOptions derives Params for a component mounted under basePath.
func ParamsFromOptions(basePath string, opts timezones.Options) Params {
	same := func(o *timezones.Options) { *o = opts }
	opts = timezones.NewOptions(same)
	return Params{
		SearchPath:   timezones.MountPath(basePath, same),
		LookupPath:   timezones.LookupPath(basePath, same),
		SearchParam:  opts.SearchParam,
		LimitParam:   opts.LimitParam,
		FormatParam:  opts.FormatParam,
		DefaultLimit: opts.DefaultLimit,
		MaxLimit:     opts.MaxLimit,
	}
}

// Document loads the embedded description, applies p and validates the
// result.
func Document(ctx context.Context, p Params) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(embedded)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}

	search := doc.Paths.Value(templateSearchPath)
	lookup := doc.Paths.Value(templateLookupPath)
	if search == nil || lookup == nil {
		return nil, fmt.Errorf("openapi: document is missing timezone paths")
	}
	renameParams(search.Get, map[string]string{
		"q":      p.SearchParam,
		"limit":  p.LimitParam,
		"format": p.FormatParam,
	})
	applyLimits(search.Get, p.LimitParam, p.DefaultLimit, p.MaxLimit)

	paths := openapi3.NewPaths()
	paths.Set(orDefault(p.SearchPath, templateSearchPath), search)
	paths.Set(orDefault(p.LookupPath, templateLookupPath), lookup)
	doc.Paths = paths

	if p.ServerURL != "" {
		doc.Servers = openapi3.Servers{{URL: p.ServerURL}}
	}

	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return doc, nil
}

// OperationIDs lists the operations of doc as "METHOD path operationId",
// sorted.
func OperationIDs(doc *openapi3.T) []string {
	if doc == nil || doc.Paths == nil {
		return nil
	}
	var out []string
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			out = append(out, fmt.Sprintf("%s %s %s", method, path, op.OperationID))
		}
	}
	sort.Strings(out)
	return out
}

// Handler serves doc as JSON.
func Handler(doc *openapi3.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		payload, err := json.Marshal(doc)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(payload)
	})
}

func renameParams(op *openapi3.Operation, names map[string]string) {
	if op == nil {
		return
	}
	for _, ref := range op.Parameters {
		if ref == nil || ref.Value == nil {
			continue
		}
		if name := names[ref.Value.Name]; name != "" {
			ref.Value.Name = name
		}
	}
}

func applyLimits(op *openapi3.Operation, limitParam string, def, max int) {
	if op == nil {
		return
	}
	param := op.Parameters.GetByInAndName(openapi3.ParameterInQuery, orDefault(limitParam, "limit"))
	if param == nil || param.Schema == nil || param.Schema.Value == nil {
		return
	}
	if def > 0 {
		param.Schema.Value.Default = float64(def)
	}
	if max > 0 {
		m := float64(max)
		param.Schema.Value.Max = &m
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
