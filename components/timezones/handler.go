package timezones

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Response formats selected with the format query parameter.
const (
	FormatOptions = "options"
	FormatRecords = "records"
	FormatTitles  = "titles"
)

type optionsResponse struct {
	Data []Option `json:"data"`
}

type recordsResponse struct {
	Data []Record `json:"data"`
}

type titlesResponse struct {
	Data map[string]string `json:"data"`
}

type recordResponse struct {
	Data Record `json:"data"`
}

// catalogSource builds the catalog on first use and serves the same one
// afterwards.
type catalogSource struct {
	once    sync.Once
	opts    Options
	catalog *Catalog
	err     error
}

func newCatalogSource(opts Options) *catalogSource {
	return &catalogSource{opts: opts}
}

func (s *catalogSource) get() (*Catalog, error) {
	s.once.Do(func() {
		if s.opts.Catalog != nil {
			s.catalog = s.opts.Catalog
			return
		}
		s.catalog, s.err = NewBuilder(func(o *Options) { *o = s.opts }).Build()
	})
	return s.catalog, s.err
}

// Handler builds a net/http handler with default options plus any overrides.
// It is an alias of NewHandler to match the recommended component API surface.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds the search handler from a pre-constructed Options
// value. The catalog is built on the first request unless opts.Catalog is set.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return searchHandler(opts, newCatalogSource(opts))
}

// LookupHandlerWithOptions builds a handler answering ?id=<identifier> with
// the single matching record, or 404.
func LookupHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return lookupHandler(opts, newCatalogSource(opts))
}

func searchHandler(opts Options, source *catalogSource) http.Handler {
	logger := opts.logger()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !admit(w, r, opts) {
			return
		}

		catalog, err := source.get()
		if err != nil {
			logger.Error().Err(err).Msg("timezone catalog unavailable")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		lookup, err := opts.cities()
		if err != nil {
			logger.Error().Err(err).Msg("city lookup unavailable")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		query := r.URL.Query().Get(opts.SearchParam)
		limit := parseInt(r.URL.Query().Get(opts.LimitParam))

		results, err := Search(catalog.Records(), lookup, query, limit, opts)
		if err != nil {
			logger.Warn().Err(err).Str("query", query).Msg("timezone search failed")
			http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
			return
		}

		var payload any
		switch r.URL.Query().Get(opts.FormatParam) {
		case FormatRecords:
			if results == nil {
				results = []Record{}
			}
			payload = recordsResponse{Data: results}
		case FormatTitles:
			payload = titlesResponse{Data: TitleMap(results)}
		default:
			options := toOptions(results, opts.LabelStyle)
			payload = optionsResponse{Data: options}
		}

		writeJSON(w, r, payload)
	})
}

func lookupHandler(opts Options, source *catalogSource) http.Handler {
	logger := opts.logger()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !admit(w, r, opts) {
			return
		}

		catalog, err := source.get()
		if err != nil {
			logger.Error().Err(err).Msg("timezone catalog unavailable")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		rec, ok := catalog.Lookup(id)
		if !ok {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		writeJSON(w, r, recordResponse{Data: rec})
	})
}

// admit applies the method check and the guard, writing the error response
// when the request is refused.
func admit(w http.ResponseWriter, r *http.Request, opts Options) bool {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return false
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return false
	}
	if opts.Guard != nil {
		if err := opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return false
		}
	}
	return true
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
