// Package render produces server-side HTML for the timezone select: a
// <select> fragment and a small search page styled from go-theme tokens.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-tzselect/components/timezones"
	"github.com/goliatone/go-tzselect/components/timezones/widget"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

var marshalWidget = json.Marshal

const (
	selectTemplate = "select.html.tpl"
	pageTemplate   = "page.html.tpl"
)

// SelectData feeds the <select> fragment.
type SelectData struct {
	Name        string
	ID          string
	Selected    string
	Placeholder string
	Required    bool
	Options     []timezones.Option
	// Endpoint is the JSON widget config the browser script reads.
	Endpoint string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithThemeSelector sets the selector used to resolve theme tokens.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(r *Renderer) {
		if selector != nil {
			r.themes = selector
		}
	}
}

// WithTheme picks the theme and variant passed to the selector.
func WithTheme(name, variant string) Option {
	return func(r *Renderer) {
		r.themeName = name
		r.variant = variant
	}
}

// WithWidget makes rendered pages load the script at scriptURL and hand it
// cfg, so the select narrows remotely as the user types. A blank scriptURL
// uses the theme's ScriptAssetKey asset.
func WithWidget(cfg widget.Config, scriptURL string) Option {
	return func(r *Renderer) {
		raw, err := marshalWidget(cfg)
		if err != nil {
			r.optErr = fmt.Errorf("render: encode widget config: %w", err)
			return
		}
		r.widgetJSON = string(raw)
		r.scriptURL = scriptURL
	}
}

// WithTemplatesFS loads templates from fsys instead of the embedded set. The
// files named by the theme, or the default names, must exist in fsys.
func WithTemplatesFS(fsys fs.FS) Option {
	return func(r *Renderer) {
		if fsys != nil {
			r.templates = fsys
		}
	}
}

// WithLogger sets the logger used by handlers.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// Renderer executes the embedded pongo2 templates. Output is autoescaped.
type Renderer struct {
	set       *pongo2.TemplateSet
	selectTpl *pongo2.Template
	pageTpl   *pongo2.Template
	templates fs.FS
	themes    theme.ThemeSelector
	themeName string
	variant   string
	logger    zerolog.Logger
	optErr    error

	widgetJSON string
	scriptURL  string
}

// New parses the templates named by the selected theme. Without
// WithThemeSelector the built-in palette is used.
func New(opts ...Option) (*Renderer, error) {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("render: templates: %w", err)
	}

	r := &Renderer{templates: sub, logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.optErr != nil {
		return nil, r.optErr
	}
	if r.themes == nil {
		selector, err := NewThemeSelector()
		if err != nil {
			return nil, err
		}
		r.themes = selector
	}

	selection, err := r.selectTheme()
	if err != nil {
		return nil, err
	}
	if r.widgetJSON != "" && r.scriptURL == "" {
		if url, ok := selection.Asset(ScriptAssetKey); ok {
			r.scriptURL = url
		}
	}

	r.set = pongo2.NewSet("tzselect", pongo2.NewFSLoader(r.templates))
	selectFile := selection.Template(SelectTemplateKey, selectTemplate)
	if r.selectTpl, err = r.set.FromFile(selectFile); err != nil {
		return nil, fmt.Errorf("render: parse %s: %w", selectFile, err)
	}
	pageFile := selection.Template(PageTemplateKey, pageTemplate)
	if r.pageTpl, err = r.set.FromFile(pageFile); err != nil {
		return nil, fmt.Errorf("render: parse %s: %w", pageFile, err)
	}
	return r, nil
}

// Select writes the <select> fragment.
func (r *Renderer) Select(w io.Writer, data SelectData) error {
	if data.ID == "" {
		data.ID = data.Name
	}
	ctx := pongo2.Context{
		"name":        data.Name,
		"id":          data.ID,
		"selected":    data.Selected,
		"placeholder": data.Placeholder,
		"required":    data.Required,
		"options":     data.Options,
		"endpoint":    data.Endpoint,
	}
	if err := r.selectTpl.ExecuteWriter(ctx, w); err != nil {
		return fmt.Errorf("render: execute %s: %w", selectTemplate, err)
	}
	return nil
}

// Stylesheet resolves the configured theme and returns its tokens as CSS
// custom properties.
func (r *Renderer) Stylesheet() (string, error) {
	selection, err := r.selectTheme()
	if err != nil {
		return "", err
	}
	return Stylesheet(selection.CSSVariables("")), nil
}

func (r *Renderer) selectTheme() (*theme.Selection, error) {
	selection, err := r.themes.Select(r.themeName, r.variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme: %w", err)
	}
	if selection == nil {
		return nil, fmt.Errorf("render: theme %q not found", r.themeName)
	}
	return selection, nil
}

// PageData feeds the search page.
type PageData struct {
	Title       string
	Action      string
	SearchParam string
	Query       string
	Error       string
	Chosen      *timezones.Record
	ScriptURL   string
	Select      SelectData
}

// Page writes the full search page.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	css, err := r.Stylesheet()
	if err != nil {
		return err
	}
	var sel bytes.Buffer
	if err := r.Select(&sel, data.Select); err != nil {
		return err
	}

	ctx := pongo2.Context{
		"title":        data.Title,
		"action":       data.Action,
		"search_param": data.SearchParam,
		"query":        data.Query,
		"error":        data.Error,
		"stylesheet":   css,
		"select":       sel.String(),
		"script_url":   data.ScriptURL,
	}
	if data.Chosen != nil {
		ctx["chosen"] = *data.Chosen
	}
	if err := r.pageTpl.ExecuteWriter(ctx, w); err != nil {
		return fmt.Errorf("render: execute %s: %w", pageTemplate, err)
	}
	return nil
}

// PageHandler serves the search page for component. The search parameter
// narrows the options through a fresh selection session and field names the
// submitted identifier.
func (r *Renderer) PageHandler(component *timezones.Component, field string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet && req.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		opts := component.Options()
		selector, err := component.Selector()
		if err != nil {
			r.logger.Error().Err(err).Msg("timezone selector unavailable")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		status := http.StatusOK
		data := PageData{
			Title:       "Select a timezone",
			Action:      req.URL.Path,
			SearchParam: opts.SearchParam,
			Query:       req.URL.Query().Get(opts.SearchParam),
			ScriptURL:   r.scriptURL,
		}
		if err := selector.OnInputChange(data.Query); err != nil {
			r.logger.Warn().Err(err).Str("query", data.Query).Msg("timezone search failed")
			status = http.StatusBadGateway
			data.Error = "City search is unavailable, showing all timezones."
		}
		if err := selector.OnChange(req.URL.Query().Get(field)); err != nil {
			if !errors.Is(err, timezones.ErrUnknownZone) {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			status = http.StatusBadRequest
			data.Error = "Unknown timezone."
		}
		if rec, ok := selector.Selected(); ok {
			data.Chosen = &rec
		}

		visible := selector.Options()
		options := make([]timezones.Option, 0, len(visible))
		for _, rec := range visible {
			options = append(options, timezones.Option{Value: rec.Value, Label: rec.Display(opts.LabelStyle)})
		}
		data.Select = SelectData{
			Name:        field,
			Selected:    selector.Value(),
			Placeholder: "Select a timezone",
			Options:     options,
			Endpoint:    r.widgetJSON,
		}

		var buf bytes.Buffer
		if err := r.Page(&buf, data); err != nil {
			r.logger.Error().Err(err).Msg("render timezone page")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if req.Method == http.MethodHead {
			return
		}
		_, _ = buf.WriteTo(w)
	})
}
