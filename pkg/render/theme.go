package render

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeName is the built-in palette served when no other theme is
// configured.
const DefaultThemeName = "tzselect"

// Template and asset keys a theme manifest may override.
const (
	SelectTemplateKey = "timezones.select"
	PageTemplateKey   = "timezones.page"
	ScriptAssetKey    = "timezones.script"
)

// DefaultManifest is the built-in palette with a light variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"tz-dark":       "#1b0d2a",
			"tz-white":      "#ffffff",
			"tz-purple-tag": "#5b3a8c",
			"tz-blue-light": "#79f8fb",
		},
		Templates: map[string]string{
			SelectTemplateKey: selectTemplate,
			PageTemplateKey:   pageTemplate,
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				ScriptAssetKey: "tzselect.js",
			},
		},
		Variants: map[string]theme.Variant{
			"light": {
				Tokens: map[string]string{
					"tz-dark":  "#f4f1f8",
					"tz-white": "#1b0d2a",
				},
			},
		},
	}
}

// NewThemeSelector registers DefaultManifest followed by manifests and
// returns a go-theme selector that falls back to DefaultThemeName.
func NewThemeSelector(manifests ...*theme.Manifest) (theme.Selector, error) {
	manifests = append([]*theme.Manifest{DefaultManifest()}, manifests...)
	registry := theme.NewRegistry()
	for _, m := range manifests {
		if m == nil {
			continue
		}
		if err := registry.Register(m); err != nil {
			return theme.Selector{}, fmt.Errorf("render: register theme %q: %w", m.Name, err)
		}
	}
	return theme.Selector{Registry: registry, DefaultTheme: DefaultThemeName}, nil
}

// Stylesheet writes CSS variables on :root sorted by name. Names are reduced
// to identifier characters and values lose characters that could end the
// declaration.
func Stylesheet(vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, k := range keys {
		name := cssIdent(strings.TrimPrefix(k, "--"))
		if name == "" {
			continue
		}
		fmt.Fprintf(&b, "  --%s: %s;\n", name, cssValue(vars[k]))
	}
	b.WriteString("}")
	return b.String()
}

func cssIdent(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return -1
		}
	}, s)
}

func cssValue(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>':
			return -1
		default:
			return r
		}
	}, s)
}
