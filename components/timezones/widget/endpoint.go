// Package widget describes the timezone search endpoint to front-end select
// widgets that fetch their options remotely.
package widget

import (
	"strconv"

	"github.com/goliatone/go-tzselect/components/timezones"
)

// Mapping names the fields of each result item holding the option value and
// label.
type Mapping struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Config is the remote options descriptor a select widget consumes.
type Config struct {
	FieldPath     string            `json:"fieldPath"`
	URL           string            `json:"url"`
	LookupURL     string            `json:"lookupUrl"`
	Method        string            `json:"method"`
	ResultsPath   string            `json:"resultsPath"`
	Params        map[string]string `json:"params,omitempty"`
	DynamicParams map[string]string `json:"dynamicParams,omitempty"`
	Mapping       Mapping           `json:"mapping"`
	LabelStyle    string            `json:"labelStyle"`
}

// SelfPlaceholder is replaced by the widget with its own input text.
const SelfPlaceholder = "{{self}}"

// Endpoint returns the descriptor for a timezone field served by the
// component mounted under basePath.
//
// The descriptor:
// - points at <basePath><RoutePath> (default: <basePath>/api/timezones)
// - uses resultsPath "data" with value/label mapping
// - includes "format=options" and a default limit param
// - includes a dynamic search param mapped to "{{self}}"
func Endpoint(fieldPath, basePath string, fns ...timezones.OptionFn) Config {
	opts := timezones.NewOptions(fns...)
	same := func(o *timezones.Options) {
		if o == nil {
			return
		}
		*o = opts
	}

	return Config{
		FieldPath:   fieldPath,
		URL:         timezones.MountPath(basePath, same),
		LookupURL:   timezones.LookupPath(basePath, same),
		Method:      "GET",
		ResultsPath: "data",
		Params: map[string]string{
			opts.FormatParam: timezones.FormatOptions,
			opts.LimitParam:  strconv.Itoa(opts.DefaultLimit),
		},
		DynamicParams: map[string]string{
			opts.SearchParam: SelfPlaceholder,
		},
		Mapping: Mapping{
			Value: "value",
			Label: "label",
		},
		LabelStyle: string(opts.LabelStyle),
	}
}
