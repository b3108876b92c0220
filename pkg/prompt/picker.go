// Package prompt picks a timezone interactively in a terminal, narrowing the
// list as the user types with the same matching the HTTP endpoint uses.
package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-tzselect/components/timezones"
)

const defaultPageSize = 12

// Option configures a Picker.
type Option func(*Picker)

func WithDriver(driver Driver) Option {
	return func(p *Picker) {
		if driver != nil {
			p.driver = driver
		}
	}
}

func WithLabelStyle(style timezones.LabelStyle) Option {
	return func(p *Picker) {
		p.style = style
	}
}

func WithPageSize(size int) Option {
	return func(p *Picker) {
		if size > 0 {
			p.pageSize = size
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Picker) {
		p.logger = logger
	}
}

// Picker drives one selection session over a timezones.Selector.
type Picker struct {
	selector *timezones.Selector
	driver   Driver
	style    timezones.LabelStyle
	pageSize int
	logger   zerolog.Logger

	records    []timezones.Record
	lastFilter string
	visible    map[string]struct{}
}

func NewPicker(selector *timezones.Selector, opts ...Option) *Picker {
	p := &Picker{
		selector: selector,
		style:    timezones.LabelOriginal,
		pageSize: defaultPageSize,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.driver == nil {
		p.driver = NewSurveyDriver()
	}
	return p
}

// Pick narrows the options with query, when given, and asks the user to
// choose one. While query matches nothing the user is asked for another.
// Typing while the list is shown narrows it further; a failing city lookup
// keeps the previous matches. The choice is announced through the driver.
func (p *Picker) Pick(ctx context.Context, query string) (timezones.Record, error) {
	if err := p.narrow(ctx, query); err != nil {
		return timezones.Record{}, err
	}
	p.lastFilter = ""
	p.visible = nil

	labels := make([]string, len(p.records))
	for i, rec := range p.records {
		labels[i] = rec.Display(p.style)
	}

	idx, err := p.driver.Select(ctx, SelectConfig{
		Message:  "Timezone:",
		Options:  labels,
		PageSize: p.pageSize,
		Help:     "Type a zone, region, abbreviation or city to narrow the list.",
		Filter:   p.matches,
	})
	if err != nil {
		return timezones.Record{}, err
	}
	if idx < 0 || idx >= len(p.records) {
		return timezones.Record{}, fmt.Errorf("prompt: selection %d out of range", idx)
	}

	if err := p.selector.OnChange(p.records[idx].Value); err != nil {
		return timezones.Record{}, err
	}
	rec, _ := p.selector.Selected()
	if err := p.driver.Info(ctx, "Selected "+rec.Display(timezones.LabelOriginal)); err != nil {
		return timezones.Record{}, err
	}
	return rec, nil
}

// narrow applies query and keeps asking for a new one while nothing matches.
func (p *Picker) narrow(ctx context.Context, query string) error {
	for {
		if err := p.selector.OnInputChange(query); err != nil {
			return err
		}
		p.records = p.selector.Options()
		if len(p.records) > 0 {
			return nil
		}

		failed := query
		next, err := p.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("No timezone matches %q. Search:", failed),
			Help:    "Leave empty to list every timezone.",
			Validator: func(text string) error {
				if strings.EqualFold(strings.TrimSpace(text), strings.TrimSpace(failed)) {
					return fmt.Errorf("no timezone matches %q", text)
				}
				return nil
			},
		})
		if err != nil {
			return err
		}
		query = next
	}
}

func (p *Picker) matches(filter string, index int) bool {
	if index < 0 || index >= len(p.records) {
		return false
	}
	if filter == "" {
		return true
	}
	if p.visible == nil || filter != p.lastFilter {
		p.refresh(filter)
	}
	_, ok := p.visible[p.records[index].Value]
	return ok
}

func (p *Picker) refresh(filter string) {
	if err := p.selector.OnInputChange(filter); err != nil {
		p.logger.Warn().Err(err).Str("filter", filter).Msg("timezone filter failed, keeping previous matches")
		if p.visible != nil {
			p.lastFilter = filter
			return
		}
	}
	visible := make(map[string]struct{})
	for _, rec := range p.selector.Options() {
		visible[rec.Value] = struct{}{}
	}
	p.visible = visible
	p.lastFilter = filter
}
