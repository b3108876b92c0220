package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-tzselect/components/timezones"
	"github.com/goliatone/go-tzselect/pkg/openapi"
	"github.com/goliatone/go-tzselect/pkg/prompt"
)

func (a *App) component(reg prometheus.Registerer) (*timezones.Component, error) {
	fns, err := a.Config.TimezoneOptions()
	if err != nil {
		return nil, err
	}
	fns = append(fns, timezones.WithLogger(a.Logger))
	if reg != nil {
		metrics, err := timezones.NewMetrics(reg)
		if err != nil {
			return nil, err
		}
		fns = append(fns, timezones.WithMetrics(metrics))
	}
	return timezones.New(fns...), nil
}

func (a *App) catalog() (*timezones.Component, *timezones.Catalog, error) {
	c, err := a.component(nil)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := c.Catalog()
	if err != nil {
		return nil, nil, err
	}
	return c, catalog, nil
}

func (a *App) printRecords(records []timezones.Record, style timezones.LabelStyle, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(a.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	w := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\n", rec.Value, strconv.Itoa(rec.Offset), rec.Display(style))
	}
	return w.Flush()
}

type ListCmd struct {
	JSON bool `help:"Print records as JSON."`
}

func (c *ListCmd) Run(app *App) error {
	comp, catalog, err := app.catalog()
	if err != nil {
		return err
	}
	return app.printRecords(catalog.Records(), comp.Options().LabelStyle, c.JSON)
}

type SearchCmd struct {
	Query string `arg:"" help:"Zone, region, abbreviation or city."`
	Limit int    `help:"Maximum results; 0 uses the configured default."`
	JSON  bool   `help:"Print records as JSON."`
}

func (c *SearchCmd) Run(app *App) error {
	comp, err := app.component(nil)
	if err != nil {
		return err
	}
	results, err := comp.Search(c.Query, c.Limit)
	if err != nil {
		return err
	}
	return app.printRecords(results, comp.Options().LabelStyle, c.JSON)
}

type PickCmd struct {
	Query string `arg:"" optional:"" help:"Initial filter."`
}

func (c *PickCmd) Run(app *App) error {
	comp, err := app.component(nil)
	if err != nil {
		return err
	}
	selector, err := comp.Selector()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	picker := prompt.NewPicker(selector,
		prompt.WithLabelStyle(comp.Options().LabelStyle),
		prompt.WithLogger(app.Logger),
	)
	rec, err := picker.Pick(ctx, c.Query)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(app.Out, rec.Value)
	return err
}

type OpenAPICmd struct {
	ServerURL string `name:"server-url" help:"Server URL written into the document."`
}

func (c *OpenAPICmd) Run(app *App) error {
	comp, err := app.component(nil)
	if err != nil {
		return err
	}
	params := openapi.ParamsFromOptions(app.Config.BasePath, comp.Options())
	params.ServerURL = c.ServerURL

	doc, err := openapi.Document(context.Background(), params)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(app.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
