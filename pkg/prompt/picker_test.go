package prompt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-tzselect/components/timezones"
)

type fakeCities struct {
	zones  map[string][]string
	failOn map[string]error
	calls  int
}

func (f *fakeCities) Timezones(text string) ([]string, error) {
	f.calls++
	if err := f.failOn[text]; err != nil {
		return nil, err
	}
	return f.zones[text], nil
}

// fakeDriver types each filter in turn, recording the options left visible,
// then picks the first option still visible.
// Input answers with inputs in order and aborts once they run out.
type fakeDriver struct {
	filters []string
	seen    [][]string
	pickErr error
	last    SelectConfig

	inputs []string
	asked  []InputConfig
	infos  []string
}

func (d *fakeDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	d.asked = append(d.asked, cfg)
	if len(d.inputs) == 0 {
		return "", ErrAborted
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	return next, nil
}

func (d *fakeDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func (d *fakeDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	d.last = cfg
	if d.pickErr != nil {
		return 0, d.pickErr
	}
	pick := 0
	for _, filter := range d.filters {
		var visible []string
		pick = -1
		for i, label := range cfg.Options {
			if cfg.Filter(filter, i) {
				visible = append(visible, label)
				if pick < 0 {
					pick = i
				}
			}
		}
		d.seen = append(d.seen, visible)
	}
	return pick, nil
}

func testCatalog() *timezones.Catalog {
	return timezones.NewCatalog([]timezones.Record{
		{Value: "America/Chicago", Title: "Central Time", Label: "(GMT-6:00) Central Time (CST)", Offset: -360, Abbrev: "CST", AltName: "Central Standard Time"},
		{Value: "UTC", Title: "UTC", Label: "(GMT+0:00) UTC (UTC)", Offset: 0, Abbrev: "UTC", AltName: "Coordinated Universal Time"},
		{Value: "Asia/Kolkata", Title: "Mumbai", Label: "(GMT+5:30) Mumbai (IST)", Offset: 330, Abbrev: "IST", AltName: "IST"},
	}, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
}

func TestPicker_FiltersAsUserTypes(t *testing.T) {
	cities := &fakeCities{zones: map[string][]string{"india": {"Asia/Kolkata"}}}
	driver := &fakeDriver{filters: []string{"", "India"}}
	picker := NewPicker(timezones.NewSelector(testCatalog(), cities), WithDriver(driver), WithLabelStyle(timezones.LabelAbbrev))

	rec, err := picker.Pick(context.Background(), "")
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if rec.Value != "Asia/Kolkata" {
		t.Fatalf("unexpected pick: %#v", rec)
	}

	want := [][]string{
		{"(GMT-6:00) CST", "(GMT+0:00) UTC", "(GMT+5:30) IST"},
		{"(GMT+5:30) IST"},
	}
	if diff := cmp.Diff(want, driver.seen); diff != "" {
		t.Fatalf("unexpected visible options (-want +got):\n%s", diff)
	}
	if cities.calls != 1 {
		t.Fatalf("expected one city lookup for the typed text, got %d", cities.calls)
	}
}

func TestPicker_InitialQueryNarrowsOptions(t *testing.T) {
	driver := &fakeDriver{}
	picker := NewPicker(timezones.NewSelector(testCatalog(), &fakeCities{}), WithDriver(driver))

	rec, err := picker.Pick(context.Background(), "cst")
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if rec.Value != "America/Chicago" {
		t.Fatalf("unexpected pick: %#v", rec)
	}
	if diff := cmp.Diff([]string{"(GMT-6:00) Central Time (CST)"}, driver.last.Options); diff != "" {
		t.Fatalf("unexpected options (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"Selected (GMT-6:00) Central Time (CST)"}, driver.infos); diff != "" {
		t.Fatalf("unexpected info messages (-want +got):\n%s", diff)
	}
}

func TestPicker_AsksAgainWhenNothingMatches(t *testing.T) {
	driver := &fakeDriver{inputs: []string{"utc"}}
	picker := NewPicker(timezones.NewSelector(testCatalog(), &fakeCities{}), WithDriver(driver))

	rec, err := picker.Pick(context.Background(), "nowhere")
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if rec.Value != "UTC" {
		t.Fatalf("unexpected pick: %#v", rec)
	}
	if len(driver.asked) != 1 {
		t.Fatalf("expected one follow-up question, got %d", len(driver.asked))
	}
	validate := driver.asked[0].Validator
	if err := validate(" Nowhere "); err == nil {
		t.Fatalf("expected the failed query to be rejected")
	}
	if err := validate("utc"); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if diff := cmp.Diff([]string{"Selected (GMT+0:00) UTC (UTC)"}, driver.infos); diff != "" {
		t.Fatalf("unexpected info messages (-want +got):\n%s", diff)
	}

	driver = &fakeDriver{}
	picker = NewPicker(timezones.NewSelector(testCatalog(), &fakeCities{}), WithDriver(driver))
	if _, err := picker.Pick(context.Background(), "nowhere"); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted when the user gives up, got %v", err)
	}
}

func TestPicker_LookupFailureKeepsPreviousMatches(t *testing.T) {
	cities := &fakeCities{failOn: map[string]error{"paris": errors.New("down")}}
	driver := &fakeDriver{filters: []string{"utc", "paris"}}
	picker := NewPicker(timezones.NewSelector(testCatalog(), cities), WithDriver(driver))

	rec, err := picker.Pick(context.Background(), "")
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if rec.Value != "UTC" {
		t.Fatalf("unexpected pick: %#v", rec)
	}
	want := [][]string{
		{"(GMT+0:00) UTC (UTC)"},
		{"(GMT+0:00) UTC (UTC)"},
	}
	if diff := cmp.Diff(want, driver.seen); diff != "" {
		t.Fatalf("unexpected visible options (-want +got):\n%s", diff)
	}
}

func TestPicker_AbortPropagates(t *testing.T) {
	driver := &fakeDriver{pickErr: ErrAborted}
	picker := NewPicker(timezones.NewSelector(testCatalog(), nil), WithDriver(driver))

	if _, err := picker.Pick(context.Background(), ""); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}
