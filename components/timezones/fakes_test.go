package timezones

import (
	"errors"
	"time"

	"github.com/goliatone/go-tzselect/pkg/informal"
)

type fakeResolver struct {
	states map[string]ZoneState
	fail   map[string]error
}

func (f fakeResolver) Resolve(id string, _ time.Time) (ZoneState, error) {
	if err, ok := f.fail[id]; ok {
		return ZoneState{}, err
	}
	state, ok := f.states[id]
	if !ok {
		return ZoneState{}, errors.New("unknown zone " + id)
	}
	return state, nil
}

type fakeNames map[string]informal.Display

func (f fakeNames) Lookup(id string) (informal.Display, bool, error) {
	display, ok := f[id]
	return display, ok, nil
}

type fakeCities struct {
	zones map[string][]string
	err   error
	calls int
}

func (f *fakeCities) Timezones(text string) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.zones[text], nil
}

func standard(abbrev, name string) informal.Display {
	return informal.Display{Standard: informal.Name{Abbrev: abbrev, Name: name}}
}

// fixtureRecords is a small catalog with three CST zones among others. The
// Kolkata record carries its real names; Bengaluru and Karnataka appear in no
// record text, so only a city lookup reaches them.
func fixtureRecords() []Record {
	return []Record{
		{Value: "Pacific/Honolulu", Title: "Hawaii", Label: "(GMT-10:00) Hawaii (HST)", Offset: -600, Abbrev: "HST", AltName: "Hawaii Standard Time"},
		{Value: "America/Regina", Title: "Saskatchewan", Label: "(GMT-6:00) Saskatchewan (CST)", Offset: -360, Abbrev: "CST", AltName: "Central Standard Time"},
		{Value: "America/Chicago", Title: "Central Time", Label: "(GMT-6:00) Central Time (CST)", Offset: -360, Abbrev: "CST", AltName: "Central Standard Time"},
		{Value: "America/Mexico_City", Title: "Mexico City", Label: "(GMT-6:00) Mexico City (CST)", Offset: -360, Abbrev: "CST", AltName: "Central Standard Time"},
		{Value: "America/New_York", Title: "Eastern Time", Label: "(GMT-5:00) Eastern Time (EST)", Offset: -300, Abbrev: "EST", AltName: "Eastern Standard Time"},
		{Value: "UTC", Title: "UTC", Label: "(GMT+0:00) UTC (UTC)", Offset: 0, Abbrev: "UTC", AltName: "Coordinated Universal Time"},
		{Value: "Asia/Kolkata", Title: "Chennai, Kolkata, Mumbai, New Delhi", Label: "(GMT+5:30) Chennai, Kolkata, Mumbai, New Delhi (IST)", Offset: 330, Abbrev: "IST", AltName: "India Standard Time"},
		{Value: "Asia/Tokyo", Title: "Osaka, Sapporo, Tokyo", Label: "(GMT+9:00) Osaka, Sapporo, Tokyo (JST)", Offset: 540, Abbrev: "JST", AltName: "Japan Standard Time"},
	}
}

func fixtureCatalog() *Catalog {
	return NewCatalog(fixtureRecords(), time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC))
}

func values(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Value)
	}
	return out
}
