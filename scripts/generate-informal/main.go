// Command generate-informal prints a starting point for
// pkg/informal/data/informal.yaml: the tz database abbreviations of every
// curated zone in January and July. Numeric abbreviations ("+0530") are left
// out, and long names still need to be filled in by hand.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-tzselect/components/timezones"
	"github.com/goliatone/go-tzselect/pkg/informal"
)

func main() {
	var (
		year       = flag.Int("year", time.Now().Year(), "year sampled for standard and daylight time")
		outputPath = flag.String("output", "", "output path (stdout when empty)")
	)
	flag.Parse()

	entries, err := timezones.DefaultEntries()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load curated entries: %v\n", err)
		os.Exit(1)
	}

	table := make(map[string]informal.Display, len(entries))
	for _, entry := range entries {
		display, ok, err := sample(entry.ID, *year)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to sample %s: %v\n", entry.ID, err)
			os.Exit(1)
		}
		if ok {
			table[entry.ID] = display
		}
	}

	payload, err := yaml.Marshal(table)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode table: %v\n", err)
		os.Exit(1)
	}

	if *outputPath == "" {
		_, _ = os.Stdout.Write(payload)
		return
	}
	if err := os.WriteFile(*outputPath, payload, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", *outputPath, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d zones to %s\n", len(table), *outputPath)
}

func sample(id string, year int) (informal.Display, bool, error) {
	loc, err := time.LoadLocation(id)
	if err != nil {
		return informal.Display{}, false, err
	}

	var display informal.Display
	for _, month := range []time.Month{time.January, time.July} {
		at := time.Date(year, month, 15, 12, 0, 0, 0, loc)
		abbrev, _ := at.Zone()
		if numeric(abbrev) {
			continue
		}
		name := informal.Name{Abbrev: abbrev}
		if at.IsDST() {
			display.Daylight = &name
			continue
		}
		display.Standard = name
	}
	return display, !display.Standard.IsZero(), nil
}

func numeric(abbrev string) bool {
	return strings.HasPrefix(abbrev, "+") || strings.HasPrefix(abbrev, "-")
}
