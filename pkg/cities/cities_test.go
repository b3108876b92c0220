package cities

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault_LoadsGazetteer(t *testing.T) {
	idx, err := Default()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if idx.Len() < 100 {
		t.Fatalf("expected a reasonably sized gazetteer, got %d", idx.Len())
	}
}

func TestTimezones_CountryMatchesIndianCities(t *testing.T) {
	idx, err := Default()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	zones, err := idx.Timezones("india")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if diff := cmp.Diff([]string{"Asia/Kolkata"}, zones); diff != "" {
		t.Fatalf("unexpected zones (-want +got):\n%s", diff)
	}
}

func TestFindFromCityStateProvince_AllWordsMustMatch(t *testing.T) {
	idx := NewIndex([]City{
		{City: "Austin", Province: "Texas", Country: "United States of America", Timezone: "America/Chicago"},
		{City: "Austin", Province: "Minnesota", Country: "United States of America", Timezone: "America/Chicago"},
		{City: "El Paso", Province: "Texas", Country: "United States of America", Timezone: "America/Denver"},
	})

	got := idx.FindFromCityStateProvince("austin texas")
	if len(got) != 1 || got[0].Province != "Texas" {
		t.Fatalf("unexpected matches: %#v", got)
	}

	zones, _ := idx.Timezones("texas")
	if diff := cmp.Diff([]string{"America/Chicago", "America/Denver"}, zones); diff != "" {
		t.Fatalf("unexpected zones (-want +got):\n%s", diff)
	}
}

func TestFindFromCityStateProvince_IgnoresCaseAndDiacritics(t *testing.T) {
	idx := NewIndex([]City{
		{City: "São Paulo", Province: "São Paulo", Country: "Brazil", Timezone: "America/Sao_Paulo"},
	})

	for _, query := range []string{"sao paulo", "SÃO", "  paulo  "} {
		if got := idx.FindFromCityStateProvince(query); len(got) != 1 {
			t.Fatalf("expected %q to match, got %#v", query, got)
		}
	}
}

func TestFindFromCityStateProvince_EmptyMatchesNothing(t *testing.T) {
	idx, err := Default()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := idx.FindFromCityStateProvince("   "); got != nil {
		t.Fatalf("expected no matches, got %#v", got)
	}
	zones, err := idx.Timezones("")
	if err != nil || zones != nil {
		t.Fatalf("expected nil zones and error, got %#v, %v", zones, err)
	}
}

func TestLoad_RejectsIncompleteRows(t *testing.T) {
	_, err := Load(strings.NewReader(`- {city: Nowhere, country: Atlantis}`))
	if err == nil {
		t.Fatalf("expected missing timezone to be rejected")
	}
	_, err = Load(strings.NewReader(`- {timezone: UTC}`))
	if err == nil {
		t.Fatalf("expected missing city to be rejected")
	}
}
