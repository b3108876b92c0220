package timezones

import "testing"

func TestRecordDisplay(t *testing.T) {
	rec := fixtureRecords()[2]
	cases := map[LabelStyle]string{
		LabelOriginal: "(GMT-6:00) Central Time (CST)",
		LabelAbbrev:   "(GMT-6:00) CST",
		LabelAltName:  "(GMT-6:00) Central Standard Time",
		"bogus":       "(GMT-6:00) Central Time (CST)",
	}
	for style, want := range cases {
		if got := rec.Display(style); got != want {
			t.Fatalf("Display(%q) = %q, want %q", style, got, want)
		}
	}
}

func TestParseLabelStyle(t *testing.T) {
	if style, err := ParseLabelStyle(""); err != nil || style != LabelOriginal {
		t.Fatalf("expected blank to mean original, got %q (%v)", style, err)
	}
	for _, style := range LabelStyles() {
		got, err := ParseLabelStyle(string(style))
		if err != nil || got != style {
			t.Fatalf("ParseLabelStyle(%q) = %q (%v)", style, got, err)
		}
	}
	if _, err := ParseLabelStyle("ABBREV"); err == nil {
		t.Fatalf("expected unknown style error")
	}
}

func TestParseEmptySearchMode(t *testing.T) {
	if mode, err := ParseEmptySearchMode(""); err != nil || mode != EmptySearchTop {
		t.Fatalf("expected blank to mean top, got %q (%v)", mode, err)
	}
	if mode, err := ParseEmptySearchMode("none"); err != nil || mode != EmptySearchNone {
		t.Fatalf("unexpected mode %q (%v)", mode, err)
	}
	if _, err := ParseEmptySearchMode("all"); err == nil {
		t.Fatalf("expected unknown mode error")
	}
}
