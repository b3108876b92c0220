package timezones

import (
	"fmt"
	"unicode/utf8"
)

// maxLabelAbbrevLen is the rune count from which an abbreviation is left out
// of the label. Longer strings are identifier fallbacks or numeric names.
const maxLabelAbbrevLen = 5

// FormatOffset renders an offset in minutes as "+H:MM" or "-H:MM", without
// padding the hour: 0 is "+0:00", -330 is "-5:30", 345 is "+5:45".
func FormatOffset(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%d:%02d", sign, minutes/60, minutes%60)
}

// offsetPrefix is the "(GMT+H:MM)" part shared by every label style.
func offsetPrefix(minutes int) string {
	return "(GMT" + FormatOffset(minutes) + ")"
}

// composeLabel builds "(GMT±H:MM) <title> (<abbrev>)".
func composeLabel(minutes int, title, abbrev string) string {
	label := offsetPrefix(minutes) + " " + title
	if abbrev != "" && utf8.RuneCountInString(abbrev) < maxLabelAbbrevLen {
		label += " (" + abbrev + ")"
	}
	return label
}
