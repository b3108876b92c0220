package timezones

import "fmt"

// LabelStyle selects how a record is presented in a select widget.
type LabelStyle string

const (
	// LabelOriginal shows "(GMT-6:00) Central Time (CST)".
	LabelOriginal LabelStyle = "original"
	// LabelAbbrev shows "(GMT-6:00) CST".
	LabelAbbrev LabelStyle = "abbrev"
	// LabelAltName shows "(GMT-6:00) Central Standard Time".
	LabelAltName LabelStyle = "altName"
)

// LabelStyles lists every supported style.
func LabelStyles() []LabelStyle {
	return []LabelStyle{LabelOriginal, LabelAbbrev, LabelAltName}
}

// ParseLabelStyle validates a style name; blank means LabelOriginal.
func ParseLabelStyle(raw string) (LabelStyle, error) {
	if raw == "" {
		return LabelOriginal, nil
	}
	for _, style := range LabelStyles() {
		if string(style) == raw {
			return style, nil
		}
	}
	return "", fmt.Errorf("timezones: unknown label style %q", raw)
}

// Display renders the record in the given style. Unknown styles fall back to
// the original label.
func (r Record) Display(style LabelStyle) string {
	switch style {
	case LabelOriginal:
		return r.Label
	case LabelAbbrev:
		return offsetPrefix(r.Offset) + " " + r.Abbrev
	case LabelAltName:
		return offsetPrefix(r.Offset) + " " + r.AltName
	default:
		return r.Label
	}
}
