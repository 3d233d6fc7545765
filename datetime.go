package winsched

import "time"

// Layouts recognized for the date and time fields, tried in order; the first
// one that parses wins. Order matters: the 24-hour layouts must come after
// the AM/PM ones, and the two-digit-year layouts before the slash ISO form.
var dateTimeLayouts = []string{
	"3:04:05 PM",
	"3:04 PM",
	"15:04:05",
	"15:04",
	"2006-01-02",
	"01-02-06",
	"01-02-2006",
	"01/02/06",
	"01/02/2006",
	"2006/01/02",
}

// detectLayout sniffs which recognized layout a date/time string is in.
func detectLayout(value string) (string, bool) {
	for _, layout := range dateTimeLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return layout, true
		}
	}
	return "", false
}

// parseDateTime parses a value in whichever recognized layout it matches.
// Time-only layouts yield a zero date part and date-only layouts a midnight
// time part; boundary() picks the half it needs.
func parseDateTime(value string) (time.Time, bool) {
	layout, ok := detectLayout(value)
	if !ok {
		return time.Time{}, false
	}
	parsed, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
