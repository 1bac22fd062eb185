package util

import (
	"strings"
	"time"
)

// FormatDateTpl formats a millisecond Unix timestamp using a template with
// human placeholders instead of Go's reference date.
//
// Placeholders: YYYY, YY, MM, DD, hh, mm, ss.
// Returns an empty string when ts == 0.
func FormatDateTpl(ts int64, tpl string) string {
	if ts == 0 {
		return ""
	}

	goTpl := tpl
	replacements := map[string]string{
		"YYYY": "2006",
		"YY":   "06",
		"MM":   "01",
		"DD":   "02",
		"hh":   "15",
		"mm":   "04",
		"ss":   "05",
	}
	for k, v := range replacements {
		goTpl = strings.ReplaceAll(goTpl, k, v)
	}

	return time.UnixMilli(ts).Format(goTpl)
}
