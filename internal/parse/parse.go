// Package parse provides locale-tolerant parsing of dates and monetary
// amounts from free text fragments. Both parsers are total: malformed input
// yields a false ok flag, never an error.
package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateLayouts is tried in order. Year-first ISO-style layouts come first,
// then day-first numeric layouts, then month-name forms. Month-first numeric
// layouts are deliberately absent: "10/01/2024" must read as 10 January.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
	"2-1-2006",
	"2/1/2006",
	"2.1.2006",
	"2 January 2006",
	"2 Jan 2006",
	"2-January-2006",
	"2-Jan-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
}

// Date attempts a day-first-biased parse of a date fragment. It tolerates
// "-", "/" and "." separators as well as month names. The ok flag is false
// for empty or unparseable input.
func Date(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

var amountKeep = regexp.MustCompile(`[^0-9,.\-]`)

// Amount cleans and parses a monetary amount such as "₹ 1,234.50" or
// "1.234,50". Everything except digits, comma, period and minus is stripped
// first. When both comma and period appear, whichever comes last is taken as
// the decimal point and the other is dropped as a thousands separator; a lone
// comma is treated as the decimal separator. The ok flag is false when
// nothing numeric remains or the final parse fails.
func Amount(s string) (float64, bool) {
	cleaned := amountKeep.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0, false
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// European style: 1.234,50
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			// Anglo style: 1,234.50
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
