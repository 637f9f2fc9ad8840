// Package dates parses the free-form date cells of the events feed and
// renders them in the site's fixed Italian locale.
package dates

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Style selects how one date component is rendered. The zero value means
// "not set" so that caller options can be merged over the defaults.
type Style int

const (
	StyleUnset Style = iota
	StyleOmit
	StyleLong
	StyleShort
	StyleNumeric
	StyleTwoDigit
)

// Options mirrors the subset of locale date options the site uses.
type Options struct {
	Weekday Style
	Day     Style
	Month   Style
	Year    Style
}

// DefaultOptions produce "lunedì 1 aprile 2030".
var DefaultOptions = Options{
	Weekday: StyleLong,
	Day:     StyleNumeric,
	Month:   StyleLong,
	Year:    StyleNumeric,
}

// merge overlays the set fields of o onto base.
func (base Options) merge(o Options) Options {
	if o.Weekday != StyleUnset {
		base.Weekday = o.Weekday
	}
	if o.Day != StyleUnset {
		base.Day = o.Day
	}
	if o.Month != StyleUnset {
		base.Month = o.Month
	}
	if o.Year != StyleUnset {
		base.Year = o.Year
	}
	return base
}

// DateParts is the day/month pair shown on event cards.
type DateParts struct {
	Day   string `json:"day"`
	Month string `json:"month"`
}

// Placeholder parts used when a date cannot be parsed.
var InvalidParts = DateParts{Day: "--", Month: "---"}

var (
	weekdaysLong  = [...]string{"domenica", "lunedì", "martedì", "mercoledì", "giovedì", "venerdì", "sabato"}
	weekdaysShort = [...]string{"dom", "lun", "mar", "mer", "gio", "ven", "sab"}
	monthsLong    = [...]string{"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno", "luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre"}
	monthsShort   = [...]string{"gen", "feb", "mar", "apr", "mag", "giu", "lug", "ago", "set", "ott", "nov", "dic"}
)

// Layouts accepted for feed dates, tried in order. Slash dates follow the
// US month/day order used by spreadsheet CSV exports.
var layouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/1/2",
	"2006/1/2 15:04",
	"2006/1/2 15:04:05",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"January 2, 2006",
	"January 2, 2006 15:04",
	"Jan 2, 2006 15:04",
	"Jan 2 2006 15:04",
	"Mon Jan 2 2006",
	"Mon Jan 2 2006 15:04:05",
	"Mon Jan 2 2006 15:04:05 GMT-0700",
	"Mon, Jan 2, 2006",
	"Monday, January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// Formatter parses and formats dates in one time zone.
type Formatter struct {
	loc   *time.Location
	upper cases.Caser
}

// NewFormatter returns a Formatter for loc; a nil loc means time.Local.
func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{
		loc:   loc,
		upper: cases.Upper(language.Italian),
	}
}

// Location returns the zone dates are interpreted in.
func (f *Formatter) Location() *time.Location { return f.loc }

// Parse interprets s as a calendar date (optionally with a time of day).
// Date-only values resolve to midnight in the formatter's zone.
func (f *Formatter) Parse(s string) (time.Time, bool) {
	s = strings.Join(strings.Fields(s), " ")
	// Date.toString appends the zone name in parentheses.
	if i := strings.LastIndex(s, " ("); i > 0 && strings.HasSuffix(s, ")") {
		s = s[:i]
	}
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, f.loc); err == nil {
			return t.In(f.loc), true
		}
	}
	return time.Time{}, false
}

// Full returns the long Italian form of s, e.g. "lunedì 1 aprile 2030".
// opts are merged over DefaultOptions in order. It reports false when s
// does not parse.
func (f *Formatter) Full(s string, opts ...Options) (string, bool) {
	t, ok := f.Parse(s)
	if !ok {
		return "", false
	}
	o := DefaultOptions
	for _, opt := range opts {
		o = o.merge(opt)
	}
	return f.format(t, o), true
}

// Parts returns the card badge pieces of s: the numeric day and the short
// uppercased month. Unparseable input yields InvalidParts.
func (f *Formatter) Parts(s string) DateParts {
	t, ok := f.Parse(s)
	if !ok {
		return InvalidParts
	}
	return DateParts{
		Day:   strconv.Itoa(t.Day()),
		Month: f.upper.String(monthsShort[t.Month()-1]),
	}
}

func (f *Formatter) format(t time.Time, o Options) string {
	day := component(o.Day, t.Day())
	year := yearComponent(o.Year, t.Year())

	if o.Month == StyleNumeric || o.Month == StyleTwoDigit {
		numeric := make([]string, 0, 3)
		for _, p := range []string{day, component(o.Month, int(t.Month())), year} {
			if p != "" {
				numeric = append(numeric, p)
			}
		}
		out := strings.Join(numeric, "/")
		if wd := weekday(o.Weekday, t.Weekday()); wd != "" {
			out = wd + " " + out
		}
		return out
	}

	var month string
	switch o.Month {
	case StyleLong:
		month = monthsLong[t.Month()-1]
	case StyleShort:
		month = monthsShort[t.Month()-1]
	}

	parts := make([]string, 0, 4)
	for _, p := range []string{weekday(o.Weekday, t.Weekday()), day, month, year} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func weekday(s Style, d time.Weekday) string {
	switch s {
	case StyleLong:
		return weekdaysLong[d]
	case StyleShort:
		return weekdaysShort[d]
	}
	return ""
}

func component(s Style, n int) string {
	switch s {
	case StyleNumeric:
		return strconv.Itoa(n)
	case StyleTwoDigit:
		if n < 10 {
			return "0" + strconv.Itoa(n)
		}
		return strconv.Itoa(n % 100)
	}
	return ""
}

func yearComponent(s Style, y int) string {
	switch s {
	case StyleNumeric:
		return strconv.Itoa(y)
	case StyleTwoDigit:
		return component(StyleTwoDigit, y%100)
	}
	return ""
}
