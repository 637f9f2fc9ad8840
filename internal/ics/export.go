// Package ics publishes the upcoming events as an iCalendar feed so
// visitors can subscribe from their calendar app.
package ics

import (
	"html"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	appLog "visitavigliano/internal/log"
	"visitavigliano/internal/model"
)

const (
	productID = "-//Comune di Avigliano Umbro//visitavigliano//IT"
	uidDomain = "visitavigliano"

	// DefaultDuration is used for events with a recognizable start time.
	DefaultDuration = 2 * time.Hour
)

// uidNamespace scopes event UIDs so they stay stable across refreshes
// even though row-based event IDs do not.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://visitavigliano/eventi"))

// startTimePattern picks a leading clock time out of the free-text time
// column, e.g. "21:00", "9.30 - 12.00", "ore 18:00".
var startTimePattern = regexp.MustCompile(`^(?:ore\s+)?(\d{1,2})[:.](\d{2})\b`)

// Options tunes the exported calendar.
type Options struct {
	// Name is the calendar display name.
	Name string
	// Location is the zone event dates are expressed in.
	Location *time.Location
	// DetailURL, when set, returns the public link of an event.
	DetailURL func(id string) string
	// Now stamps DTSTAMP; defaults to time.Now.
	Now func() time.Time
}

// Exporter turns events into an iCalendar document.
type Exporter struct {
	opts   Options
	policy *bluemonday.Policy
}

// NewExporter builds an Exporter.
func NewExporter(opts Options) *Exporter {
	if opts.Name == "" {
		opts.Name = "Eventi Avigliano Umbro"
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Exporter{opts: opts, policy: bluemonday.StrictPolicy()}
}

// Calendar builds the calendar for events.
func (x *Exporter) Calendar(events []model.Event) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName(x.opts.Name)
	cal.SetXWRCalName(x.opts.Name)
	cal.SetXWRTimezone(x.opts.Location.String())

	stamp := x.opts.Now().UTC()
	for _, e := range events {
		ev := cal.AddEvent(EventUID(e))
		ev.SetDtStampTime(stamp)
		ev.SetSummary(e.Title)
		ev.SetLocation(e.Location)
		if desc := x.plainDescription(e); desc != "" {
			ev.SetDescription(desc)
		}
		if e.Category != "" {
			ev.AddProperty(ical.ComponentPropertyCategories, e.Category)
		}
		if e.Organizer != "" {
			ev.AddProperty(ical.ComponentProperty("X-ORGANIZER-NAME"), e.Organizer)
		}
		if x.opts.DetailURL != nil {
			ev.SetURL(x.opts.DetailURL(e.ID))
		}

		day := time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, x.opts.Location)
		if start, ok := startTime(day, e.Time); ok {
			ev.SetStartAt(start)
			ev.SetEndAt(start.Add(DefaultDuration))
		} else {
			ev.SetAllDayStartAt(day)
			ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		}
	}
	return cal
}

// Write serializes the calendar for events to w.
func (x *Exporter) Write(w io.Writer, events []model.Event) error {
	if err := x.Calendar(events).SerializeTo(w); err != nil {
		appLog.Error("ics export failed", err, "event_count", len(events))
		return err
	}
	appLog.Debug("ics export completed", "event_count", len(events))
	return nil
}

// EventUID derives a stable UID from the event's date, title and place.
func EventUID(e model.Event) string {
	key := strings.Join([]string{e.Date.Format("2006-01-02"), e.Title, e.Location}, "|")
	return uuid.NewSHA1(uidNamespace, []byte(key)).String() + "@" + uidDomain
}

// plainDescription strips markup from the description and appends the
// subtitle and free-text time, which calendars have no field for.
func (x *Exporter) plainDescription(e model.Event) string {
	var parts []string
	if e.Subtitle != "" {
		parts = append(parts, e.Subtitle)
	}
	if e.Description != "" {
		parts = append(parts, html.UnescapeString(x.policy.Sanitize(e.Description)))
	}
	if e.Time != "" {
		parts = append(parts, "Orario: "+e.Time)
	}
	return strings.Join(parts, "\n\n")
}

func startTime(day time.Time, text string) (time.Time, bool) {
	m := startTimePattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(text)))
	if m == nil {
		return time.Time{}, false
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), true
}
