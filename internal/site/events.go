package site

import (
	"sort"
	"strconv"
	"time"

	"visitavigliano/internal/dates"
	appLog "visitavigliano/internal/log"
	"visitavigliano/internal/media"
	"visitavigliano/internal/model"
)

// Fallback labels for missing event cells.
const (
	DefaultTime      = "Orario da definire"
	DefaultTitle     = "Titolo non disponibile"
	DefaultLocation  = "Avigliano Umbro"
	DefaultCategory  = "Evento"
	DefaultOrganizer = "Comune di Avigliano Umbro"
)

// Events feed columns.
const (
	eventColDate = iota
	eventColTime
	eventColTitle
	eventColSubtitle
	eventColDescription
	eventColLocation
	eventColCategory
	eventColImage
	eventColOrganizer
)

// BuildEvents maps events feed rows to events, keeps only those dated
// today or later (midnight in the formatter's zone, relative to now) and
// sorts them by date. Event IDs come from the row position before
// filtering.
func BuildEvents(rows [][]string, f *dates.Formatter, placeholder string, now time.Time) []model.Event {
	today := midnight(now.In(f.Location()))

	events := make([]model.Event, 0, len(rows))
	for idx, row := range rows {
		e := model.Event{
			ID:          "evt-" + strconv.Itoa(idx),
			DateText:    cell(row, eventColDate),
			Time:        orDefault(cell(row, eventColTime), DefaultTime),
			Title:       orDefault(cell(row, eventColTitle), DefaultTitle),
			Subtitle:    cell(row, eventColSubtitle),
			Description: cell(row, eventColDescription),
			Location:    orDefault(cell(row, eventColLocation), DefaultLocation),
			Category:    orDefault(cell(row, eventColCategory), DefaultCategory),
			Image:       orDefault(media.NormalizeImageURL(cell(row, eventColImage)), placeholder),
			Organizer:   orDefault(cell(row, eventColOrganizer), DefaultOrganizer),
		}

		d, ok := f.Parse(e.DateText)
		if !ok {
			appLog.Debug("event dropped: unparseable date", "row", idx, "date", e.DateText, "title", e.Title)
			continue
		}
		if d.Before(today) {
			continue
		}
		e.Date = d
		events = append(events, e)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
