package site

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"visitavigliano/internal/csvfeed"
	"visitavigliano/internal/dates"
	appLog "visitavigliano/internal/log"
)

const placeholder = "https://images.example.com/placeholder.jpg"

func testFormatter(t *testing.T) *dates.Formatter {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)
	return dates.NewFormatter(loc)
}

// fixedNow is 2030-03-15 09:30 in Rome.
func fixedNow(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2030, time.March, 15, 9, 30, 0, 0, testFormatter(t).Location())
}

func TestBuildEventsEndToEndExample(t *testing.T) {
	f := testFormatter(t)
	rows := csvfeed.Parse("header\nApr 1 2030,10:00,Festa,,\"Desc, with comma\",Piazza,Sagra,,Org")

	events := BuildEvents(rows, f, placeholder, fixedNow(t))
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, "evt-0", e.ID)
	assert.Equal(t, "Festa", e.Title)
	assert.Equal(t, "10:00", e.Time)
	assert.Equal(t, "Desc, with comma", e.Description)
	assert.Equal(t, "Piazza", e.Location)
	assert.Equal(t, "Sagra", e.Category)
	assert.Equal(t, "Org", e.Organizer)
	assert.Equal(t, placeholder, e.Image)
	assert.Empty(t, e.Subtitle)
}

func TestBuildEventsAppliesFallbacks(t *testing.T) {
	events := BuildEvents([][]string{{"2030-05-01"}}, testFormatter(t), placeholder, fixedNow(t))
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, DefaultTime, e.Time)
	assert.Equal(t, DefaultTitle, e.Title)
	assert.Equal(t, DefaultLocation, e.Location)
	assert.Equal(t, DefaultCategory, e.Category)
	assert.Equal(t, DefaultOrganizer, e.Organizer)
	assert.Equal(t, placeholder, e.Image)
}

func TestBuildEventsNormalizesImage(t *testing.T) {
	rows := [][]string{{"2030-05-01", "", "", "", "", "", "", "https://drive.google.com/file/d/XYZ/view", ""}}
	events := BuildEvents(rows, testFormatter(t), placeholder, fixedNow(t))
	require.Len(t, events, 1)
	assert.Equal(t, "https://drive.google.com/thumbnail?id=XYZ&sz=w1200", events[0].Image)
}

func TestBuildEventsDropsPastAndInvalidDates(t *testing.T) {
	rows := [][]string{
		{"2030-03-14", "", "yesterday"},
		{"2030-03-15", "", "today"},
		{"sometime", "", "invalid"},
		{"2030-03-16", "", "tomorrow"},
	}
	f := testFormatter(t)
	now := time.Date(2030, time.March, 15, 9, 30, 0, 0, f.Location())
	events := BuildEvents(rows, f, placeholder, now)

	titles := make([]string, 0, len(events))
	for _, e := range events {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"today", "tomorrow"}, titles)

	// Repeated calls on the same day agree.
	again := BuildEvents(rows, f, placeholder, now.Add(10*time.Hour))
	assert.Equal(t, events, again)
}

func TestBuildEventsKeepsLooselyTypedDates(t *testing.T) {
	rows := [][]string{
		{"2030-4-1", "", "unpadded"},
		{"April 2, 2030 18:00", "", "month name with time"},
		{"2030/04/03 21:30", "", "slash with time"},
		{"Thu Apr 04 2030 10:00:00 GMT+0200 (Ora legale dell’Europa centrale)", "", "date string"},
	}
	events := BuildEvents(rows, testFormatter(t), placeholder, fixedNow(t))
	require.Len(t, events, 4)
	for i, e := range events {
		assert.Equal(t, i+1, e.Date.Day(), e.Title)
	}
}

func TestBuildEventsLogsUnparseableRows(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	appLog.SetOutput(zap.New(core))
	t.Cleanup(func() { appLog.SetOutput(nil) })

	rows := [][]string{
		{"2030-04-01", "", "kept"},
		{"prossima settimana", "", "lost"},
	}
	events := BuildEvents(rows, testFormatter(t), placeholder, fixedNow(t))
	require.Len(t, events, 1)

	dropped := logs.FilterMessage("event dropped: unparseable date").All()
	require.Len(t, dropped, 1)
	fields := dropped[0].ContextMap()
	assert.Equal(t, "prossima settimana", fields["date"])
	assert.Equal(t, "lost", fields["title"])
	assert.EqualValues(t, 1, fields["row"])
}

func TestBuildEventsSortsByDateKeepingRowIDs(t *testing.T) {
	rows := [][]string{
		{"2030-06-01", "", "june"},
		{"2030-04-01", "", "april"},
		{"2030-05-01", "", "may-a"},
		{"2030-05-01", "", "may-b"},
	}
	events := BuildEvents(rows, testFormatter(t), placeholder, fixedNow(t))
	require.Len(t, events, 4)

	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].Date.Before(events[i-1].Date), "events must be non-decreasing by date")
	}
	assert.Equal(t, "evt-1", events[0].ID)
	assert.Equal(t, "may-a", events[1].Title)
	assert.Equal(t, "may-b", events[2].Title)
	assert.Equal(t, "evt-0", events[3].ID)
}

func TestContentRowsKeepFeedOrder(t *testing.T) {
	rows := ContentRows([][]string{
		{"hero", "", "https://drive.google.com/open?id=IMG"},
		{"", "skipped"},
		{"hero", "Benvenuti"},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "https://drive.google.com/thumbnail?id=IMG&sz=w1200", rows[0].Image)
	assert.Equal(t, "Benvenuti", rows[1].Text)
	assert.Empty(t, rows[1].Image)
}

func TestContentMapLastWriteWins(t *testing.T) {
	rows := [][]string{
		{"hero_title", "Primo"},
		{"hero_title", "Secondo", "https://drive.google.com/open?id=IMG"},
		{"", "skipped"},
	}
	content := ContentMap(ContentRows(rows))
	require.Len(t, content, 1)
	assert.Equal(t, "Secondo", content["hero_title"].Text)
	assert.Equal(t, "https://drive.google.com/thumbnail?id=IMG&sz=w1200", content["hero_title"].Image)
}
