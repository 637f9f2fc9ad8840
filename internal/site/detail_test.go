package site

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"visitavigliano/internal/model"
)

func TestDetailForEvent(t *testing.T) {
	f := testFormatter(t)
	snap := Snapshot{
		Events: []model.Event{{
			ID:          "evt-0",
			DateText:    "Apr 1 2030",
			Date:        time.Date(2030, time.April, 1, 0, 0, 0, 0, f.Location()),
			Time:        "10:00",
			Title:       "Festa",
			Description: "Riga uno\nRiga due",
			Location:    "Piazza",
			Category:    "Sagra",
			Image:       placeholder,
			Organizer:   "Org",
		}},
		// A content entry with the same ID must not be consulted.
		Content: map[string]model.ContentEntry{
			"evt-0":       {ID: "evt-0", Text: "from content"},
			"evt-0_title": {ID: "evt-0_title", Text: "from content"},
		},
	}

	d := snap.Detail("evt-0", f)
	assert.True(t, d.IsEvent)
	assert.Equal(t, "Festa", d.Title)
	assert.Equal(t, DefaultEventSubtitle, d.Subtitle)
	assert.Equal(t, "lunedì 1 aprile 2030 | Ore 10:00", d.Time)
	assert.Equal(t, "Riga uno\nRiga due", d.Description)
	assert.Equal(t, "Sagra", d.Category)
	assert.Equal(t, "Piazza", d.Location)
	assert.Equal(t, "Org", d.Organizer)
}

func TestDetailForContentAnchor(t *testing.T) {
	snap := Snapshot{Content: map[string]model.ContentEntry{
		"castello_title": {ID: "castello_title", Text: "Il Castello"},
		"castello_desc":  {ID: "castello_desc", Text: "Storia del borgo"},
		"castello":       {ID: "castello", Text: "Castello", Image: "https://img.example.com/c.jpg"},
	}}

	d := snap.Detail("castello", testFormatter(t))
	assert.False(t, d.IsEvent)
	assert.Equal(t, "Il Castello", d.Title)
	assert.Equal(t, "Storia del borgo", d.Description)
	assert.Equal(t, "https://img.example.com/c.jpg", d.Image)
	assert.Equal(t, AnchorSubtitle, d.Subtitle)
	assert.Equal(t, AnchorCategory, d.Category)
	assert.Equal(t, AnchorTime, d.Time)
	assert.Equal(t, AnchorLocation, d.Location)
	assert.Equal(t, AnchorOrganizer, d.Organizer)
}

func TestDetailAnchorPrefersSuffixedImage(t *testing.T) {
	snap := Snapshot{Content: map[string]model.ContentEntry{
		"lago":     {ID: "lago", Text: "Lago", Image: "https://img.example.com/bare.jpg"},
		"lago_img": {ID: "lago_img", Image: "https://img.example.com/suffixed.jpg"},
	}}

	d := snap.Detail("lago", testFormatter(t))
	assert.Equal(t, "Lago", d.Title)
	assert.Equal(t, "https://img.example.com/suffixed.jpg", d.Image)
	assert.Empty(t, d.Description)
}

func TestDetailUnknownID(t *testing.T) {
	d := Snapshot{}.Detail("nope", testFormatter(t))
	assert.False(t, d.IsEvent)
	assert.Equal(t, AnchorTitle, d.Title)
	assert.Empty(t, d.Description)
	assert.Empty(t, d.Image)
	assert.Equal(t, AnchorOrganizer, d.Organizer)
}
