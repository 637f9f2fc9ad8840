package site

import (
	"visitavigliano/internal/media"
	"visitavigliano/internal/model"
)

// Content feed columns.
const (
	contentColID = iota
	contentColText
	contentColImage
)

// ContentRows maps content feed rows to entries in feed order, skipping
// rows without an ID. An ID may repeat.
func ContentRows(rows [][]string) []model.ContentEntry {
	out := make([]model.ContentEntry, 0, len(rows))
	for _, row := range rows {
		id := cell(row, contentColID)
		if id == "" {
			continue
		}
		out = append(out, model.ContentEntry{
			ID:    id,
			Text:  cell(row, contentColText),
			Image: media.NormalizeImageURL(cell(row, contentColImage)),
		})
	}
	return out
}

// ContentMap keys entries by ID. Later entries overwrite earlier ones with
// the same ID.
func ContentMap(entries []model.ContentEntry) map[string]model.ContentEntry {
	out := make(map[string]model.ContentEntry, len(entries))
	for _, e := range entries {
		out[e.ID] = e
	}
	return out
}


// cell returns row[i], or "" when the row is short.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
