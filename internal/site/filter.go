package site

import "visitavigliano/internal/model"

// AllCategories is the sentinel category that selects every event.
const AllCategories = "Tutti"

// View is the filtered projection of the event list for one category.
type View struct {
	// Category is the selected category, AllCategories by default.
	Category string `json:"category"`
	// Categories lists AllCategories followed by every distinct category
	// in first-seen order.
	Categories []string      `json:"categories"`
	Events     []model.Event `json:"events"`
}

// NewView filters events by category. An empty category selects all.
func NewView(events []model.Event, category string) View {
	if category == "" {
		category = AllCategories
	}
	return View{
		Category:   category,
		Categories: Categories(events),
		Events:     Filter(events, category),
	}
}

// Categories returns AllCategories followed by the distinct non-empty
// categories of events, in first-seen order.
func Categories(events []model.Event) []string {
	out := []string{AllCategories}
	seen := map[string]bool{}
	for _, e := range events {
		if e.Category == "" || seen[e.Category] {
			continue
		}
		seen[e.Category] = true
		out = append(out, e.Category)
	}
	return out
}

// Filter returns events whose category equals category exactly, or all
// of them for AllCategories. The input is never modified.
func Filter(events []model.Event, category string) []model.Event {
	if category == "" || category == AllCategories {
		return events
	}
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}
