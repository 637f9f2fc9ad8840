package web

import (
	"net/url"
	"strconv"

	"visitavigliano/internal/dates"
	"visitavigliano/internal/page"
	"visitavigliano/internal/site"
)

// Interaction is the per-request UI state carried in the query string.
type Interaction struct {
	// Category selects the event filter (?categoria=).
	Category string
	// DetailID opens the detail overlay for an event or content anchor
	// (?evento=).
	DetailID string
	// MobileMenu opens the mobile menu (?menu=1).
	MobileMenu bool
	// Dismiss applies the escape-key behavior last (?chiudi=1).
	Dismiss bool
	// ScrollY is the scroll offset used for the navbar style (?y=).
	ScrollY int
}

// InteractionFromQuery reads an Interaction from URL query values.
func InteractionFromQuery(q url.Values) Interaction {
	y, _ := strconv.Atoi(q.Get("y"))
	return Interaction{
		Category:   q.Get("categoria"),
		DetailID:   q.Get("evento"),
		MobileMenu: q.Get("menu") == "1",
		Dismiss:    q.Get("chiudi") == "1",
		ScrollY:    y,
	}
}

// Renderer binds a state snapshot into page templates.
type Renderer struct {
	pages       *Pages
	dates       *dates.Formatter
	placeholder string
	maxSlider   int
}

// NewRenderer builds a Renderer.
func NewRenderer(pages *Pages, f *dates.Formatter, placeholder string, maxSlider int) *Renderer {
	return &Renderer{pages: pages, dates: f, placeholder: placeholder, maxSlider: maxSlider}
}

// Render produces the named page for snap and in. The steps mirror a
// page load: content blocks, then events, then chrome and overlay state.
func (r *Renderer) Render(name string, snap site.Snapshot, in Interaction) (*page.Document, error) {
	doc, err := r.pages.Open(name)
	if err != nil {
		return nil, err
	}

	doc.BindContent(snap.ContentRows)

	if snap.EventsUnavailable() {
		doc.RenderEventsError()
	} else {
		view := site.NewView(snap.Events, in.Category)
		if err := doc.RenderEvents(view, r.renderOptions(view.Category)); err != nil {
			return nil, err
		}
	}

	doc.NavScroll(in.ScrollY)
	if in.MobileMenu {
		doc.ToggleMobileMenu()
	}
	if in.DetailID != "" {
		doc.OpenDetail(snap.Detail(in.DetailID, r.dates), r.placeholder)
	}
	if in.Dismiss {
		doc.Dismiss()
	}

	doc.MarkReady()
	return doc, nil
}

func (r *Renderer) renderOptions(category string) page.RenderOptions {
	return page.RenderOptions{
		MaxSlider:    r.maxSlider,
		Dates:        r.dates,
		CategoryHref: categoryHref,
		DetailHref: func(id string) string {
			return detailHref(category, id)
		},
	}
}

func categoryHref(category string) string {
	if category == site.AllCategories {
		return "?"
	}
	return "?" + url.Values{"categoria": {category}}.Encode()
}

// detailHref keeps the active filter so closing the overlay lands on the
// same view.
func detailHref(category, id string) string {
	q := url.Values{"evento": {id}}
	if category != "" && category != site.AllCategories {
		q.Set("categoria", category)
	}
	return "?" + q.Encode()
}
