// Package page binds loaded site data into an HTML page document.
//
// The page markup is owned by the site design; this package only knows the
// element IDs and data attributes that act as mount points. Every mount
// point is optional: Element reports whether it exists and callers branch
// on that instead of relying on silent no-ops.
package page

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Mount point IDs shared with the page markup.
const (
	IDEventsSlider    = "events-slider"
	IDEventsGrid      = "events-page-grid"
	IDCategoryFilters = "category-filters"
	IDLoadMore        = "load-more-btn"
	IDEventsCount     = "events-count"

	IDModal          = "info-modal"
	IDModalTitle     = "modal-title"
	IDModalSubtitle  = "modal-subtitle"
	IDModalDesc      = "modal-desc"
	IDModalCategory  = "modal-category"
	IDModalTime      = "modal-time"
	IDModalLocation  = "modal-location"
	IDModalOrganizer = "modal-organizer"
	IDModalImage     = "modal-img"

	IDNavbar        = "navbar"
	IDMobileMenu    = "mobile-menu"
	IDMobileMenuBtn = "mobile-menu-btn"

	attrContentID = "data-content-id"
	classHidden   = "hidden"
)

// Document is one parsed page being prepared for a single response.
// It is not safe for concurrent use.
type Document struct {
	doc *goquery.Document
}

// Parse reads page markup.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("page: parse: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Element returns the element with the given id and whether it exists.
func (d *Document) Element(id string) (*goquery.Selection, bool) {
	sel := d.doc.Find("#" + id).First()
	return sel, sel.Length() > 0
}

// Selection exposes the underlying document root, mainly for tests.
func (d *Document) Selection() *goquery.Selection {
	return d.doc.Selection
}

// HTML renders the document back to markup.
func (d *Document) HTML() (string, error) {
	return d.doc.Html()
}

// WriteTo writes the rendered document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	markup, err := d.HTML()
	if err != nil {
		return 0, fmt.Errorf("page: render: %w", err)
	}
	n, err := io.WriteString(w, markup)
	return int64(n), err
}

// MarkReady flags the body with data-ready="true" once binding is done;
// the snapshot capture waits for it.
func (d *Document) MarkReady() {
	d.body().SetAttr("data-ready", "true")
}

func (d *Document) body() *goquery.Selection {
	return d.doc.Find("body").First()
}

// lockScroll sets or clears overflow:hidden on the body.
func (d *Document) lockScroll(locked bool) {
	if locked {
		setStyleProperty(d.body(), "overflow", "hidden")
		return
	}
	removeStyleProperty(d.body(), "overflow")
}

// ScrollLocked reports whether background scrolling is suppressed.
func (d *Document) ScrollLocked() bool {
	v, _ := styleProperty(d.body(), "overflow")
	return v == "hidden"
}

// styleDecls splits an inline style attribute into ordered declarations.
func styleDecls(sel *goquery.Selection) [][2]string {
	raw, _ := sel.Attr("style")
	var out [][2]string
	for _, decl := range strings.Split(raw, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, [2]string{name, strings.TrimSpace(value)})
	}
	return out
}

func writeStyle(sel *goquery.Selection, decls [][2]string) {
	if len(decls) == 0 {
		sel.RemoveAttr("style")
		return
	}
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d[0]+": "+d[1])
	}
	sel.SetAttr("style", strings.Join(parts, "; "))
}

func styleProperty(sel *goquery.Selection, name string) (string, bool) {
	for _, d := range styleDecls(sel) {
		if strings.EqualFold(d[0], name) {
			return d[1], true
		}
	}
	return "", false
}

func setStyleProperty(sel *goquery.Selection, name, value string) {
	decls := styleDecls(sel)
	for i := range decls {
		if strings.EqualFold(decls[i][0], name) {
			decls[i][1] = value
			writeStyle(sel, decls)
			return
		}
	}
	writeStyle(sel, append(decls, [2]string{name, value}))
}

func removeStyleProperty(sel *goquery.Selection, name string) {
	decls := styleDecls(sel)
	kept := decls[:0]
	for _, d := range decls {
		if !strings.EqualFold(d[0], name) {
			kept = append(kept, d)
		}
	}
	writeStyle(sel, kept)
}
