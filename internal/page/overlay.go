package page

import (
	"strings"

	"visitavigliano/internal/site"
)

// NavScrollThreshold is the scroll offset past which the navbar turns
// solid.
const NavScrollThreshold = 100

const navScrolledClasses = "bg-forest/95 backdrop-blur-xl shadow-lg"

// OpenDetail fills the shared overlay from det and shows it. A missing
// image falls back to placeholder. It reports false when the page has no
// overlay.
//
// Event fields other than the description are set as text, as on the event
// cards. Content anchor fields come from the content feed and are markup.
// The description is always markup, with newlines turned into <br>.
func (d *Document) OpenDetail(det site.Detail, placeholder string) bool {
	modal, ok := d.Element(IDModal)
	if !ok {
		return false
	}

	set := d.setHTML
	if det.IsEvent {
		set = d.setText
	}
	set(IDModalTitle, det.Title)
	set(IDModalSubtitle, det.Subtitle)
	set(IDModalCategory, det.Category)
	set(IDModalTime, det.Time)
	set(IDModalLocation, det.Location)
	set(IDModalOrganizer, det.Organizer)
	d.setHTML(IDModalDesc, strings.ReplaceAll(det.Description, "\n", "<br>"))

	if img, ok := d.Element(IDModalImage); ok {
		src := det.Image
		if src == "" {
			src = placeholder
		}
		img.SetAttr("src", src)
	}

	modal.RemoveClass(classHidden)
	modal.SetAttr("aria-hidden", "false")
	modal.Find("[data-modal-close]").First().SetAttr("autofocus", "")
	d.lockScroll(true)
	return true
}

// CloseDetail hides the overlay and releases the scroll lock.
func (d *Document) CloseDetail() {
	modal, ok := d.Element(IDModal)
	if !ok {
		return
	}
	modal.AddClass(classHidden)
	modal.SetAttr("aria-hidden", "true")
	modal.Find("[autofocus]").RemoveAttr("autofocus")
	d.lockScroll(false)
}

// DetailOpen reports whether the overlay is visible.
func (d *Document) DetailOpen() bool {
	modal, ok := d.Element(IDModal)
	return ok && !modal.HasClass(classHidden)
}

// ToggleMobileMenu flips the mobile menu between hidden and shown,
// mirroring the state in the toggle's aria-expanded and the body scroll
// lock. It reports false when the page has no mobile menu.
func (d *Document) ToggleMobileMenu() bool {
	menu, ok := d.Element(IDMobileMenu)
	if !ok {
		return false
	}
	opening := menu.HasClass(classHidden)
	if opening {
		menu.RemoveClass(classHidden)
	} else {
		menu.AddClass(classHidden)
	}
	if btn, ok := d.Element(IDMobileMenuBtn); ok {
		if opening {
			btn.SetAttr("aria-expanded", "true")
		} else {
			btn.SetAttr("aria-expanded", "false")
		}
	}
	d.lockScroll(opening)
	return true
}

// MobileMenuOpen reports whether the mobile menu is shown.
func (d *Document) MobileMenuOpen() bool {
	menu, ok := d.Element(IDMobileMenu)
	return ok && !menu.HasClass(classHidden)
}

// Dismiss handles the Escape key: it closes the overlay if open,
// otherwise the mobile menu if open, otherwise nothing.
func (d *Document) Dismiss() {
	switch {
	case d.DetailOpen():
		d.CloseDetail()
	case d.MobileMenuOpen():
		d.ToggleMobileMenu()
	}
}

// NavScroll sets the navbar style for scroll offset y.
func (d *Document) NavScroll(y int) {
	nav, ok := d.Element(IDNavbar)
	if !ok {
		return
	}
	if y > NavScrollThreshold {
		nav.AddClass(navScrolledClasses)
	} else {
		nav.RemoveClass(navScrolledClasses)
	}
}

func (d *Document) setHTML(id, markup string) {
	if el, ok := d.Element(id); ok {
		el.SetHtml(markup)
	}
}

func (d *Document) setText(id, text string) {
	if el, ok := d.Element(id); ok {
		el.SetText(text)
	}
}
