package page

import (
	"github.com/PuerkitoBio/goquery"

	"visitavigliano/internal/model"
)

const classFadeIn = "opacity-0"

// BindContent fills every element tagged data-content-id from the content
// rows, applying each row with a matching ID in feed order. Images get
// their source swapped and fade in; other elements get the image as a
// background and their inner markup replaced by the text. An empty cell
// leaves what an earlier row set. Elements whose ID has no row are left as
// authored. It returns the number of elements touched.
func (d *Document) BindContent(rows []model.ContentEntry) int {
	byID := make(map[string][]model.ContentEntry, len(rows))
	for _, r := range rows {
		byID[r.ID] = append(byID[r.ID], r)
	}

	bound := 0
	d.doc.Find("[" + attrContentID + "]").Each(func(_ int, el *goquery.Selection) {
		changed := false
		for _, entry := range byID[el.AttrOr(attrContentID, "")] {
			if bindEntry(el, entry) {
				changed = true
			}
		}
		if changed {
			bound++
		}
	})
	return bound
}

func bindEntry(el *goquery.Selection, entry model.ContentEntry) bool {
	isImg := goquery.NodeName(el) == "img"
	changed := false
	if entry.Image != "" {
		if isImg {
			el.SetAttr("src", entry.Image)
			el.RemoveClass(classFadeIn)
		} else {
			setStyleProperty(el, "background-image", "url('"+entry.Image+"')")
		}
		changed = true
	}
	if entry.Text != "" && !isImg {
		el.SetHtml(entry.Text)
		changed = true
	}
	return changed
}
