package site

import "visitavigliano/internal/dates"

// Labels used by the detail overlay.
const (
	DefaultEventSubtitle = "Evento in programma"

	AnchorTitle     = "Dettaglio"
	AnchorSubtitle  = "Territorio & Cultura"
	AnchorCategory  = "Info"
	AnchorTime      = "Sempre accessibile"
	AnchorLocation  = "Avigliano Umbro"
	AnchorOrganizer = "Comune di Avigliano Umbro"
)

// Detail is everything the shared detail overlay displays for one item.
type Detail struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Organizer   string `json:"organizer"`

	// IsEvent is true when the ID matched an event rather than a content
	// anchor.
	IsEvent bool `json:"is_event"`
}

// Detail resolves id to an overlay record. Event IDs win; anything else
// is treated as a content anchor looked up under the <id>_title,
// <id>_desc and <id>_img conventions. Unknown IDs get generic labels.
func (s Snapshot) Detail(id string, f *dates.Formatter) Detail {
	if e, ok := s.Event(id); ok {
		full, _ := f.Full(e.DateText)
		return Detail{
			ID:          e.ID,
			Title:       e.Title,
			Subtitle:    orDefault(e.Subtitle, DefaultEventSubtitle),
			Description: e.Description,
			Image:       e.Image,
			Category:    e.Category,
			Time:        full + " | Ore " + e.Time,
			Location:    e.Location,
			Organizer:   e.Organizer,
			IsEvent:     true,
		}
	}

	return Detail{
		ID:          id,
		Title:       s.firstText(AnchorTitle, id+"_title", id),
		Subtitle:    AnchorSubtitle,
		Description: s.firstText("", id+"_desc"),
		Image:       s.firstImage(id+"_img", id),
		Category:    AnchorCategory,
		Time:        AnchorTime,
		Location:    AnchorLocation,
		Organizer:   AnchorOrganizer,
	}
}

func (s Snapshot) firstText(def string, keys ...string) string {
	for _, k := range keys {
		if c, ok := s.Content[k]; ok && c.Text != "" {
			return c.Text
		}
	}
	return def
}

func (s Snapshot) firstImage(keys ...string) string {
	for _, k := range keys {
		if c, ok := s.Content[k]; ok && c.Image != "" {
			return c.Image
		}
	}
	return ""
}
