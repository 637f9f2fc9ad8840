package model

import "time"

// ContentEntry is one generic text/image block from the content feed,
// addressed from the page by its ID (data-content-id).
type ContentEntry struct {
	ID string `json:"id"`

	// Text is raw markup and is inserted into the page as-is.
	Text string `json:"text,omitempty"`

	// Image is already normalized to a direct-serving URL.
	Image string `json:"image,omitempty"`
}

// Event is a single dated row of the events feed after fallbacks have
// been applied.
type Event struct {
	// ID is derived from the row position ("evt-<n>") and is only stable
	// within one load of the feed.
	ID string `json:"id"`

	// DateText is the raw date cell; Date is its parsed value in the
	// configured zone.
	DateText string    `json:"date_text"`
	Date     time.Time `json:"date"`

	Time        string `json:"time"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Organizer   string `json:"organizer"`
}
