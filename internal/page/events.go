package page

import (
	"bytes"
	"html/template"
	"net/url"
	"strconv"

	"visitavigliano/internal/dates"
	"visitavigliano/internal/model"
	"visitavigliano/internal/site"
)

// Messages shown in place of event cards.
const (
	MsgSliderEmpty = "Nessun evento trovato in questa categoria."
	MsgGridEmpty   = "Nessun evento in questa categoria."
	MsgEventsError = "Errore nel caricamento degli eventi."
)

// DefaultMaxSlider caps the number of cards in the home slider.
const DefaultMaxSlider = 6

// RenderOptions controls how event cards and filters link back to the
// server.
type RenderOptions struct {
	MaxSlider int
	Dates     *dates.Formatter
	// CategoryHref returns the link that selects a category.
	CategoryHref func(category string) string
	// DetailHref returns the link that opens an item's detail overlay.
	DetailHref func(id string) string
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.MaxSlider <= 0 {
		o.MaxSlider = DefaultMaxSlider
	}
	if o.Dates == nil {
		o.Dates = dates.NewFormatter(nil)
	}
	if o.CategoryHref == nil {
		o.CategoryHref = func(c string) string {
			return "?" + url.Values{"categoria": {c}}.Encode()
		}
	}
	if o.DetailHref == nil {
		o.DetailHref = func(id string) string {
			return "?" + url.Values{"evento": {id}}.Encode()
		}
	}
	return o
}

var (
	cardTmpl = template.Must(template.New("card").Parse(`<article class="{{if .Grid}}w-full aspect-[7/10] border-sand hover:border-terracotta shadow-md hover:shadow-xl{{else}}w-[220px] sm:w-[240px] aspect-[7/10] flex-shrink-0 snap-start border-white/20 hover:border-gold{{end}} relative rounded-2xl overflow-hidden cursor-pointer border transition-all duration-500 hover:-translate-y-2 group" data-event-id="{{.ID}}">
<a href="{{.Href}}" class="absolute inset-0 z-10" role="button" tabindex="0" aria-label="Scopri l'evento: {{.Title}}"></a>
<img src="{{.Image}}" alt="{{.Title}}" class="absolute inset-0 w-full h-full object-cover transition-transform duration-700 group-hover:scale-110" loading="lazy">
<div class="absolute inset-0 bg-gradient-to-t from-ink via-ink/60 to-transparent"></div>
<span class="absolute top-3 right-3 px-3 py-1 rounded-full text-[9px] font-bold tracking-wider uppercase bg-gold text-ink shadow-lg" data-field="category">{{.Category}}</span>
<div class="absolute top-3 left-3 flex flex-col items-center px-3 py-2 rounded-xl bg-white/95 text-ink shadow-lg">
<span class="text-2xl font-serif font-semibold leading-none" data-field="day">{{.Day}}</span>
<span class="text-[9px] font-bold tracking-wider uppercase text-terracotta" data-field="month">{{.Month}}</span>
</div>
<div class="absolute bottom-0 left-0 right-0 p-5 text-white">
<div class="flex flex-col gap-2 mb-3 text-[11px] text-white/80">
<span class="flex items-center gap-1.5" data-field="time"><i data-lucide="clock" class="w-3 h-3 text-gold"></i>{{.Time}}</span>
<span class="flex items-center gap-1.5" data-field="location"><i data-lucide="map-pin" class="w-3 h-3 text-gold"></i>{{.Location}}</span>
</div>
<h3 class="text-lg font-serif text-white leading-tight line-clamp-2 group-hover:text-gold transition-colors" data-field="title">{{.Title}}</h3>
{{with .Subtitle}}<p class="text-xs text-white/60 italic line-clamp-1 mt-1" data-field="subtitle">{{.}}</p>{{end}}
</div>
</article>`))

	filtersTmpl = template.Must(template.New("filters").Parse(`{{range .}}<a href="{{.Href}}" data-category="{{.Name}}" role="button" aria-pressed="{{.Active}}" class="filter-btn px-4 py-2 rounded-full text-xs font-semibold tracking-wider uppercase border transition-all {{.Classes}}">{{.Name}}</a>{{end}}`))

	messageTmpl = template.Must(template.New("message").Parse(`<div class="{{.Class}}">{{.Text}}</div>`))
)

type cardData struct {
	ID       string
	Href     string
	Title    string
	Subtitle string
	Time     string
	Location string
	Category string
	Image    string
	Day      string
	Month    string
	Grid     bool
}

type filterData struct {
	Name    string
	Href    string
	Active  bool
	Classes string
}

// Filter button variants. The events page sits on a light background,
// the home page on a dark one.
const (
	filterLightActive   = "bg-forest text-white border-forest"
	filterLightInactive = "bg-white text-stone border-sand hover:border-forest hover:text-forest"
	filterDarkActive    = "bg-white text-forest border-white"
	filterDarkInactive  = "bg-transparent text-white/60 border-white/20 hover:border-white hover:text-white"

	classSliderMessage = "w-full text-center text-white/60 py-10 font-serif italic"
	classGridMessage   = "col-span-full text-center py-20 text-stone font-serif text-xl"
	classErrorMessage  = "w-full text-center text-white/60 py-10"
)

// RenderEvents draws the category filters, the home slider and the events
// grid for view. Each region is rendered only when its mount point exists.
func (d *Document) RenderEvents(view site.View, opts RenderOptions) error {
	opts = opts.withDefaults()

	if err := d.renderFilters(view, opts); err != nil {
		return err
	}

	if slider, ok := d.Element(IDEventsSlider); ok {
		shown := view.Events
		if len(shown) > opts.MaxSlider {
			shown = shown[:opts.MaxSlider]
		}
		markup, err := renderCards(shown, false, opts)
		if err != nil {
			return err
		}
		if len(shown) == 0 {
			markup = renderMessage(classSliderMessage, MsgSliderEmpty)
		}
		slider.SetHtml(markup)

		if btn, ok := d.Element(IDLoadMore); ok {
			if len(view.Events) <= opts.MaxSlider {
				btn.AddClass(classHidden)
			} else {
				btn.RemoveClass(classHidden)
			}
		}
	}

	if grid, ok := d.Element(IDEventsGrid); ok {
		markup, err := renderCards(view.Events, true, opts)
		if err != nil {
			return err
		}
		if len(view.Events) == 0 {
			markup = renderMessage(classGridMessage, MsgGridEmpty)
		}
		grid.SetHtml(markup)

		if count, ok := d.Element(IDEventsCount); ok {
			count.SetText(strconv.Itoa(len(view.Events)))
		}
	}
	return nil
}

// RenderEventsError replaces the slider and grid with the load error
// placeholder.
func (d *Document) RenderEventsError() {
	msg := renderMessage(classErrorMessage, MsgEventsError)
	if slider, ok := d.Element(IDEventsSlider); ok {
		slider.SetHtml(msg)
	}
	if grid, ok := d.Element(IDEventsGrid); ok {
		grid.SetHtml(msg)
	}
	if btn, ok := d.Element(IDLoadMore); ok {
		btn.AddClass(classHidden)
	}
}

func (d *Document) renderFilters(view site.View, opts RenderOptions) error {
	container, ok := d.Element(IDCategoryFilters)
	if !ok {
		return nil
	}
	_, light := d.Element(IDEventsGrid)

	buttons := make([]filterData, 0, len(view.Categories))
	for _, c := range view.Categories {
		active := c == view.Category
		buttons = append(buttons, filterData{
			Name:    c,
			Href:    opts.CategoryHref(c),
			Active:  active,
			Classes: filterClasses(light, active),
		})
	}

	var buf bytes.Buffer
	if err := filtersTmpl.Execute(&buf, buttons); err != nil {
		return err
	}
	container.SetHtml(buf.String())
	return nil
}

func filterClasses(light, active bool) string {
	switch {
	case light && active:
		return filterLightActive
	case light:
		return filterLightInactive
	case active:
		return filterDarkActive
	default:
		return filterDarkInactive
	}
}

func renderCards(events []model.Event, grid bool, opts RenderOptions) (string, error) {
	var buf bytes.Buffer
	for _, e := range events {
		parts := opts.Dates.Parts(e.DateText)
		err := cardTmpl.Execute(&buf, cardData{
			ID:       e.ID,
			Href:     opts.DetailHref(e.ID),
			Title:    e.Title,
			Subtitle: e.Subtitle,
			Time:     e.Time,
			Location: e.Location,
			Category: e.Category,
			Image:    e.Image,
			Day:      parts.Day,
			Month:    parts.Month,
			Grid:     grid,
		})
		if err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func renderMessage(class, text string) string {
	var buf bytes.Buffer
	// Static inputs; the template cannot fail.
	_ = messageTmpl.Execute(&buf, struct{ Class, Text string }{class, text})
	return buf.String()
}
