package site

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"visitavigliano/internal/model"
)

func sampleEvents() []model.Event {
	return []model.Event{
		{ID: "evt-0", Title: "Sagra del tartufo", Category: "Sagra"},
		{ID: "evt-1", Title: "Concerto in piazza", Category: "Musica"},
		{ID: "evt-2", Title: "Sagra della castagna", Category: "Sagra"},
		{ID: "evt-3", Title: "Senza categoria", Category: ""},
	}
}

func TestCategoriesFirstSeenOrder(t *testing.T) {
	assert.Equal(t, []string{AllCategories, "Sagra", "Musica"}, Categories(sampleEvents()))
	assert.Equal(t, []string{AllCategories}, Categories(nil))
}

func TestFilterExactMatch(t *testing.T) {
	got := Filter(sampleEvents(), "Sagra")
	assert.Len(t, got, 2)
	for _, e := range got {
		assert.Equal(t, "Sagra", e.Category)
	}
	assert.Empty(t, Filter(sampleEvents(), "sagra"))
}

func TestFilterAllRestoresFullList(t *testing.T) {
	events := sampleEvents()
	_ = Filter(events, "Musica")
	assert.Equal(t, events, Filter(events, AllCategories))
	assert.Equal(t, events, Filter(events, ""))
}

func TestNewViewIsIdempotent(t *testing.T) {
	events := sampleEvents()
	first := NewView(events, "Musica")
	second := NewView(events, "Musica")
	assert.Equal(t, first, second)
	assert.Equal(t, "Musica", first.Category)
	assert.Len(t, first.Events, 1)

	all := NewView(events, "")
	assert.Equal(t, AllCategories, all.Category)
	assert.Len(t, all.Events, len(events))
}
