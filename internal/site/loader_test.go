package site

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visitavigliano/internal/feed"
)

type fakeFetcher struct {
	bodies map[string]string
	errs   map[string]error
	calls  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, src feed.Source) (string, error) {
	f.calls = append(f.calls, src.ID)
	if err := f.errs[src.ID]; err != nil {
		return "", err
	}
	return f.bodies[src.ID], nil
}

func newTestLoader(t *testing.T, fetcher Fetcher, state *State) *Loader {
	t.Helper()
	return NewLoader(fetcher, state, LoaderConfig{
		Content:          feed.Source{ID: "content", URL: "https://example.com/content.csv"},
		Events:           feed.Source{ID: "events", URL: "https://example.com/events.csv"},
		PlaceholderImage: placeholder,
		Dates:            testFormatter(t),
		Now:              func() time.Time { return fixedNow(t) },
	})
}

func TestLoadRunsContentThenEvents(t *testing.T) {
	fetcher := &fakeFetcher{bodies: map[string]string{
		"content": "id,text,img\nhero_title,Benvenuti,\n",
		"events":  "date,time,title\n2030-04-01,10:00,Festa\n2020-01-01,10:00,Passato\n",
	}}
	state := NewState()

	require.NoError(t, newTestLoader(t, fetcher, state).Load(context.Background()))
	assert.Equal(t, []string{"content", "events"}, fetcher.calls)

	snap := state.Snapshot()
	assert.Equal(t, "Benvenuti", snap.Content["hero_title"].Text)
	require.Len(t, snap.Events, 1)
	assert.Equal(t, "Festa", snap.Events[0].Title)
	assert.True(t, snap.EventsLoaded)
	assert.False(t, snap.EventsUnavailable())
}

func TestLoadContentFailureIsSilentAndKeepsMap(t *testing.T) {
	state := NewState()
	loader := newTestLoader(t, &fakeFetcher{bodies: map[string]string{
		"content": "h\nhero_title,Vecchio\n",
		"events":  "h\n",
	}}, state)
	require.NoError(t, loader.Load(context.Background()))

	failing := newTestLoader(t, &fakeFetcher{
		errs:   map[string]error{"content": errors.New("offline")},
		bodies: map[string]string{"events": "h\n2030-04-01,,Festa\n"},
	}, state)
	err := failing.Load(context.Background())
	require.Error(t, err)

	snap := state.Snapshot()
	assert.Equal(t, "Vecchio", snap.Content["hero_title"].Text)
	assert.Error(t, snap.ContentErr)
	assert.True(t, snap.ContentStale())
	require.Len(t, snap.Events, 1, "events still load after a content failure")
}

func TestLoadEventsFailureBeforeAnySuccess(t *testing.T) {
	state := NewState()
	loader := newTestLoader(t, &fakeFetcher{errs: map[string]error{"events": errors.New("boom")}}, state)

	err := loader.LoadEvents(context.Background())
	require.Error(t, err)
	assert.True(t, state.Snapshot().EventsUnavailable())
}

func TestLoadEventsFailureAfterSuccessKeepsList(t *testing.T) {
	state := NewState()
	ok := newTestLoader(t, &fakeFetcher{bodies: map[string]string{"events": "h\n2030-04-01,,Festa\n"}}, state)
	require.NoError(t, ok.LoadEvents(context.Background()))

	bad := newTestLoader(t, &fakeFetcher{errs: map[string]error{"events": errors.New("boom")}}, state)
	require.Error(t, bad.LoadEvents(context.Background()))

	snap := state.Snapshot()
	assert.False(t, snap.EventsUnavailable())
	assert.Len(t, snap.Events, 1)
	assert.Error(t, snap.EventsErr)
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	loader := newTestLoader(t, &fakeFetcher{}, NewState())
	_, err := NewScheduler(context.Background(), "every now and then", nil, loader)
	require.Error(t, err)
}

func TestSchedulerStartStop(t *testing.T) {
	loader := newTestLoader(t, &fakeFetcher{}, NewState())
	s, err := NewScheduler(context.Background(), "*/15 * * * *", testFormatter(t).Location(), loader)
	require.NoError(t, err)

	s.Start()
	require.Eventually(t, func() bool { return !s.Next().IsZero() }, time.Second, 10*time.Millisecond)
	s.Stop()
}
