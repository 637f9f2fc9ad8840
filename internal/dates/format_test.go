package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rome(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)
	return loc
}

func TestParseAcceptsFeedShapes(t *testing.T) {
	f := NewFormatter(rome(t))
	want := time.Date(2030, time.April, 1, 0, 0, 0, 0, rome(t))

	for _, in := range []string{
		"Apr 1 2030",
		"Apr 01 2030",
		"April 1, 2030",
		"Mon Apr 1 2030",
		"1 Apr 2030",
		"2030-04-01",
		"2030/04/01",
		"4/1/2030",
		"04/01/2030",
		"  Apr   1  2030 ",
		"2030-4-1",
	} {
		got, ok := f.Parse(in)
		require.True(t, ok, "expected %q to parse", in)
		assert.True(t, want.Equal(got), "%q parsed as %v", in, got)
	}
}

func TestParseKeepsTimeOfDay(t *testing.T) {
	f := NewFormatter(rome(t))
	got, ok := f.Parse("2030-04-01T18:30")
	require.True(t, ok)
	assert.Equal(t, 18, got.Hour())
	assert.Equal(t, 30, got.Minute())
}

func TestParseAcceptsDateTimeShapes(t *testing.T) {
	f := NewFormatter(rome(t))
	want := time.Date(2030, time.April, 1, 10, 0, 0, 0, rome(t))

	for _, in := range []string{
		"April 1, 2030 10:00",
		"Apr 1, 2030 10:00",
		"Apr 1 2030 10:00",
		"2030/04/01 10:00",
		"2030/4/1 10:00:00",
		"Mon Apr 01 2030 10:00:00",
		"Mon Apr 01 2030 10:00:00 GMT+0200",
		"Mon Apr 01 2030 10:00:00 GMT+0200 (Ora legale dell’Europa centrale)",
	} {
		got, ok := f.Parse(in)
		require.True(t, ok, "expected %q to parse", in)
		assert.True(t, want.Equal(got), "%q parsed as %v", in, got)
		assert.Equal(t, rome(t).String(), got.Location().String(), in)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	f := NewFormatter(rome(t))
	for _, in := range []string{"", "domani", "31/31/2030", "2030-13-01", "Festa"} {
		_, ok := f.Parse(in)
		assert.False(t, ok, "expected %q to be rejected", in)
	}
}

func TestFullDefaultForm(t *testing.T) {
	f := NewFormatter(rome(t))
	got, ok := f.Full("Apr 1 2030")
	require.True(t, ok)
	assert.Equal(t, "lunedì 1 aprile 2030", got)
}

func TestFullMergesCallerOptions(t *testing.T) {
	f := NewFormatter(rome(t))

	got, ok := f.Full("2030-08-15", Options{Weekday: StyleOmit})
	require.True(t, ok)
	assert.Equal(t, "15 agosto 2030", got)

	got, ok = f.Full("2030-08-15", Options{Weekday: StyleShort, Month: StyleShort, Year: StyleOmit})
	require.True(t, ok)
	assert.Equal(t, "gio 15 ago", got)

	got, ok = f.Full("2030-08-05", Options{Weekday: StyleOmit, Day: StyleTwoDigit, Month: StyleTwoDigit})
	require.True(t, ok)
	assert.Equal(t, "05/08/2030", got)
}

func TestFullUnparseable(t *testing.T) {
	f := NewFormatter(rome(t))
	got, ok := f.Full("not a date")
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestParts(t *testing.T) {
	f := NewFormatter(rome(t))
	assert.Equal(t, DateParts{Day: "1", Month: "APR"}, f.Parts("Apr 1 2030"))
	assert.Equal(t, DateParts{Day: "24", Month: "DIC"}, f.Parts("2030-12-24"))
	assert.Equal(t, InvalidParts, f.Parts("boh"))
	assert.Equal(t, DateParts{Day: "--", Month: "---"}, f.Parts(""))
}

func TestNewFormatterNilLocation(t *testing.T) {
	f := NewFormatter(nil)
	assert.Equal(t, time.Local, f.Location())
}
