package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorPrependsErrField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetOutput(zap.New(core))
	t.Cleanup(func() { SetOutput(nil) })

	Error("feed fetch failed", errors.New("boom"), "feed", "events")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "feed fetch failed", entries[0].Message)
	fields := entries[0].ContextMap()
	require.Equal(t, "boom", fields["err"])
	require.Equal(t, "events", fields["feed"])
}

func TestInfoCarriesKeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetOutput(zap.New(core))
	t.Cleanup(func() { SetOutput(nil) })

	Info("events loaded", "count", 3)
	Debug("dropped by the observer level")

	require.Equal(t, 1, logs.Len())
	require.EqualValues(t, 3, logs.All()[0].ContextMap()["count"])
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, LevelDebug, ParseLevel("debug"))
	require.Equal(t, LevelError, ParseLevel(" ERROR "))
	require.Equal(t, LevelInfo, ParseLevel("verbose"))
	require.Equal(t, LevelInfo, ParseLevel(""))
}
