package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func TestJSONOutputCarriesServiceName(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "", "").Info("hello", "component", "test")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "weatherstyle", line["service"])
	require.Equal(t, "hello", line["msg"])
}

func TestTextFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "warning", "TEXT")
	log.Info("dropped")
	log.Warn("kept")

	require.NotContains(t, buf.String(), "dropped")
	require.Contains(t, buf.String(), "msg=kept")
	require.Contains(t, buf.String(), "service=weatherstyle")
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	require.Equal(t, slog.LevelInfo, parseLevel("verbose"))
	require.Equal(t, slog.LevelDebug, parseLevel(" DEBUG "))
}
