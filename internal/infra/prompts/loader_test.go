package prompts

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weatherstyle/internal/domain/styling"
	"github.com/yanqian/weatherstyle/internal/domain/weather"
)

type mapReader map[string]string

func (m mapReader) Get(_ context.Context, key string) (io.ReadCloser, error) {
	text, ok := m[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewBufferString(text)), nil
}

var testKeys = Keys{System: "sys.txt", User: "user.txt", Image: "image.txt"}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoaderWithoutStorageServesDefaults(t *testing.T) {
	tpl, err := NewLoader(nil, testKeys, testLogger()).Templates(context.Background())
	require.NoError(t, err)
	require.Contains(t, tpl.System, "JSON")
	require.Contains(t, tpl.User, "{IMAGE_URL}")
	require.Contains(t, tpl.Image, "{WEATHER_SUMMARY}")
}

func TestLoaderReadsStoredTemplates(t *testing.T) {
	reader := mapReader{"sys.txt": "system", "user.txt": "user {IMAGE_URL}"}
	tpl, err := NewLoader(reader, testKeys, testLogger()).Templates(context.Background())
	require.NoError(t, err)
	require.Equal(t, "system", tpl.System)
	require.Equal(t, "user {IMAGE_URL}", tpl.User)
	require.Contains(t, tpl.Image, "{STYLE_PRESET}")
}

func TestLoaderFailsWhenStoredTemplateMissing(t *testing.T) {
	reader := mapReader{"sys.txt": "system"}
	_, err := NewLoader(reader, testKeys, testLogger()).Templates(context.Background())
	require.ErrorContains(t, err, "user.txt")
}

func TestDefaultTemplatesFillCompletely(t *testing.T) {
	tpl, err := Defaults()
	require.NoError(t, err)

	req := styling.Request{
		ImageURL:          "https://img.test/me.jpg",
		Weather:           &weather.Weather{Temperature: 20, Main: "Clear", Description: "맑음"},
		Location:          "서울",
		StylePreset:       styling.PresetCasual,
		PreferredLanguage: "ko",
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, text := range []string{tpl.System, tpl.User, tpl.Image} {
		_, err := styling.BuildPrompt(text, req, now, "KR")
		require.NoError(t, err)
	}
}
