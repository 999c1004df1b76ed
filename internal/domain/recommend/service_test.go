package recommend

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weatherstyle/internal/domain/weather"
	apperrors "github.com/yanqian/weatherstyle/pkg/errors"
)

func newTestService() Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestServiceRequiresWeatherAndPreferences(t *testing.T) {
	svc := newTestService()

	_, err := svc.Styles(context.Background(), Request{Preferences: &Preferences{}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Activities(context.Background(), Request{Weather: &weather.Weather{}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestServiceStyles(t *testing.T) {
	svc := newTestService()
	resp, err := svc.Styles(context.Background(), Request{
		Weather:     &weather.Weather{Temperature: 12, Main: "Rain"},
		Preferences: &Preferences{},
	})
	require.NoError(t, err)
	require.Len(t, resp.Recommendations, 2)
	require.Equal(t, "cool_1", resp.Recommendations[0].ID)
	require.Equal(t, "rainy_1", resp.Recommendations[1].ID)
}

func TestServiceActivities(t *testing.T) {
	svc := newTestService()
	resp, err := svc.Activities(context.Background(), Request{
		Weather:     &weather.Weather{Temperature: 25, Main: "Clear"},
		Preferences: &Preferences{},
	})
	require.NoError(t, err)
	require.Len(t, resp.Recommendations, 1)
	require.Equal(t, "outdoor_1", resp.Recommendations[0].ID)
}
