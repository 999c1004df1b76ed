package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGroupByDateUsesUTCCalendarDays(t *testing.T) {
	day1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).Unix()
	day2 := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC).Unix()
	samples := []sample{
		{Dt: day2 + 3*3600, Main: mainBlock{TempMin: 12, TempMax: 18}, Weather: []conditions{{Main: "Rain", Description: "비", Icon: "10d"}}},
		{Dt: day1, Main: mainBlock{TempMin: 14, TempMax: 20}, Weather: []conditions{{Main: "Clear", Description: "맑음", Icon: "01d"}}},
		{Dt: day1 + 3*3600, Main: mainBlock{TempMin: 11, TempMax: 24}, Weather: []conditions{{Main: "Clouds", Description: "흐림", Icon: "03d"}}},
		{Dt: day1 + 21*3600, Main: mainBlock{TempMin: 13, TempMax: 19}},
	}

	f, err := groupByDate(samples)
	require.NoError(t, err)
	require.Len(t, f.Days, 2)

	require.Equal(t, "2024-05-01", f.Days[0].Date)
	require.Equal(t, 11.0, f.Days[0].MinTemp)
	require.Equal(t, 24.0, f.Days[0].MaxTemp)
	require.Equal(t, "Clear", f.Days[0].Main)
	require.Equal(t, "01d", f.Days[0].Icon)

	require.Equal(t, "2024-05-02", f.Days[1].Date)
	require.Equal(t, "Rain", f.Days[1].Main)
}

func TestGroupByDateRejectsEmptyList(t *testing.T) {
	_, err := groupByDate(nil)
	require.Error(t, err)
}

func TestClientCurrentUsesMetricUnits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/weather", r.URL.Path)
		require.Equal(t, "metric", r.URL.Query().Get("units"))
		require.Equal(t, "key", r.URL.Query().Get("appid"))
		require.Equal(t, "37.5", r.URL.Query().Get("lat"))
		_, _ = w.Write([]byte(`{"name":"Seoul","main":{"temp":21.3,"feels_like":21,"humidity":55},"wind":{"speed":2.1},"weather":[{"main":"Clouds","description":"구름 조금","icon":"02d"}]}`))
	}))
	defer srv.Close()

	client := NewClient("key", srv.URL, "kr", time.Second)
	w, err := client.Current(context.Background(), 37.5, 127)
	require.NoError(t, err)
	require.Equal(t, 21.3, w.Temperature)
	require.Equal(t, 2.1, w.WindSpeed)
	require.Equal(t, "Clouds", w.Main)
	require.Equal(t, "Seoul", w.Location)
}

func TestClientCurrentRejectsMissingBlocks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Seoul"}`))
	}))
	defer srv.Close()

	client := NewClient("key", srv.URL, "", time.Second)
	_, err := client.Current(context.Background(), 1, 2)
	require.Error(t, err)
}

func TestClientForecastNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient("key", srv.URL, "", time.Second)
	_, err := client.Forecast(context.Background(), 1, 2)
	require.ErrorContains(t, err, "status=429")
}
