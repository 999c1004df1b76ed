package weathercache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go/mock"
	"go.uber.org/mock/gomock"

	"github.com/yanqian/weatherstyle/internal/domain/weather"
)

func TestValkeyCacheDefaults(t *testing.T) {
	c := NewValkeyCache(nil, "", 0)
	require.Equal(t, "weather", c.prefix)
	require.Equal(t, weather.DefaultCacheTTL, c.ttl)
	require.Equal(t, "weather:37.57,126.98", c.entryKey(weather.CacheKey(37.5665, 126.978)))
}

func TestValkeyCacheCustomPrefix(t *testing.T) {
	c := NewValkeyCache(nil, "ws", 5*time.Minute)
	require.Equal(t, "ws:1.00,2.00", c.entryKey(weather.CacheKey(1, 2)))
	require.Equal(t, 5*time.Minute, c.ttl)
}

func sampleSnapshot() weather.Snapshot {
	return weather.Snapshot{
		Current:   weather.Weather{Temperature: 18.5, Main: "Clear", Location: "서울"},
		Forecast:  weather.Forecast{Days: []weather.Day{{Date: "2024-05-01", MinTemp: 11, MaxTemp: 21}}},
		FetchedAt: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestValkeyCachePutThenGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	ctx := context.Background()
	snapshot := sampleSnapshot()
	payload, err := json.Marshal(snapshot)
	require.NoError(t, err)

	client.EXPECT().
		Do(ctx, mock.Match("SET", "weather:37.57,126.98", string(payload), "EX", "600")).
		Return(mock.Result(mock.ValkeyString("OK")))
	client.EXPECT().
		Do(ctx, mock.Match("GET", "weather:37.57,126.98")).
		Return(mock.Result(mock.ValkeyString(string(payload))))

	c := NewValkeyCache(client, "weather", 10*time.Minute)
	require.NoError(t, c.Put(ctx, "37.57,126.98", snapshot))

	got, ok, err := c.Get(ctx, "37.57,126.98")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, snapshot.Current, got.Current)
	require.Equal(t, snapshot.Forecast, got.Forecast)
	require.True(t, snapshot.FetchedAt.Equal(got.FetchedAt))
}

func TestValkeyCacheMissIsNotAnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	ctx := context.Background()
	client.EXPECT().
		Do(ctx, mock.Match("GET", "weather:1.00,2.00")).
		Return(mock.Result(mock.ValkeyNil()))

	_, ok, err := NewValkeyCache(client, "", 0).Get(ctx, "1.00,2.00")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValkeyCacheGetErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	ctx := context.Background()
	c := NewValkeyCache(client, "", 0)

	client.EXPECT().
		Do(ctx, mock.Match("GET", "weather:bad")).
		Return(mock.Result(mock.ValkeyString("{not json")))
	_, ok, err := c.Get(ctx, "bad")
	require.ErrorContains(t, err, "decode cached snapshot")
	require.False(t, ok)

	down := errors.New("connection refused")
	client.EXPECT().
		Do(ctx, mock.Match("GET", "weather:down")).
		Return(mock.ErrorResult(down))
	_, ok, err = c.Get(ctx, "down")
	require.ErrorIs(t, err, down)
	require.False(t, ok)
}
