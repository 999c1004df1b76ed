package breaker

import (
	"context"
	"log/slog"

	"github.com/yanqian/weatherstyle/internal/domain/weather"
	"github.com/yanqian/weatherstyle/pkg/metrics"
)

// WeatherProvider guards a weather provider with a circuit breaker and
// records per-call outcomes.
type WeatherProvider struct {
	inner   weather.Provider
	breaker *Breaker
}

// NewWeatherProvider wraps inner.
func NewWeatherProvider(inner weather.Provider, settings Settings, logger *slog.Logger) *WeatherProvider {
	return &WeatherProvider{
		inner:   inner,
		breaker: New("weather-"+inner.Name(), settings, logger),
	}
}

// Name returns the wrapped provider name.
func (p *WeatherProvider) Name() string { return p.inner.Name() }

// Current fetches conditions through the breaker.
func (p *WeatherProvider) Current(ctx context.Context, lat, lon float64) (weather.Weather, error) {
	w, err := Do(p.breaker, func() (weather.Weather, error) {
		return p.inner.Current(ctx, lat, lon)
	})
	RecordCall(p.inner.Name(), "current", err)
	return w, err
}

// Forecast fetches the daily forecast through the breaker.
func (p *WeatherProvider) Forecast(ctx context.Context, lat, lon float64) (weather.Forecast, error) {
	f, err := Do(p.breaker, func() (weather.Forecast, error) {
		return p.inner.Forecast(ctx, lat, lon)
	})
	RecordCall(p.inner.Name(), "forecast", err)
	return f, err
}

// CurrentByCity fetches conditions for a city through the breaker.
func (p *WeatherProvider) CurrentByCity(ctx context.Context, city string) (weather.Weather, error) {
	w, err := Do(p.breaker, func() (weather.Weather, error) {
		return p.inner.CurrentByCity(ctx, city)
	})
	RecordCall(p.inner.Name(), "city", err)
	return w, err
}

// RecordCall counts an upstream call by outcome.
func RecordCall(provider, operation string, err error) {
	outcome := "success"
	switch {
	case err == nil:
	case IsOpen(err):
		outcome = "rejected"
	default:
		outcome = "failure"
	}
	metrics.UpstreamCalls.WithLabelValues(provider, operation, outcome).Inc()
}
