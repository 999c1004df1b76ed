package weather

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yanqian/weatherstyle/pkg/metrics"
	"github.com/yanqian/weatherstyle/pkg/util"
)

// Service exposes weather reads. Reads never fail: upstream problems are
// replaced with fallback data.
type Service interface {
	Current(ctx context.Context, lat, lon float64) Weather
	Forecast(ctx context.Context, lat, lon float64) Forecast
	ByCity(ctx context.Context, city string) Weather
	Snapshot(ctx context.Context, lat, lon float64) Snapshot
}

// Provider is an upstream weather API already normalized to the domain shape.
type Provider interface {
	Name() string
	Current(ctx context.Context, lat, lon float64) (Weather, error)
	Forecast(ctx context.Context, lat, lon float64) (Forecast, error)
	CurrentByCity(ctx context.Context, city string) (Weather, error)
}

type service struct {
	cfg      Config
	provider Provider
	cache    Cache
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires the weather domain. A nil provider means no credentials are
// configured and every read is served from fallback data.
func NewService(cfg Config, provider Provider, cache Cache, logger *slog.Logger) Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cache == nil {
		cache = NewMemoryCache(cfg.CacheTTL)
	}
	return &service{
		cfg:      cfg,
		provider: provider,
		cache:    cache,
		logger:   logger.With("component", "weather.service"),
		now:      util.NowUTC,
	}
}

func (s *service) Current(ctx context.Context, lat, lon float64) Weather {
	if s.provider == nil {
		return s.fallbackWeather("current", nil)
	}
	w, err := s.provider.Current(ctx, lat, lon)
	if err != nil {
		return s.fallbackWeather("current", err)
	}
	return w
}

func (s *service) Forecast(ctx context.Context, lat, lon float64) Forecast {
	if s.provider == nil {
		return s.fallbackForecast(nil)
	}
	f, err := s.provider.Forecast(ctx, lat, lon)
	if err != nil {
		return s.fallbackForecast(err)
	}
	return f
}

func (s *service) ByCity(ctx context.Context, city string) Weather {
	if s.provider == nil {
		return s.fallbackWeather("city", nil)
	}
	w, err := s.provider.CurrentByCity(ctx, city)
	if err != nil {
		return s.fallbackWeather("city", err)
	}
	return w
}

// Snapshot serves current weather and forecast through the coordinate cache.
func (s *service) Snapshot(ctx context.Context, lat, lon float64) Snapshot {
	key := CacheKey(lat, lon)

	cached, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.WeatherCacheLookups.WithLabelValues("error").Inc()
		s.logger.Warn("weather cache read failed", "key", key, "error", err)
	case ok && Fresh(cached.FetchedAt, s.now(), s.cfg.CacheTTL):
		metrics.WeatherCacheLookups.WithLabelValues("hit").Inc()
		s.logger.Debug("returning cached weather", "key", key)
		return cached
	default:
		metrics.WeatherCacheLookups.WithLabelValues("miss").Inc()
	}

	var snapshot Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snapshot.Current = s.Current(gctx, lat, lon)
		return nil
	})
	g.Go(func() error {
		snapshot.Forecast = s.Forecast(gctx, lat, lon)
		return nil
	})
	_ = g.Wait()
	snapshot.FetchedAt = s.now()

	if err := s.cache.Put(ctx, key, snapshot); err != nil {
		s.logger.Warn("weather cache write failed", "key", key, "error", err)
	} else {
		s.logger.Info("cached new weather data", "key", key)
	}
	return snapshot
}

func (s *service) fallbackWeather(op string, cause error) Weather {
	metrics.FallbacksServed.WithLabelValues("weather_" + op).Inc()
	if cause != nil {
		s.logger.Error("weather fetch failed, using fallback data", "operation", op, "error", cause)
	}
	return FallbackWeather(s.now())
}

func (s *service) fallbackForecast(cause error) Forecast {
	metrics.FallbacksServed.WithLabelValues("weather_forecast").Inc()
	if cause != nil {
		s.logger.Error("forecast fetch failed, using fallback data", "error", cause)
	}
	return FallbackForecast(s.now())
}
