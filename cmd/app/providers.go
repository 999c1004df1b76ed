package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weatherstyle/internal/domain/styling"
	"github.com/yanqian/weatherstyle/internal/domain/weather"
	"github.com/yanqian/weatherstyle/internal/infra/breaker"
	"github.com/yanqian/weatherstyle/internal/infra/config"
	"github.com/yanqian/weatherstyle/internal/infra/llm/chatgpt"
	"github.com/yanqian/weatherstyle/internal/infra/llm/tokens"
	"github.com/yanqian/weatherstyle/internal/infra/prompts"
	"github.com/yanqian/weatherstyle/internal/infra/storage"
	"github.com/yanqian/weatherstyle/internal/infra/weather/openweather"
	"github.com/yanqian/weatherstyle/internal/infra/weather/weatherapi"
	"github.com/yanqian/weatherstyle/internal/infra/weathercache"
)

func provideWeatherConfig(cfg *config.Config) weather.Config {
	return weather.Config{CacheTTL: cfg.Weather.Cache.TTL}
}

func provideWeatherProvider(cfg *config.Config, logger *slog.Logger) weather.Provider {
	if strings.TrimSpace(cfg.Weather.APIKey) == "" {
		logger.Warn("weather api key not set, serving fallback weather data")
		return nil
	}
	var inner weather.Provider
	switch cfg.Weather.Provider {
	case config.ProviderOpenWeather:
		inner = openweather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Weather.Language, cfg.Weather.Timeout)
	default:
		inner = weatherapi.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Weather.Language, cfg.Weather.ForecastDays, cfg.Weather.Timeout)
	}
	logger.Info("weather provider enabled", "provider", inner.Name())
	return breaker.NewWeatherProvider(inner, breaker.DefaultSettings(), logger)
}

func provideWeatherCache(cfg *config.Config, logger *slog.Logger) weather.Cache {
	fallback := weather.NewMemoryCache(cfg.Weather.Cache.TTL)
	vcfg := cfg.Weather.Cache.Valkey
	if !vcfg.Enabled {
		return fallback
	}
	opt, err := buildValkeyOptions(vcfg.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
		return fallback
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		client.Close()
		return fallback
	}
	logger.Info("weather valkey cache enabled", "addr", vcfg.Addr)
	return weathercache.NewValkeyCache(client, vcfg.Prefix, cfg.Weather.Cache.TTL)
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

// provideChatClient returns nil when no credentials are configured; the
// stylists then report an upstream failure per request.
func provideChatClient(cfg *config.Config, logger *slog.Logger) *breaker.ChatClient {
	client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Timeout)
	if err != nil {
		logger.Warn("llm client disabled", "error", err)
		return nil
	}
	return breaker.NewChatClient(client, breaker.DefaultSettings(), logger)
}

// provideObjectStorage returns nil when no bucket is configured so uploads
// fail with upload_failed instead of producing URLs the AI provider cannot
// fetch. The memory driver is for local development only.
func provideObjectStorage(cfg *config.Config, logger *slog.Logger) styling.ObjectStorage {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		logger.Warn("memory object storage selected, uploaded photos are not reachable by the AI provider")
		return storage.NewMemoryStorage(cfg.Storage.PublicBaseURL)
	}
	if !cfg.Storage.Enabled() {
		logger.Warn("object storage not configured, photo uploads will fail")
		return nil
	}
	r2, err := storage.NewR2Storage(storage.Options{
		Endpoint:      cfg.Storage.Endpoint,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		Bucket:        cfg.Storage.Bucket,
		Region:        cfg.Storage.Region,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
		URLExpiry:     cfg.Storage.SignedURLExpiry,
		Timeout:       cfg.Storage.Timeout,
	}, logger)
	if err != nil {
		logger.Error("failed to init object storage, photo uploads will fail", "error", err)
		return nil
	}
	logger.Info("object storage enabled", "bucket", cfg.Storage.Bucket)
	return r2
}

func providePromptLoader(cfg *config.Config, store styling.ObjectStorage, logger *slog.Logger) *prompts.Loader {
	var reader prompts.ObjectReader
	if r2, ok := store.(*storage.R2Storage); ok {
		reader = r2
	}
	return prompts.NewLoader(reader, prompts.Keys{
		System: cfg.Storage.SystemPromptKey,
		User:   cfg.Storage.UserPromptKey,
		Image:  cfg.Storage.ImagePromptKey,
	}, logger)
}

func provideTokenCounter(cfg *config.Config, logger *slog.Logger) styling.TokenCounter {
	counter, err := tokens.NewCounter(cfg.LLM.Model)
	if err != nil {
		logger.Warn("token counter disabled", "error", err)
		return nil
	}
	return counter
}

func provideStylingConfig(cfg *config.Config) styling.Config {
	return styling.Config{
		Backend:      cfg.Styling.Backend,
		Mode:         cfg.Styling.Mode,
		Model:        cfg.LLM.Model,
		ImageModel:   cfg.LLM.ImageModel,
		Temperature:  cfg.LLM.Temperature,
		MaxTokens:    cfg.LLM.MaxTokens,
		CountryCode:  cfg.Styling.CountryCode,
		UploadPrefix: cfg.Storage.UploadPrefix,
	}
}

func provideBuilder(cfg styling.Config, store styling.ObjectStorage, weatherSvc weather.Service) *styling.Builder {
	return styling.NewBuilder(store, weatherSvc, cfg.UploadPrefix)
}

func provideStylist(cfg styling.Config, chat *breaker.ChatClient, loader *prompts.Loader, store styling.ObjectStorage, counter styling.TokenCounter) styling.Stylist {
	if cfg.Backend == styling.BackendImage {
		var client styling.ImageClient
		if chat != nil {
			client = chat
		}
		return styling.NewImageStylist(cfg, client, loader, store, counter)
	}
	var client styling.ChatClient
	if chat != nil {
		client = chat
	}
	return styling.NewVisionStylist(cfg, client, loader, counter)
}
