package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Weather WeatherConfig `yaml:"weather"`
	LLM     LLMConfig     `yaml:"llm"`
	Storage StorageConfig `yaml:"storage"`
	Styling StylingConfig `yaml:"styling"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	MaxUploadBytes int64           `yaml:"maxUploadBytes"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// WeatherConfig selects and tunes the upstream weather provider.
type WeatherConfig struct {
	Provider     string        `yaml:"provider"`
	APIKey       string        `yaml:"apiKey"`
	BaseURL      string        `yaml:"baseUrl"`
	Language     string        `yaml:"language"`
	ForecastDays int           `yaml:"forecastDays"`
	Timeout      time.Duration `yaml:"timeout"`
	Cache        CacheConfig   `yaml:"cache"`
}

// CacheConfig controls the coordinate keyed weather cache.
type CacheConfig struct {
	TTL    time.Duration `yaml:"ttl"`
	Valkey ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the optional shared cache.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// LLMConfig contains ChatGPT/OpenAI settings.
type LLMConfig struct {
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	ImageModel  string        `yaml:"imageModel"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int           `yaml:"maxTokens"`
	Timeout     time.Duration `yaml:"timeout"`
}

// StorageConfig points at the S3 compatible bucket holding photos and prompts.
type StorageConfig struct {
	Driver          string        `yaml:"driver"`
	Endpoint        string        `yaml:"endpoint"`
	AccessKey       string        `yaml:"accessKey"`
	SecretKey       string        `yaml:"secretKey"`
	Bucket          string        `yaml:"bucket"`
	Region          string        `yaml:"region"`
	PublicBaseURL   string        `yaml:"publicBaseUrl"`
	UploadPrefix    string        `yaml:"uploadPrefix"`
	SignedURLExpiry time.Duration `yaml:"signedUrlExpiry"`
	Timeout         time.Duration `yaml:"timeout"`
	SystemPromptKey string        `yaml:"systemPromptKey"`
	UserPromptKey   string        `yaml:"userPromptKey"`
	ImagePromptKey  string        `yaml:"imagePromptKey"`
}

// Enabled reports whether object storage credentials were supplied.
func (s StorageConfig) Enabled() bool {
	return strings.TrimSpace(s.Endpoint) != "" && strings.TrimSpace(s.Bucket) != ""
}

// StylingConfig selects the AI backend and its failure policy.
type StylingConfig struct {
	Backend     string `yaml:"backend"`
	Mode        string `yaml:"mode"`
	CountryCode string `yaml:"countryCode"`
}

// Styling backends and failure modes.
const (
	BackendVision = "vision"
	BackendImage  = "image"

	ModeStrict     = "strict"
	ModeBestEffort = "best_effort"

	StorageDriverR2     = "r2"
	StorageDriverMemory = "memory"

	ProviderWeatherAPI  = "weatherapi"
	ProviderOpenWeather = "openweather"
)

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("WEATHER_PROVIDER"); v != "" {
		cfg.Weather.Provider = strings.ToLower(v)
	}
	// WEATHERAPI_KEY is the name the mobile client deployment already uses.
	if v := firstEnv("WEATHER_API_KEY", "WEATHERAPI_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("WEATHER_BASE_URL"); v != "" {
		cfg.Weather.BaseURL = v
	}
	if v := os.Getenv("WEATHER_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Weather.Timeout = parsed
		}
	}
	if v := os.Getenv("WEATHER_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Weather.Cache.TTL = parsed
		}
	}
	if v := os.Getenv("WEATHER_VALKEY_ENABLED"); v != "" {
		cfg.Weather.Cache.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("WEATHER_VALKEY_ADDR"); v != "" {
		cfg.Weather.Cache.Valkey.Addr = v
	}
	if v := firstEnv("LLM_API_KEY", "OPENAI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_IMAGE_MODEL"); v != "" {
		cfg.LLM.ImageModel = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = parsed
		}
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("STORAGE_ENDPOINT"); v != "" {
		cfg.Storage.Endpoint = v
	}
	if v := os.Getenv("STORAGE_ACCESS_KEY"); v != "" {
		cfg.Storage.AccessKey = v
	}
	if v := os.Getenv("STORAGE_SECRET_KEY"); v != "" {
		cfg.Storage.SecretKey = v
	}
	if v := os.Getenv("STORAGE_BUCKET"); v != "" {
		cfg.Storage.Bucket = v
	}
	if v := os.Getenv("STORAGE_REGION"); v != "" {
		cfg.Storage.Region = v
	}
	if v := os.Getenv("STORAGE_PUBLIC_BASE_URL"); v != "" {
		cfg.Storage.PublicBaseURL = v
	}
	if v := os.Getenv("STYLING_BACKEND"); v != "" {
		cfg.Styling.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("STYLING_MODE"); v != "" {
		cfg.Styling.Mode = strings.ToLower(v)
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   90 * time.Second,
			MaxUploadBytes: 10 << 20,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Weather: WeatherConfig{
			Provider:     ProviderWeatherAPI,
			Language:     "ko",
			ForecastDays: 7,
			Timeout:      5 * time.Second,
			Cache: CacheConfig{
				TTL: 10 * time.Minute,
				Valkey: ValkeyConfig{
					Prefix: "weather",
				},
			},
		},
		LLM: LLMConfig{
			Model:       "gpt-4o",
			ImageModel:  "gpt-image-1",
			Temperature: 0.7,
			MaxTokens:   2000,
			Timeout:     60 * time.Second,
		},
		Storage: StorageConfig{
			Driver:          StorageDriverR2,
			Bucket:          "prompts",
			UploadPrefix:    "user-photos",
			SignedURLExpiry: time.Hour,
			Timeout:         15 * time.Second,
			SystemPromptKey: "cody-system-prompt.txt",
			UserPromptKey:   "cody-user-prompt.txt",
			ImagePromptKey:  "cody-image-prompt.txt",
		},
		Styling: StylingConfig{
			Backend:     BackendVision,
			Mode:        ModeStrict,
			CountryCode: "KR",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.MaxUploadBytes <= 0 {
		return errors.New("http.maxUploadBytes must be positive")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	switch c.Weather.Provider {
	case ProviderWeatherAPI, ProviderOpenWeather:
	default:
		return fmt.Errorf("weather.provider must be %q or %q", ProviderWeatherAPI, ProviderOpenWeather)
	}
	if c.Weather.Timeout <= 0 {
		return errors.New("weather.timeout must be positive")
	}
	if c.Weather.Cache.TTL <= 0 {
		return errors.New("weather.cache.ttl must be positive")
	}
	if c.Weather.Cache.Valkey.Enabled && strings.TrimSpace(c.Weather.Cache.Valkey.Addr) == "" {
		return errors.New("weather.cache.valkey.addr cannot be empty when valkey cache is enabled")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	switch c.Storage.Driver {
	case StorageDriverR2, StorageDriverMemory:
	default:
		return fmt.Errorf("storage.driver must be %q or %q", StorageDriverR2, StorageDriverMemory)
	}
	if c.Storage.Timeout <= 0 {
		return errors.New("storage.timeout must be positive")
	}
	switch c.Styling.Backend {
	case BackendVision, BackendImage:
	default:
		return fmt.Errorf("styling.backend must be %q or %q", BackendVision, BackendImage)
	}
	switch c.Styling.Mode {
	case ModeStrict, ModeBestEffort:
	default:
		return fmt.Errorf("styling.mode must be %q or %q", ModeStrict, ModeBestEffort)
	}
	return nil
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
