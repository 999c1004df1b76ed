package styling

import (
	"github.com/goccy/go-json"

	"github.com/yanqian/weatherstyle/internal/domain/weather"
	"github.com/yanqian/weatherstyle/pkg/metrics"
)

// StylePreset biases the styling prompt towards an occasion.
type StylePreset string

const (
	PresetCasual      StylePreset = "casual"
	PresetSmartCasual StylePreset = "smart_casual"
	PresetDate        StylePreset = "date"
	PresetOutdoor     StylePreset = "outdoor"
	PresetBusiness    StylePreset = "business"
)

var knownPresets = map[StylePreset]struct{}{
	PresetCasual:      {},
	PresetSmartCasual: {},
	PresetDate:        {},
	PresetOutdoor:     {},
	PresetBusiness:    {},
}

// CanonicalPreset maps raw input onto a known preset. Unknown values become
// casual.
func CanonicalPreset(raw string) StylePreset {
	preset := StylePreset(raw)
	if _, ok := knownPresets[preset]; ok {
		return preset
	}
	return PresetCasual
}

// WeatherSummary is the reduced weather representation used when the caller
// sends free text instead of a full weather object.
type WeatherSummary struct {
	TempC       float64 `json:"temp_c"`
	FeelsLikeC  float64 `json:"feels_like_c"`
	HumidityPct int     `json:"humidity_pct"`
	WindMps     float64 `json:"wind_mps"`
	Condition   string  `json:"condition"`
	Description string  `json:"description,omitempty"`
	Raw         string  `json:"raw,omitempty"`
}

// WeatherFields carries the discrete multipart weather form fields.
type WeatherFields struct {
	Temp        string
	FeelsLike   string
	Humidity    string
	WindSpeed   string
	Description string
	Main        string
	Location    string
	Icon        string
}

// Present reports whether the caller sent any discrete weather data.
func (f *WeatherFields) Present() bool {
	return f != nil && f.Temp != ""
}

// RawInput is everything a photo analysis request may carry before
// normalization.
type RawInput struct {
	ImageURL      string
	ImageBytes    []byte
	ImageMIME     string
	ImageBase64   string
	Weather       *weather.Weather
	WeatherFields *WeatherFields
	WeatherText   string
	Lat           *float64
	Lon           *float64
	Location      string

	StylePreset       string
	RecommendedItems  []string
	PreferredLanguage string
	ColorPreferences  []string
	BodyNotes         string
}

// Request is the normalized styling request. Exactly one of Weather and
// Summary is set.
type Request struct {
	ImageURL          string
	Weather           *weather.Weather
	Summary           *WeatherSummary
	Location          string
	StylePreset       StylePreset
	RecommendedItems  []string
	PreferredLanguage string
	ColorPreferences  []string
	BodyNotes         string
}

// Conditions flattens whichever weather representation the request carries.
func (r Request) Conditions() WeatherSummary {
	if r.Weather != nil {
		return WeatherSummary{
			TempC:       r.Weather.Temperature,
			FeelsLikeC:  r.Weather.FeelsLike,
			HumidityPct: r.Weather.Humidity,
			WindMps:     r.Weather.WindSpeed,
			Condition:   r.Weather.Main,
			Description: r.Weather.Description,
		}
	}
	if r.Summary != nil {
		return *r.Summary
	}
	return WeatherSummary{}
}

// Outfit is the canonical styling result produced by the vision backend.
type Outfit struct {
	ImageURL      string        `json:"imageUrl"`
	Style         string        `json:"style"`
	WeatherTag    string        `json:"weatherTag"`
	Palette       []string      `json:"palette"`
	Materials     []string      `json:"materials"`
	OutfitSummary string        `json:"outfitSummary"`
	Items         []OutfitItem  `json:"items"`
	WhyItWorks    []string      `json:"whyItWorks"`
	CareTips      []string      `json:"careTips"`
	Alternatives  []Alternative `json:"alternatives"`
}

// OutfitItem is a single garment in an outfit.
type OutfitItem struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Fit      string `json:"fit"`
	Notes    string `json:"notes"`
}

// Alternative suggests a swap under different conditions.
type Alternative struct {
	Swap string `json:"swap"`
	When string `json:"when"`
}

// GeneratedLook is the reduced result of the legacy image generation backend.
type GeneratedLook struct {
	GeneratedImageURL string   `json:"generatedImageUrl"`
	Style             string   `json:"style"`
	Summary           string   `json:"summary"`
	CareTips          []string `json:"careTips"`
}

// Result holds exactly one of the two result shapes.
type Result struct {
	Outfit *Outfit
	Look   *GeneratedLook
}

// MarshalJSON emits whichever shape is set.
func (r Result) MarshalJSON() ([]byte, error) {
	switch {
	case r.Outfit != nil:
		return json.Marshal(r.Outfit)
	case r.Look != nil:
		return json.Marshal(r.Look)
	default:
		return []byte("null"), nil
	}
}

// Metadata describes how a styling result was produced.
type Metadata struct {
	OriginalImageURL  string              `json:"originalImageUrl"`
	Weather           *weather.Weather    `json:"weather,omitempty"`
	WeatherSummary    *WeatherSummary     `json:"weatherSummary,omitempty"`
	Location          string              `json:"location,omitempty"`
	RecommendedItems  []string            `json:"recommendedItems"`
	StylePreset       StylePreset         `json:"stylePreset"`
	PreferredLanguage string              `json:"preferredLanguage"`
	Backend           string              `json:"backend"`
	Model             string              `json:"model,omitempty"`
	Fallback          bool                `json:"fallback"`
	TokenUsage        *metrics.TokenUsage `json:"tokenUsage,omitempty"`
	Timestamp         string              `json:"timestamp"`
}

// Response is returned by the photo analysis endpoint.
type Response struct {
	Success  bool     `json:"success"`
	Data     Result   `json:"data"`
	Metadata Metadata `json:"metadata"`
}

// StoredObject describes an object written to storage.
type StoredObject struct {
	Key      string
	Size     int64
	MimeType string
	ETag     string
}

// Config wires runtime knobs for the styling domain.
type Config struct {
	Backend      string
	Mode         string
	Model        string
	ImageModel   string
	Temperature  float32
	MaxTokens    int
	CountryCode  string
	UploadPrefix string
}

// Backends and failure modes.
const (
	BackendVision = "vision"
	BackendImage  = "image"

	ModeStrict     = "strict"
	ModeBestEffort = "best_effort"
)
