package styling

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/yanqian/weatherstyle/pkg/util"
)

// Templates are the prompt texts for the AI backends.
type Templates struct {
	System string
	User   string
	Image  string
}

// PromptSource loads prompt templates.
type PromptSource interface {
	Templates(ctx context.Context) (Templates, error)
}

// Placeholder tokens recognised in prompt templates.
const (
	PlaceholderImageURL         = "{IMAGE_URL}"
	PlaceholderCityCountry      = "{CITY_COUNTRY}"
	PlaceholderDateTime         = "{YYYY-MM-DDTHH:mm}"
	PlaceholderStylePreset      = "{STYLE_PRESET}"
	PlaceholderNumber           = "{NUMBER}"
	PlaceholderString           = "{STRING}"
	PlaceholderTempC            = "{TEMP_C}"
	PlaceholderFeelsLikeC       = "{FEELS_LIKE_C}"
	PlaceholderHumidityPct      = "{HUMIDITY_PCT}"
	PlaceholderWindMps          = "{WIND_MPS}"
	PlaceholderCondition        = "{CONDITION}"
	PlaceholderWeatherSummary   = "{WEATHER_SUMMARY}"
	PlaceholderColorPreferences = "{COLOR_PREFERENCES}"
	PlaceholderBodyNotes        = "{BODY_NOTES}"
	PlaceholderRecommendedItems = "{RECOMMENDED_ITEMS}"
	PlaceholderLanguage         = "{LANGUAGE}"
)

var residualPlaceholder = regexp.MustCompile(`\{(?:[A-Z][A-Z0-9_]*|YYYY-MM-DDTHH:mm)\}`)

// PromptValues computes the substitution for every known placeholder.
func PromptValues(req Request, now time.Time, countryCode string) (map[string]string, error) {
	cond := req.Conditions()

	colors, err := jsonOrNull(req.ColorPreferences, len(req.ColorPreferences) == 0)
	if err != nil {
		return nil, err
	}
	notes, err := jsonOrNull(req.BodyNotes, strings.TrimSpace(req.BodyNotes) == "")
	if err != nil {
		return nil, err
	}
	items := req.RecommendedItems
	if items == nil {
		items = []string{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	description := cond.Description
	if description == "" {
		description = cond.Condition
	}
	temp := formatNumber(cond.TempC)

	return map[string]string{
		PlaceholderImageURL:         req.ImageURL,
		PlaceholderCityCountry:      cityCountry(req.Location, countryCode),
		PlaceholderDateTime:         util.MinuteStamp(now),
		PlaceholderStylePreset:      strconv.Quote(string(req.StylePreset)),
		PlaceholderNumber:           temp,
		PlaceholderString:           description,
		PlaceholderTempC:            temp,
		PlaceholderFeelsLikeC:       formatNumber(cond.FeelsLikeC),
		PlaceholderHumidityPct:      strconv.Itoa(cond.HumidityPct),
		PlaceholderWindMps:          formatNumber(cond.WindMps),
		PlaceholderCondition:        cond.Condition,
		PlaceholderWeatherSummary:   summaryText(cond),
		PlaceholderColorPreferences: colors,
		PlaceholderBodyNotes:        notes,
		PlaceholderRecommendedItems: string(itemsJSON),
		PlaceholderLanguage:         req.PreferredLanguage,
	}, nil
}

// FillTemplate substitutes every occurrence of every placeholder. A
// placeholder-shaped token in the template with no value is an error.
func FillTemplate(template string, values map[string]string) (string, error) {
	var unknown []string
	for _, token := range residualPlaceholder.FindAllString(template, -1) {
		if _, ok := values[token]; !ok && !slices.Contains(unknown, token) {
			unknown = append(unknown, token)
		}
	}
	if len(unknown) > 0 {
		return "", fmt.Errorf("unfilled placeholders: %s", strings.Join(unknown, ", "))
	}

	pairs := make([]string, 0, len(values)*2)
	for token, value := range values {
		pairs = append(pairs, token, value)
	}
	return strings.NewReplacer(pairs...).Replace(template), nil
}

// BuildPrompt fills template with the values derived from req.
func BuildPrompt(template string, req Request, now time.Time, countryCode string) (string, error) {
	if strings.TrimSpace(template) == "" {
		return "", errors.New("prompt template is empty")
	}
	values, err := PromptValues(req, now, countryCode)
	if err != nil {
		return "", fmt.Errorf("build prompt values: %w", err)
	}
	return FillTemplate(template, values)
}

func cityCountry(location, countryCode string) string {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return countryCode
	case countryCode == "":
		return location
	default:
		return location + ", " + countryCode
	}
}

func summaryText(cond WeatherSummary) string {
	if cond.Raw != "" {
		return cond.Raw
	}
	return fmt.Sprintf("temperature : %s C, feelsLike : %s C, humidity : %d%%, windSpeed : %s m/s, main : %s",
		formatNumber(cond.TempC), formatNumber(cond.FeelsLikeC), cond.HumidityPct, formatNumber(cond.WindMps), cond.Condition)
}

func jsonOrNull(v any, empty bool) (string, error) {
	if empty {
		return "null", nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
