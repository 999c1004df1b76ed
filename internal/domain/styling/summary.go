package styling

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Defaults applied to fields missing from a weather summary.
const (
	DefaultTempC       = 22.0
	DefaultFeelsLikeC  = 24.0
	DefaultHumidityPct = 65
	DefaultWindMps     = 3.5
	DefaultCondition   = "Clear"
)

var numericPrefix = regexp.MustCompile(`^[-+]?\d+(?:\.\d+)?`)

// ParseWeatherSummary reads comma separated "key : value" pairs such as
// "temperature : 18 C, humidity : 70%, main : Rain". Unknown keys are ignored
// and a malformed segment only defaults its own field.
func ParseWeatherSummary(text string) WeatherSummary {
	summary := WeatherSummary{
		TempC:       DefaultTempC,
		FeelsLikeC:  DefaultFeelsLikeC,
		HumidityPct: DefaultHumidityPct,
		WindMps:     DefaultWindMps,
		Condition:   DefaultCondition,
		Raw:         strings.TrimSpace(text),
	}

	for _, segment := range strings.Split(text, ",") {
		key, value, ok := strings.Cut(segment, ":")
		if !ok {
			continue
		}
		key = normalizeKey(key)
		value = strings.TrimSpace(value)

		switch key {
		case "temperature", "temp", "tempc":
			if v, ok := leadingNumber(value); ok {
				summary.TempC = v
			}
		case "feelslike", "feelslikec":
			if v, ok := leadingNumber(value); ok {
				summary.FeelsLikeC = v
			}
		case "humidity", "humiditypct":
			if v, ok := leadingNumber(value); ok {
				summary.HumidityPct = int(v)
			}
		case "windspeed", "wind", "windmps":
			if v, ok := leadingNumber(value); ok {
				summary.WindMps = v
			}
		case "main", "condition":
			if value != "" {
				summary.Condition = cases.Title(language.Und).String(strings.ToLower(value))
			}
		}
	}
	return summary
}

// normalizeKey lower-cases and drops separators so "feelsLike", "feels_like"
// and "Feels Like" compare equal.
func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.NewReplacer("_", "", " ", "", "-", "").Replace(key)
}

func leadingNumber(value string) (float64, bool) {
	match := numericPrefix.FindString(value)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
