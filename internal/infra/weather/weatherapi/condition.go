package weatherapi

import "strings"

// coarseCondition maps a WeatherAPI condition code onto the tag vocabulary the
// recommendation rules match on. Localized text is only consulted when the
// code is unknown.
func coarseCondition(code int, text string) string {
	switch {
	case code == 1000:
		return "Clear"
	case code == 1087 || code == 1273 || code == 1276:
		return "Thunderstorm"
	case code == 1279 || code == 1282:
		return "Snow"
	case code == 1003 || code == 1006 || code == 1009:
		return "Clouds"
	case code == 1030 || code == 1135 || code == 1147:
		return "Mist"
	case code == 1063 || code == 1072 || (code >= 1150 && code <= 1201) || (code >= 1240 && code <= 1246):
		return "Rain"
	case code == 1066 || code == 1069 || code == 1114 || code == 1117 ||
		(code >= 1204 && code <= 1237) || (code >= 1249 && code <= 1264):
		return "Snow"
	}

	lowered := strings.ToLower(text)
	switch {
	case strings.Contains(lowered, "thunder") || strings.Contains(text, "뇌우"):
		return "Thunderstorm"
	case strings.Contains(lowered, "snow") || strings.Contains(text, "눈"):
		return "Snow"
	case strings.Contains(lowered, "rain") || strings.Contains(lowered, "drizzle") || strings.Contains(text, "비"):
		return "Rain"
	case strings.Contains(lowered, "cloud") || strings.Contains(lowered, "overcast") || strings.Contains(text, "흐림") || strings.Contains(text, "구름"):
		return "Clouds"
	case strings.Contains(lowered, "sun") || strings.Contains(lowered, "clear") || strings.Contains(text, "맑음"):
		return "Clear"
	}
	return text
}
