package styling

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weatherstyle/internal/domain/weather"
)

var promptTime = time.Date(2024, 11, 3, 8, 47, 59, 0, time.UTC)

func sampleRequest() Request {
	return Request{
		ImageURL: "https://img.test/me.jpg",
		Weather: &weather.Weather{
			Temperature: 12.5,
			FeelsLike:   10,
			Humidity:    80,
			WindSpeed:   4.2,
			Description: "가벼운 비",
			Main:        "Rain",
			Location:    "서울",
		},
		Location:          "서울",
		StylePreset:       PresetDate,
		RecommendedItems:  []string{"트렌치코트", "로퍼"},
		PreferredLanguage: "ko",
		ColorPreferences:  []string{"navy"},
	}
}

func TestBuildPromptSubstitutesEveryOccurrence(t *testing.T) {
	tpl := "img={IMAGE_URL} again={IMAGE_URL} loc={CITY_COUNTRY} at={YYYY-MM-DDTHH:mm} preset={STYLE_PRESET} " +
		"t={NUMBER}/{TEMP_C} desc={STRING} feels={FEELS_LIKE_C} hum={HUMIDITY_PCT} wind={WIND_MPS} cond={CONDITION} " +
		"colors={COLOR_PREFERENCES} notes={BODY_NOTES} items={RECOMMENDED_ITEMS} lang={LANGUAGE}"

	out, err := BuildPrompt(tpl, sampleRequest(), promptTime, "KR")
	require.NoError(t, err)
	require.Equal(t,
		`img=https://img.test/me.jpg again=https://img.test/me.jpg loc=서울, KR at=2024-11-03T08:47 preset="date" `+
			`t=12.5/12.5 desc=가벼운 비 feels=10 hum=80 wind=4.2 cond=Rain `+
			`colors=["navy"] notes=null items=["트렌치코트","로퍼"] lang=ko`,
		out)
}

func TestBuildPromptWeatherSummaryPlaceholder(t *testing.T) {
	req := sampleRequest()
	req.Weather = nil
	summary := ParseWeatherSummary("temperature : 18 C, main : Rain")
	req.Summary = &summary
	req.BodyNotes = "키 180"

	out, err := BuildPrompt("{WEATHER_SUMMARY} | {CONDITION} | {BODY_NOTES}", req, promptTime, "KR")
	require.NoError(t, err)
	require.Equal(t, `temperature : 18 C, main : Rain | Rain | "키 180"`, out)

	req.Summary = nil
	req.Weather = &weather.Weather{Temperature: 5, FeelsLike: 2, Humidity: 50, WindSpeed: 1, Main: "Clear"}
	out, err = BuildPrompt("{WEATHER_SUMMARY}", req, promptTime, "KR")
	require.NoError(t, err)
	require.Equal(t, "temperature : 5 C, feelsLike : 2 C, humidity : 50%, windSpeed : 1 m/s, main : Clear", out)
}

func TestBuildPromptRejectsUnknownPlaceholders(t *testing.T) {
	_, err := BuildPrompt("hello {UNKNOWN_FIELD} and {IMAGE_URL}", sampleRequest(), promptTime, "KR")
	require.Error(t, err)
	require.Contains(t, err.Error(), "{UNKNOWN_FIELD}")
}

func TestBuildPromptIgnoresBracesInUserValues(t *testing.T) {
	req := sampleRequest()
	req.BodyNotes = "literal {NOT_A_PLACEHOLDER}"
	out, err := BuildPrompt("{BODY_NOTES}", req, promptTime, "KR")
	require.NoError(t, err)
	require.True(t, strings.Contains(out, "{NOT_A_PLACEHOLDER}"))
}

func TestBuildPromptEmptyTemplate(t *testing.T) {
	_, err := BuildPrompt("   ", sampleRequest(), promptTime, "KR")
	require.Error(t, err)
}

func TestPromptValuesDefaults(t *testing.T) {
	req := sampleRequest()
	req.RecommendedItems = nil
	req.ColorPreferences = nil
	req.Location = ""

	values, err := PromptValues(req, promptTime, "KR")
	require.NoError(t, err)
	require.Equal(t, "[]", values[PlaceholderRecommendedItems])
	require.Equal(t, "null", values[PlaceholderColorPreferences])
	require.Equal(t, "KR", values[PlaceholderCityCountry])
}
