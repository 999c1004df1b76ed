package recommend

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/weatherstyle/internal/domain/weather"
)

func weatherAt(temp float64, main string) weather.Weather {
	return weather.Weather{Temperature: temp, Main: main}
}

func TestRecommendStylesTierBoundaries(t *testing.T) {
	cases := []struct {
		temp       float64
		id         string
		confidence int
	}{
		{35, "hot_1", 85},
		{30, "hot_1", 85},
		{29.9, "warm_1", 80},
		{20, "warm_1", 80},
		{19.9, "cool_1", 85},
		{10, "cool_1", 85},
		{9.9, "cold_1", 90},
		{0, "cold_1", 90},
		{-0.1, "very_cold_1", 95},
		{-15, "very_cold_1", 95},
	}
	for _, tc := range cases {
		recs := RecommendStyles(weatherAt(tc.temp, "Clear"), Preferences{})
		require.Len(t, recs, 1, "temp %v", tc.temp)
		require.Equal(t, tc.id, recs[0].ID, "temp %v", tc.temp)
		require.Equal(t, tc.confidence, recs[0].Confidence)
		require.Equal(t, tc.temp, recs[0].Temperature)
	}
}

func TestRecommendStylesGoldenTierData(t *testing.T) {
	recs := RecommendStyles(weatherAt(5, "Clear"), Preferences{})
	require.Equal(t, []string{"패딩", "코트", "긴바지", "목도리", "장갑"}, recs[0].ClothingItems)
	require.Equal(t, []string{"검은색", "네이비", "어두운 톤"}, recs[0].Colors)
	require.Equal(t, CategoryCasual, recs[0].Category)
	require.Equal(t, WeatherCloudy, recs[0].WeatherType)
	require.Empty(t, recs[0].ImageURL)
}

func TestRecommendStylesConditionAugmentation(t *testing.T) {
	cases := map[string]struct {
		id         string
		confidence int
		category   Category
	}{
		"Rain":   {"rainy_1", 90, CategoryCasual},
		"snow":   {"snowy_1", 95, CategorySporty},
		"CLOUDS": {"cloudy_1", 75, CategoryCasual},
	}
	for main, want := range cases {
		recs := RecommendStyles(weatherAt(15, main), Preferences{})
		require.Len(t, recs, 2, main)
		require.Equal(t, "cool_1", recs[0].ID)
		require.Equal(t, want.id, recs[1].ID)
		require.Equal(t, want.confidence, recs[1].Confidence)
		require.Equal(t, want.category, recs[1].Category)
	}
}

func TestRecommendStylesNoAugmentationForOtherConditions(t *testing.T) {
	for _, main := range []string{"Clear", "Mist", "Thunderstorm", "Drizzle", "", "맑음"} {
		recs := RecommendStyles(weatherAt(15, main), Preferences{})
		require.Len(t, recs, 1, main)
	}
}

func TestRecommendStylesIsDeterministic(t *testing.T) {
	w := weatherAt(-3, "Snow")
	prefs := Preferences{PreferredColors: []string{"흰색"}}

	first, err := json.Marshal(RecommendStyles(w, prefs))
	require.NoError(t, err)
	second, err := json.Marshal(RecommendStyles(w, prefs))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRecommendStylesPreferredStylesFilter(t *testing.T) {
	recs := RecommendStyles(weatherAt(25, "Clouds"), Preferences{PreferredStyles: []Category{CategorySporty}})
	require.Empty(t, recs)

	recs = RecommendStyles(weatherAt(-5, "Snow"), Preferences{PreferredStyles: []Category{CategorySporty}})
	require.Len(t, recs, 1)
	require.Equal(t, "snowy_1", recs[0].ID)
}

func TestRecommendStylesColorBoost(t *testing.T) {
	recs := RecommendStyles(weatherAt(5, "Clear"), Preferences{PreferredColors: []string{"네이비"}})
	require.Len(t, recs, 1)
	require.Equal(t, 90+10, recs[0].Confidence)
}

func TestRecommendStylesColorBoostMatchesEitherDirection(t *testing.T) {
	recs := RecommendStyles(weatherAt(25, "Clear"), Preferences{PreferredColors: []string{"파스텔"}})
	require.Equal(t, 90, recs[0].Confidence)

	recs = RecommendStyles(weatherAt(25, "Clear"), Preferences{PreferredColors: []string{"빨간색"}})
	require.Equal(t, 80, recs[0].Confidence)

	recs = RecommendStyles(weatherAt(25, "Clear"), Preferences{PreferredColors: []string{"진한 회색"}})
	require.Equal(t, 90, recs[0].Confidence)
}

func TestRecommendStylesBoostIsNotClamped(t *testing.T) {
	recs := RecommendStyles(weatherAt(-10, "Snow"), Preferences{PreferredColors: []string{"따뜻한 톤"}})
	require.Len(t, recs, 2)
	require.Equal(t, 105, recs[0].Confidence)
	require.Equal(t, 105, recs[1].Confidence)
}

func TestRecommendStylesDoesNotShareRuleSlices(t *testing.T) {
	recs := RecommendStyles(weatherAt(35, "Clear"), Preferences{})
	recs[0].ClothingItems[0] = "changed"

	again := RecommendStyles(weatherAt(35, "Clear"), Preferences{})
	require.Equal(t, "민소매", again[0].ClothingItems[0])
}

func TestRecommendActivities(t *testing.T) {
	recs := RecommendActivities(weatherAt(22, "Clear"), Preferences{})
	require.Len(t, recs, 1)
	require.Equal(t, "outdoor_1", recs[0].ID)
	require.Equal(t, []string{"산책", "피크닉", "야외"}, recs[0].Tags)

	require.Empty(t, RecommendActivities(weatherAt(19.9, "Clear"), Preferences{}))

	recs = RecommendActivities(weatherAt(12, "rain"), Preferences{})
	require.Len(t, recs, 1)
	require.Equal(t, "indoor_1", recs[0].ID)
	require.Equal(t, WeatherRainy, recs[0].WeatherType)

	recs = RecommendActivities(weatherAt(-2, "Snow"), Preferences{})
	require.Len(t, recs, 1)
	require.Equal(t, "winter_1", recs[0].ID)
	require.Equal(t, -2.0, recs[0].Temperature)

	require.Empty(t, RecommendActivities(weatherAt(25, "Clouds"), Preferences{}))
}
