package recommend

import (
	"slices"
	"strings"

	"github.com/yanqian/weatherstyle/internal/domain/weather"
)

// colorBoost is added to a recommendation's confidence when one of its colours
// matches a preferred colour. The result is not clamped to 100.
const colorBoost = 10

// RecommendStyles returns the temperature-tier recommendation followed by at
// most one condition recommendation, filtered and boosted by preferences.
func RecommendStyles(w weather.Weather, prefs Preferences) []StyleRecommendation {
	recs := make([]StyleRecommendation, 0, 2)
	recs = append(recs, tierRule(w.Temperature).build(w.Temperature))
	if rule, ok := conditionRules[strings.ToLower(w.Main)]; ok {
		recs = append(recs, rule.build(w.Temperature))
	}
	return applyPreferences(recs, prefs)
}

// RecommendActivities evaluates every activity rule independently.
func RecommendActivities(w weather.Weather, _ Preferences) []ActivityRecommendation {
	condition := strings.ToLower(w.Main)
	recs := make([]ActivityRecommendation, 0, 1)
	for _, rule := range activityRules {
		if !rule.applies(condition, w.Temperature) {
			continue
		}
		recs = append(recs, ActivityRecommendation{
			ID:          rule.id,
			Title:       rule.title,
			Description: rule.description,
			WeatherType: rule.weatherType,
			Temperature: w.Temperature,
			Category:    rule.category,
			Tags:        slices.Clone(rule.tags),
		})
	}
	return recs
}

func tierRule(temperature float64) styleRule {
	for _, tier := range temperatureTiers {
		if temperature >= tier.floor {
			return tier.rule
		}
	}
	return veryColdRule
}

func (r styleRule) build(temperature float64) StyleRecommendation {
	return StyleRecommendation{
		ID:            r.id,
		Title:         r.title,
		Description:   r.description,
		ClothingItems: slices.Clone(r.items),
		Colors:        slices.Clone(r.colors),
		Category:      r.category,
		WeatherType:   r.weatherType,
		Temperature:   temperature,
		ImageURL:      "",
		Confidence:    r.confidence,
	}
}

func applyPreferences(recs []StyleRecommendation, prefs Preferences) []StyleRecommendation {
	out := make([]StyleRecommendation, 0, len(recs))
	for _, rec := range recs {
		if len(prefs.PreferredStyles) > 0 && !slices.Contains(prefs.PreferredStyles, rec.Category) {
			continue
		}
		if matchesAnyColor(rec.Colors, prefs.PreferredColors) {
			rec.Confidence += colorBoost
		}
		out = append(out, rec)
	}
	return out
}

// matchesAnyColor compares case-insensitively and accepts a substring match in
// either direction, so "네이비" matches "다크 네이비" and vice versa.
func matchesAnyColor(colors, preferred []string) bool {
	for _, p := range preferred {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		for _, c := range colors {
			c = strings.ToLower(c)
			if strings.Contains(c, p) || strings.Contains(p, c) {
				return true
			}
		}
	}
	return false
}
