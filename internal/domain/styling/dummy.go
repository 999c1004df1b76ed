package styling

import (
	"fmt"

	"github.com/google/uuid"
)

// DummyImageURL is returned in place of a styled image when the AI backend is
// unavailable in best_effort mode.
const DummyImageURL = "https://example.com/styled-photo.jpg"

// DummyOutfit is the documented best_effort substitute for the vision result.
func DummyOutfit() Outfit {
	return Outfit{
		ImageURL:      DummyImageURL,
		Style:         string(PresetCasual),
		WeatherTag:    "mild, clear",
		Palette:       []string{"navy", "white", "beige"},
		Materials:     []string{"cotton", "denim", "canvas"},
		OutfitSummary: "현재 날씨에 적합한 캐주얼 룩으로, 편안하면서도 세련된 스타일을 연출했습니다.",
		Items: []OutfitItem{
			{Category: "top", Name: "코튼 크루넥 티셔츠", Color: "white", Fit: "regular", Notes: "통기성 좋은 면 소재"},
			{Category: "bottom", Name: "슬림핏 청바지", Color: "navy", Fit: "slim", Notes: "편안한 스트레치 데님"},
		},
		WhyItWorks: []string{
			"현재 온도에 적합한 가벼운 소재",
			"깔끔한 색상 조합으로 세련된 느낌",
		},
		CareTips: defaultCareTips(),
		Alternatives: []Alternative{
			{Swap: "top → 긴팔 셔츠", When: "온도가 5도 이상 낮아질 때"},
		},
	}
}

// DummyLook is the documented best_effort substitute for the image result.
func DummyLook(preset StylePreset, cond WeatherSummary) GeneratedLook {
	return GeneratedLook{
		GeneratedImageURL: DummyImageURL,
		Style:             string(preset),
		Summary:           lookSummary(preset, cond),
		CareTips:          defaultCareTips(),
	}
}

// dummyResult picks the substitute matching the configured backend.
func dummyResult(backend string, req Request) Result {
	if backend == BackendImage {
		look := DummyLook(req.StylePreset, req.Conditions())
		return Result{Look: &look}
	}
	outfit := DummyOutfit()
	return Result{Outfit: &outfit}
}

func defaultCareTips() []string {
	return []string{
		"면 소재는 찬물 세탁 권장",
		"직사광선 피해 그늘에서 건조",
	}
}

func lookSummary(preset StylePreset, cond WeatherSummary) string {
	condition := cond.Condition
	if condition == "" {
		condition = DefaultCondition
	}
	return fmt.Sprintf("%s, %s°C 날씨에 맞춘 %s 스타일입니다.", condition, formatNumber(cond.TempC), preset)
}

func newObjectID() string {
	return uuid.NewString()
}
