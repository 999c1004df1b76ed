package recommend

// styleRule is the fixed part of a style recommendation.
type styleRule struct {
	id          string
	title       string
	description string
	items       []string
	colors      []string
	category    Category
	weatherType WeatherType
	confidence  int
}

// temperatureTier matches temperatures at or above floor. Tiers are checked
// in order and the first match wins.
type temperatureTier struct {
	floor float64
	rule  styleRule
}

var temperatureTiers = []temperatureTier{
	{floor: 30, rule: styleRule{
		id:          "hot_1",
		title:       "시원한 여름 룩",
		description: "가벼운 소재의 민소매나 반팔을 추천해요",
		items:       []string{"민소매", "반팔", "반바지", "치마", "샌들"},
		colors:      []string{"흰색", "파란색", "연한 색상"},
		category:    CategoryCasual,
		weatherType: WeatherSunny,
		confidence:  85,
	}},
	{floor: 20, rule: styleRule{
		id:          "warm_1",
		title:       "편안한 봄/가을 룩",
		description: "가벼운 긴팔이나 얇은 외투를 추천해요",
		items:       []string{"긴팔", "반바지", "가벼운 외투", "스니커즈"},
		colors:      []string{"베이지", "회색", "파스텔 톤"},
		category:    CategoryCasual,
		weatherType: WeatherSunny,
		confidence:  80,
	}},
	{floor: 10, rule: styleRule{
		id:          "cool_1",
		title:       "따뜻한 가을 룩",
		description: "점퍼나 가디건을 추가해보세요",
		items:       []string{"긴팔", "긴바지", "점퍼", "가디건", "부츠"},
		colors:      []string{"갈색", "오렌지", "따뜻한 톤"},
		category:    CategoryCasual,
		weatherType: WeatherCloudy,
		confidence:  85,
	}},
	{floor: 0, rule: styleRule{
		id:          "cold_1",
		title:       "따뜻한 겨울 룩",
		description: "패딩이나 코트를 추천해요",
		items:       []string{"패딩", "코트", "긴바지", "목도리", "장갑"},
		colors:      []string{"검은색", "네이비", "어두운 톤"},
		category:    CategoryCasual,
		weatherType: WeatherCloudy,
		confidence:  90,
	}},
}

var veryColdRule = styleRule{
	id:          "very_cold_1",
	title:       "매우 따뜻한 겨울 룩",
	description: "두꺼운 패딩과 겨울 액세서리가 필요해요",
	items:       []string{"두꺼운 패딩", "털부츠", "목도리", "장갑", "모자"},
	colors:      []string{"검은색", "다크 그레이", "따뜻한 톤"},
	category:    CategoryCasual,
	weatherType: WeatherSnowy,
	confidence:  95,
}

// conditionRules are keyed by the lower-cased coarse condition tag.
var conditionRules = map[string]styleRule{
	"rain": {
		id:          "rainy_1",
		title:       "비 오는 날 룩",
		description: "우비나 방수 재킷을 준비하세요",
		items:       []string{"우비", "방수 재킷", "긴바지", "부츠", "우산"},
		colors:      []string{"노란색", "투명", "밝은 색상"},
		category:    CategoryCasual,
		weatherType: WeatherRainy,
		confidence:  90,
	},
	"snow": {
		id:          "snowy_1",
		title:       "눈 오는 날 룩",
		description: "미끄럼 방지 신발과 따뜻한 옷을 추천해요",
		items:       []string{"패딩", "스노우부츠", "목도리", "장갑", "모자"},
		colors:      []string{"흰색", "파란색", "따뜻한 톤"},
		category:    CategorySporty,
		weatherType: WeatherSnowy,
		confidence:  95,
	},
	"clouds": {
		id:          "cloudy_1",
		title:       "흐린 날 룩",
		description: "레이어링으로 대비를 주어보세요",
		items:       []string{"긴팔", "가디건", "긴바지", "스니커즈"},
		colors:      []string{"회색", "베이지", "중성 톤"},
		category:    CategoryCasual,
		weatherType: WeatherCloudy,
		confidence:  75,
	},
}

type activityRule struct {
	id          string
	title       string
	description string
	weatherType WeatherType
	category    string
	tags        []string
	applies     func(condition string, temperature float64) bool
}

var activityRules = []activityRule{
	{
		id:          "outdoor_1",
		title:       "야외 활동",
		description: "맑은 날씨에 산책이나 피크닉을 즐겨보세요",
		weatherType: WeatherSunny,
		category:    "outdoor",
		tags:        []string{"산책", "피크닉", "야외"},
		applies: func(condition string, temperature float64) bool {
			return condition == "clear" && temperature >= 20
		},
	},
	{
		id:          "indoor_1",
		title:       "실내 활동",
		description: "비 오는 날에는 카페나 박물관을 추천해요",
		weatherType: WeatherRainy,
		category:    "indoor",
		tags:        []string{"카페", "박물관", "실내"},
		applies: func(condition string, _ float64) bool {
			return condition == "rain"
		},
	},
	{
		id:          "winter_1",
		title:       "겨울 활동",
		description: "눈 오는 날에는 스키나 눈사람 만들기를 추천해요",
		weatherType: WeatherSnowy,
		category:    "winter",
		tags:        []string{"스키", "눈사람", "겨울"},
		applies: func(condition string, _ float64) bool {
			return condition == "snow"
		},
	},
}
