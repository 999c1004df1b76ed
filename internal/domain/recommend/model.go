package recommend

import "github.com/yanqian/weatherstyle/internal/domain/weather"

// Category is a style bucket a user can filter on.
type Category string

const (
	CategoryCasual Category = "casual"
	CategoryFormal Category = "formal"
	CategorySporty Category = "sporty"
	CategoryTrendy Category = "trendy"
)

// WeatherType labels the kind of weather a recommendation targets.
type WeatherType string

const (
	WeatherSunny  WeatherType = "sunny"
	WeatherCloudy WeatherType = "cloudy"
	WeatherRainy  WeatherType = "rainy"
	WeatherSnowy  WeatherType = "snowy"
	WeatherWindy  WeatherType = "windy"
)

// Preferences are supplied per request and never persisted.
type Preferences struct {
	Gender               string     `json:"gender"`
	PreferredStyles      []Category `json:"preferredStyles"`
	PreferredColors      []string   `json:"preferredColors"`
	NotificationsEnabled bool       `json:"notificationsEnabled"`
	PreferredLanguage    string     `json:"preferredLanguage"`
	AdsEnabled           bool       `json:"adsEnabled"`
}

// StyleRecommendation is one rule-based outfit suggestion. Confidence may
// exceed 100 after the preferred-colour boost.
type StyleRecommendation struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	ClothingItems []string    `json:"clothingItems"`
	Colors        []string    `json:"colors"`
	Category      Category    `json:"category"`
	WeatherType   WeatherType `json:"weatherType"`
	Temperature   float64     `json:"temperature"`
	ImageURL      string      `json:"imageUrl"`
	Confidence    int         `json:"confidence"`
}

// ActivityRecommendation suggests something to do in the current weather.
type ActivityRecommendation struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	WeatherType WeatherType `json:"weatherType"`
	Temperature float64     `json:"temperature"`
	Category    string      `json:"category"`
	Tags        []string    `json:"tags"`
}

// Request is the payload accepted by both recommendation endpoints.
type Request struct {
	Weather     *weather.Weather `json:"weather"`
	Preferences *Preferences     `json:"preferences"`
}

// StyleResponse wraps style recommendations for API consumers.
type StyleResponse struct {
	Recommendations []StyleRecommendation `json:"recommendations"`
}

// ActivityResponse wraps activity recommendations for API consumers.
type ActivityResponse struct {
	Recommendations []ActivityRecommendation `json:"recommendations"`
}
