package weather

import "time"

// Weather is a normalized current-conditions snapshot.
type Weather struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Main        string  `json:"main"`
	Location    string  `json:"location"`
	Timestamp   string  `json:"timestamp"`
}

// Forecast is a chronologically ascending list of daily forecasts.
type Forecast struct {
	Days []Day `json:"days"`
}

// Day is one forecast day with upstream or derived min/max temperatures.
type Day struct {
	Date        string  `json:"date"`
	MinTemp     float64 `json:"minTemp"`
	MaxTemp     float64 `json:"maxTemp"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Main        string  `json:"main"`
}

// Snapshot pairs current weather and forecast fetched together for one coordinate.
type Snapshot struct {
	Current   Weather   `json:"current"`
	Forecast  Forecast  `json:"forecast"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Config wires runtime knobs for the weather domain.
type Config struct {
	CacheTTL time.Duration
}
