package weather

import "time"

const (
	fallbackIcon        = "https://cdn.weatherapi.com/weather/64x64/day/116.png"
	fallbackForecastLen = 7
)

// FallbackWeather is served whenever the provider is unconfigured or fails.
func FallbackWeather(now time.Time) Weather {
	return Weather{
		Temperature: 22.0,
		FeelsLike:   24.0,
		Humidity:    65,
		WindSpeed:   3.5,
		Description: "맑음",
		Icon:        fallbackIcon,
		Main:        "Clear",
		Location:    "서울",
		Timestamp:   now.UTC().Format(time.RFC3339),
	}
}

// FallbackForecast returns seven deterministic days starting at now's UTC date.
func FallbackForecast(now time.Time) Forecast {
	start := now.UTC()
	days := make([]Day, 0, fallbackForecastLen)
	for i := 0; i < fallbackForecastLen; i++ {
		day := Day{
			Date:        start.AddDate(0, 0, i).Format("2006-01-02"),
			MinTemp:     15 + float64(i%5),
			MaxTemp:     25 + float64(i%5),
			Description: "맑음",
			Icon:        "01d",
			Main:        "Clear",
		}
		if i%2 == 1 {
			day.Description = "흐림"
			day.Icon = "03d"
			day.Main = "Clouds"
		}
		days = append(days, day)
	}
	return Forecast{Days: days}
}
