package openweather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/yanqian/weatherstyle/internal/domain/weather"
	apperrors "github.com/yanqian/weatherstyle/pkg/errors"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5"
	providerName   = "openweather"
)

// Client reads OpenWeather's current and 3-hourly forecast endpoints in
// metric units.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient builds an API client.
func NewClient(apiKey, baseURL, language string, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(base, "/"),
		language:   language,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string { return providerName }

// Current fetches conditions for a coordinate.
func (c *Client) Current(ctx context.Context, lat, lon float64) (weather.Weather, error) {
	var payload currentResponse
	if err := c.get(ctx, "weather", coordinateParams(lat, lon), &payload); err != nil {
		return weather.Weather{}, err
	}
	return normalizeCurrent(payload, c.now())
}

// CurrentByCity fetches conditions for a city name.
func (c *Client) CurrentByCity(ctx context.Context, city string) (weather.Weather, error) {
	var payload currentResponse
	if err := c.get(ctx, "weather", url.Values{"q": []string{city}}, &payload); err != nil {
		return weather.Weather{}, err
	}
	return normalizeCurrent(payload, c.now())
}

// Forecast groups the 3-hourly samples into daily entries.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (weather.Forecast, error) {
	var payload forecastResponse
	if err := c.get(ctx, "forecast", coordinateParams(lat, lon), &payload); err != nil {
		return weather.Forecast{}, err
	}
	return groupByDate(payload.List)
}

func (c *Client) get(ctx context.Context, path string, params url.Values, target any) error {
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	if c.language != "" {
		params.Set("lang", c.language)
	}
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build openweather request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("openweather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &apperrors.StatusError{Upstream: "openweather", StatusCode: resp.StatusCode, Body: string(payload)}
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode openweather response: %w", err)
	}
	return nil
}

type currentResponse struct {
	Name    string       `json:"name"`
	Main    *mainBlock   `json:"main"`
	Wind    windBlock    `json:"wind"`
	Weather []conditions `json:"weather"`
}

type forecastResponse struct {
	List []sample `json:"list"`
}

type sample struct {
	Dt      int64        `json:"dt"`
	Main    mainBlock    `json:"main"`
	Weather []conditions `json:"weather"`
}

type mainBlock struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Humidity  int     `json:"humidity"`
}

type windBlock struct {
	Speed float64 `json:"speed"`
}

type conditions struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func normalizeCurrent(payload currentResponse, now time.Time) (weather.Weather, error) {
	if payload.Main == nil || len(payload.Weather) == 0 {
		return weather.Weather{}, errors.New("openweather response missing main or weather block")
	}
	cond := payload.Weather[0]
	return weather.Weather{
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
		Description: cond.Description,
		Icon:        cond.Icon,
		Main:        cond.Main,
		Location:    payload.Name,
		Timestamp:   now.UTC().Format(time.RFC3339),
	}, nil
}

// groupByDate folds 3-hourly samples into one entry per UTC calendar date.
// Description, icon and main come from the first sample seen for the date.
func groupByDate(samples []sample) (weather.Forecast, error) {
	if len(samples) == 0 {
		return weather.Forecast{}, errors.New("openweather forecast list is empty")
	}
	byDate := make(map[string]*weather.Day)
	for _, s := range samples {
		date := time.Unix(s.Dt, 0).UTC().Format("2006-01-02")
		day, ok := byDate[date]
		if !ok {
			day = &weather.Day{
				Date:    date,
				MinTemp: s.Main.TempMin,
				MaxTemp: s.Main.TempMax,
			}
			if len(s.Weather) > 0 {
				day.Description = s.Weather[0].Description
				day.Icon = s.Weather[0].Icon
				day.Main = s.Weather[0].Main
			}
			byDate[date] = day
			continue
		}
		day.MinTemp = min(day.MinTemp, s.Main.TempMin)
		day.MaxTemp = max(day.MaxTemp, s.Main.TempMax)
	}

	days := make([]weather.Day, 0, len(byDate))
	for _, day := range byDate {
		days = append(days, *day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return weather.Forecast{Days: days}, nil
}

func coordinateParams(lat, lon float64) url.Values {
	return url.Values{
		"lat": []string{strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon": []string{strconv.FormatFloat(lon, 'f', -1, 64)},
	}
}
