package weatherapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/yanqian/weatherstyle/internal/domain/weather"
	apperrors "github.com/yanqian/weatherstyle/pkg/errors"
)

const (
	defaultBaseURL = "https://api.weatherapi.com/v1"
	providerName   = "weatherapi"
	kphPerMps      = 3.6
)

// Client fetches current conditions and daily forecasts from WeatherAPI.com.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	days       int
	httpClient *http.Client
	now        func() time.Time
}

// NewClient builds an API client.
func NewClient(apiKey, baseURL, language string, days int, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if days <= 0 {
		days = 7
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(base, "/"),
		language: language,
		days:     days,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string { return providerName }

// Current fetches current conditions for a coordinate.
func (c *Client) Current(ctx context.Context, lat, lon float64) (weather.Weather, error) {
	var payload currentResponse
	if err := c.get(ctx, "current.json", coordinateQuery(lat, lon), nil, &payload); err != nil {
		return weather.Weather{}, err
	}
	return normalizeCurrent(payload, c.now())
}

// CurrentByCity fetches current conditions for a free-text city name.
func (c *Client) CurrentByCity(ctx context.Context, city string) (weather.Weather, error) {
	var payload currentResponse
	if err := c.get(ctx, "current.json", city, nil, &payload); err != nil {
		return weather.Weather{}, err
	}
	return normalizeCurrent(payload, c.now())
}

// Forecast fetches the daily forecast for a coordinate.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (weather.Forecast, error) {
	var payload forecastResponse
	extra := url.Values{"days": []string{strconv.Itoa(c.days)}}
	if err := c.get(ctx, "forecast.json", coordinateQuery(lat, lon), extra, &payload); err != nil {
		return weather.Forecast{}, err
	}
	return normalizeForecast(payload)
}

func (c *Client) get(ctx context.Context, path, query string, extra url.Values, target any) error {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", query)
	params.Set("aqi", "yes")
	if c.language != "" {
		params.Set("lang", c.language)
	}
	for k, v := range extra {
		params[k] = v
	}
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build weatherapi request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("weatherapi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &apperrors.StatusError{Upstream: "weatherapi", StatusCode: resp.StatusCode, Body: string(payload)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read weatherapi response: %w", err)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode weatherapi response: %w", err)
	}
	return nil
}

type currentResponse struct {
	Location *location `json:"location"`
	Current  *current  `json:"current"`
}

type forecastResponse struct {
	Location *location `json:"location"`
	Forecast *struct {
		ForecastDay []forecastDay `json:"forecastday"`
	} `json:"forecast"`
}

type location struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

type current struct {
	TempC      float64   `json:"temp_c"`
	FeelsLikeC float64   `json:"feelslike_c"`
	Humidity   int       `json:"humidity"`
	WindKph    float64   `json:"wind_kph"`
	Condition  condition `json:"condition"`
}

type condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
	Code int    `json:"code"`
}

type forecastDay struct {
	Date string `json:"date"`
	Day  struct {
		MinTempC  float64   `json:"mintemp_c"`
		MaxTempC  float64   `json:"maxtemp_c"`
		Condition condition `json:"condition"`
	} `json:"day"`
}

func normalizeCurrent(payload currentResponse, now time.Time) (weather.Weather, error) {
	if payload.Current == nil {
		return weather.Weather{}, errors.New("weatherapi response missing current block")
	}
	name := ""
	if payload.Location != nil {
		name = payload.Location.Name
	}
	cur := payload.Current
	return weather.Weather{
		Temperature: cur.TempC,
		FeelsLike:   cur.FeelsLikeC,
		Humidity:    cur.Humidity,
		WindSpeed:   cur.WindKph / kphPerMps,
		Description: cur.Condition.Text,
		Icon:        absoluteIconURL(cur.Condition.Icon),
		Main:        coarseCondition(cur.Condition.Code, cur.Condition.Text),
		Location:    name,
		Timestamp:   now.UTC().Format(time.RFC3339),
	}, nil
}

func normalizeForecast(payload forecastResponse) (weather.Forecast, error) {
	if payload.Forecast == nil {
		return weather.Forecast{}, errors.New("weatherapi response missing forecast block")
	}
	days := make([]weather.Day, 0, len(payload.Forecast.ForecastDay))
	for _, fd := range payload.Forecast.ForecastDay {
		days = append(days, weather.Day{
			Date:        fd.Date,
			MinTemp:     fd.Day.MinTempC,
			MaxTemp:     fd.Day.MaxTempC,
			Description: fd.Day.Condition.Text,
			Icon:        absoluteIconURL(fd.Day.Condition.Icon),
			Main:        coarseCondition(fd.Day.Condition.Code, fd.Day.Condition.Text),
		})
	}
	return weather.Forecast{Days: days}, nil
}

// absoluteIconURL upgrades protocol-relative icon URLs to https.
func absoluteIconURL(icon string) string {
	if strings.HasPrefix(icon, "//") {
		return "https:" + icon
	}
	return icon
}

func coordinateQuery(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
}
