package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

const (
	DefaultOpenWeatherBaseURL = "https://api.openweathermap.org"
	forecastPointCount        = 8
)

type WeatherProvider interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (*CurrentWeather, error)
	Forecast(ctx context.Context, lat, lon float64) (*Forecast, error)
}

type CurrentWeather struct {
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"`
	Time        time.Time `json:"time"`
}

type ForecastPoint struct {
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

type Forecast struct {
	Points []ForecastPoint `json:"points"`
	// TimezoneOffset is the location's UTC offset in seconds.
	TimezoneOffset int `json:"timezoneOffset"`
}

// Location returns a fixed zone for the forecast's UTC offset.
func (f *Forecast) Location() *time.Location {
	return time.FixedZone("", f.TimezoneOffset)
}

type owmCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owmMain struct {
	Temp     *float64 `json:"temp"`
	Humidity float64  `json:"humidity"`
}

type owmWind struct {
	Speed float64 `json:"speed"`
}

type owmCurrentResponse struct {
	Weather []owmCondition `json:"weather"`
	Main    owmMain        `json:"main"`
	Wind    owmWind        `json:"wind"`
	Dt      int64          `json:"dt"`
}

type owmForecastResponse struct {
	List []struct {
		Dt      int64          `json:"dt"`
		Main    owmMain        `json:"main"`
		Weather []owmCondition `json:"weather"`
		Wind    owmWind        `json:"wind"`
	} `json:"list"`
	City struct {
		Timezone int `json:"timezone"`
	} `json:"city"`
}

type owmErrorResponse struct {
	Message string `json:"message"`
}

type openWeatherProvider struct {
	apiKey  string
	baseURL string
	current *upstream
	hourly  *upstream
}

func NewOpenWeatherProvider(apiKey string, opts ClientOptions) WeatherProvider {
	opts = opts.withDefaults(DefaultOpenWeatherBaseURL)

	return &openWeatherProvider{
		apiKey:  apiKey,
		baseURL: opts.BaseURL,
		current: newUpstream("openweathermap-current", opts, openWeatherErrorDetail),
		hourly:  newUpstream("openweathermap-forecast", opts, openWeatherErrorDetail),
	}
}

func openWeatherErrorDetail(body []byte) string {
	var resp owmErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	return resp.Message
}

func (p *openWeatherProvider) endpoint(path string, lat, lon float64, extra url.Values) string {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("appid", p.apiKey)
	params.Set("units", "metric")
	params.Set("lang", "en")
	for k, v := range extra {
		params[k] = v
	}

	return fmt.Sprintf("%s%s?%s", p.baseURL, path, params.Encode())
}

func (p *openWeatherProvider) CurrentWeather(ctx context.Context, lat, lon float64) (*CurrentWeather, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint("/data/2.5/weather", lat, lon, nil), nil)
	if err != nil {
		return nil, fmt.Errorf("build current weather request: %w", err)
	}

	body, err := p.current.do(req)
	if err != nil {
		return nil, err
	}

	var resp owmCurrentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, p.current.malformed("%v", err)
	}

	if len(resp.Weather) == 0 {
		return nil, p.current.malformed("no weather conditions")
	}
	if resp.Main.Temp == nil {
		return nil, p.current.malformed("missing temperature")
	}

	return &CurrentWeather{
		Description: resp.Weather[0].Description,
		Icon:        resp.Weather[0].Icon,
		Temperature: *resp.Main.Temp,
		Humidity:    resp.Main.Humidity,
		WindSpeed:   resp.Wind.Speed,
		Time:        time.Unix(resp.Dt, 0).UTC(),
	}, nil
}

func (p *openWeatherProvider) Forecast(ctx context.Context, lat, lon float64) (*Forecast, error) {
	extra := url.Values{"cnt": {strconv.Itoa(forecastPointCount)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint("/data/2.5/forecast", lat, lon, extra), nil)
	if err != nil {
		return nil, fmt.Errorf("build forecast request: %w", err)
	}

	body, err := p.hourly.do(req)
	if err != nil {
		return nil, err
	}

	var resp owmForecastResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, p.hourly.malformed("%v", err)
	}

	forecast := &Forecast{
		Points:         make([]ForecastPoint, 0, len(resp.List)),
		TimezoneOffset: resp.City.Timezone,
	}

	for i, item := range resp.List {
		if len(item.Weather) == 0 || item.Main.Temp == nil {
			return nil, p.hourly.malformed("incomplete forecast item %d", i)
		}

		forecast.Points = append(forecast.Points, ForecastPoint{
			Time:        time.Unix(item.Dt, 0).UTC(),
			Temperature: *item.Main.Temp,
			Humidity:    item.Main.Humidity,
			WindSpeed:   item.Wind.Speed,
			Description: item.Weather[0].Description,
			Icon:        item.Weather[0].Icon,
		})

		if len(forecast.Points) == forecastPointCount {
			break
		}
	}

	return forecast, nil
}
