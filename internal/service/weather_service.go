package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"halfmoon/widget-service/internal/db/refreshlog"
	"halfmoon/widget-service/internal/geo"
	"halfmoon/widget-service/internal/providers"
	"halfmoon/widget-service/internal/ttlcache"
	"halfmoon/widget-service/internal/widget"
)

type WeatherSummary struct {
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
}

// WeatherReport is the data of a /weather response.
type WeatherReport struct {
	Location       geo.Location              `json:"location"`
	Weather        WeatherSummary            `json:"weather"`
	Forecast       []providers.ForecastPoint `json:"forecast"`
	CurrentWidget  string                    `json:"currentWidget"`
	ForecastWidget string                    `json:"forecastWidget"`
	Embed          string                    `json:"embed"`
}

type renderedWidgets struct {
	current string
	embed   string
}

// WeatherSnapshot is what the weather cache holds per client IP: the
// upstream data and every widget rendered from it, for both sizes.
type WeatherSnapshot struct {
	location       geo.Location
	weather        WeatherSummary
	forecast       []providers.ForecastPoint
	forecastWidget string
	widgets        map[widget.Size]renderedWidgets
}

func newWeatherSnapshot(loc geo.Location, current *providers.CurrentWeather, forecast *providers.Forecast) *WeatherSnapshot {
	chart := widget.RenderForecastChart(forecast.Points, forecast.Location())

	widgets := make(map[widget.Size]renderedWidgets, 2)
	for _, size := range []widget.Size{widget.SizeLarge, widget.SizeSmall} {
		html := widget.RenderCurrent(current, size)
		widgets[size] = renderedWidgets{
			current: html,
			embed:   widget.RenderEmbed(html, chart),
		}
	}

	return &WeatherSnapshot{
		location: loc,
		weather: WeatherSummary{
			Description: current.Description,
			Temperature: current.Temperature,
			Humidity:    current.Humidity,
			WindSpeed:   current.WindSpeed,
		},
		forecast:       forecast.Points,
		forecastWidget: chart,
		widgets:        widgets,
	}
}

// Report returns the snapshot with the widgets of the given size.
func (s *WeatherSnapshot) Report(size widget.Size) WeatherReport {
	rendered, ok := s.widgets[size]
	if !ok {
		rendered = s.widgets[widget.SizeSmall]
	}

	return WeatherReport{
		Location:       s.location,
		Weather:        s.weather,
		Forecast:       s.forecast,
		CurrentWidget:  rendered.current,
		ForecastWidget: s.forecastWidget,
		Embed:          rendered.embed,
	}
}

type WeatherService interface {
	// GetWeather returns the weather for the client at ip and whether it
	// was served from cache.
	GetWeather(ctx context.Context, ip string, size widget.Size) (WeatherReport, bool, error)
}

type weatherService struct {
	cache     *ttlcache.Cache[string, *WeatherSnapshot]
	resolver  geo.Resolver
	weather   providers.WeatherProvider
	refreshes refreshRecorder
}

func NewWeatherService(
	cache *ttlcache.Cache[string, *WeatherSnapshot],
	resolver geo.Resolver,
	weather providers.WeatherProvider,
	refreshes refreshlog.Repository,
) WeatherService {
	return &weatherService{
		cache:     cache,
		resolver:  resolver,
		weather:   weather,
		refreshes: refreshRecorder{repo: refreshes, endpoint: refreshlog.EndpointWeather},
	}
}

func (s *weatherService) GetWeather(ctx context.Context, ip string, size widget.Size) (WeatherReport, bool, error) {
	snapshot, cached, err := s.cache.GetOrCompute(context.WithoutCancel(ctx), ip, s.refresh(ip))
	if err != nil {
		return WeatherReport{}, false, err
	}

	return snapshot.Report(size), cached, nil
}

func (s *weatherService) refresh(ip string) ttlcache.ComputeFn[*WeatherSnapshot] {
	return func(ctx context.Context) (snapshot *WeatherSnapshot, err error) {
		started := time.Now()
		defer func() { s.refreshes.record(ip, started, err) }()

		loc, err := s.resolver.Resolve(ip)
		if err != nil {
			return nil, err
		}

		var (
			current  *providers.CurrentWeather
			forecast *providers.Forecast
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			current, err = s.weather.CurrentWeather(gctx, loc.Latitude, loc.Longitude)
			return err
		})
		g.Go(func() error {
			var err error
			forecast, err = s.weather.Forecast(gctx, loc.Latitude, loc.Longitude)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		log.Debug().Str("ip", ip).Str("city", loc.City).Int("forecast_points", len(forecast.Points)).Msg("weather refreshed")

		return newWeatherSnapshot(loc, current, forecast), nil
	}
}
