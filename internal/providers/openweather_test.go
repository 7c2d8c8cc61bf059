package providers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"halfmoon/widget-service/internal/providers"
)

const currentWeatherJSON = `{
	"weather": [{"id": 800, "main": "Clear", "description": "clear sky", "icon": "01d"}],
	"main": {"temp": 20.04, "humidity": 41},
	"wind": {"speed": 3.6},
	"dt": 1717243200,
	"name": "Berlin",
	"cod": 200
}`

const forecastJSON = `{
	"cod": "200",
	"list": [
		{"dt": 1717243200, "main": {"temp": 18.2, "humidity": 50}, "weather": [{"description": "few clouds", "icon": "02d"}], "wind": {"speed": 2.1}},
		{"dt": 1717254000, "main": {"temp": 21.7, "humidity": 45}, "weather": [{"description": "clear sky", "icon": "01d"}], "wind": {"speed": 3.0}}
	],
	"city": {"name": "Berlin", "timezone": 7200}
}`

type OpenWeatherProviderTestSuite struct {
	suite.Suite
	server   *httptest.Server
	hits     atomic.Int32
	lastURL  *url.URL
	provider providers.WeatherProvider
	ctx      context.Context
}

func (s *OpenWeatherProviderTestSuite) SetupTest() {
	s.hits.Store(0)
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		s.lastURL = r.URL

		switch r.URL.Query().Get("lat") {
		case "52.52":
			if r.URL.Path == "/data/2.5/forecast" {
				w.Write([]byte(forecastJSON))
				return
			}
			w.Write([]byte(currentWeatherJSON))
		case "1":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"cod": 401, "message": "Invalid API key"}`))
		case "2":
			w.Write([]byte("{malformed json"))
		case "3":
			w.Write([]byte(`{"weather": [], "main": {"temp": 10}}`))
		case "4":
			w.Write([]byte(`{"list": [{"dt": 1717243200, "main": {"humidity": 50}, "weather": []}], "city": {"timezone": 0}}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))

	s.provider = providers.NewOpenWeatherProvider("test_owm_key", providers.ClientOptions{
		BaseURL:                s.server.URL,
		Timeout:                time.Second,
		MaxConsecutiveFailures: 3,
		OpenTimeout:            time.Minute,
	})
	s.ctx = context.Background()
}

func (s *OpenWeatherProviderTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *OpenWeatherProviderTestSuite) TestCurrentWeather_Success() {
	current, err := s.provider.CurrentWeather(s.ctx, 52.52, 13.405)

	s.Require().NoError(err)
	s.Equal("clear sky", current.Description)
	s.Equal("01d", current.Icon)
	s.Equal(20.04, current.Temperature)
	s.Equal(41.0, current.Humidity)
	s.Equal(3.6, current.WindSpeed)
	s.Equal(time.Unix(1717243200, 0).UTC(), current.Time)

	query := s.lastURL.Query()
	s.Equal("/data/2.5/weather", s.lastURL.Path)
	s.Equal("13.405", query.Get("lon"))
	s.Equal("test_owm_key", query.Get("appid"))
	s.Equal("metric", query.Get("units"))
	s.Equal("en", query.Get("lang"))
}

func (s *OpenWeatherProviderTestSuite) TestCurrentWeather_ErrorMessage() {
	_, err := s.provider.CurrentWeather(s.ctx, 1, 0)

	s.ErrorIs(err, providers.ErrUpstreamFailure)
	s.Contains(err.Error(), "status code 401")
	s.Contains(err.Error(), "Invalid API key")
}

func (s *OpenWeatherProviderTestSuite) TestCurrentWeather_MalformedJSON() {
	_, err := s.provider.CurrentWeather(s.ctx, 2, 0)

	s.ErrorIs(err, providers.ErrUpstreamFailure)
	s.Contains(err.Error(), "malformed response")
}

func (s *OpenWeatherProviderTestSuite) TestCurrentWeather_UnexpectedShape() {
	_, err := s.provider.CurrentWeather(s.ctx, 3, 0)

	s.ErrorIs(err, providers.ErrUpstreamFailure)
	s.Contains(err.Error(), "no weather conditions")
}

func (s *OpenWeatherProviderTestSuite) TestForecast_Success() {
	forecast, err := s.provider.Forecast(s.ctx, 52.52, 13.405)

	s.Require().NoError(err)
	s.Equal("8", s.lastURL.Query().Get("cnt"))
	s.Equal(7200, forecast.TimezoneOffset)
	s.Require().Len(forecast.Points, 2)
	s.Equal(18.2, forecast.Points[0].Temperature)
	s.Equal("02d", forecast.Points[0].Icon)
	s.Equal(time.Unix(1717254000, 0).UTC(), forecast.Points[1].Time)

	_, offset := time.Unix(1717243200, 0).In(forecast.Location()).Zone()
	s.Equal(7200, offset)
}

func (s *OpenWeatherProviderTestSuite) TestForecast_IncompleteItem() {
	_, err := s.provider.Forecast(s.ctx, 4, 0)

	s.ErrorIs(err, providers.ErrUpstreamFailure)
	s.Contains(err.Error(), "incomplete forecast item 0")
}

func (s *OpenWeatherProviderTestSuite) TestServerError() {
	_, err := s.provider.Forecast(s.ctx, 99, 0)

	s.ErrorIs(err, providers.ErrUpstreamFailure)
	s.Contains(err.Error(), "status code 500")
}

func (s *OpenWeatherProviderTestSuite) TestBreakerOpensAfterConsecutiveFailures() {
	for i := 0; i < 3; i++ {
		_, err := s.provider.CurrentWeather(s.ctx, 99, 0)
		s.ErrorIs(err, providers.ErrUpstreamFailure)
	}
	s.Equal(int32(3), s.hits.Load())

	_, err := s.provider.CurrentWeather(s.ctx, 52.52, 13.405)

	s.ErrorIs(err, providers.ErrUpstreamFailure)
	s.Contains(err.Error(), "circuit breaker is open")
	s.Equal(int32(3), s.hits.Load())
}

func (s *OpenWeatherProviderTestSuite) TestUnreachableUpstreamHidesAPIKey() {
	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()

	provider := providers.NewOpenWeatherProvider("SUPERSECRETKEY", providers.ClientOptions{
		BaseURL: closed.URL,
		Timeout: time.Second,
	})

	_, err := provider.CurrentWeather(s.ctx, 52.52, 13.405)

	s.Require().ErrorIs(err, providers.ErrUpstreamFailure)
	s.NotContains(err.Error(), "SUPERSECRETKEY")
	s.NotContains(err.Error(), "appid")
	s.Contains(err.Error(), closed.URL+"/data/2.5/weather")
}

func (s *OpenWeatherProviderTestSuite) TestTimeoutHidesAPIKey() {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(forecastJSON))
	}))
	defer slow.Close()

	provider := providers.NewOpenWeatherProvider("SUPERSECRETKEY", providers.ClientOptions{
		BaseURL: slow.URL,
		Timeout: 20 * time.Millisecond,
	})

	_, err := provider.Forecast(s.ctx, 52.52, 13.405)

	s.Require().ErrorIs(err, providers.ErrUpstreamFailure)
	s.NotContains(err.Error(), "SUPERSECRETKEY")
	s.Contains(err.Error(), "/data/2.5/forecast")
}

func (s *OpenWeatherProviderTestSuite) TestBreakersAreIndependentPerEndpoint() {
	for i := 0; i < 3; i++ {
		_, _ = s.provider.CurrentWeather(s.ctx, 99, 0)
	}

	_, err := s.provider.Forecast(s.ctx, 52.52, 13.405)
	s.NoError(err)
}

func TestOpenWeatherProviderTestSuite(t *testing.T) {
	suite.Run(t, new(OpenWeatherProviderTestSuite))
}
