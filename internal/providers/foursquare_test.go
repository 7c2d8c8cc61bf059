package providers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"halfmoon/widget-service/internal/providers"
)

const checkinJSON = `{
	"meta": {"code": 200},
	"response": {"checkins": {"count": 1, "items": [{
		"id": "abc",
		"venue": {
			"id": "4a2706d4f964a520d5881fe3",
			"name": "Blue Bottle Coffee",
			"contact": {},
			"location": {"address": "66 Mint St", "lat": 37.78, "lng": -122.40, "cc": "US", "city": "San Francisco", "formattedAddress": ["66 Mint St"]},
			"categories": [
				{"id": "4bf58dd8d48988d1e0931735", "name": "Coffee Shop", "pluralName": "Coffee Shops", "shortName": "Coffee Shop", "icon": {"prefix": "https://ss3.4sqi.net/img/categories_v2/food/coffeeshop_", "suffix": ".png"}, "primary": true},
				{"id": "x", "name": "Café"}
			]
		}
	}]}}
}`

type FoursquareProviderTestSuite struct {
	suite.Suite
	server   *httptest.Server
	query    url.Values
	response string
	status   int
	provider providers.CheckinProvider
	ctx      context.Context
}

func (s *FoursquareProviderTestSuite) SetupTest() {
	s.response = checkinJSON
	s.status = http.StatusOK
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/users/self/checkins" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		s.query = r.URL.Query()
		w.WriteHeader(s.status)
		w.Write([]byte(s.response))
	}))

	s.provider = providers.NewFoursquareProvider("fsq-token", providers.ClientOptions{
		BaseURL: s.server.URL,
		Timeout: time.Second,
	})
	s.ctx = context.Background()
}

func (s *FoursquareProviderTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *FoursquareProviderTestSuite) TestLatestVenue() {
	venue, err := s.provider.LatestVenue(s.ctx)

	s.Require().NoError(err)
	s.Require().NotNil(venue)
	s.Equal("Blue Bottle Coffee", venue.Name)
	s.Equal("San Francisco", venue.Location.City)
	s.Require().NotNil(venue.Category)
	s.Equal("Coffee Shop", venue.Category.Name)
	s.Len(venue.Categories, 2)

	s.Equal("1", s.query.Get("limit"))
	s.Equal("20120609", s.query.Get("v"))
	s.Equal("newestfirst", s.query.Get("sort"))
	s.Equal("fsq-token", s.query.Get("oauth_token"))
}

func (s *FoursquareProviderTestSuite) TestLatestVenue_NoCategories() {
	s.response = `{"meta": {"code": 200}, "response": {"checkins": {"items": [{"venue": {"id": "v1", "name": "Somewhere"}}]}}}`

	venue, err := s.provider.LatestVenue(s.ctx)

	s.Require().NoError(err)
	s.Equal("Somewhere", venue.Name)
	s.Nil(venue.Category)
}

func (s *FoursquareProviderTestSuite) TestLatestVenue_NoCheckins() {
	s.response = `{"meta": {"code": 200}, "response": {"checkins": {"count": 0, "items": []}}}`

	venue, err := s.provider.LatestVenue(s.ctx)

	s.NoError(err)
	s.Nil(venue)
}

func (s *FoursquareProviderTestSuite) TestLatestVenue_InvalidToken() {
	s.status = http.StatusUnauthorized
	s.response = `{"meta": {"code": 401, "errorType": "invalid_auth", "errorDetail": "OAuth token invalid or revoked."}, "response": {}}`

	_, err := s.provider.LatestVenue(s.ctx)

	s.ErrorIs(err, providers.ErrUpstreamFailure)
	s.Contains(err.Error(), "OAuth token invalid or revoked.")
}

func (s *FoursquareProviderTestSuite) TestUnreachableUpstreamHidesToken() {
	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()

	provider := providers.NewFoursquareProvider("fsq-secret-token", providers.ClientOptions{
		BaseURL: closed.URL,
		Timeout: time.Second,
	})

	_, err := provider.LatestVenue(s.ctx)

	s.Require().ErrorIs(err, providers.ErrUpstreamFailure)
	s.NotContains(err.Error(), "fsq-secret-token")
	s.NotContains(err.Error(), "oauth_token")
}

func (s *FoursquareProviderTestSuite) TestAuthorizeURL() {
	got := providers.AuthorizeURL("client-1", "http://localhost:3001/users/auth/foursquare/callback")

	s.Equal("https://foursquare.com/oauth2/authenticate?client_id=client-1&response_type=code&redirect_uri=http%3A%2F%2Flocalhost%3A3001%2Fusers%2Fauth%2Ffoursquare%2Fcallback", got)
}

func (s *FoursquareProviderTestSuite) TestAccessTokenURL() {
	got := providers.AccessTokenURL("client-1", "https://halfmoon.ws/users/auth/foursquare/callback", "code-42")

	parsed, err := url.Parse(got)
	s.Require().NoError(err)
	s.Equal("/oauth2/access_token", parsed.Path)

	query := parsed.Query()
	s.Equal("client-1", query.Get("client_id"))
	s.Equal("YOUR_CLIENT_SECRET", query.Get("client_secret"))
	s.Equal("authorization_code", query.Get("grant_type"))
	s.Equal("https://halfmoon.ws/users/auth/foursquare/callback", query.Get("redirect_uri"))
	s.Equal("code-42", query.Get("code"))
}

func TestFoursquareProviderTestSuite(t *testing.T) {
	suite.Run(t, new(FoursquareProviderTestSuite))
}
