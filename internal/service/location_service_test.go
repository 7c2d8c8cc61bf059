package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"halfmoon/widget-service/internal/mocks"
	"halfmoon/widget-service/internal/providers"
	"halfmoon/widget-service/internal/service"
	"halfmoon/widget-service/internal/ttlcache"
)

type LocationServiceTestSuite struct {
	suite.Suite
	clock    *ttlcache.TestClock
	cache    *ttlcache.Cache[string, providers.Venue]
	checkins *mocks.MockCheckinProvider
	service  service.LocationService
	ctx      context.Context
}

func (s *LocationServiceTestSuite) SetupTest() {
	s.clock = ttlcache.NewTestClock(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC))

	var err error
	s.cache, err = ttlcache.New[string, providers.Venue]("location-service-test", 5*time.Minute, ttlcache.WithClock(s.clock))
	s.Require().NoError(err)

	s.checkins = mocks.NewMockCheckinProvider(s.T())
	s.service = service.NewLocationService(s.cache, s.checkins, nil)
	s.ctx = context.Background()
}

func (s *LocationServiceTestSuite) TestLatestVenueIsCached() {
	venue := &providers.Venue{ID: "v1", Name: "Blue Bottle Coffee"}
	s.checkins.On("LatestVenue", mock.Anything).Return(venue, nil).Once()

	got, cached, err := s.service.CurrentVenue(s.ctx)
	s.Require().NoError(err)
	s.False(cached)
	s.Equal("Blue Bottle Coffee", got.Name)

	got, cached, err = s.service.CurrentVenue(s.ctx)
	s.Require().NoError(err)
	s.True(cached)
	s.Equal("v1", got.ID)
}

func (s *LocationServiceTestSuite) TestNoCheckinsUsesDefaultVenue() {
	s.checkins.On("LatestVenue", mock.Anything).Return(nil, nil).Once()

	got, cached, err := s.service.CurrentVenue(s.ctx)
	s.Require().NoError(err)
	s.False(cached)
	s.Equal(service.DefaultVenue(), got)
	s.Equal("SALT", got.Name)
	s.Equal("94117", got.Location.PostalCode)
	s.Require().NotNil(got.Category)
	s.Equal("Gym / Fitness Center", got.Category.Name)

	_, cached, err = s.service.CurrentVenue(s.ctx)
	s.Require().NoError(err)
	s.True(cached)
}

func (s *LocationServiceTestSuite) TestRefetchesAfterFiveMinutes() {
	s.checkins.On("LatestVenue", mock.Anything).Return(&providers.Venue{ID: "v1"}, nil).Once()
	s.checkins.On("LatestVenue", mock.Anything).Return(&providers.Venue{ID: "v2"}, nil).Once()

	_, _, err := s.service.CurrentVenue(s.ctx)
	s.Require().NoError(err)

	s.clock.Add(5 * time.Minute)

	got, cached, err := s.service.CurrentVenue(s.ctx)
	s.Require().NoError(err)
	s.False(cached)
	s.Equal("v2", got.ID)
}

func (s *LocationServiceTestSuite) TestFailureIsNotCached() {
	s.checkins.On("LatestVenue", mock.Anything).Return(nil, providers.ErrUpstreamFailure).Once()

	_, _, err := s.service.CurrentVenue(s.ctx)

	s.ErrorIs(err, providers.ErrUpstreamFailure)
	s.Equal(0, s.cache.Len())
}

func TestLocationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LocationServiceTestSuite))
}
