package service

import (
	"context"
	"time"

	"halfmoon/widget-service/internal/db/refreshlog"
	"halfmoon/widget-service/internal/providers"
	"halfmoon/widget-service/internal/ttlcache"
)

const locationCacheKey = "users/self/location"

// DefaultVenue is reported when the account has no check-ins.
func DefaultVenue() providers.Venue {
	category := providers.VenueCategory{
		ID:         "4bf58dd8d48988d175941735",
		Name:       "Gym / Fitness Center",
		PluralName: "Gyms or Fitness Centers",
		ShortName:  "Gym / Fitness",
		Icon: providers.CategoryIcon{
			Prefix: "https://ss3.4sqi.net/img/categories_v2/building/gym_",
			Suffix: ".png",
		},
		Primary: true,
	}

	return providers.Venue{
		ID:      "561e76ee498eb5ed5f9f850b",
		Name:    "SALT",
		Contact: map[string]any{},
		Location: providers.VenueLocation{
			Address:          "327 Divisadero St",
			Lat:              37.7726194545472,
			Lng:              -122.43742447652257,
			LabeledLatLngs:   []any{},
			PostalCode:       "94117",
			CC:               "US",
			City:             "San Francisco",
			State:            "CA",
			Country:          "United States",
			FormattedAddress: []string{},
		},
		Category: &category,
	}
}

type LocationService interface {
	CurrentVenue(ctx context.Context) (providers.Venue, bool, error)
}

type locationService struct {
	cache     *ttlcache.Cache[string, providers.Venue]
	checkins  providers.CheckinProvider
	refreshes refreshRecorder
}

func NewLocationService(
	cache *ttlcache.Cache[string, providers.Venue],
	checkins providers.CheckinProvider,
	refreshes refreshlog.Repository,
) LocationService {
	return &locationService{
		cache:     cache,
		checkins:  checkins,
		refreshes: refreshRecorder{repo: refreshes, endpoint: refreshlog.EndpointLocation},
	}
}

func (s *locationService) CurrentVenue(ctx context.Context) (providers.Venue, bool, error) {
	return s.cache.GetOrCompute(context.WithoutCancel(ctx), locationCacheKey, s.refresh)
}

func (s *locationService) refresh(ctx context.Context) (venue providers.Venue, err error) {
	started := time.Now()
	defer func() { s.refreshes.record(locationCacheKey, started, err) }()

	latest, err := s.checkins.LatestVenue(ctx)
	if err != nil {
		return providers.Venue{}, err
	}
	if latest == nil {
		return DefaultVenue(), nil
	}

	return *latest, nil
}
