package service

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"halfmoon/widget-service/internal/db/refreshlog"
	"halfmoon/widget-service/internal/providers"
	"halfmoon/widget-service/internal/ttlcache"
)

const maxArtworkPicks = 3

type ArtService interface {
	// RandomArtwork picks an artwork with an image from the cached search
	// results. cached reports whether its details came from cache.
	RandomArtwork(ctx context.Context) (providers.Artwork, bool, error)
}

type ArtOption func(*artService)

// WithPicker replaces the random index choice; pick returns a value in [0, n).
func WithPicker(pick func(n int) int) ArtOption {
	return func(s *artService) {
		s.pick = pick
	}
}

type artService struct {
	searches  *ttlcache.Cache[string, []int]
	objects   *ttlcache.Cache[int, providers.Artwork]
	artworks  providers.ArtworkProvider
	query     string
	pick      func(n int) int
	searchLog refreshRecorder
	objectLog refreshRecorder
}

func NewArtService(
	searches *ttlcache.Cache[string, []int],
	objects *ttlcache.Cache[int, providers.Artwork],
	artworks providers.ArtworkProvider,
	query string,
	refreshes refreshlog.Repository,
	opts ...ArtOption,
) ArtService {
	s := &artService{
		searches:  searches,
		objects:   objects,
		artworks:  artworks,
		query:     query,
		pick:      rand.Intn,
		searchLog: refreshRecorder{repo: refreshes, endpoint: refreshlog.EndpointArtSearch},
		objectLog: refreshRecorder{repo: refreshes, endpoint: refreshlog.EndpointArtObject},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *artService) RandomArtwork(ctx context.Context) (providers.Artwork, bool, error) {
	ctx = context.WithoutCancel(ctx)

	ids, _, err := s.searches.GetOrCompute(ctx, s.query, s.search)
	if err != nil {
		return providers.Artwork{}, false, err
	}
	if len(ids) == 0 {
		return providers.Artwork{}, false, fmt.Errorf("%w: empty artwork search results", providers.ErrUpstreamFailure)
	}

	for i := 0; i < maxArtworkPicks; i++ {
		id := ids[s.pick(len(ids))]

		art, cached, err := s.objects.GetOrCompute(ctx, id, s.object(id))
		if err != nil {
			return providers.Artwork{}, false, err
		}
		if art.HasImage() {
			return art, cached, nil
		}
	}

	return providers.Artwork{}, false, fmt.Errorf("%w: no artwork with an image after %d picks", providers.ErrUpstreamFailure, maxArtworkPicks)
}

func (s *artService) search(ctx context.Context) (ids []int, err error) {
	started := time.Now()
	defer func() { s.searchLog.record(s.query, started, err) }()

	return s.artworks.SearchArtworks(ctx, s.query)
}

func (s *artService) object(id int) ttlcache.ComputeFn[providers.Artwork] {
	return func(ctx context.Context) (art providers.Artwork, err error) {
		started := time.Now()
		defer func() { s.objectLog.record(strconv.Itoa(id), started, err) }()

		fetched, err := s.artworks.Artwork(ctx, id)
		if err != nil {
			return providers.Artwork{}, err
		}
		return *fetched, nil
	}
}
