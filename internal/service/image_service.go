package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"halfmoon/widget-service/internal/db/refreshlog"
	"halfmoon/widget-service/internal/geo"
	"halfmoon/widget-service/internal/providers"
	"halfmoon/widget-service/internal/ttlcache"
)

// ImageScope decides whether generated images are shared by every client
// or kept per client IP.
type ImageScope string

const (
	ImageScopeGlobal ImageScope = "global"
	ImageScopeIP     ImageScope = "ip"

	globalImageKey = "global"
)

func ParseImageScope(value string) (ImageScope, error) {
	switch ImageScope(value) {
	case "", ImageScopeGlobal:
		return ImageScopeGlobal, nil
	case ImageScopeIP:
		return ImageScopeIP, nil
	default:
		return "", fmt.Errorf("unknown image cache scope %q, expected %q or %q", value, ImageScopeGlobal, ImageScopeIP)
	}
}

// ImagePrompt describes the picture to generate for the given conditions.
func ImagePrompt(description, city string) string {
	return fmt.Sprintf("A view of %s weather in %s. Do not have any text on the image. "+
		"Absolutely NO TEXT on the image. Use colors and shapes that evoke the current weather conditions.",
		description, city)
}

type ImageService interface {
	// DailyImage returns PNG bytes of an image matching the weather at the
	// client's location.
	DailyImage(ctx context.Context, ip string) ([]byte, bool, error)
}

type imageService struct {
	cache     *ttlcache.Cache[string, []byte]
	scope     ImageScope
	resolver  geo.Resolver
	weather   providers.WeatherProvider
	generator providers.ImageGenerator
	refreshes refreshRecorder
}

func NewImageService(
	cache *ttlcache.Cache[string, []byte],
	scope ImageScope,
	resolver geo.Resolver,
	weather providers.WeatherProvider,
	generator providers.ImageGenerator,
	refreshes refreshlog.Repository,
) ImageService {
	return &imageService{
		cache:     cache,
		scope:     scope,
		resolver:  resolver,
		weather:   weather,
		generator: generator,
		refreshes: refreshRecorder{repo: refreshes, endpoint: refreshlog.EndpointDailyImage},
	}
}

func (s *imageService) cacheKey(ip string) string {
	if s.scope == ImageScopeIP {
		return ip
	}
	return globalImageKey
}

func (s *imageService) DailyImage(ctx context.Context, ip string) ([]byte, bool, error) {
	key := s.cacheKey(ip)
	return s.cache.GetOrCompute(context.WithoutCancel(ctx), key, s.refresh(key, ip))
}

func (s *imageService) refresh(key, ip string) ttlcache.ComputeFn[[]byte] {
	return func(ctx context.Context) (image []byte, err error) {
		started := time.Now()
		defer func() { s.refreshes.record(key, started, err) }()

		loc, err := s.resolver.Resolve(ip)
		if err != nil {
			return nil, err
		}

		current, err := s.weather.CurrentWeather(ctx, loc.Latitude, loc.Longitude)
		if err != nil {
			return nil, err
		}

		place := loc.City
		if place == "" {
			place = loc.Country
		}
		prompt := ImagePrompt(current.Description, place)

		imageURL, err := s.generator.GenerateImage(ctx, prompt)
		if err != nil {
			return nil, err
		}

		image, err = s.generator.DownloadImage(ctx, imageURL)
		if err != nil {
			return nil, err
		}

		log.Info().Str("cache_key", key).Str("prompt", prompt).Int("bytes", len(image)).Msg("daily image generated")

		return image, nil
	}
}
