package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"halfmoon/widget-service/config"
	"halfmoon/widget-service/internal/api/v1/handlers"
	"halfmoon/widget-service/internal/db/refreshlog"
	"halfmoon/widget-service/internal/geo"
	"halfmoon/widget-service/internal/providers"
	"halfmoon/widget-service/internal/service"
	"halfmoon/widget-service/internal/ttlcache"
)

func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logLevel, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(os.Stdout).
		Level(logLevel).
		With().
		Str("service_name", conf.ServiceName).
		Timestamp().
		Logger()

	ctx, mainCtxStop := context.WithCancel(context.Background())

	var refreshes refreshlog.Repository
	if conf.DatabaseEnabled() {
		db, dbErr := initializeDatabase(conf)
		if dbErr != nil {
			log.Fatal().Err(dbErr).Msg("failed to initialize database")
		}
		refreshes = refreshlog.NewRepository(db)
		logLastRefreshes(refreshes)
	} else {
		log.Info().Msg("DATABASE_HOST not set, refresh log disabled")
	}

	geoDB, closeGeoDB := openGeoDatabase(conf.GeoIPDatabasePath)
	defer closeGeoDB()

	resolver, err := geo.NewResolver(geoDB, conf.FallbackIP)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create geo resolver")
	}

	imageScope, err := service.ParseImageScope(conf.ImageCacheScope)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid image cache scope")
	}

	cacheOpts := cacheOptions(conf)
	weatherCache := mustCache[string, *service.WeatherSnapshot]("weather", conf.WeatherCacheTTL, cacheOpts)
	imageCache := mustCache[string, []byte]("daily-image", conf.ImageCacheTTL, cacheOpts)
	locationCache := mustCache[string, providers.Venue]("location", conf.LocationCacheTTL, cacheOpts)
	artSearchCache := mustCache[string, []int]("art-search", conf.ArtCacheTTL, cacheOpts)
	artObjectCache := mustCache[int, providers.Artwork]("art-object", conf.ArtCacheTTL, cacheOpts)

	clientOpts := providers.ClientOptions{Timeout: conf.HTTPTimeoutDuration()}

	weatherProvider := providers.NewOpenWeatherProvider(conf.OpenWeatherMapAPIKey, withBaseURL(clientOpts, conf.OpenWeatherMapBaseURL))
	imageGenerator := providers.NewOpenAIImageGenerator(conf.OpenAIAccessToken, providers.ClientOptions{
		BaseURL: conf.OpenAIBaseURL,
		Timeout: conf.ImageHTTPTimeoutDuration(),
	})
	checkinProvider := providers.NewFoursquareProvider(conf.FoursquareAccessToken, withBaseURL(clientOpts, conf.FoursquareBaseURL))
	artworkProvider := providers.NewMetMuseumProvider(withBaseURL(clientOpts, conf.MetMuseumBaseURL))

	weatherService := service.NewWeatherService(weatherCache, resolver, weatherProvider, refreshes)
	imageService := service.NewImageService(imageCache, imageScope, resolver, weatherProvider, imageGenerator, refreshes)
	locationService := service.NewLocationService(locationCache, checkinProvider, refreshes)
	artService := service.NewArtService(artSearchCache, artObjectCache, artworkProvider, conf.ArtSearchQuery, refreshes)

	publicHandler, err := handlers.NewPublicHandler(conf.PublicDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", conf.PublicDir).Msg("invalid public directory")
	}

	router := handlers.NewRouter(handlers.Handlers{
		Weather:  handlers.NewWeatherHandler(weatherService),
		Image:    handlers.NewImageHandler(imageService),
		Location: handlers.NewLocationHandler(locationService),
		Art:      handlers.NewArtHandler(artService),
		Auth:     handlers.NewAuthHandler(conf.FoursquareClientID, conf.FoursquareCallbackURL),
		Public:   publicHandler,
	}, handlers.RouterOptions{
		AllowedOrigins: conf.CORSAllowedOrigins,
		EnableMetrics:  conf.MetricsEnabled,
	})

	httpServer := &http.Server{
		Addr:              conf.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: conf.HTTPTimeoutDuration(),
	}

	handleSignals(ctx, mainCtxStop, func() {
		shutdownErr := httpServer.Shutdown(ctx)
		if shutdownErr != nil {
			log.Fatal().Err(shutdownErr).Msg("server shutdown failed")
		}
	})

	log.Info().
		Str("env", conf.Env).
		Dur("weather_ttl", conf.WeatherCacheTTL).
		Str("image_scope", string(imageScope)).
		Int("cache_max_entries", conf.CacheMaxEntries).
		Bool("cache_coalesce", conf.CacheCoalesce).
		Msgf("started server on %s", conf.ServerAddress)

	serverErr := httpServer.ListenAndServe()
	if serverErr != nil && !errors.Is(serverErr, http.ErrServerClosed) {
		log.Fatal().Err(serverErr).Msg("server stopped")
	}
	<-ctx.Done()
}

func cacheOptions(conf *config.Config) []ttlcache.Option {
	var opts []ttlcache.Option
	if conf.CacheMaxEntries > 0 {
		opts = append(opts, ttlcache.WithCapacity(conf.CacheMaxEntries))
	}
	if conf.CacheCoalesce {
		opts = append(opts, ttlcache.WithCoalescing())
	}
	return opts
}

func mustCache[K comparable, V any](name string, ttl time.Duration, opts []ttlcache.Option) *ttlcache.Cache[K, V] {
	cache, err := ttlcache.New[K, V](name, ttl, opts...)
	if err != nil {
		log.Fatal().Err(err).Str("cache", name).Msg("failed to create cache")
	}
	log.Debug().Str("cache", cache.Name()).Dur("ttl", cache.Duration()).Msg("cache created")
	return cache
}

// logLastRefreshes reports when each endpoint last refreshed before this
// process started.
func logLastRefreshes(repo refreshlog.Repository) {
	for _, endpoint := range refreshlog.Endpoints {
		last, err := repo.GetRecentRefresh(endpoint)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			log.Warn().Err(err).Str("endpoint", endpoint).Msg("failed to read refresh log")
			continue
		}
		log.Info().
			Str("endpoint", endpoint).
			Time("at", last.CreatedAt).
			Bool("success", last.Success).
			Msg("last recorded refresh")
	}
}

func withBaseURL(opts providers.ClientOptions, baseURL string) providers.ClientOptions {
	opts.BaseURL = baseURL
	return opts
}

// openGeoDatabase opens the MaxMind database at path. Without one every
// lookup fails and location-dependent endpoints answer 400.
func openGeoDatabase(path string) (geo.Database, func()) {
	db, err := geo.OpenMaxMindDatabase(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("geoip database unavailable, locations will not resolve")
		return geo.StaticDatabase{}, func() {}
	}

	return db, func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close geoip database")
		}
	}
}

func initializeDatabase(config *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&refreshlog.Refresh{}); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(3 * time.Minute)

	return db, nil
}

func handleSignals(ctx context.Context, cancelCtx context.CancelFunc, callback func()) {
	sig := make(chan os.Signal, 1)

	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	const shutdownDuration = 30 * time.Second

	go func() {
		<-sig

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownDuration)

		go func() {
			<-shutdownCtx.Done()

			if shutdownCtx.Err() == context.DeadlineExceeded {
				panic("graceful shutdown timed out.. forcing exit.")
			}
		}()

		callback()

		cancel()
		cancelCtx()
	}()
}
