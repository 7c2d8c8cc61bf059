package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	EnvProduction = "production"

	devCallbackURL  = "http://localhost:3001/users/auth/foursquare/callback"
	prodCallbackURL = "https://halfmoon.ws/users/auth/foursquare/callback"
)

type Config struct {
	ServiceName   string
	ServerAddress string

	DBName     string
	DBPassword string
	DBUser     string
	DBPort     string
	DBHost     string

	Env              string
	LogLevel         string
	HTTPTimeout      int32
	ImageHTTPTimeout int32

	OpenWeatherMapAPIKey   string
	OpenAIAccessToken      string
	FoursquareClientID     string
	FoursquareClientSecret string
	FoursquareAccessToken  string
	FoursquareCallbackURL  string

	OpenWeatherMapBaseURL string
	OpenAIBaseURL         string
	FoursquareBaseURL     string
	MetMuseumBaseURL      string

	GeoIPDatabasePath string
	FallbackIP        string

	WeatherCacheTTL  time.Duration
	ImageCacheTTL    time.Duration
	ArtCacheTTL      time.Duration
	LocationCacheTTL time.Duration
	ImageCacheScope  string
	CacheMaxEntries  int
	CacheCoalesce    bool

	ArtSearchQuery string
	PublicDir      string

	CORSAllowedOrigins []string
	MetricsEnabled     bool
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVICE_NAME", "widget-service")
	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:3001")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("HTTP_TIMEOUT", 10)
	v.SetDefault("IMAGE_HTTP_TIMEOUT", 120)

	v.SetDefault("OPENWEATHERMAP_BASE_URL", "https://api.openweathermap.org")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com")
	v.SetDefault("FOURSQUARE_BASE_URL", "https://api.foursquare.com")
	v.SetDefault("METMUSEUM_BASE_URL", "https://collectionapi.metmuseum.org")

	v.SetDefault("GEOIP_DATABASE_PATH", "./data/GeoLite2-City.mmdb")
	v.SetDefault("FALLBACK_IP", "207.97.227.239")

	v.SetDefault("WEATHER_CACHE_TTL", 10*time.Minute)
	v.SetDefault("IMAGE_CACHE_TTL", 12*time.Hour)
	v.SetDefault("ART_CACHE_TTL", 12*time.Hour)
	v.SetDefault("LOCATION_CACHE_TTL", 5*time.Minute)
	v.SetDefault("IMAGE_CACHE_SCOPE", "global")
	v.SetDefault("CACHE_MAX_ENTRIES", 0)
	v.SetDefault("CACHE_COALESCE", false)

	v.SetDefault("ART_SEARCH_QUERY", "sunflowers")
	v.SetDefault("PUBLIC_DIR", "./public")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("METRICS_ENABLED", true)

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Warn().Msg("No .env file found, using environment variables only")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Config file loaded")
	}

	config := &Config{
		ServiceName:            v.GetString("SERVICE_NAME"),
		ServerAddress:          v.GetString("SERVER_ADDRESS"),
		DBName:                 v.GetString("DATABASE_NAME"),
		DBPassword:             v.GetString("DATABASE_PASSWORD"),
		DBUser:                 v.GetString("DATABASE_USER"),
		DBPort:                 v.GetString("DATABASE_PORT"),
		DBHost:                 v.GetString("DATABASE_HOST"),
		Env:                    v.GetString("ENV"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		HTTPTimeout:            v.GetInt32("HTTP_TIMEOUT"),
		ImageHTTPTimeout:       v.GetInt32("IMAGE_HTTP_TIMEOUT"),
		OpenWeatherMapAPIKey:   v.GetString("OPENWEATHERMAP_APIKEY"),
		OpenAIAccessToken:      v.GetString("OPEN_AI_ACCESS_TOKEN"),
		FoursquareClientID:     v.GetString("FOURSQUARE_CLIENT_ID"),
		FoursquareClientSecret: v.GetString("FOURSQUARE_CLIENT_SECRET"),
		FoursquareAccessToken:  v.GetString("FOURSQUARE_ACCESS_TOKEN"),
		FoursquareCallbackURL:  v.GetString("FOURSQUARE_CALLBACK_URL"),
		OpenWeatherMapBaseURL:  v.GetString("OPENWEATHERMAP_BASE_URL"),
		OpenAIBaseURL:          v.GetString("OPENAI_BASE_URL"),
		FoursquareBaseURL:      v.GetString("FOURSQUARE_BASE_URL"),
		MetMuseumBaseURL:       v.GetString("METMUSEUM_BASE_URL"),
		GeoIPDatabasePath:      v.GetString("GEOIP_DATABASE_PATH"),
		FallbackIP:             v.GetString("FALLBACK_IP"),
		WeatherCacheTTL:        v.GetDuration("WEATHER_CACHE_TTL"),
		ImageCacheTTL:          v.GetDuration("IMAGE_CACHE_TTL"),
		ArtCacheTTL:            v.GetDuration("ART_CACHE_TTL"),
		LocationCacheTTL:       v.GetDuration("LOCATION_CACHE_TTL"),
		ImageCacheScope:        v.GetString("IMAGE_CACHE_SCOPE"),
		CacheMaxEntries:        v.GetInt("CACHE_MAX_ENTRIES"),
		CacheCoalesce:          v.GetBool("CACHE_COALESCE"),
		ArtSearchQuery:         v.GetString("ART_SEARCH_QUERY"),
		PublicDir:              v.GetString("PUBLIC_DIR"),
		CORSAllowedOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		MetricsEnabled:         v.GetBool("METRICS_ENABLED"),
	}

	if config.FoursquareCallbackURL == "" {
		config.FoursquareCallbackURL = devCallbackURL
		if config.IsProduction() {
			config.FoursquareCallbackURL = prodCallbackURL
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects values the service cannot start with.
func (c *Config) Validate() error {
	ttls := map[string]time.Duration{
		"WEATHER_CACHE_TTL":  c.WeatherCacheTTL,
		"IMAGE_CACHE_TTL":    c.ImageCacheTTL,
		"ART_CACHE_TTL":      c.ArtCacheTTL,
		"LOCATION_CACHE_TTL": c.LocationCacheTTL,
	}
	for key, ttl := range ttls {
		if ttl <= 0 {
			return fmt.Errorf("%s must be positive, got %s", key, ttl)
		}
	}

	if c.CacheMaxEntries < 0 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must not be negative, got %d", c.CacheMaxEntries)
	}
	if c.HTTPTimeout <= 0 || c.ImageHTTPTimeout <= 0 {
		return errors.New("HTTP_TIMEOUT and IMAGE_HTTP_TIMEOUT must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// DatabaseEnabled reports whether the refresh log has somewhere to go.
func (c *Config) DatabaseEnabled() bool {
	return c.DBHost != ""
}

func (c *Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

func (c *Config) ImageHTTPTimeoutDuration() time.Duration {
	return time.Duration(c.ImageHTTPTimeout) * time.Second
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
