package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the endpoint handlers mounted by NewRouter. A nil handler
// leaves its routes unmounted.
type Handlers struct {
	Weather  *WeatherHandler
	Image    *ImageHandler
	Location *LocationHandler
	Art      *ArtHandler
	Auth     *AuthHandler
	Public   *PublicHandler
}

type RouterOptions struct {
	AllowedOrigins []string
	EnableMetrics  bool
}

func NewRouter(h Handlers, opts RouterOptions) http.Handler {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "PUT", "POST", "DELETE"},
		AllowedHeaders: []string{"X-Requested-With", "Content-Type", "Accept", "Authorization", "Cookie"},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	if h.Weather != nil {
		r.Get("/weather", h.Weather.GetWeather)
	}
	if h.Image != nil {
		r.Get("/daily-image.png", h.Image.GetDailyImage)
	}
	if h.Location != nil {
		r.Get("/users/self/location", h.Location.GetLocation)
	}
	if h.Art != nil {
		r.Get("/users/self/art", h.Art.GetArt)
	}
	if h.Auth != nil {
		r.Get("/login", h.Auth.Login)
		r.Get("/users/auth/foursquare/callback", h.Auth.Callback)
	}
	if h.Public != nil {
		r.Get("/public/{file}", h.Public.GetFile)
	}
	if opts.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}
