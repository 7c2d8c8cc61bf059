package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"halfmoon/widget-service/internal/service"
	"halfmoon/widget-service/internal/widget"
)

const weatherFetchFailed = "Unable to fetch weather data"

type WeatherHandler struct {
	weatherService service.WeatherService
}

func NewWeatherHandler(weatherService service.WeatherService) *WeatherHandler {
	return &WeatherHandler{
		weatherService: weatherService,
	}
}

func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	query := r.URL.Query()
	size := widget.ParseSize(query.Get("size"))

	report, cached, err := h.weatherService.GetWeather(r.Context(), ip, size)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("ip", ip).Msg("failed to get weather data")
		respondWithServiceError(w, err, weatherFetchFailed)
		return
	}

	if query.Get("iframe") != "" {
		respondWithHTML(w, http.StatusOK, widget.Document(report.Embed))
		return
	}

	respondWithData(w, report, cached)
}
