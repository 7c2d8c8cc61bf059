package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"halfmoon/widget-service/internal/service"
)

const locationFetchFailed = "Unable to fetch location"

type LocationHandler struct {
	locationService service.LocationService
}

func NewLocationHandler(locationService service.LocationService) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
	}
}

func (h *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	venue, cached, err := h.locationService.CurrentVenue(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to get latest check-in")
		respondWithServiceError(w, err, locationFetchFailed)
		return
	}

	respondWithData(w, venue, cached)
}
