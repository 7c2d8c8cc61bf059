package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"halfmoon/widget-service/internal/service"
	"halfmoon/widget-service/internal/widget"
)

const (
	artworkFetchFailed  = "Unable to fetch artwork"
	artworkRenderFailed = "Unable to render artwork"
)

type ArtHandler struct {
	artService service.ArtService
}

func NewArtHandler(artService service.ArtService) *ArtHandler {
	return &ArtHandler{
		artService: artService,
	}
}

func (h *ArtHandler) GetArt(w http.ResponseWriter, r *http.Request) {
	art, cached, err := h.artService.RandomArtwork(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to get artwork")
		respondWithServiceError(w, err, artworkFetchFailed)
		return
	}

	page, err := widget.RenderArtworkPage(&art)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int("artwork_id", art.ID).Msg("failed to render artwork")
		respondWithError(w, http.StatusInternalServerError, artworkRenderFailed)
		return
	}

	log.Ctx(r.Context()).Debug().Int("artwork_id", art.ID).Bool("cached", cached).Msg("artwork served")
	respondWithHTML(w, http.StatusOK, page)
}
