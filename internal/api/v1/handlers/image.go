package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"halfmoon/widget-service/internal/service"
)

const imageGenerationFailed = "Unable to generate image"

type ImageHandler struct {
	imageService service.ImageService
}

func NewImageHandler(imageService service.ImageService) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
	}
}

func (h *ImageHandler) GetDailyImage(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)

	image, cached, err := h.imageService.DailyImage(r.Context(), ip)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("ip", ip).Msg("failed to generate image")
		respondWithError(w, statusForError(err), imageGenerationFailed)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=31536000")
	w.Header().Set("Content-Length", strconv.Itoa(len(image)))
	if cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(image); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("failed to write image")
	}
}
