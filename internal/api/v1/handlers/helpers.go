package handlers

import (
	"errors"
	"net"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"halfmoon/widget-service/internal/geo"
)

func respondWithData(w http.ResponseWriter, data any, cached bool) {
	respondWithJSON(w, http.StatusOK, Envelope{
		Status: StatusOK,
		Data:   data,
		Cached: &cached,
	})
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, Envelope{
		Status: StatusFail,
		Error:  message,
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondWithHTML(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if _, err := w.Write([]byte(body)); err != nil {
		log.Error().Err(err).Msg("failed to write html response")
	}
}

func respondWithText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	if _, err := w.Write([]byte(body)); err != nil {
		log.Error().Err(err).Msg("failed to write text response")
	}
}

const locationUnresolved = "Unable to determine client location"

// statusForError maps service errors to HTTP statuses.
func statusForError(err error) int {
	if errors.Is(err, geo.ErrLocationUnresolved) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondWithServiceError answers with a fixed message per error class. The
// error itself only goes to the logs.
func respondWithServiceError(w http.ResponseWriter, err error, failure string) {
	if errors.Is(err, geo.ErrLocationUnresolved) {
		respondWithError(w, http.StatusBadRequest, locationUnresolved)
		return
	}
	respondWithError(w, http.StatusInternalServerError, failure)
}

// clientIP returns the caller's address without port. RealIP middleware
// has already replaced RemoteAddr with any forwarded address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
