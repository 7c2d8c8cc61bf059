package handlers

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var mimeTypes = map[string]string{
	".html": "text/html",
	".js":   "text/javascript",
	".css":  "text/css",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".wav":  "audio/wav",
	".mp4":  "video/mp4",
	".woff": "application/font-woff",
	".ttf":  "application/font-ttf",
	".eot":  "application/vnd.ms-fontobject",
	".otf":  "application/font-otf",
	".wasm": "application/wasm",
}

func contentTypeFor(name string) string {
	if ct, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// PublicHandler streams files from one directory.
type PublicHandler struct {
	root string
}

func NewPublicHandler(root string) (*PublicHandler, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &PublicHandler{root: abs}, nil
}

func (h *PublicHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "file"))
	if err != nil {
		respondWithText(w, http.StatusForbidden, "Forbidden")
		return
	}

	path := filepath.Join(h.root, name)
	rel, err := filepath.Rel(h.root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		log.Ctx(r.Context()).Warn().Str("file", name).Msg("rejected public file path")
		respondWithText(w, http.StatusForbidden, "Forbidden")
		return
	}

	file, err := os.Open(path)
	if err != nil {
		respondWithText(w, http.StatusNotFound, "File not found")
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		respondWithText(w, http.StatusNotFound, "File not found")
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(name))
	http.ServeContent(w, r, info.Name(), info.ModTime(), file)
}
