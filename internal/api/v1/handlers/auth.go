package handlers

import (
	"net/http"

	"halfmoon/widget-service/internal/providers"
)

const callbackInstructions = "Go to url and replace client secret!"

// AuthHandler walks the account owner through the Foursquare OAuth flow by
// hand. Nothing is stored; the resulting token goes into configuration.
type AuthHandler struct {
	clientID    string
	callbackURL string
}

func NewAuthHandler(clientID, callbackURL string) *AuthHandler {
	return &AuthHandler{
		clientID:    clientID,
		callbackURL: callbackURL,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, providers.AuthorizeURL(h.clientID, h.callbackURL), http.StatusFound)
}

func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")

	respondWithJSON(w, http.StatusOK, CallbackResponse{
		URL:          providers.AccessTokenURL(h.clientID, h.callbackURL, code),
		Instructions: callbackInstructions,
	})
}
