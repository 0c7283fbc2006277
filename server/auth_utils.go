package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// Error codes carried to the error page
const (
	errAuthInitFailed      = "auth_init_failed"
	errNoCode              = "no_code"
	errInvalidState        = "invalid_state"
	errNoVerifier          = "no_verifier"
	errTokenExchangeFailed = "token_exchange_failed"
	errInvalidIDToken      = "invalid_id_token"
)

// redirectSuccess sends the browser on with a 302
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusFound)
}

// redirectWithError sends the browser to the error page with a machine readable code
func redirectWithError(w http.ResponseWriter, r *http.Request, errorCode string) {
	http.Redirect(w, r, RouteAuthError+"?error="+url.QueryEscape(errorCode), http.StatusFound)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Ctx(r.Context()).Err(err).Msg("Failed to write JSON response")
	}
}

func writeJSONError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, map[string]string{"error": message})
}
