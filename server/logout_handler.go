package server

import (
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
)

// LogoutHandler clears the session and transaction cookies (GET /auth/logout).
// When a provider logout endpoint is configured and the session carried an
// id token the browser is sent there to end the provider session as well.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, hadSession := s.store.LoadSession(r)
		s.clearCookies(w)

		logoutURL := s.config.GetLogoutURL()
		if logoutURL == "" || !hadSession || session.IDToken == "" {
			redirectSuccess(w, r, "/")
			return
		}

		u, err := url.Parse(logoutURL)
		if err != nil {
			log.Ctx(r.Context()).Err(err).Msg("Invalid provider logout URL")
			redirectSuccess(w, r, "/")
			return
		}
		q := u.Query()
		q.Set("id_token_hint", session.IDToken)
		q.Set("post_logout_redirect_uri", s.appURL(r)+"/")
		u.RawQuery = q.Encode()
		redirectSuccess(w, r, u.String())
	}
}

// LogoutAPIHandler is the fetch-friendly logout (POST /auth/logout).
func (s *Server) LogoutAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.clearCookies(w)
		writeJSON(w, r, http.StatusOK, map[string]any{
			"success": true,
			"message": "Logged out successfully",
		})
	}
}

func (s *Server) clearCookies(w http.ResponseWriter) {
	s.store.ClearSession(w)
	s.store.ClearTransaction(w)
}

// appURL is the public origin of the app, e.g. https://shop.example.com.
func (s *Server) appURL(r *http.Request) string {
	if base := s.config.GetBaseURL(); base != "" {
		return base
	}
	return getScheme(r) + "://" + r.Host
}
