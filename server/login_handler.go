package server

import (
	"net/http"

	"github.com/jrsteele09/go-storefront-auth/oauthmodel"
	"github.com/rs/zerolog/log"
)

// LoginHandler starts a login: it stores a fresh state and code verifier in
// the transaction cookies and redirects to the provider (GET /auth/login).
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.Ctx(r.Context())

		authReq, err := oauthmodel.BuildAuthorizationRequest(s.authorizationConfig(), s.redirectURI(r))
		if err != nil {
			logger.Err(err).Msg("Failed to build authorization request")
			redirectWithError(w, r, errAuthInitFailed)
			return
		}

		if err := s.store.SaveTransaction(w, authReq.State, authReq.CodeVerifier); err != nil {
			logger.Err(err).Msg("Failed to save login transaction")
			redirectWithError(w, r, errAuthInitFailed)
			return
		}

		redirectSuccess(w, r, authReq.AuthURL)
	}
}

// RegisterHandler sends would-be customers to the provider, which offers sign up on its login page.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		redirectSuccess(w, r, RouteAuthLogin)
	}
}
