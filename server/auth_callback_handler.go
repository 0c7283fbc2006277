package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/jrsteele09/go-storefront-auth/idtoken"
	"github.com/jrsteele09/go-storefront-auth/internal/errors"
	"github.com/jrsteele09/go-storefront-auth/sessions"
	"github.com/rs/zerolog/log"
)

// CallbackHandler completes a login (GET or POST /auth/callback). The gates
// run in order and each failure is terminal: provider error, missing code,
// state mismatch, missing verifier, failed exchange, rejected id token.
// Nothing reaches the token endpoint before state and verifier have passed.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.Ctx(r.Context())

		// r.FormValue covers both query params and form_post bodies
		if providerErr := r.FormValue("error"); providerErr != "" {
			logger.Warn().
				Str("error", providerErr).
				Str("error_description", r.FormValue("error_description")).
				Msg("Provider reported an authorization error")
			redirectWithError(w, r, providerErr)
			return
		}

		// The transaction is single use whatever happens next.
		tx := s.store.LoadTransaction(r)
		s.store.ClearTransaction(w)

		code := r.FormValue("code")
		if errorCode, err := checkCallback(code, r.FormValue("state"), tx); err != nil {
			logger.Warn().Err(err).Bool("stored_state", tx.State != "").Msg("Callback rejected")
			redirectWithError(w, r, errorCode)
			return
		}

		tokens, err := s.tokens.ExchangeCode(r.Context(), code, s.redirectURI(r), tx.CodeVerifier)
		if err != nil {
			logger.Err(err).Msg("Token exchange failed")
			redirectWithError(w, r, errTokenExchangeFailed)
			return
		}

		var claims idtoken.Claims
		switch {
		case s.idVerifier != nil:
			if tokens.IDToken == "" {
				logger.Warn().Msg("Token response carried no id token")
				redirectWithError(w, r, errInvalidIDToken)
				return
			}
			if claims, err = s.idVerifier.Verify(r.Context(), tokens.IDToken); err != nil {
				logger.Err(err).Msg("ID token verification failed")
				redirectWithError(w, r, errInvalidIDToken)
				return
			}
		case tokens.IDToken != "":
			if claims, err = idtoken.ParseUnverified(tokens.IDToken); err != nil {
				logger.Debug().Err(err).Msg("Could not read id token claims")
			}
		}

		if _, err := s.store.SaveSession(w, tokens); err != nil {
			logger.Err(err).Msg("Failed to save customer session")
			redirectWithError(w, r, errTokenExchangeFailed)
			return
		}

		logger.Info().Str("sub", claims.Subject).Msg("Customer logged in")
		redirectSuccess(w, r, RouteLoginSuccess)
	}
}

// checkCallback runs the local gates: code present, state matching the
// stored one, verifier present.
func checkCallback(code, state string, tx sessions.Transaction) (string, error) {
	switch {
	case code == "":
		return errNoCode, errors.ErrNoCode
	case tx.State == "" || subtle.ConstantTimeCompare([]byte(tx.State), []byte(state)) != 1:
		return errInvalidState, errors.ErrInvalidState
	case tx.CodeVerifier == "":
		return errNoVerifier, errors.ErrNoVerifier
	}
	return "", nil
}
