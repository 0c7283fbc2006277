package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

const genericErrorMessage = "An unexpected error occurred during authentication."

var errorMessages = map[string]string{
	errAuthInitFailed:      "Failed to initiate login process. Please try again.",
	"login_failed":         "Failed to initiate login process. Please try again.",
	errNoCode:              "Authorization code not received. Please try logging in again.",
	errInvalidState:        "Security validation failed. Please try logging in again.",
	errNoVerifier:          "Authentication verification failed. Please try logging in again.",
	errTokenExchangeFailed: "Failed to complete authentication. Please try again.",
	errInvalidIDToken:      "We could not verify your identity. Please try logging in again.",
	"access_denied":        "Sign in was cancelled. Please try again when you are ready.",
}

// ErrorPageData contains data for rendering the auth error page
type ErrorPageData struct {
	AppName  string
	Code     string
	Message  string
	LoginURL string
}

// ErrorMessage maps an error code to the text shown to the customer.
func ErrorMessage(code string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return genericErrorMessage
}

// ErrorPageHandler renders GET /auth/error?error=<code>.
func (s *Server) ErrorPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("error")
		data := ErrorPageData{
			AppName:  s.config.GetAppName(),
			Code:     code,
			Message:  ErrorMessage(code),
			LoginURL: RouteAuthLogin,
		}

		if err := renderTemplate(w, http.StatusOK, s.errorPage, data); err != nil {
			log.Ctx(r.Context()).Err(err).Msg("Failed to render error page")
			http.Error(w, "Failed to render error page", http.StatusInternalServerError)
		}
	}
}
