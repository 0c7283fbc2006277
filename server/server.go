package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-storefront-auth/customer"
	"github.com/jrsteele09/go-storefront-auth/customerapi"
	"github.com/jrsteele09/go-storefront-auth/idtoken"
	"github.com/jrsteele09/go-storefront-auth/internal/config"
	"github.com/jrsteele09/go-storefront-auth/internal/cookieseal"
	"github.com/jrsteele09/go-storefront-auth/oauthmodel"
	"github.com/jrsteele09/go-storefront-auth/sessions"
	"github.com/jrsteele09/go-storefront-auth/token"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env        string // Environment (e.g., "DEV", "PROD")
	mux        *http.ServeMux
	routes     []string
	config     config.Config
	store      *sessions.CookieStore
	tokens     *token.Client
	api        *customerapi.Client
	customers  *customer.Resolver
	idVerifier *idtoken.Verifier // nil when id token verification is off
	authLimit  *rateLimiter      // nil when auth rate limiting is off
	errorPage  *template.Template
}

func New(cfg config.Config) (*Server, error) {
	sealer, err := cookieseal.New(cfg.GetCookieSecret())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create cookie sealer: %w", err)
	}

	errorPage, err := parseTemplate("error.html")
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse error page template: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.GetHTTPTimeout()}
	store := sessions.NewCookieStore(cfg, !cfg.IsDev(), sealer)
	tokens := token.NewClient(cfg, httpClient)
	api := customerapi.NewClient(cfg, httpClient)

	s := &Server{
		env:        cfg.GetEnv(),
		mux:        http.NewServeMux(),
		config:     cfg,
		store:      store,
		tokens:     tokens,
		api:        api,
		customers:  customer.NewResolver(store, tokens, api),
		idVerifier: idtoken.NewFromConfig(context.Background(), cfg, httpClient),
		authLimit:  newRateLimiter(cfg.GetAuthRateLimitPerMinute(), cfg.GetTrustProxyHeaders()),
		errorPage:  errorPage,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}

// redirectURI is the callback URL sent to the provider. Login and callback
// must agree on it, so both call this.
func (s *Server) redirectURI(r *http.Request) string {
	return s.appURL(r) + RouteAuthCallback
}

func (s *Server) authorizationConfig() oauthmodel.AuthorizationConfig {
	return oauthmodel.AuthorizationConfig{
		ClientID: s.config.GetClientID(),
		Scope:    s.config.GetScope(),
		AuthURL:  s.config.GetAuthURL(),
	}
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
