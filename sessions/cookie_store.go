package sessions

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jrsteele09/go-storefront-auth/internal/config"
	"github.com/jrsteele09/go-storefront-auth/internal/cookieseal"
	"github.com/jrsteele09/go-storefront-auth/internal/errors"
	"github.com/jrsteele09/go-storefront-auth/oauthmodel"
	"github.com/rs/zerolog/log"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

type cookieValue struct {
	name   string
	value  string
	maxAge int
}

// CookieStore persists login transactions and customer sessions in cookies.
// Every cookie is HttpOnly, SameSite=Lax, Path=/ and Secure outside DEV.
type CookieStore struct {
	secure bool
	sealer cookieseal.Sealer
	config config.SecurityConfig
}

// NewCookieStore creates a store. A nil sealer stores values in the clear.
func NewCookieStore(cfg config.SecurityConfig, secure bool, sealer cookieseal.Sealer) *CookieStore {
	if sealer == nil {
		sealer = cookieseal.Plain{}
	}
	return &CookieStore{secure: secure, sealer: sealer, config: cfg}
}

// SaveTransaction stores the state and code verifier of a login attempt.
func (s *CookieStore) SaveTransaction(w http.ResponseWriter, state, codeVerifier string) error {
	maxAge := int(s.config.GetTransactionTTL().Seconds())
	if err := s.set(w, StateCookie, state, maxAge); err != nil {
		return errors.Wrapf(err, "[CookieStore SaveTransaction]")
	}
	if err := s.set(w, CodeVerifierCookie, codeVerifier, maxAge); err != nil {
		return errors.Wrapf(err, "[CookieStore SaveTransaction]")
	}
	return nil
}

// LoadTransaction reads the stored transaction. Missing or unreadable values are empty.
func (s *CookieStore) LoadTransaction(r *http.Request) Transaction {
	return Transaction{
		State:        s.get(r, StateCookie),
		CodeVerifier: s.get(r, CodeVerifierCookie),
	}
}

func (s *CookieStore) ClearTransaction(w http.ResponseWriter) {
	s.delete(w, StateCookie)
	s.delete(w, CodeVerifierCookie)
}

// SaveSession persists a token set. The access token, expiry and id token
// cookies live for expires_in seconds, the refresh token cookie for the
// configured refresh TTL.
func (s *CookieStore) SaveSession(w http.ResponseWriter, tokens oauthmodel.TokenSet) (Session, error) {
	if !tokens.Complete() {
		return Session{}, errors.Wrapf(errors.ErrIncompleteTokens, "[CookieStore SaveSession]")
	}

	if tokens.ExpiresIn <= 0 {
		tokens.ExpiresIn = int(s.config.GetDefaultAccessTokenTTL().Seconds())
	}
	expiresIn := tokens.ExpiresIn
	expiresAt := tokens.ExpiresAt(NowTimeFunc())
	refreshMaxAge := int(s.config.GetRefreshTokenTTL().Seconds())

	values := []cookieValue{
		{AccessTokenCookie, tokens.AccessToken, expiresIn},
		{RefreshTokenCookie, tokens.RefreshToken, refreshMaxAge},
		{TokenExpiresCookie, strconv.FormatInt(expiresAt.Unix(), 10), expiresIn},
	}
	if tokens.IDToken != "" {
		values = append(values, cookieValue{IDTokenCookie, tokens.IDToken, expiresIn})
	}

	for _, v := range values {
		if err := s.set(w, v.name, v.value, v.maxAge); err != nil {
			return Session{}, errors.Wrapf(err, "[CookieStore SaveSession]")
		}
	}
	if tokens.IDToken == "" {
		// A previous session's id token must not outlive it.
		s.delete(w, IDTokenCookie)
	}

	return Session{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		IDToken:      tokens.IDToken,
		ExpiresAt:    time.Unix(expiresAt.Unix(), 0),
	}, nil
}

// LoadSession rebuilds the session from its cookies. It reports false unless
// both the access and the refresh token are present.
func (s *CookieStore) LoadSession(r *http.Request) (Session, bool) {
	accessToken := s.get(r, AccessTokenCookie)
	refreshToken := s.get(r, RefreshTokenCookie)
	if accessToken == "" || refreshToken == "" {
		return Session{}, false
	}

	session := Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		IDToken:      s.get(r, IDTokenCookie),
	}
	if unix, err := strconv.ParseInt(s.get(r, TokenExpiresCookie), 10, 64); err == nil {
		session.ExpiresAt = time.Unix(unix, 0)
	}
	return session, true
}

// ClearSession deletes every session cookie. Calling it without a session is not an error.
func (s *CookieStore) ClearSession(w http.ResponseWriter) {
	for _, name := range []string{legacyTokensCookie, AccessTokenCookie, RefreshTokenCookie, TokenExpiresCookie, IDTokenCookie} {
		s.delete(w, name)
	}
}

func (s *CookieStore) set(w http.ResponseWriter, name, value string, maxAge int) error {
	sealed, err := s.sealer.Seal(name, value)
	if err != nil {
		return err
	}
	http.SetCookie(w, s.cookie(name, sealed, maxAge))
	return nil
}

func (s *CookieStore) get(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return ""
	}
	value, err := s.sealer.Open(name, c.Value)
	if err != nil {
		log.Warn().Err(err).Str("cookie", name).Msg("Ignoring unreadable cookie")
		return ""
	}
	return value
}

func (s *CookieStore) delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, s.cookie(name, "", -1))
}

func (s *CookieStore) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}
