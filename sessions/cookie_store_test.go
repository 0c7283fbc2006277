package sessions_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/go-storefront-auth/internal/config"
	"github.com/jrsteele09/go-storefront-auth/internal/cookieseal"
	"github.com/jrsteele09/go-storefront-auth/internal/errors"
	"github.com/jrsteele09/go-storefront-auth/oauthmodel"
	"github.com/jrsteele09/go-storefront-auth/sessions"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T, secure bool, sealer cookieseal.Sealer) *sessions.CookieStore {
	t.Helper()
	sessions.NowTimeFunc = func() time.Time { return fixedNow }
	t.Cleanup(func() { sessions.NowTimeFunc = time.Now })
	return sessions.NewCookieStore(config.Security{}, secure, sealer)
}

// responseCookies indexes the Set-Cookie headers of a recorded response by name.
func responseCookies(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	cookies := make(map[string]*http.Cookie)
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}
	return cookies
}

// requestWith builds a request carrying the live cookies of a recorded response.
func requestWith(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 && c.Value != "" {
			r.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
	}
	return r
}

func TestTransactionRoundTrip(t *testing.T) {
	store := newStore(t, true, nil)
	rec := httptest.NewRecorder()

	require.NoError(t, store.SaveTransaction(rec, "state-1", "verifier-1"))

	cookies := responseCookies(rec)
	for _, name := range []string{sessions.StateCookie, sessions.CodeVerifierCookie} {
		c := cookies[name]
		require.NotNil(t, c, name)
		require.Equal(t, 600, c.MaxAge)
		require.True(t, c.HttpOnly)
		require.True(t, c.Secure)
		require.Equal(t, http.SameSiteLaxMode, c.SameSite)
		require.Equal(t, "/", c.Path)
	}

	tx := store.LoadTransaction(requestWith(rec))
	require.Equal(t, sessions.Transaction{State: "state-1", CodeVerifier: "verifier-1"}, tx)
}

func TestClearTransactionExpiresCookies(t *testing.T) {
	store := newStore(t, false, nil)
	rec := httptest.NewRecorder()
	store.ClearTransaction(rec)

	cookies := responseCookies(rec)
	require.Equal(t, -1, cookies[sessions.StateCookie].MaxAge)
	require.Equal(t, -1, cookies[sessions.CodeVerifierCookie].MaxAge)
	require.False(t, cookies[sessions.StateCookie].Secure)
}

func TestSaveSessionWritesSeparateCookies(t *testing.T) {
	store := newStore(t, false, nil)
	rec := httptest.NewRecorder()

	session, err := store.SaveSession(rec, oauthmodel.TokenSet{
		AccessToken:  "t1",
		RefreshToken: "r1",
		IDToken:      "id1",
		ExpiresIn:    3600,
	})
	require.NoError(t, err)
	require.Equal(t, fixedNow.Add(time.Hour).Unix(), session.ExpiresAt.Unix())

	cookies := responseCookies(rec)
	require.Equal(t, "t1", cookies[sessions.AccessTokenCookie].Value)
	require.Equal(t, 3600, cookies[sessions.AccessTokenCookie].MaxAge)
	require.Equal(t, "r1", cookies[sessions.RefreshTokenCookie].Value)
	require.Equal(t, 30*24*60*60, cookies[sessions.RefreshTokenCookie].MaxAge)
	require.Equal(t, 3600, cookies[sessions.TokenExpiresCookie].MaxAge)
	require.Equal(t, "id1", cookies[sessions.IDTokenCookie].Value)
	require.Equal(t, 3600, cookies[sessions.IDTokenCookie].MaxAge)
	for _, c := range cookies {
		require.True(t, c.HttpOnly, c.Name)
	}

	loaded, ok := store.LoadSession(requestWith(rec))
	require.True(t, ok)
	require.Equal(t, session, loaded)
	require.Equal(t, time.Hour, loaded.ExpiresIn(fixedNow))
}

func TestSaveSessionDefaultsMissingExpiry(t *testing.T) {
	store := newStore(t, false, nil)
	rec := httptest.NewRecorder()

	_, err := store.SaveSession(rec, oauthmodel.TokenSet{AccessToken: "t1", RefreshToken: "r1"})
	require.NoError(t, err)
	cookies := responseCookies(rec)
	require.Equal(t, 3600, cookies[sessions.AccessTokenCookie].MaxAge)
	require.Equal(t, -1, cookies[sessions.IDTokenCookie].MaxAge)
}

func TestSaveSessionRejectsIncompleteTokens(t *testing.T) {
	store := newStore(t, false, nil)
	rec := httptest.NewRecorder()

	_, err := store.SaveSession(rec, oauthmodel.TokenSet{AccessToken: "t1", ExpiresIn: 3600})
	require.ErrorIs(t, err, errors.ErrIncompleteTokens)
	require.Empty(t, rec.Result().Cookies())
}

func TestLoadSessionRequiresBothTokens(t *testing.T) {
	store := newStore(t, false, nil)

	tests := []struct {
		name    string
		cookies map[string]string
	}{
		{"none", map[string]string{}},
		{"access only", map[string]string{sessions.AccessTokenCookie: "t1", sessions.TokenExpiresCookie: "1"}},
		{"refresh only", map[string]string{sessions.RefreshTokenCookie: "r1", sessions.IDTokenCookie: "id"}},
		{"empty access", map[string]string{sessions.AccessTokenCookie: "", sessions.RefreshTokenCookie: "r1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			for name, value := range tt.cookies {
				r.AddCookie(&http.Cookie{Name: name, Value: value})
			}
			session, ok := store.LoadSession(r)
			require.False(t, ok)
			require.Equal(t, sessions.Session{}, session)
		})
	}
}

func TestClearSessionIsIdempotent(t *testing.T) {
	store := newStore(t, false, nil)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		store.ClearSession(rec)

		cookies := responseCookies(rec)
		for _, name := range []string{sessions.AccessTokenCookie, sessions.RefreshTokenCookie, sessions.TokenExpiresCookie, sessions.IDTokenCookie, "customer_tokens"} {
			require.Equal(t, -1, cookies[name].MaxAge, name)
		}
		_, ok := store.LoadSession(requestWith(rec))
		require.False(t, ok)
	}
}

func TestSealedCookiesRoundTrip(t *testing.T) {
	sealer, err := cookieseal.New("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	store := newStore(t, true, sealer)
	rec := httptest.NewRecorder()

	_, err = store.SaveSession(rec, oauthmodel.TokenSet{AccessToken: "t1", RefreshToken: "r1", ExpiresIn: 60})
	require.NoError(t, err)
	require.NotEqual(t, "t1", responseCookies(rec)[sessions.AccessTokenCookie].Value)

	loaded, ok := store.LoadSession(requestWith(rec))
	require.True(t, ok)
	require.Equal(t, "t1", loaded.AccessToken)
	require.Equal(t, "r1", loaded.RefreshToken)
}

func TestUnreadableSealedCookieIsAbsent(t *testing.T) {
	sealer, err := cookieseal.New("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	store := newStore(t, true, sealer)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: sessions.StateCookie, Value: "forged"})
	r.AddCookie(&http.Cookie{Name: sessions.CodeVerifierCookie, Value: "forged"})

	require.Equal(t, sessions.Transaction{}, store.LoadTransaction(r))
}
