package customer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-storefront-auth/customerapi"
	"github.com/jrsteele09/go-storefront-auth/internal/errors"
	"github.com/jrsteele09/go-storefront-auth/oauthmodel"
	"github.com/jrsteele09/go-storefront-auth/sessions"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// SessionStore is the part of the cookie store the resolver needs.
type SessionStore interface {
	LoadSession(r *http.Request) (sessions.Session, bool)
	SaveSession(w http.ResponseWriter, tokens oauthmodel.TokenSet) (sessions.Session, error)
	ClearSession(w http.ResponseWriter)
}

type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (oauthmodel.TokenSet, error)
}

type ProfileFetcher interface {
	GetCustomer(ctx context.Context, accessToken string) (*customerapi.Customer, error)
}

// Resolver runs customer API calls on behalf of the browser's session,
// refreshing the access token at most once per call.
type Resolver struct {
	store     SessionStore
	refresher TokenRefresher
	profiles  ProfileFetcher
	refreshes singleflight.Group
}

func NewResolver(store SessionStore, refresher TokenRefresher, profiles ProfileFetcher) *Resolver {
	return &Resolver{
		store:     store,
		refresher: refresher,
		profiles:  profiles,
	}
}

// CurrentCustomer returns the signed-in customer, or nil when there is no
// usable session. Errors are transient failures; the session is kept.
func (res *Resolver) CurrentCustomer(ctx context.Context, w http.ResponseWriter, r *http.Request) (*customerapi.Customer, error) {
	var customer *customerapi.Customer
	err := res.WithSession(ctx, w, r, func(ctx context.Context, accessToken string) error {
		c, err := res.profiles.GetCustomer(ctx, accessToken)
		if err != nil {
			return err
		}
		customer = c
		return nil
	})
	if errors.Is(err, errors.ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// WithSession calls fn with the session's access token. When fn reports an
// authentication rejection the token is refreshed, the new session saved and
// fn called once more. ErrNoSession is returned when there is no session or
// it had to be given up, in which case its cookies have been cleared.
func (res *Resolver) WithSession(ctx context.Context, w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, accessToken string) error) error {
	session, ok := res.store.LoadSession(r)
	if !ok {
		return errors.ErrNoSession
	}

	err := fn(ctx, session.AccessToken)
	if err == nil || !customerapi.IsUnauthenticated(err) {
		return err
	}
	log.Info().Err(err).
		Dur("expires_in", session.ExpiresIn(sessions.NowTimeFunc())).
		Msg("Access token rejected, refreshing")

	tokens, err := res.refresh(ctx, session.RefreshToken)
	if err != nil {
		return res.giveUp(ctx, w, "refresh failed", err)
	}
	if _, err := res.store.SaveSession(w, tokens); err != nil {
		return res.giveUp(ctx, w, "saving refreshed session failed", err)
	}

	err = fn(ctx, tokens.AccessToken)
	var userErrs *customerapi.UserErrors
	if err == nil || errors.As(err, &userErrs) {
		return err
	}
	return res.giveUp(ctx, w, "retry after refresh failed", err)
}

// refresh collapses concurrent refreshes of the same token into one call.
// The shared call outlives any single caller's cancellation; the refresher's
// HTTP client timeout still bounds it.
func (res *Resolver) refresh(ctx context.Context, refreshToken string) (oauthmodel.TokenSet, error) {
	refreshCtx := context.WithoutCancel(ctx)
	v, err, joined := res.refreshes.Do(refreshToken, func() (interface{}, error) {
		return res.refresher.Refresh(refreshCtx, refreshToken)
	})
	if err != nil {
		return oauthmodel.TokenSet{}, err
	}
	if joined {
		log.Debug().Msg("Joined an in-flight token refresh")
	}
	return v.(oauthmodel.TokenSet), nil
}

// giveUp clears the session, unless the caller went away, in which case the
// failure says nothing about the tokens.
func (res *Resolver) giveUp(ctx context.Context, w http.ResponseWriter, reason string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("[customer Resolver] %s: %w", reason, ctxErr)
	}
	log.Warn().Err(err).Msg("Clearing customer session: " + reason)
	res.store.ClearSession(w)
	return fmt.Errorf("%w: %s: %w", errors.ErrNoSession, reason, err)
}
