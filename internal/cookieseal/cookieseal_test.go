package cookieseal_test

import (
	"testing"

	"github.com/jrsteele09/go-storefront-auth/internal/cookieseal"
	"github.com/jrsteele09/go-storefront-auth/internal/errors"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestPlainPassesValuesThrough(t *testing.T) {
	s, err := cookieseal.New("")
	require.NoError(t, err)

	sealed, err := s.Seal("customer_access_token", "t1")
	require.NoError(t, err)
	require.Equal(t, "t1", sealed)

	opened, err := s.Open("customer_access_token", sealed)
	require.NoError(t, err)
	require.Equal(t, "t1", opened)
}

func TestAEADRoundTrip(t *testing.T) {
	s, err := cookieseal.New(testSecret)
	require.NoError(t, err)

	sealed, err := s.Seal("customer_refresh_token", "r1")
	require.NoError(t, err)
	require.NotContains(t, sealed, "r1")

	opened, err := s.Open("customer_refresh_token", sealed)
	require.NoError(t, err)
	require.Equal(t, "r1", opened)
}

func TestAEADSealIsRandomised(t *testing.T) {
	s, err := cookieseal.NewAEAD(testSecret)
	require.NoError(t, err)

	a, err := s.Seal("oauth_state", "same")
	require.NoError(t, err)
	b, err := s.Seal("oauth_state", "same")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestAEADRejectsTamperedOrMovedValues(t *testing.T) {
	s, err := cookieseal.NewAEAD(testSecret)
	require.NoError(t, err)
	sealed, err := s.Seal("customer_access_token", "t1")
	require.NoError(t, err)

	_, err = s.Open("customer_refresh_token", sealed)
	require.ErrorIs(t, err, errors.ErrCookieTampered)

	tampered := []byte(sealed)
	tampered[len(tampered)-1] ^= 'A' ^ 'B'
	_, err = s.Open("customer_access_token", string(tampered))
	require.ErrorIs(t, err, errors.ErrCookieTampered)

	_, err = s.Open("customer_access_token", "not base64 !")
	require.ErrorIs(t, err, errors.ErrCookieTampered)

	_, err = s.Open("customer_access_token", "c2hvcnQ")
	require.ErrorIs(t, err, errors.ErrCookieTampered)

	other, err := cookieseal.NewAEAD("ffffffffffffffffffffffffffffffff")
	require.NoError(t, err)
	_, err = other.Open("customer_access_token", sealed)
	require.ErrorIs(t, err, errors.ErrCookieTampered)
}
