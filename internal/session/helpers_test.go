package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/foodcourt/pkg/domain"
)

// mint signs a credential the way the backend does. The key is irrelevant
// to the client, which never verifies signatures.
func mint(t *testing.T, sub, role string, countryID int64, exp time.Time) string {
	t.Helper()
	claims := Claims{
		Role:      role,
		CountryID: countryID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  sub,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if !exp.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return raw
}

func storeWith(t *testing.T, raw string) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	require.NoError(t, s.Set(raw))
	return s
}

// fakeAuth answers Authenticate with a fixed credential for one password.
type fakeAuth struct {
	password string
	token    string
	calls    int
}

var errBadCredentials = errors.New("HTTP 401: Incorrect username or password")

func (f *fakeAuth) Authenticate(_ context.Context, creds domain.Credentials) (string, error) {
	f.calls++
	if creds.Password != f.password {
		return "", errBadCredentials
	}
	return f.token, nil
}
