package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/naveenspark/foodcourt/pkg/domain"
)

// ErrUndecodableCredential is returned when a stored credential cannot be
// turned into an identity.
var ErrUndecodableCredential = errors.New("undecodable credential")

// Claims is the payload the backend puts in its credentials.
type Claims struct {
	Role      string `json:"role"`
	CountryID int64  `json:"countryId,omitempty"`
	jwt.RegisteredClaims
}

// parseClaims decodes raw without verifying its signature. The backend
// verifies every request, so the claims here only drive what the UI shows.
func parseClaims(raw string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableCredential, err)
	}
	return claims, nil
}

// IsExpired reports whether the stored credential is unusable at now:
// absent, undecodable, without an expiry, or past it.
func IsExpired(store Store, now time.Time) bool {
	raw, ok := store.Get()
	if !ok {
		return true
	}
	claims, err := parseClaims(raw)
	if err != nil || claims.ExpiresAt == nil {
		return true
	}
	return !now.Before(claims.ExpiresAt.Time)
}

// identityFromClaims maps claims to an Identity.
func identityFromClaims(c *Claims) (domain.Identity, error) {
	if c.Role == "" {
		return domain.Identity{}, fmt.Errorf("%w: missing role claim", ErrUndecodableCredential)
	}
	return domain.Identity{
		Username:  c.Subject,
		Role:      domain.ParseRole(c.Role),
		CountryID: c.CountryID,
	}, nil
}

// DeriveIdentity decodes the stored credential into an Identity.
// A credential that cannot be decoded is removed from the store.
func DeriveIdentity(store Store, logger *zap.Logger) (domain.Identity, bool) {
	if logger == nil {
		logger = zap.NewNop()
	}
	raw, ok := store.Get()
	if !ok {
		return domain.Identity{}, false
	}

	claims, err := parseClaims(raw)
	if err == nil {
		var id domain.Identity
		if id, err = identityFromClaims(claims); err == nil {
			return id, true
		}
	}

	logger.Warn("discarding stored credential", zap.Error(err))
	if rmErr := store.Remove(); rmErr != nil {
		logger.Error("remove credential", zap.Error(rmErr))
	}
	return domain.Identity{}, false
}
