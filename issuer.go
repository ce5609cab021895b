package authgate

import (
	"time"

	"github.com/tkondic/authgate/internal"
	"github.com/tkondic/authgate/jwt"
)

// tokenIssuer mints access/refresh pairs. The two tokens come from
// independent entropy: the access token is a signed claim set with a random
// jti, the refresh token is opaque random bytes, never derived from it.
type tokenIssuer struct {
	jwt       *jwt.Manager
	accessTTL time.Duration
}

func (t *tokenIssuer) Issue(userID, email, role, planID string, device DeviceInfo) (TokenPair, error) {
	access, err := t.jwt.CreateAccess(jwt.Identity{
		UserID:     userID,
		Email:      email,
		Role:       role,
		PlanID:     planID,
		DeviceHash: internal.HashFingerprint(device.Fingerprint),
	})
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := internal.NewRefreshToken()
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExpiry: t.accessTTL,
	}, nil
}
