package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iedc-carmel/club-management-backend/internal/apperr"
)

// DevTokenProvider signs and verifies HS256 tokens locally. Used when the
// server runs without Firebase credentials (Firestore emulator setups) so
// the rest of the stack behaves identically. Never enable in production.
type DevTokenProvider struct {
	secret []byte
	ttl    time.Duration
}

func NewDevTokenProvider(secret string) *DevTokenProvider {
	return &DevTokenProvider{secret: []byte(secret), ttl: 24 * time.Hour}
}

func (d *DevTokenProvider) Verify(ctx context.Context, idToken string) (*Principal, error) {
	token, err := jwt.Parse(idToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return d.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Wrap(apperr.Unauthenticated, "token expired", err)
		}
		return nil, apperr.Wrap(apperr.Unauthenticated, "invalid token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperr.New(apperr.Unauthenticated, "invalid token")
	}

	uid, _ := claims["uid"].(string)
	if uid == "" {
		uid, _ = claims["sub"].(string)
	}
	if uid == "" {
		return nil, apperr.New(apperr.Unauthenticated, "uid missing in token")
	}

	return principalFromClaims(uid, claims), nil
}

func (d *DevTokenProvider) MintCustomToken(ctx context.Context, uid string, extra map[string]interface{}) (string, error) {
	claims := jwt.MapClaims{
		"uid": uid,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(d.ttl).Unix(),
	}
	for k, v := range extra {
		claims[k] = v
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(d.secret)
}
