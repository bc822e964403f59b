package auth

import (
	"context"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/iedc-carmel/club-management-backend/internal/apperr"
)

// FirebaseVerifier validates Firebase ID tokens and reads the role claim.
type FirebaseVerifier struct {
	client *fbauth.Client
}

func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*Principal, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		// Expired tokens get a distinct message so the client can prompt
		// a refresh instead of a re-login.
		if fbauth.IsIDTokenExpired(err) {
			return nil, apperr.Wrap(apperr.Unauthenticated, "token expired", err)
		}
		return nil, apperr.Wrap(apperr.Unauthenticated, "invalid token", err)
	}

	return principalFromClaims(token.UID, token.Claims), nil
}

func principalFromClaims(uid string, claims map[string]interface{}) *Principal {
	p := &Principal{UID: uid, Role: RoleStudent}
	if role, ok := claims["role"].(string); ok && role != "" {
		p.Role = role
	}
	if email, ok := claims["email"].(string); ok {
		p.Email = email
	}
	if verified, ok := claims["email_verified"].(bool); ok {
		p.EmailVerified = verified
	}
	return p
}

// FirebaseMinter issues Firebase custom tokens.
type FirebaseMinter struct {
	client *fbauth.Client
}

func NewFirebaseMinter(client *fbauth.Client) *FirebaseMinter {
	return &FirebaseMinter{client: client}
}

func (m *FirebaseMinter) MintCustomToken(ctx context.Context, uid string, claims map[string]interface{}) (string, error) {
	return m.client.CustomTokenWithClaims(ctx, uid, claims)
}
