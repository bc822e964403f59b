package member

import (
	"context"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/iedc-carmel/club-management-backend/internal/apperr"
)

// IdentityAdmin is the slice of the identity service the member module
// needs: account lifecycle plus the role custom claim.
type IdentityAdmin interface {
	CreateAccount(ctx context.Context, email, password, displayName string) (string, error)
	SetRoleClaim(ctx context.Context, uid, role string) error
	DeleteAccount(ctx context.Context, uid string) error
}

type firebaseIdentity struct {
	client *fbauth.Client
}

func NewFirebaseIdentity(client *fbauth.Client) IdentityAdmin {
	return &firebaseIdentity{client: client}
}

func (f *firebaseIdentity) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	record, err := f.client.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return "", apperr.Wrap(apperr.Conflict, "an account with this email already exists", err)
		}
		return "", fmt.Errorf("create auth account: %w", err)
	}
	return record.UID, nil
}

func (f *firebaseIdentity) SetRoleClaim(ctx context.Context, uid, role string) error {
	if err := f.client.SetCustomUserClaims(ctx, uid, map[string]interface{}{"role": role}); err != nil {
		if fbauth.IsUserNotFound(err) {
			return apperr.New(apperr.NotFound, "user not found")
		}
		return fmt.Errorf("set role claim: %w", err)
	}
	return nil
}

func (f *firebaseIdentity) DeleteAccount(ctx context.Context, uid string) error {
	if err := f.client.DeleteUser(ctx, uid); err != nil {
		if fbauth.IsUserNotFound(err) {
			return apperr.New(apperr.NotFound, "user not found")
		}
		return fmt.Errorf("delete auth account: %w", err)
	}
	return nil
}

// NoopIdentity satisfies IdentityAdmin when running without Firebase
// (dev mode). Account operations succeed locally; the document store
// remains the single source of truth.
type NoopIdentity struct{}

func (NoopIdentity) CreateAccount(ctx context.Context, email, _, _ string) (string, error) {
	return "dev-" + email, nil
}

func (NoopIdentity) SetRoleClaim(ctx context.Context, uid, role string) error { return nil }

func (NoopIdentity) DeleteAccount(ctx context.Context, uid string) error { return nil }
