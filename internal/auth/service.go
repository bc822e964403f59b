package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/iedc-carmel/club-management-backend/internal/apperr"
	"github.com/iedc-carmel/club-management-backend/internal/member"
)

// LoginInput is the secondary password login: identifier is an email or
// a register number.
type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// LoginResult carries a custom sign-in token the client exchanges with
// the identity service for a session.
type LoginResult struct {
	CustomToken string       `json:"customToken"`
	User        *member.User `json:"user"`
}

type Service interface {
	LoginWithPassword(ctx context.Context, in LoginInput) (*LoginResult, error)
}

type service struct {
	members member.Repository
	minter  TokenMinter
}

func NewService(members member.Repository, minter TokenMinter) Service {
	return &service{members: members, minter: minter}
}

func (s *service) LoginWithPassword(ctx context.Context, in LoginInput) (*LoginResult, error) {
	identifier := strings.TrimSpace(in.Identifier)

	var (
		user *member.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.members.GetByEmail(ctx, strings.ToLower(identifier))
	} else {
		user, err = s.members.GetByRegisterNumber(ctx, identifier)
	}
	if err != nil {
		// Do not reveal whether the account exists.
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, apperr.New(apperr.Unauthenticated, "invalid credentials")
		}
		return nil, err
	}

	if user.PasswordHash == "" {
		return nil, apperr.New(apperr.Unauthenticated, "password login is not enabled for this account")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperr.New(apperr.Unauthenticated, "invalid credentials")
	}
	if user.Status != member.StatusApproved {
		return nil, apperr.New(apperr.PermissionDenied, "membership is pending approval")
	}

	token, err := s.minter.MintCustomToken(ctx, user.UID, map[string]interface{}{
		"role":  user.Role,
		"email": user.Email,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to issue sign-in token", err)
	}

	return &LoginResult{CustomToken: token, User: user}, nil
}
