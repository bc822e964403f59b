package member

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iedc-carmel/club-management-backend/internal/apperr"
	"github.com/iedc-carmel/club-management-backend/internal/auditlog"
	"github.com/iedc-carmel/club-management-backend/internal/notification"
)

type Service interface {
	Apply(ctx context.Context, req ApplyRequest) (string, error)
	List(ctx context.Context, statusFilter string) ([]User, error)
	Get(ctx context.Context, uid string) (*User, error)
	Approve(ctx context.Context, actorUID, targetUID, ip string) error
	SetRole(ctx context.Context, actorUID, targetUID, role, ip string) error
	DeleteAccount(ctx context.Context, actorUID, targetUID, ip string) error
	GrantAdmin(ctx context.Context, actorUID, email, ip string) (*User, error)
}

type service struct {
	repo     Repository
	identity IdentityAdmin
	audit    auditlog.Service
	notifier notification.Dispatcher
	now      func() time.Time
}

func NewService(repo Repository, identity IdentityAdmin, audit auditlog.Service, notifier notification.Dispatcher) Service {
	return &service{
		repo:     repo,
		identity: identity,
		audit:    audit,
		notifier: notifier,
		now:      time.Now,
	}
}

// Apply creates the auth account plus a pending user document.
func (s *service) Apply(ctx context.Context, req ApplyRequest) (string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	uid, err := s.identity.CreateAccount(ctx, email, req.Password, req.FullName)
	if err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		UID:            uid,
		FullName:       req.FullName,
		Email:          email,
		Role:           "student",
		Status:         StatusPendingApproval,
		Department:     req.Department,
		Year:           req.Year,
		Semester:       req.Semester,
		RegisterNumber: req.RegisterNumber,
		PasswordHash:   string(hash),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return "", err
	}
	return uid, nil
}

func (s *service) List(ctx context.Context, statusFilter string) ([]User, error) {
	return s.repo.List(ctx, statusFilter)
}

func (s *service) Get(ctx context.Context, uid string) (*User, error) {
	return s.repo.Get(ctx, uid)
}

func (s *service) Approve(ctx context.Context, actorUID, targetUID, ip string) error {
	user, err := s.repo.Get(ctx, targetUID)
	if err != nil {
		return err
	}

	if err := s.repo.SetStatus(ctx, targetUID, StatusApproved, s.now()); err != nil {
		s.logAction(ctx, actorUID, "MEMBER_APPROVED", targetUID, map[string]interface{}{"error": err.Error()}, ip, "failure")
		return err
	}

	s.notifier.Dispatch(ctx, notification.MembershipApproved(user.Email, user.FullName))
	s.logAction(ctx, actorUID, "MEMBER_APPROVED", targetUID, map[string]interface{}{"email": user.Email}, ip, "success")
	return nil
}

// SetRole keeps the document and the identity-service claim in sync.
// The document is written first; the claim update is the commit point.
// If the claim write fails the document role is reverted so the two
// sources of truth do not diverge.
func (s *service) SetRole(ctx context.Context, actorUID, targetUID, role, ip string) error {
	if role != "student" && role != "admin" {
		return apperr.New(apperr.Validation, "role must be student or admin")
	}

	user, err := s.repo.Get(ctx, targetUID)
	if err != nil {
		return err
	}
	previous := user.Role

	if err := s.repo.SetRole(ctx, targetUID, role); err != nil {
		return err
	}

	if err := s.identity.SetRoleClaim(ctx, targetUID, role); err != nil {
		if revertErr := s.repo.SetRole(ctx, targetUID, previous); revertErr != nil {
			log.Printf("⚠️ role revert failed for %s: %v (claim error: %v)", targetUID, revertErr, err)
		}
		s.logAction(ctx, actorUID, "MEMBER_ROLE_CHANGED", targetUID, map[string]interface{}{"role": role, "error": err.Error()}, ip, "failure")
		return apperr.Wrap(apperr.Internal, "failed to update role claim", err)
	}

	s.logAction(ctx, actorUID, "MEMBER_ROLE_CHANGED", targetUID, map[string]interface{}{"role": role, "previous": previous}, ip, "success")
	return nil
}

func (s *service) DeleteAccount(ctx context.Context, actorUID, targetUID, ip string) error {
	if actorUID == targetUID {
		s.logAction(ctx, actorUID, "MEMBER_DELETED", targetUID, map[string]interface{}{"error": "self-delete forbidden"}, ip, "failure")
		return apperr.New(apperr.PermissionDenied, "you cannot delete your own account")
	}

	user, err := s.repo.Get(ctx, targetUID)
	if err != nil {
		return err
	}

	if err := s.identity.DeleteAccount(ctx, targetUID); err != nil {
		// A missing auth account still gets its document removed.
		if apperr.KindOf(err) != apperr.NotFound {
			s.logAction(ctx, actorUID, "MEMBER_DELETED", targetUID, map[string]interface{}{"error": err.Error()}, ip, "failure")
			return err
		}
	}

	if err := s.repo.Delete(ctx, targetUID); err != nil {
		return err
	}

	// Known limitation: the member's event registrations are not removed.
	s.logAction(ctx, actorUID, "MEMBER_DELETED", targetUID, map[string]interface{}{"email": user.Email}, ip, "success")
	return nil
}

// GrantAdmin is the first-admin bootstrap: promotes the user matching
// email with the same dual-write rules as SetRole.
func (s *service) GrantAdmin(ctx context.Context, actorUID, email, ip string) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}

	if err := s.SetRole(ctx, actorUID, user.UID, "admin", ip); err != nil {
		return nil, err
	}

	user.Role = "admin"
	return user, nil
}

func (s *service) logAction(ctx context.Context, actorUID, action, target string, details map[string]interface{}, ip, status string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.LogAction(ctx, actorUID, action, target, details, ip, status); err != nil {
		log.Printf("⚠️ audit log write failed: %v", err)
	}
}
