package event

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/iedc-carmel/club-management-backend/internal/apperr"
	"github.com/iedc-carmel/club-management-backend/internal/auditlog"
	"github.com/iedc-carmel/club-management-backend/internal/notification"
)

// Service wraps business logic for events and their registrations.
type Service struct {
	repo     Repository
	audit    auditlog.Service
	notifier notification.Dispatcher
	now      func() time.Time
}

func NewService(repo Repository, audit auditlog.Service, notifier notification.Dispatcher) *Service {
	return &Service{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		now:      time.Now,
	}
}

func validAudience(a string) bool {
	switch a {
	case AudienceMembers, AudienceCarmelStudents, AudienceAllStudents:
		return true
	}
	return false
}

// parseDate accepts full RFC3339 instants and bare dates, the two wire
// formats the frontend sends.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, apperr.New(apperr.Validation, "invalid date format, use RFC3339 or YYYY-MM-DD")
	}
	return t, nil
}

// CreateEvent validates the payload and persists a new event with a
// zero registration count.
func (s *Service) CreateEvent(ctx context.Context, actorUID string, req *CreateEventRequest, ip string) (string, error) {
	if !validAudience(req.Audience) {
		return "", apperr.New(apperr.Validation, "audience must be iedc-members, carmel-students or all-students")
	}
	if req.RegistrationFee < 0 {
		return "", apperr.New(apperr.Validation, "registration fee cannot be negative")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return "", err
	}

	if date.Before(s.now().Add(MinLeadTime)) && !req.AllowShortNotice {
		return "", apperr.New(apperr.Validation, "event date must be at least 24 hours away (set allowShortNotice to override)")
	}

	e := &Event{
		Name:              req.Name,
		Date:              date,
		Time:              req.Time,
		Venue:             req.Venue,
		Description:       req.Description,
		BannerURL:         req.BannerURL,
		Audience:          req.Audience,
		RegistrationFee:   req.RegistrationFee,
		RegistrationCount: 0,
		CreatedBy:         actorUID,
	}

	id, err := s.repo.CreateEvent(ctx, e)
	if err != nil {
		s.logAction(ctx, actorUID, "EVENT_CREATED", "", map[string]interface{}{"name": req.Name, "error": err.Error()}, ip, "failure")
		return "", err
	}

	s.logAction(ctx, actorUID, "EVENT_CREATED", id, map[string]interface{}{"name": req.Name, "date": req.Date}, ip, "success")
	return id, nil
}

// UpdateEvent merges the provided fields and re-stamps updatedAt.
func (s *Service) UpdateEvent(ctx context.Context, actorUID, id string, req *UpdateEventRequest, ip string) error {
	fields := map[string]interface{}{}

	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return err
		}
		fields["date"] = date
	}
	if req.Time != nil {
		fields["time"] = *req.Time
	}
	if req.Venue != nil {
		fields["venue"] = *req.Venue
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.BannerURL != nil {
		fields["bannerUrl"] = *req.BannerURL
	}
	if req.Audience != nil {
		if !validAudience(*req.Audience) {
			return apperr.New(apperr.Validation, "audience must be iedc-members, carmel-students or all-students")
		}
		fields["audience"] = *req.Audience
	}
	if req.RegistrationFee != nil {
		if *req.RegistrationFee < 0 {
			return apperr.New(apperr.Validation, "registration fee cannot be negative")
		}
		fields["registrationFee"] = *req.RegistrationFee
	}

	if len(fields) == 0 {
		return apperr.New(apperr.Validation, "no fields to update")
	}

	if err := s.repo.UpdateEvent(ctx, id, fields); err != nil {
		return err
	}

	s.logAction(ctx, actorUID, "EVENT_UPDATED", id, map[string]interface{}{"fields": len(fields)}, ip, "success")
	return nil
}

// DeleteEvent removes the event document. Registrations under it are
// intentionally left in place (no cascade); see the repository note.
func (s *Service) DeleteEvent(ctx context.Context, actorUID, id, ip string) error {
	if _, err := s.repo.GetEvent(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return err
	}
	s.logAction(ctx, actorUID, "EVENT_DELETED", id, nil, ip, "success")
	return nil
}

func (s *Service) GetEvent(ctx context.Context, id string) (*Event, error) {
	return s.repo.GetEvent(ctx, id)
}

// ListAdmin returns every event, newest date first.
func (s *Service) ListAdmin(ctx context.Context) ([]Event, error) {
	return s.repo.ListEventsAdmin(ctx)
}

// ListUpcoming returns future events, soonest first.
func (s *Service) ListUpcoming(ctx context.Context) ([]Event, error) {
	return s.repo.ListEventsUpcoming(ctx, s.now())
}

// SubmitRegistration writes the ledger entry keyed by the caller's UID
// when authenticated, else by the submitted email. The ledger write and
// counter increment land in one transaction.
func (s *Service) SubmitRegistration(ctx context.Context, eventID, callerUID string, req *SubmitRegistrationRequest) (*Registration, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	key := callerUID
	if key == "" {
		key = email
	}
	if key == "" {
		return nil, apperr.New(apperr.Validation, "email is required when registering without signing in")
	}

	reg := &Registration{
		ID:            key,
		EventID:       eventID,
		FullName:      req.FullName,
		Email:         email,
		College:       req.College,
		Department:    req.Department,
		Semester:      req.Semester,
		MobileNumber:  req.MobileNumber,
		ScreenshotURL: req.ScreenshotURL,
		UserID:        callerUID,
		Status:        StatusPending,
	}

	if err := s.repo.SubmitRegistration(ctx, eventID, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// SetRegistrationStatus applies an admin verification decision. Only
// pending registrations can move, and only to verified or rejected;
// everything else is an invalid transition. The decision email is
// best-effort and never rolls back the status change.
func (s *Service) SetRegistrationStatus(ctx context.Context, actorUID, eventID, regID, newStatus, ip string) error {
	if !newStatusValid(newStatus) {
		return apperr.New(apperr.Validation, "status must be pending, verified or rejected")
	}
	if newStatus == StatusPending {
		return apperr.New(apperr.Conflict, "registrations cannot be moved back to pending")
	}

	reg, err := s.repo.TransitionRegistration(ctx, eventID, regID, StatusPending, newStatus)
	if err != nil {
		s.logAction(ctx, actorUID, "REGISTRATION_STATUS", regID, map[string]interface{}{"event": eventID, "status": newStatus, "error": err.Error()}, ip, "failure")
		return err
	}

	s.notifyDecision(ctx, eventID, reg, newStatus)
	s.logAction(ctx, actorUID, "REGISTRATION_STATUS", regID, map[string]interface{}{"event": eventID, "status": newStatus}, ip, "success")
	return nil
}

func newStatusValid(s string) bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected:
		return true
	}
	return false
}

func (s *Service) notifyDecision(ctx context.Context, eventID string, reg *Registration, newStatus string) {
	if reg.Email == "" {
		return
	}

	eventName := eventID
	if e, err := s.repo.GetEvent(ctx, eventID); err == nil {
		eventName = e.Name
	} else {
		log.Printf("⚠️ could not load event %s for notification: %v", eventID, err)
	}

	switch newStatus {
	case StatusVerified:
		s.notifier.Dispatch(ctx, notification.RegistrationVerified(reg.Email, eventName))
	case StatusRejected:
		s.notifier.Dispatch(ctx, notification.RegistrationRejected(reg.Email, eventName))
	}
}

// DeleteRegistration removes the ledger entry and decrements the
// counter in one transaction.
func (s *Service) DeleteRegistration(ctx context.Context, actorUID, eventID, regID, ip string) error {
	if err := s.repo.DeleteRegistration(ctx, eventID, regID); err != nil {
		s.logAction(ctx, actorUID, "REGISTRATION_DELETED", regID, map[string]interface{}{"event": eventID, "error": err.Error()}, ip, "failure")
		return err
	}
	s.logAction(ctx, actorUID, "REGISTRATION_DELETED", regID, map[string]interface{}{"event": eventID}, ip, "success")
	return nil
}

// ListRegistrations returns the ledger, newest first, optionally
// filtered by status (the "verified participants" view).
func (s *Service) ListRegistrations(ctx context.Context, eventID, statusFilter string) ([]Registration, error) {
	if statusFilter != "" && !newStatusValid(statusFilter) {
		return nil, apperr.New(apperr.Validation, fmt.Sprintf("unknown status filter %q", statusFilter))
	}
	return s.repo.ListRegistrations(ctx, eventID, statusFilter)
}

func (s *Service) logAction(ctx context.Context, actorUID, action, target string, details map[string]interface{}, ip, status string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.LogAction(ctx, actorUID, action, target, details, ip, status); err != nil {
		log.Printf("⚠️ audit log write failed: %v", err)
	}
}
