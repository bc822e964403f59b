package auditlog

import (
	"context"
	"encoding/json"
)

type Service interface {
	LogAction(ctx context.Context, actorUID, action, target string, details map[string]interface{}, ip, status string) error
	List(ctx context.Context, f Filter) ([]Entry, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// LogAction records one admin action. Failures are the caller's problem
// to log; audit writes never fail the primary operation.
func (s *service) LogAction(ctx context.Context, actorUID, action, target string, details map[string]interface{}, ip, status string) error {
	if details == nil {
		details = map[string]interface{}{}
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	return s.repo.Create(ctx, &Entry{
		ActorUID:  actorUID,
		Action:    action,
		Target:    target,
		Details:   string(detailsJSON),
		IPAddress: ip,
		Status:    status,
	})
}

func (s *service) List(ctx context.Context, f Filter) ([]Entry, error) {
	return s.repo.List(ctx, f)
}
