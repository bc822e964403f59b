package auditlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogActionMarshalsDetails(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	err := svc.LogAction(ctx, "admin-1", "EVENT_CREATED", "evt-1",
		map[string]interface{}{"name": "Ideathon"}, "203.0.113.7", "success")
	require.NoError(t, err)

	require.Len(t, repo.Entries, 1)
	e := repo.Entries[0]
	assert.Equal(t, "admin-1", e.ActorUID)
	assert.Equal(t, "EVENT_CREATED", e.Action)
	assert.Equal(t, "evt-1", e.Target)
	assert.JSONEq(t, `{"name":"Ideathon"}`, e.Details)
	assert.Equal(t, "203.0.113.7", e.IPAddress)
	assert.Equal(t, "success", e.Status)
}

func TestLogActionNilDetails(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)

	require.NoError(t, svc.LogAction(context.Background(), "admin-1", "MEMBER_DELETED", "uid-1", nil, "", "failure"))
	require.Len(t, repo.Entries, 1)
	assert.JSONEq(t, `{}`, repo.Entries[0].Details)
}

func TestListFilters(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.LogAction(ctx, "a", "EVENT_CREATED", "e1", nil, "", "success"))
	require.NoError(t, svc.LogAction(ctx, "a", "EVENT_DELETED", "e1", nil, "", "success"))
	require.NoError(t, svc.LogAction(ctx, "b", "EVENT_CREATED", "e2", nil, "", "failure"))

	created, err := svc.List(ctx, Filter{Action: "EVENT_CREATED"})
	require.NoError(t, err)
	assert.Len(t, created, 2)

	failures, err := svc.List(ctx, Filter{Status: "failure"})
	require.NoError(t, err)
	assert.Len(t, failures, 1)

	both, err := svc.List(ctx, Filter{Action: "EVENT_CREATED", Status: "success"})
	require.NoError(t, err)
	assert.Len(t, both, 1)
}
