package auditlog

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
)

const collection = "auditLogs"

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	List(ctx context.Context, f Filter) ([]Entry, error)
}

type firestoreRepository struct {
	client *firestore.Client
}

func NewRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) Create(ctx context.Context, e *Entry) error {
	e.ID = uuid.NewString()
	if _, err := r.client.Collection(collection).Doc(e.ID).Set(ctx, e); err != nil {
		return fmt.Errorf("write audit entry: %w", err)
	}
	return nil
}

func (r *firestoreRepository) List(ctx context.Context, f Filter) ([]Entry, error) {
	q := r.client.Collection(collection).Query
	if f.Action != "" {
		q = q.Where("action", "==", f.Action)
	}
	if f.Status != "" {
		q = q.Where("status", "==", f.Status)
	}
	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	iter := q.OrderBy("createdAt", firestore.Desc).Limit(limit).Documents(ctx)
	defer iter.Stop()

	var entries []Entry
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list audit entries: %w", err)
		}
		var e Entry
		if err := snap.DataTo(&e); err != nil {
			return nil, fmt.Errorf("decode audit entry %s: %w", snap.Ref.ID, err)
		}
		e.ID = snap.Ref.ID
		entries = append(entries, e)
	}
	return entries, nil
}

// MemoryRepository is the in-memory Repository used by tests.
type MemoryRepository struct {
	mu      sync.Mutex
	Entries []Entry
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Create(ctx context.Context, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = uuid.NewString()
	m.Entries = append(m.Entries, *e)
	return nil
}

func (m *MemoryRepository) List(ctx context.Context, f Filter) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Entry
	for _, e := range m.Entries {
		if f.Action != "" && e.Action != f.Action {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
