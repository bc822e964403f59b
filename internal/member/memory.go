package member

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iedc-carmel/club-management-backend/internal/apperr"
)

// MemoryRepository is an in-memory Repository used by tests.
type MemoryRepository struct {
	mu    sync.Mutex
	users map[string]User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]User)}
}

func (m *MemoryRepository) Get(ctx context.Context, uid string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[uid]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	return &u, nil
}

func (m *MemoryRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return m.find(func(u User) bool { return u.Email == email })
}

func (m *MemoryRepository) GetByRegisterNumber(ctx context.Context, regNo string) (*User, error) {
	return m.find(func(u User) bool { return u.RegisterNumber == regNo })
}

func (m *MemoryRepository) find(match func(User) bool) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "user not found")
}

func (m *MemoryRepository) Create(ctx context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *u
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	m.users[u.UID] = stored
	return nil
}

func (m *MemoryRepository) SetStatus(ctx context.Context, uid, status string, approvedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[uid]
	if !ok {
		return apperr.New(apperr.NotFound, "user not found")
	}
	u.Status = status
	if status == StatusApproved {
		u.ApprovedAt = &approvedAt
	}
	m.users[uid] = u
	return nil
}

func (m *MemoryRepository) SetRole(ctx context.Context, uid, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[uid]
	if !ok {
		return apperr.New(apperr.NotFound, "user not found")
	}
	u.Role = role
	m.users[uid] = u
	return nil
}

func (m *MemoryRepository) Delete(ctx context.Context, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, uid)
	return nil
}

func (m *MemoryRepository) List(ctx context.Context, statusFilter string) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []User
	for _, u := range m.users {
		if statusFilter == "" || u.Status == statusFilter {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
