package event

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iedc-carmel/club-management-backend/internal/apperr"
)

// MemoryRepository mirrors the Firestore repository's transactional
// semantics with a single mutex. Tests run against it.
type MemoryRepository struct {
	mu     sync.Mutex
	events map[string]*Event
	// registrations[eventID][regID]
	registrations map[string]map[string]*Registration
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		events:        make(map[string]*Event),
		registrations: make(map[string]map[string]*Registration),
	}
}

func (m *MemoryRepository) CreateEvent(ctx context.Context, e *Event) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	stored := *e
	now := time.Now()
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.events[id] = &stored
	m.registrations[id] = make(map[string]*Registration)
	return id, nil
}

func (m *MemoryRepository) GetEvent(ctx context.Context, id string) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "event not found")
	}
	copied := *e
	return &copied, nil
}

func (m *MemoryRepository) UpdateEvent(ctx context.Context, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[id]
	if !ok {
		return apperr.New(apperr.NotFound, "event not found")
	}

	for path, value := range fields {
		switch path {
		case "name":
			e.Name = value.(string)
		case "date":
			e.Date = value.(time.Time)
		case "time":
			e.Time = value.(string)
		case "venue":
			e.Venue = value.(string)
		case "description":
			e.Description = value.(string)
		case "bannerUrl":
			e.BannerURL = value.(string)
		case "audience":
			e.Audience = value.(string)
		case "registrationFee":
			e.RegistrationFee = value.(float64)
		default:
			return fmt.Errorf("unknown field %q", path)
		}
	}
	e.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryRepository) DeleteEvent(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Mirrors production: the registrations map entry is left behind.
	delete(m.events, id)
	return nil
}

func (m *MemoryRepository) ListEventsAdmin(ctx context.Context) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var events []Event
	for _, e := range m.events {
		events = append(events, *e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date.After(events[j].Date) })
	return events, nil
}

func (m *MemoryRepository) ListEventsUpcoming(ctx context.Context, now time.Time) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var events []Event
	for _, e := range m.events {
		if !e.Date.Before(now) {
			events = append(events, *e)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events, nil
}

func (m *MemoryRepository) SubmitRegistration(ctx context.Context, eventID string, reg *Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[eventID]
	if !ok {
		return apperr.New(apperr.NotFound, "event not found")
	}

	ledger := m.registrations[eventID]
	_, exists := ledger[reg.ID]

	stored := *reg
	if stored.RegisteredAt.IsZero() {
		stored.RegisteredAt = time.Now()
	}
	ledger[reg.ID] = &stored

	if !exists {
		e.RegistrationCount++
	}
	return nil
}

func (m *MemoryRepository) GetRegistration(ctx context.Context, eventID, regID string) (*Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	reg, ok := m.registrations[eventID][regID]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "registration not found")
	}
	copied := *reg
	return &copied, nil
}

func (m *MemoryRepository) TransitionRegistration(ctx context.Context, eventID, regID, expectedCurrent, newStatus string) (*Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	reg, ok := m.registrations[eventID][regID]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "registration not found")
	}
	if reg.Status != expectedCurrent {
		return nil, apperr.New(apperr.Conflict,
			fmt.Sprintf("cannot change a %s registration to %s", reg.Status, newStatus))
	}

	reg.Status = newStatus
	copied := *reg
	return &copied, nil
}

func (m *MemoryRepository) DeleteRegistration(ctx context.Context, eventID, regID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ledger, ok := m.registrations[eventID]
	if !ok {
		return apperr.New(apperr.NotFound, "registration not found")
	}
	if _, ok := ledger[regID]; !ok {
		return apperr.New(apperr.NotFound, "registration not found")
	}

	delete(ledger, regID)
	if e, ok := m.events[eventID]; ok {
		e.RegistrationCount--
	}
	return nil
}

func (m *MemoryRepository) ListRegistrations(ctx context.Context, eventID, statusFilter string) ([]Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var regs []Registration
	for _, reg := range m.registrations[eventID] {
		if statusFilter == "" || reg.Status == statusFilter {
			regs = append(regs, *reg)
		}
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].RegisteredAt.After(regs[j].RegisteredAt) })
	return regs, nil
}
