package event

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/iedc-carmel/club-management-backend/internal/apperr"
)

const (
	eventsCollection        = "events"
	registrationsCollection = "registrations"
	countField              = "registrationCount"
)

// Repository is the event aggregate plus its registration ledger.
// Every method that touches the denormalized counter does so inside the
// same transaction as the owning registration write.
type Repository interface {
	CreateEvent(ctx context.Context, e *Event) (string, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	UpdateEvent(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteEvent(ctx context.Context, id string) error
	ListEventsAdmin(ctx context.Context) ([]Event, error)
	ListEventsUpcoming(ctx context.Context, now time.Time) ([]Event, error)

	SubmitRegistration(ctx context.Context, eventID string, reg *Registration) error
	GetRegistration(ctx context.Context, eventID, regID string) (*Registration, error)
	TransitionRegistration(ctx context.Context, eventID, regID, expectedCurrent, newStatus string) (*Registration, error)
	DeleteRegistration(ctx context.Context, eventID, regID string) error
	ListRegistrations(ctx context.Context, eventID, statusFilter string) ([]Registration, error)
}

type firestoreRepository struct {
	client *firestore.Client
}

func NewRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) eventRef(id string) *firestore.DocumentRef {
	return r.client.Collection(eventsCollection).Doc(id)
}

func (r *firestoreRepository) regRef(eventID, regID string) *firestore.DocumentRef {
	return r.eventRef(eventID).Collection(registrationsCollection).Doc(regID)
}

func (r *firestoreRepository) CreateEvent(ctx context.Context, e *Event) (string, error) {
	ref := r.client.Collection(eventsCollection).NewDoc()
	if _, err := ref.Set(ctx, e); err != nil {
		return "", fmt.Errorf("create event: %w", err)
	}
	return ref.ID, nil
}

func (r *firestoreRepository) GetEvent(ctx context.Context, id string) (*Event, error) {
	snap, err := r.eventRef(id).Get(ctx)
	if err != nil {
		if grpcstatus.Code(err) == codes.NotFound {
			return nil, apperr.New(apperr.NotFound, "event not found")
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return eventFromSnap(snap)
}

func (r *firestoreRepository) UpdateEvent(ctx context.Context, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})

	_, err := r.eventRef(id).Update(ctx, updates)
	if grpcstatus.Code(err) == codes.NotFound {
		return apperr.New(apperr.NotFound, "event not found")
	}
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

func (r *firestoreRepository) DeleteEvent(ctx context.Context, id string) error {
	// Known limitation: the registrations sub-collection is orphaned;
	// Firestore does not cascade and neither do we.
	if _, err := r.eventRef(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (r *firestoreRepository) ListEventsAdmin(ctx context.Context) ([]Event, error) {
	iter := r.client.Collection(eventsCollection).
		OrderBy("date", firestore.Desc).
		Documents(ctx)
	return collectEvents(iter)
}

func (r *firestoreRepository) ListEventsUpcoming(ctx context.Context, now time.Time) ([]Event, error) {
	iter := r.client.Collection(eventsCollection).
		Where("date", ">=", now).
		OrderBy("date", firestore.Asc).
		Documents(ctx)
	return collectEvents(iter)
}

// SubmitRegistration upserts the ledger document and increments the
// event counter in one transaction. An overwrite of an existing
// registration leaves the counter untouched so it keeps matching the
// number of ledger documents.
func (r *firestoreRepository) SubmitRegistration(ctx context.Context, eventID string, reg *Registration) error {
	eventRef := r.eventRef(eventID)
	regRef := r.regRef(eventID, reg.ID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(eventRef); err != nil {
			if grpcstatus.Code(err) == codes.NotFound {
				return apperr.New(apperr.NotFound, "event not found")
			}
			return err
		}

		exists := true
		if _, err := tx.Get(regRef); err != nil {
			if grpcstatus.Code(err) != codes.NotFound {
				return err
			}
			exists = false
		}

		if err := tx.Set(regRef, reg); err != nil {
			return err
		}
		if exists {
			return nil
		}
		return tx.Update(eventRef, []firestore.Update{
			{Path: countField, Value: firestore.Increment(1)},
		})
	})
}

func (r *firestoreRepository) GetRegistration(ctx context.Context, eventID, regID string) (*Registration, error) {
	snap, err := r.regRef(eventID, regID).Get(ctx)
	if err != nil {
		if grpcstatus.Code(err) == codes.NotFound {
			return nil, apperr.New(apperr.NotFound, "registration not found")
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return registrationFromSnap(snap)
}

// TransitionRegistration re-reads the registration inside the
// transaction so the current-status check cannot race a concurrent
// admin action on the same document.
func (r *firestoreRepository) TransitionRegistration(ctx context.Context, eventID, regID, expectedCurrent, newStatus string) (*Registration, error) {
	regRef := r.regRef(eventID, regID)

	var reg *Registration
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(regRef)
		if err != nil {
			if grpcstatus.Code(err) == codes.NotFound {
				return apperr.New(apperr.NotFound, "registration not found")
			}
			return err
		}

		reg, err = registrationFromSnap(snap)
		if err != nil {
			return err
		}
		if reg.Status != expectedCurrent {
			return apperr.New(apperr.Conflict,
				fmt.Sprintf("cannot change a %s registration to %s", reg.Status, newStatus))
		}

		return tx.Update(regRef, []firestore.Update{{Path: "status", Value: newStatus}})
	})
	if err != nil {
		return nil, err
	}

	reg.Status = newStatus
	return reg, nil
}

// DeleteRegistration removes the ledger document and decrements the
// counter in one transaction. The existence check happens inside the
// transaction to avoid a check-then-act race with a concurrent delete.
func (r *firestoreRepository) DeleteRegistration(ctx context.Context, eventID, regID string) error {
	eventRef := r.eventRef(eventID)
	regRef := r.regRef(eventID, regID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(regRef); err != nil {
			if grpcstatus.Code(err) == codes.NotFound {
				return apperr.New(apperr.NotFound, "registration not found")
			}
			return err
		}

		if err := tx.Delete(regRef); err != nil {
			return err
		}
		return tx.Update(eventRef, []firestore.Update{
			{Path: countField, Value: firestore.Increment(-1)},
		})
	})
}

func (r *firestoreRepository) ListRegistrations(ctx context.Context, eventID, statusFilter string) ([]Registration, error) {
	q := r.eventRef(eventID).Collection(registrationsCollection).Query
	if statusFilter != "" {
		q = q.Where("status", "==", statusFilter)
	}
	iter := q.OrderBy("registeredAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var regs []Registration
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list registrations: %w", err)
		}
		reg, err := registrationFromSnap(snap)
		if err != nil {
			return nil, err
		}
		regs = append(regs, *reg)
	}
	return regs, nil
}

func collectEvents(iter *firestore.DocumentIterator) ([]Event, error) {
	defer iter.Stop()

	var events []Event
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		e, err := eventFromSnap(snap)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, nil
}

func eventFromSnap(snap *firestore.DocumentSnapshot) (*Event, error) {
	var e Event
	if err := snap.DataTo(&e); err != nil {
		return nil, fmt.Errorf("decode event %s: %w", snap.Ref.ID, err)
	}
	e.ID = snap.Ref.ID
	return &e, nil
}

func registrationFromSnap(snap *firestore.DocumentSnapshot) (*Registration, error) {
	var reg Registration
	if err := snap.DataTo(&reg); err != nil {
		return nil, fmt.Errorf("decode registration %s: %w", snap.Ref.ID, err)
	}
	reg.ID = snap.Ref.ID
	return &reg, nil
}
