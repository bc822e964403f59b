package member

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

const usersCollection = "users"

// Repository is the user-document store.
type Repository interface {
	Get(ctx context.Context, uid string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByRegisterNumber(ctx context.Context, regNo string) (*User, error)
	Create(ctx context.Context, u *User) error
	SetStatus(ctx context.Context, uid, status string, approvedAt time.Time) error
	SetRole(ctx context.Context, uid, role string) error
	Delete(ctx context.Context, uid string) error
	List(ctx context.Context, statusFilter string) ([]User, error)
}

type firestoreRepository struct {
	client *firestore.Client
}

func NewRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) users() *firestore.CollectionRef {
	return r.client.Collection(usersCollection)
}

func (r *firestoreRepository) Get(ctx context.Context, uid string) (*User, error) {
	snap, err := r.users().Doc(uid).Get(ctx)
	if err != nil {
		if grpcstatus.Code(err) == codes.NotFound {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return userFromSnap(snap)
}

func (r *firestoreRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getByField(ctx, "email", email)
}

func (r *firestoreRepository) GetByRegisterNumber(ctx context.Context, regNo string) (*User, error) {
	return r.getByField(ctx, "registerNumber", regNo)
}

func (r *firestoreRepository) getByField(ctx context.Context, field, value string) (*User, error) {
	iter := r.users().Where(field, "==", value).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("query user by %s: %w", field, err)
	}
	return userFromSnap(snap)
}

func (r *firestoreRepository) Create(ctx context.Context, u *User) error {
	if _, err := r.users().Doc(u.UID).Set(ctx, u); err != nil {
		return fmt.Errorf("create user document: %w", err)
	}
	return nil
}

func (r *firestoreRepository) SetStatus(ctx context.Context, uid, status string, approvedAt time.Time) error {
	updates := []firestore.Update{{Path: "status", Value: status}}
	if status == StatusApproved {
		updates = append(updates, firestore.Update{Path: "approvedAt", Value: approvedAt})
	}
	_, err := r.users().Doc(uid).Update(ctx, updates)
	if grpcstatus.Code(err) == codes.NotFound {
		return apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	return nil
}

func (r *firestoreRepository) SetRole(ctx context.Context, uid, role string) error {
	_, err := r.users().Doc(uid).Update(ctx, []firestore.Update{{Path: "role", Value: role}})
	if grpcstatus.Code(err) == codes.NotFound {
		return apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	return nil
}

func (r *firestoreRepository) Delete(ctx context.Context, uid string) error {
	// Known limitation: the member's event registrations are not
	// cascade-deleted and remain under their events.
	if _, err := r.users().Doc(uid).Delete(ctx); err != nil {
		return fmt.Errorf("delete user document: %w", err)
	}
	return nil
}

func (r *firestoreRepository) List(ctx context.Context, statusFilter string) ([]User, error) {
	q := r.users().Query
	if statusFilter != "" {
		q = q.Where("status", "==", statusFilter)
	}
	iter := q.OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var users []User
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		u, err := userFromSnap(snap)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}

func userFromSnap(snap *firestore.DocumentSnapshot) (*User, error) {
	var u User
	if err := snap.DataTo(&u); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", snap.Ref.ID, err)
	}
	u.UID = snap.Ref.ID
	return &u, nil
}
