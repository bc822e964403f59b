package member

import "time"

// Membership approval states.
const (
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
)

// User is the member document stored under the "users" collection,
// keyed by the Firebase Auth UID. Role is mirrored into the identity
// service custom claim; both copies are updated on every role change.
type User struct {
	UID            string     `firestore:"-" json:"uid"`
	FullName       string     `firestore:"fullName" json:"fullName"`
	Email          string     `firestore:"email" json:"email"`
	Role           string     `firestore:"role" json:"role"`
	Status         string     `firestore:"status" json:"status"`
	Department     string     `firestore:"department,omitempty" json:"department,omitempty"`
	Year           string     `firestore:"year,omitempty" json:"year,omitempty"`
	Semester       string     `firestore:"semester,omitempty" json:"semester,omitempty"`
	RegisterNumber string     `firestore:"registerNumber,omitempty" json:"registerNumber,omitempty"`
	PasswordHash   string     `firestore:"passwordHash,omitempty" json:"-"`
	CreatedAt      time.Time  `firestore:"createdAt,serverTimestamp" json:"createdAt"`
	ApprovedAt     *time.Time `firestore:"approvedAt,omitempty" json:"approvedAt,omitempty"`
}

// ApplyRequest is the public membership application payload.
type ApplyRequest struct {
	FullName       string `json:"fullName" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	Department     string `json:"department" binding:"required"`
	Year           string `json:"year"`
	Semester       string `json:"semester"`
	RegisterNumber string `json:"registerNumber"`
}

// SetRoleRequest is the admin role-change payload.
type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// GrantAdminRequest promotes the user matching Email during first-admin
// bootstrap.
type GrantAdminRequest struct {
	Email string `json:"email" binding:"required,email"`
}
