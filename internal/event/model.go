package event

import "time"

// Audience values an event can target.
const (
	AudienceMembers        = "iedc-members"
	AudienceCarmelStudents = "carmel-students"
	AudienceAllStudents    = "all-students"
)

// Registration verification states. The only legal transitions are
// pending→verified and pending→rejected.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

// MinLeadTime is the minimum gap between event creation and the event
// date, unless the request sets the short-notice bypass flag.
const MinLeadTime = 24 * time.Hour

// Event is the aggregate document in the "events" collection.
// RegistrationCount is denormalized; it is only ever mutated inside the
// same transaction as the owning registration write.
type Event struct {
	ID                string    `firestore:"-" json:"id"`
	Name              string    `firestore:"name" json:"name"`
	Date              time.Time `firestore:"date" json:"date"`
	Time              string    `firestore:"time" json:"time"`
	Venue             string    `firestore:"venue" json:"venue"`
	Description       string    `firestore:"description,omitempty" json:"description,omitempty"`
	BannerURL         string    `firestore:"bannerUrl,omitempty" json:"bannerUrl,omitempty"`
	Audience          string    `firestore:"audience" json:"audience"`
	RegistrationFee   float64   `firestore:"registrationFee" json:"registrationFee"`
	RegistrationCount int64     `firestore:"registrationCount" json:"registrationCount"`
	CreatedBy         string    `firestore:"createdBy" json:"createdBy"`
	CreatedAt         time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
	UpdatedAt         time.Time `firestore:"updatedAt,serverTimestamp" json:"updatedAt"`
}

// Registration is the ledger document under
// events/{eventID}/registrations. The document ID is the registrant's
// UID when authenticated, else the submitted email, so re-registration
// overwrites instead of duplicating.
type Registration struct {
	ID            string    `firestore:"-" json:"id"`
	EventID       string    `firestore:"eventId" json:"eventId"`
	FullName      string    `firestore:"fullName" json:"fullName"`
	Email         string    `firestore:"email" json:"email"`
	College       string    `firestore:"college,omitempty" json:"college,omitempty"`
	Department    string    `firestore:"department,omitempty" json:"department,omitempty"`
	Semester      string    `firestore:"semester,omitempty" json:"semester,omitempty"`
	MobileNumber  string    `firestore:"mobileNumber,omitempty" json:"mobileNumber,omitempty"`
	ScreenshotURL string    `firestore:"screenshotUrl,omitempty" json:"screenshotUrl,omitempty"`
	UserID        string    `firestore:"userId,omitempty" json:"userId,omitempty"`
	Status        string    `firestore:"status" json:"status"`
	RegisteredAt  time.Time `firestore:"registeredAt,serverTimestamp" json:"registeredAt"`
}

// CreateEventRequest carries the wire format: date as an ISO string,
// time as a display string.
type CreateEventRequest struct {
	Name            string  `json:"name" binding:"required"`
	Date            string  `json:"date" binding:"required"`
	Time            string  `json:"time" binding:"required"`
	Venue           string  `json:"venue" binding:"required"`
	Description     string  `json:"description"`
	BannerURL       string  `json:"bannerUrl"`
	Audience        string  `json:"audience" binding:"required"`
	RegistrationFee float64 `json:"registrationFee"`

	// AllowShortNotice bypasses the 24-hour minimum lead time.
	AllowShortNotice bool `json:"allowShortNotice"`
}

// UpdateEventRequest merges only the fields that are present.
type UpdateEventRequest struct {
	Name            *string  `json:"name"`
	Date            *string  `json:"date"`
	Time            *string  `json:"time"`
	Venue           *string  `json:"venue"`
	Description     *string  `json:"description"`
	BannerURL       *string  `json:"bannerUrl"`
	Audience        *string  `json:"audience"`
	RegistrationFee *float64 `json:"registrationFee"`
}

// SubmitRegistrationRequest is the public registration payload.
type SubmitRegistrationRequest struct {
	FullName      string `json:"fullName" binding:"required"`
	Email         string `json:"email"`
	College       string `json:"college"`
	Department    string `json:"department"`
	Semester      string `json:"semester"`
	MobileNumber  string `json:"mobileNumber" binding:"required"`
	ScreenshotURL string `json:"screenshotUrl"`
}

// UpdateStatusRequest is the admin verification payload.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
