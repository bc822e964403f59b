package auditlog

import "time"

// Entry is one audit record in the "auditLogs" collection. ActorUID is
// empty for unauthenticated failures.
type Entry struct {
	ID        string    `firestore:"-" json:"id"`
	ActorUID  string    `firestore:"actorUid,omitempty" json:"actorUid,omitempty"`
	Action    string    `firestore:"action" json:"action"`
	Target    string    `firestore:"target,omitempty" json:"target,omitempty"`
	Details   string    `firestore:"details" json:"details"` // freeform JSON
	IPAddress string    `firestore:"ipAddress" json:"ipAddress"`
	Status    string    `firestore:"status" json:"status"` // success/failure
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// Filter narrows List queries.
type Filter struct {
	Action string
	Status string
	Limit  int
}
