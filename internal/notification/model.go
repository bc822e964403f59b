package notification

import (
	"context"
	"fmt"
)

// Message is one outbound notification. Delivery is best-effort; the
// triggering operation never waits on it.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"` // HTML
}

// Dispatcher enqueues a notification without blocking the caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message)
}

// Channel delivers a rendered message.
type Channel interface {
	Send(to []string, subject, body string) error
}

// RegistrationVerified is sent when an admin verifies a registration.
func RegistrationVerified(to, eventName string) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Registration confirmed: %s", eventName),
		Body: fmt.Sprintf(
			"<p>Your registration for <strong>%s</strong> has been verified.</p><p>See you at the event!</p>",
			eventName),
	}
}

// RegistrationRejected is sent when an admin rejects a registration.
func RegistrationRejected(to, eventName string) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Registration update: %s", eventName),
		Body: fmt.Sprintf(
			"<p>Your registration for <strong>%s</strong> could not be verified.</p><p>If you believe this is a mistake, please contact the organisers with your payment screenshot.</p>",
			eventName),
	}
}

// MembershipApproved is sent when an admin approves a membership
// application.
func MembershipApproved(to, fullName string) Message {
	return Message{
		To:      to,
		Subject: "Your membership has been approved",
		Body: fmt.Sprintf(
			"<p>Hello %s, your membership application has been approved. You can now log in to the member portal.</p>",
			fullName),
	}
}
