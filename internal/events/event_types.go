package events

import (
	"time"

	"github.com/spec-kit/adoption-client/internal/domain"
)

// EventType enumerates session lifecycle events.
type EventType string

const (
	EventSignedIn            EventType = "signed_in"
	EventSignedOut           EventType = "signed_out"
	EventCredentialRefreshed EventType = "credential_refreshed"
	// EventSessionExpired fires when the credential could not be refreshed;
	// front ends react by sending the user to the login entry point.
	EventSessionExpired EventType = "session_expired"
)

// Event represents a session change.
type Event struct {
	Type      EventType    `json:"type"`
	User      *domain.User `json:"user,omitempty"`
	Reason    string       `json:"reason,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// New stamps an event with the current time.
func New(eventType EventType, user *domain.User, reason string) Event {
	return Event{Type: eventType, User: user, Reason: reason, Timestamp: time.Now().UTC()}
}
