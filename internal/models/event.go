package models

// Account event types published to Kafka.
const (
	EventUserRegistered     = "user.registered"
	EventUserProfileUpdated = "user.profile_updated"
	EventNoteDeleted        = "note.deleted"
)

// AccountEvent is a notification about a change to an account or its data.
type AccountEvent struct {
	EventID   string `json:"event_id"`            // EventID is a unique identifier for the event.
	Type      string `json:"type"`                // Type is one of the Event* constants.
	UserID    string `json:"user_id"`             // UserID is the account the event concerns.
	SubjectID string `json:"subject_id,omitempty"` // SubjectID identifies the affected entity when it is not the account itself.
	Timestamp int64  `json:"timestamp"`           // Timestamp is the Unix time (in seconds) of the change.
}
