package models

// RelationshipStatus is the caller-relative summary of how the viewer stands
// with respect to the target user. It drives which actions the UI may offer.
type RelationshipStatus string

const (
	RelationshipNone            RelationshipStatus = "none"
	RelationshipPendingSent     RelationshipStatus = "pending_sent"
	RelationshipPendingReceived RelationshipStatus = "pending_received"
	RelationshipAccepted        RelationshipStatus = "accepted"
	// RelationshipBlockedThem means the viewer has blocked the target.
	RelationshipBlockedThem RelationshipStatus = "blocked_them"
	// RelationshipBlockedByThem means the target has blocked the viewer.
	RelationshipBlockedByThem RelationshipStatus = "blocked_by_them"
	RelationshipSelf          RelationshipStatus = "self"
)

// Relationship is the resolved status plus the identifiers the client needs
// to act on it: the pending request for pending states, the conversation for
// the accepted state.
type Relationship struct {
	Status         RelationshipStatus `json:"status"`
	RequestID      uint               `json:"request_id,omitempty"`
	ConversationID uint               `json:"conversation_id,omitempty"`
}
