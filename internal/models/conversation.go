package models

import "time"

// Conversation is the single message channel between an unordered pair of
// users. UserAID is always the lower of the two IDs, so the unique index on
// (user_a_id, user_b_id) enforces one conversation per pair with a plain
// equality lookup.
type Conversation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserAID   uint      `gorm:"not null;uniqueIndex:idx_conversations_pair" json:"user_a_id"`
	UserBID   uint      `gorm:"not null;uniqueIndex:idx_conversations_pair" json:"user_b_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserA User `gorm:"foreignKey:UserAID" json:"user_a,omitempty"`
	UserB User `gorm:"foreignKey:UserBID" json:"user_b,omitempty"`
}

// TableName specifies the table name for GORM
func (Conversation) TableName() string {
	return "conversations"
}

// CanonicalPair orders two user IDs into the fixed (low, high) arrangement
// used for conversation storage and lookup.
func CanonicalPair(x, y uint) (uint, uint) {
	if x < y {
		return x, y
	}
	return y, x
}

// HasParticipant reports whether the user is one of the two participants.
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.UserAID == userID || c.UserBID == userID
}

// OtherParticipant returns the participant that is not the given user.
// Callers must check membership first.
func (c *Conversation) OtherParticipant(userID uint) uint {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}

// ReadState tracks the last time a user opened a conversation. One row per
// (user, conversation); upserted on every open.
type ReadState struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_read_states_pair" json:"user_id"`
	ConversationID uint      `gorm:"not null;uniqueIndex:idx_read_states_pair" json:"conversation_id"`
	LastReadAt     time.Time `json:"last_read_at"`
}

// TableName specifies the table name for GORM
func (ReadState) TableName() string {
	return "read_states"
}
