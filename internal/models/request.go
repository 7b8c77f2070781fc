package models

import "time"

// RequestStatus represents the lifecycle status of a connection request.
type RequestStatus string

const (
	// RequestStatusPending indicates a request awaiting the receiver's response.
	RequestStatusPending RequestStatus = "pending"
	// RequestStatusAccepted indicates an accepted request.
	RequestStatusAccepted RequestStatus = "accepted"
	// RequestStatusDeclined indicates a declined request. A declined request
	// may be reopened by the original sender re-sending it.
	RequestStatusDeclined RequestStatus = "declined"
)

// RequestAction is the receiver's response to a pending request.
type RequestAction string

const (
	RequestActionAccept  RequestAction = "accept"
	RequestActionDecline RequestAction = "decline"
	RequestActionBlock   RequestAction = "block"
)

// ParseRequestAction validates an action string from the API.
func ParseRequestAction(s string) (RequestAction, bool) {
	switch RequestAction(s) {
	case RequestActionAccept, RequestActionDecline, RequestActionBlock:
		return RequestAction(s), true
	}
	return "", false
}

// ConnectionRequest is a directed message request from sender to receiver.
// At most one row exists per ordered (sender, receiver) pair; re-sending
// after a decline reuses the row instead of inserting a new one.
type ConnectionRequest struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	SenderID    uint          `gorm:"not null;uniqueIndex:idx_connection_requests_pair" json:"sender_id"`
	ReceiverID  uint          `gorm:"not null;uniqueIndex:idx_connection_requests_pair" json:"receiver_id"`
	Status      RequestStatus `gorm:"type:varchar(20);default:'pending';index:idx_connection_requests_status" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	RespondedAt *time.Time    `json:"responded_at,omitempty"`

	Sender   User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// TableName specifies the table name for GORM
func (ConnectionRequest) TableName() string {
	return "connection_requests"
}
