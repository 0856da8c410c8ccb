package models

import (
	"time"
)

// MessageStatus represents the status of a message
type MessageStatus string

const (
	MessageStatusSent MessageStatus = "sent"
	MessageStatusRead MessageStatus = "read"
)

// Message represents a chat message between a patient and a doctor
type Message struct {
	BaseModel
	SenderID   string        `gorm:"size:36;index" json:"senderId"`
	ReceiverID string        `gorm:"size:36;index" json:"receiverId"`
	Content    string        `gorm:"type:text" json:"content"`
	Status     MessageStatus `gorm:"size:20;default:'sent'" json:"status"`
	ReadAt     *time.Time    `json:"readAt,omitempty"`

	// Relations
	Sender   User `gorm:"foreignKey:SenderID" json:"sender"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"receiver"`
}
