package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type MessageType string

const (
	MessageUser   MessageType = "user"
	MessagePet    MessageType = "pet"
	MessageSystem MessageType = "system"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageUser, MessagePet, MessageSystem:
		return true
	}
	return false
}

// Message is one turn of the chat between an owner and a pet.
type Message struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ConversationID string         `gorm:"size:100;not null;index" json:"conversation_id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	PetID          uint           `gorm:"not null;index" json:"pet_id"`
	MessageType    MessageType    `gorm:"size:20;not null" json:"message_type"`
	Content        string         `gorm:"type:text;not null" json:"content"`
	ExtraData      datatypes.JSON `json:"extra_data"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
}

func ConversationID(userID, petID uint) string {
	return fmt.Sprintf("%d-%d", userID, petID)
}
