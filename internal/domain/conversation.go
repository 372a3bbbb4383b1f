package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConversationKind distinguishes person-to-person chats from the member's
// AI assistant thread.
type ConversationKind string

const (
	ConversationDirect ConversationKind = "direct"
	ConversationAI     ConversationKind = "ai"
)

// Conversation groups messages between two participants (or between a member
// and the AI assistant, where the assistant has no participant id).
type Conversation struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Kind         ConversationKind     `bson:"kind" json:"kind"`
	Participants []primitive.ObjectID `bson:"participants" json:"participants"`
	LastMessage  string               `bson:"lastMessage,omitempty" json:"lastMessage,omitempty"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
}

// Message is a single chat message. SenderID is nil for AI assistant replies.
type Message struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ConversationID primitive.ObjectID  `bson:"conversationId" json:"conversationId"`
	SenderID       *primitive.ObjectID `bson:"senderId" json:"senderId"`
	Text           string              `bson:"text" json:"text"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
}
