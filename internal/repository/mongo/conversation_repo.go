package mongo

import (
	"context"
	"errors"
	"time"

	"gymmate/fitness-server/internal/domain"
	"gymmate/fitness-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	conversationCollectionName = "conversations"
	messageCollectionName      = "messages"
)

type mongoConversationRepository struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

// NewMongoConversationRepository creates a repository over conversations and
// their messages.
func NewMongoConversationRepository(db *mongo.Database) repository.ConversationRepository {
	return &mongoConversationRepository{
		conversations: db.Collection(conversationCollectionName),
		messages:      db.Collection(messageCollectionName),
	}
}

// Create inserts a new conversation.
func (r *mongoConversationRepository) Create(ctx context.Context, conv *domain.Conversation) (primitive.ObjectID, error) {
	if len(conv.Participants) == 0 {
		return primitive.NilObjectID, errors.New("conversation requires at least one participant")
	}

	conv.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	conv.CreatedAt = now
	conv.UpdatedAt = now

	if _, err := r.conversations.InsertOne(ctx, conv); err != nil {
		return primitive.NilObjectID, err
	}
	return conv.ID, nil
}

// GetByID retrieves a conversation.
func (r *mongoConversationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.conversations.FindOne(ctx, bson.M{"_id": id}).Decode(&conv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// FindForParticipants returns the conversation of the given kind whose
// participant set matches exactly, or ErrNotFound.
func (r *mongoConversationRepository) FindForParticipants(ctx context.Context, kind domain.ConversationKind, participants []primitive.ObjectID) (*domain.Conversation, error) {
	filter := bson.M{
		"kind":         kind,
		"participants": bson.M{"$all": participants, "$size": len(participants)},
	}

	var conv domain.Conversation
	err := r.conversations.FindOne(ctx, filter).Decode(&conv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// ListByParticipant returns every conversation the user takes part in,
// most recently active first.
func (r *mongoConversationRepository) ListByParticipant(ctx context.Context, userID primitive.ObjectID) ([]domain.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.conversations.Find(ctx, bson.M{"participants": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var convs []domain.Conversation
	if err = cursor.All(ctx, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

// AppendMessage inserts a message and bumps the conversation's last-message
// preview and activity timestamp.
func (r *mongoConversationRepository) AppendMessage(ctx context.Context, msg *domain.Message) (primitive.ObjectID, error) {
	if msg.ConversationID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("message conversation ID is required")
	}

	msg.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	msg.CreatedAt = now

	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		return primitive.NilObjectID, err
	}

	update := bson.M{"$set": bson.M{"lastMessage": msg.Text, "updatedAt": now}}
	if _, err := r.conversations.UpdateOne(ctx, bson.M{"_id": msg.ConversationID}, update); err != nil {
		return primitive.NilObjectID, err
	}
	return msg.ID, nil
}

// ListMessages returns a conversation's messages in chronological order.
func (r *mongoConversationRepository) ListMessages(ctx context.Context, conversationID primitive.ObjectID) ([]domain.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.messages.Find(ctx, bson.M{"conversationId": conversationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var msgs []domain.Message
	if err = cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// EnsureConversationIndexes creates indexes for conversations and messages.
func EnsureConversationIndexes(ctx context.Context, conversations, messages *mongo.Collection) error {
	_, err := conversations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "participants", Value: 1}, {Key: "updatedAt", Value: -1}},
	})
	if err != nil {
		return err
	}
	_, err = messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "conversationId", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	return err
}
