package service

import (
	"context"
	"errors"

	"gymmate/fitness-server/internal/domain"
	"gymmate/fitness-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotAParticipant      = errors.New("not a participant of this conversation")
)

type MessagingService interface {
	Conversations(ctx context.Context, userID primitive.ObjectID) ([]domain.Conversation, error)
	// OpenConversation returns the direct conversation between the two
	// users, creating it on first contact.
	OpenConversation(ctx context.Context, userID, otherID primitive.ObjectID) (*domain.Conversation, error)
	Messages(ctx context.Context, userID, conversationID primitive.ObjectID) ([]domain.Message, error)
	SendMessage(ctx context.Context, userID, conversationID primitive.ObjectID, text string) (*domain.Message, error)
}

type messagingService struct {
	userRepo repository.UserRepository
	convRepo repository.ConversationRepository
}

// NewMessagingService creates the person-to-person chat service.
func NewMessagingService(userRepo repository.UserRepository, convRepo repository.ConversationRepository) MessagingService {
	return &messagingService{
		userRepo: userRepo,
		convRepo: convRepo,
	}
}

func (s *messagingService) Conversations(ctx context.Context, userID primitive.ObjectID) ([]domain.Conversation, error) {
	return s.convRepo.ListByParticipant(ctx, userID)
}

func (s *messagingService) OpenConversation(ctx context.Context, userID, otherID primitive.ObjectID) (*domain.Conversation, error) {
	if userID == otherID {
		return nil, errors.New("cannot open a conversation with yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, otherID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	participants := []primitive.ObjectID{userID, otherID}
	conv, err := s.convRepo.FindForParticipants(ctx, domain.ConversationDirect, participants)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	conv = &domain.Conversation{
		Kind:         domain.ConversationDirect,
		Participants: participants,
	}
	id, err := s.convRepo.Create(ctx, conv)
	if err != nil {
		return nil, err
	}
	conv.ID = id
	return conv, nil
}

func (s *messagingService) Messages(ctx context.Context, userID, conversationID primitive.ObjectID) ([]domain.Message, error) {
	if err := s.authorize(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	return s.convRepo.ListMessages(ctx, conversationID)
}

func (s *messagingService) SendMessage(ctx context.Context, userID, conversationID primitive.ObjectID, text string) (*domain.Message, error) {
	if text == "" {
		return nil, errors.New("message text cannot be empty")
	}
	if err := s.authorize(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ConversationID: conversationID,
		SenderID:       &userID,
		Text:           text,
	}
	id, err := s.convRepo.AppendMessage(ctx, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = id
	return msg, nil
}

func (s *messagingService) authorize(ctx context.Context, userID, conversationID primitive.ObjectID) error {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrConversationNotFound
		}
		return err
	}
	for _, p := range conv.Participants {
		if p == userID {
			return nil
		}
	}
	return ErrNotAParticipant
}
