package service

import (
	"context"
	"testing"

	"gymmate/fitness-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newMessagingFixture() (MessagingService, *domain.User, *domain.User) {
	member := &domain.User{Email: "member@example.com", Role: domain.RoleUser}
	coach := &domain.User{Email: "coach@example.com", Role: domain.RoleCoach}
	userRepo := newFakeUserRepo(member, coach)
	svc := NewMessagingService(userRepo, newFakeConversationRepo())
	return svc, member, coach
}

func TestOpenConversation_FindOrCreate(t *testing.T) {
	svc, member, coach := newMessagingFixture()
	ctx := context.Background()

	conv, err := svc.OpenConversation(ctx, member.ID, coach.ID)
	require.NoError(t, err)
	assert.False(t, conv.ID.IsZero())
	assert.Equal(t, domain.ConversationDirect, conv.Kind)

	// Opening from either side returns the same conversation.
	again, err := svc.OpenConversation(ctx, coach.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, again.ID)
}

func TestOpenConversation_Validation(t *testing.T) {
	svc, member, _ := newMessagingFixture()
	ctx := context.Background()

	_, err := svc.OpenConversation(ctx, member.ID, member.ID)
	assert.Error(t, err)

	_, err = svc.OpenConversation(ctx, member.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSendAndListMessages(t *testing.T) {
	svc, member, coach := newMessagingFixture()
	ctx := context.Background()

	conv, err := svc.OpenConversation(ctx, member.ID, coach.ID)
	require.NoError(t, err)

	sent, err := svc.SendMessage(ctx, member.ID, conv.ID, "hi coach")
	require.NoError(t, err)
	assert.False(t, sent.ID.IsZero())

	_, err = svc.SendMessage(ctx, coach.ID, conv.ID, "hello!")
	require.NoError(t, err)

	messages, err := svc.Messages(ctx, member.ID, conv.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "hi coach", messages[0].Text)
	require.NotNil(t, messages[1].SenderID)
	assert.Equal(t, coach.ID, *messages[1].SenderID)

	conversations, err := svc.Conversations(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, "hello!", conversations[0].LastMessage)
}

func TestMessages_AuthorizationAndErrors(t *testing.T) {
	svc, member, coach := newMessagingFixture()
	ctx := context.Background()

	conv, err := svc.OpenConversation(ctx, member.ID, coach.ID)
	require.NoError(t, err)

	outsider := primitive.NewObjectID()
	_, err = svc.Messages(ctx, outsider, conv.ID)
	assert.ErrorIs(t, err, ErrNotAParticipant)
	_, err = svc.SendMessage(ctx, outsider, conv.ID, "let me in")
	assert.ErrorIs(t, err, ErrNotAParticipant)

	_, err = svc.Messages(ctx, member.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrConversationNotFound)

	_, err = svc.SendMessage(ctx, member.ID, conv.ID, "")
	assert.Error(t, err)
}
