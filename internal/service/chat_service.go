package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymmate/fitness-server/internal/aiclient"
	"gymmate/fitness-server/internal/domain"
	"gymmate/fitness-server/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrAssistantUnavailable = errors.New("assistant is unavailable")

// historyWindow bounds how much conversation history is replayed to the
// assistant on each message.
const historyWindow = 20

// ChatCaller is the remote side of the AI assistant; *aiclient.Client
// satisfies it.
type ChatCaller interface {
	Chat(ctx context.Context, req aiclient.ChatRequest) (*aiclient.ChatResponse, error)
}

// ChatReply is what the assistant answered, plus the program it created
// during the exchange, if any.
type ChatReply struct {
	Response       string                 `json:"response"`
	ProgramCreated bool                   `json:"programCreated"`
	Program        *domain.WorkoutProgram `json:"program,omitempty"`
}

type ChatService interface {
	Send(ctx context.Context, userID primitive.ObjectID, message string) (*ChatReply, error)
}

type chatService struct {
	userRepo    repository.UserRepository
	programRepo repository.ProgramRepository
	convRepo    repository.ConversationRepository
	caller      ChatCaller
}

// NewChatService creates the AI assistant relay.
func NewChatService(
	userRepo repository.UserRepository,
	programRepo repository.ProgramRepository,
	convRepo repository.ConversationRepository,
	caller ChatCaller,
) ChatService {
	return &chatService{
		userRepo:    userRepo,
		programRepo: programRepo,
		convRepo:    convRepo,
		caller:      caller,
	}
}

// Send relays one message to the assistant and persists both sides of the
// exchange to the user's AI conversation. Unlike program generation there is
// no local fallback: a failed call surfaces to the caller and nothing is
// written.
func (s *chatService) Send(ctx context.Context, userID primitive.ObjectID, message string) (*ChatReply, error) {
	if s.caller == nil {
		return nil, ErrAssistantUnavailable
	}
	if message == "" {
		return nil, errors.New("message cannot be empty")
	}

	conv, err := s.aiConversation(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.convRepo.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, m.Text)
	}

	resp, err := s.caller.Chat(ctx, aiclient.ChatRequest{
		Message:             message,
		ConversationHistory: lines,
		UserID:              userID.Hex(),
		Timestamp:           time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.WithError(err).Warn("assistant call failed")
		return nil, ErrAssistantUnavailable
	}

	if _, err := s.convRepo.AppendMessage(ctx, &domain.Message{
		ConversationID: conv.ID,
		SenderID:       &userID,
		Text:           message,
	}); err != nil {
		return nil, err
	}
	if _, err := s.convRepo.AppendMessage(ctx, &domain.Message{
		ConversationID: conv.ID,
		SenderID:       nil, // Assistant
		Text:           resp.Response,
	}); err != nil {
		return nil, err
	}

	reply := &ChatReply{Response: resp.Response}
	if resp.ProgramCreated && len(resp.Program) > 0 {
		prog, err := s.saveAssistantProgram(ctx, userID, resp)
		if err != nil {
			// The chat already succeeded; report that and log the
			// program persistence problem instead of failing the send.
			log.WithError(err).Warn("could not persist assistant-created program")
		} else {
			reply.ProgramCreated = true
			reply.Program = prog
		}
	}
	return reply, nil
}

// saveAssistantProgram runs an assistant-created program through the same
// sanitize step as every other generation path and merges it into the user's
// current program.
func (s *chatService) saveAssistantProgram(ctx context.Context, userID primitive.ObjectID, resp *aiclient.ChatResponse) (*domain.WorkoutProgram, error) {
	days := sanitizeDays(convertResponseDays(resp.Program))
	if len(days) == 0 {
		return nil, ErrEmptyProgram
	}

	info := domain.ProgramUserInfo{
		Gender:     stringField(resp.UserInfo, "gender"),
		Experience: stringField(resp.UserInfo, "experience"),
		Goal:       stringField(resp.UserInfo, "goal"),
	}
	if days, ok := resp.UserInfo["workout_days"].(float64); ok {
		info.WorkoutDays = int(days)
	}
	if info.Goal == "" {
		info.Goal = "General Fitness"
	}

	prog := &domain.WorkoutProgram{
		UserID:      userID,
		Name:        fmt.Sprintf("%s Program", info.Goal),
		CreatedDate: domain.NewFlexTime(time.Now().UTC()),
		Program:     days,
		UserInfo:    info,
	}

	programID, err := s.programRepo.Create(ctx, prog)
	if err != nil {
		return nil, err
	}
	prog.ID = programID

	if err := s.userRepo.SetCurrentProgram(ctx, userID, programID); err != nil {
		return nil, err
	}
	return prog, nil
}

// aiConversation finds or creates the user's single AI assistant thread.
func (s *chatService) aiConversation(ctx context.Context, userID primitive.ObjectID) (*domain.Conversation, error) {
	conv, err := s.convRepo.FindForParticipants(ctx, domain.ConversationAI, []primitive.ObjectID{userID})
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	conv = &domain.Conversation{
		Kind:         domain.ConversationAI,
		Participants: []primitive.ObjectID{userID},
	}
	id, err := s.convRepo.Create(ctx, conv)
	if err != nil {
		return nil, err
	}
	conv.ID = id
	return conv, nil
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
