package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/realtime"
	"github.com/Dosada05/hackathon-system/repositories"
)

var ErrChatContentRequired = errors.New("chat message content is required")

type PostChatMessageInput struct {
	EventID     int      `json:"event_id"`
	TeamID      *int     `json:"team_id"`
	Content     string   `json:"content"`
	Attachments []string `json:"attachments"`
}

type ListChatInput struct {
	EventID *int
	TeamID  *int
}

type ChatService interface {
	// Post сохраняет сообщение и рассылает chat:new в канал события и,
	// для командного сообщения, в канал команды.
	Post(ctx context.Context, actor models.Principal, input PostChatMessageInput) (*models.ChatMessage, error)
	List(ctx context.Context, input ListChatInput) ([]*models.ChatMessage, error)
}

type chatService struct {
	chatRepo  repositories.ChatRepository
	publisher realtime.Publisher
}

func NewChatService(chatRepo repositories.ChatRepository, publisher realtime.Publisher) ChatService {
	return &chatService{
		chatRepo:  chatRepo,
		publisher: publisher,
	}
}

func (s *chatService) Post(ctx context.Context, actor models.Principal, input PostChatMessageInput) (*models.ChatMessage, error) {
	if input.Content == "" {
		return nil, ErrChatContentRequired
	}

	msg := &models.ChatMessage{
		EventID:     input.EventID,
		TeamID:      input.TeamID,
		UserID:      actor.UserID,
		Content:     input.Content,
		Attachments: input.Attachments,
	}
	if err := s.chatRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to create chat message: %w", err)
	}

	payload := map[string]interface{}{
		"id":         msg.ID.Hex(),
		"content":    msg.Content,
		"team_id":    msg.TeamID,
		"user_id":    msg.UserID,
		"created_at": msg.CreatedAt,
	}
	s.publisher.Publish(realtime.EventChannel(input.EventID), "chat:new", payload)
	if input.TeamID != nil {
		s.publisher.Publish(realtime.TeamChannel(*input.TeamID), "chat:new", payload)
	}

	return msg, nil
}

func (s *chatService) List(ctx context.Context, input ListChatInput) ([]*models.ChatMessage, error) {
	return s.chatRepo.List(ctx, repositories.ChatFilter{
		EventID: input.EventID,
		TeamID:  input.TeamID,
	})
}
