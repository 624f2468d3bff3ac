package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/repositories"
)

type fakeChatRepo struct {
	messages []*models.ChatMessage
}

func (r *fakeChatRepo) Create(_ context.Context, msg *models.ChatMessage) error {
	msg.CreatedAt = time.Now()
	r.messages = append(r.messages, msg)
	return nil
}

func (r *fakeChatRepo) List(_ context.Context, filter repositories.ChatFilter) ([]*models.ChatMessage, error) {
	var result []*models.ChatMessage
	for _, m := range r.messages {
		if filter.EventID != nil && m.EventID != *filter.EventID {
			continue
		}
		if filter.TeamID != nil && (m.TeamID == nil || *m.TeamID != *filter.TeamID) {
			continue
		}
		result = append(result, m)
	}
	return result, nil
}

func TestChatPost(t *testing.T) {
	author := models.Principal{UserID: 5, Name: "Alice", Role: models.RoleParticipant}

	t.Run("event message publishes to event channel only", func(t *testing.T) {
		publisher := &fakePublisher{}
		svc := NewChatService(&fakeChatRepo{}, publisher)

		_, err := svc.Post(context.Background(), author, PostChatMessageInput{
			EventID: 1,
			Content: "hello everyone",
		})

		require.NoError(t, err)
		require.Len(t, publisher.published, 1)
		assert.Equal(t, "event-1", publisher.published[0].Channel)
		assert.Equal(t, "chat:new", publisher.published[0].EventType)
	})

	t.Run("team message publishes to both channels", func(t *testing.T) {
		publisher := &fakePublisher{}
		svc := NewChatService(&fakeChatRepo{}, publisher)

		teamID := 7
		_, err := svc.Post(context.Background(), author, PostChatMessageInput{
			EventID: 1,
			TeamID:  &teamID,
			Content: "team only",
		})

		require.NoError(t, err)
		require.Len(t, publisher.published, 2)
		assert.Equal(t, "event-1", publisher.published[0].Channel)
		assert.Equal(t, "team-7", publisher.published[1].Channel)
		assert.Equal(t, "chat:new", publisher.published[1].EventType)
	})

	t.Run("empty content rejected", func(t *testing.T) {
		publisher := &fakePublisher{}
		svc := NewChatService(&fakeChatRepo{}, publisher)

		_, err := svc.Post(context.Background(), author, PostChatMessageInput{EventID: 1})

		assert.ErrorIs(t, err, ErrChatContentRequired)
		assert.Empty(t, publisher.published)
	})
}
