package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/repositories"
)

type fakeQuestionRepo struct {
	questions map[string]*models.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[string]*models.Question)}
}

func (r *fakeQuestionRepo) Create(_ context.Context, q *models.Question) error {
	q.ID = primitive.NewObjectID()
	q.Status = models.QuestionOpen
	q.CreatedAt = time.Now()
	r.questions[q.ID.Hex()] = q
	return nil
}

func (r *fakeQuestionRepo) ListByEvent(_ context.Context, eventID *int) ([]*models.Question, error) {
	var result []*models.Question
	for _, q := range r.questions {
		if eventID != nil && q.EventID != *eventID {
			continue
		}
		result = append(result, q)
	}
	return result, nil
}

func (r *fakeQuestionRepo) Answer(_ context.Context, id string, answer string, answeredBy int, answeredByName string) (*models.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, repositories.ErrQuestionNotFound
	}
	q.Answer = &answer
	q.AnsweredBy = &answeredBy
	q.AnsweredByName = &answeredByName
	q.Status = models.QuestionAnswered
	return q, nil
}

func TestQuestionAskAndAnswer(t *testing.T) {
	participant := models.Principal{UserID: 5, Name: "Alice", Role: models.RoleParticipant}
	organizer := models.Principal{UserID: 10, Name: "Olga", Role: models.RoleOrganizer}

	t.Run("ask publishes question:new", func(t *testing.T) {
		publisher := &fakePublisher{}
		svc := NewQuestionService(newFakeQuestionRepo(), publisher)

		q, err := svc.Ask(context.Background(), participant, AskQuestionInput{EventID: 1, Question: "When is lunch?"})

		require.NoError(t, err)
		assert.Equal(t, models.QuestionOpen, q.Status)
		assert.Equal(t, "Alice", q.AskedByName)

		require.Len(t, publisher.published, 1)
		assert.Equal(t, "event-1", publisher.published[0].Channel)
		assert.Equal(t, "question:new", publisher.published[0].EventType)
	})

	t.Run("organizer answers and question:answered is published", func(t *testing.T) {
		repo := newFakeQuestionRepo()
		publisher := &fakePublisher{}
		svc := NewQuestionService(repo, publisher)

		q, err := svc.Ask(context.Background(), participant, AskQuestionInput{EventID: 1, Question: "When is lunch?"})
		require.NoError(t, err)

		answered, err := svc.Answer(context.Background(), organizer, AnswerQuestionInput{ID: q.ID.Hex(), Answer: "At noon"})

		require.NoError(t, err)
		assert.Equal(t, models.QuestionAnswered, answered.Status)
		require.NotNil(t, answered.Answer)
		assert.Equal(t, "At noon", *answered.Answer)

		require.Len(t, publisher.published, 2)
		assert.Equal(t, "question:answered", publisher.published[1].EventType)
		assert.Equal(t, "event-1", publisher.published[1].Channel)
	})

	t.Run("participant cannot answer", func(t *testing.T) {
		svc := NewQuestionService(newFakeQuestionRepo(), &fakePublisher{})

		_, err := svc.Answer(context.Background(), participant, AnswerQuestionInput{ID: primitive.NewObjectID().Hex(), Answer: "nope"})

		assert.ErrorIs(t, err, ErrForbiddenOperation)
	})

	t.Run("missing question yields not found", func(t *testing.T) {
		svc := NewQuestionService(newFakeQuestionRepo(), &fakePublisher{})

		_, err := svc.Answer(context.Background(), organizer, AnswerQuestionInput{ID: primitive.NewObjectID().Hex(), Answer: "???"})

		assert.ErrorIs(t, err, ErrQuestionNotFound)
	})
}
