package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/realtime"
	"github.com/Dosada05/hackathon-system/repositories"
)

var (
	ErrQuestionTextRequired   = errors.New("question text is required")
	ErrQuestionAnswerRequired = errors.New("question id and answer are required")
)

type AskQuestionInput struct {
	EventID  int    `json:"event_id"`
	Question string `json:"question"`
}

type AnswerQuestionInput struct {
	ID     string `json:"id"`
	Answer string `json:"answer"`
}

type QuestionService interface {
	// Ask задаёт вопрос от любого аутентифицированного пользователя;
	// публикуется question:new в канал события.
	Ask(ctx context.Context, actor models.Principal, input AskQuestionInput) (*models.Question, error)
	// Answer отвечает на вопрос. Только организатор; публикуется
	// question:answered.
	Answer(ctx context.Context, actor models.Principal, input AnswerQuestionInput) (*models.Question, error)
	List(ctx context.Context, eventID *int) ([]*models.Question, error)
}

type questionService struct {
	questionRepo repositories.QuestionRepository
	publisher    realtime.Publisher
}

func NewQuestionService(questionRepo repositories.QuestionRepository, publisher realtime.Publisher) QuestionService {
	return &questionService{
		questionRepo: questionRepo,
		publisher:    publisher,
	}
}

func (s *questionService) Ask(ctx context.Context, actor models.Principal, input AskQuestionInput) (*models.Question, error) {
	if input.Question == "" {
		return nil, ErrQuestionTextRequired
	}

	askedByName := actor.Name
	if askedByName == "" {
		askedByName = "Anonymous"
	}

	q := &models.Question{
		EventID:     input.EventID,
		Question:    input.Question,
		AskedBy:     actor.UserID,
		AskedByName: askedByName,
	}
	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	s.publisher.Publish(realtime.EventChannel(input.EventID), "question:new", q)

	return q, nil
}

func (s *questionService) Answer(ctx context.Context, actor models.Principal, input AnswerQuestionInput) (*models.Question, error) {
	if actor.Role != models.RoleOrganizer {
		return nil, ErrForbiddenOperation
	}
	if input.ID == "" || input.Answer == "" {
		return nil, ErrQuestionAnswerRequired
	}

	answeredByName := actor.Name
	if answeredByName == "" {
		answeredByName = "Organizer"
	}

	q, err := s.questionRepo.Answer(ctx, input.ID, input.Answer, actor.UserID, answeredByName)
	if err != nil {
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to answer question: %w", err)
	}

	s.publisher.Publish(realtime.EventChannel(q.EventID), "question:answered", q)

	return q, nil
}

func (s *questionService) List(ctx context.Context, eventID *int) ([]*models.Question, error) {
	return s.questionRepo.ListByEvent(ctx, eventID)
}
