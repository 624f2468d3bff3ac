package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/realtime"
	"github.com/Dosada05/hackathon-system/repositories"
)

var ErrScoreCriteriaRequired = errors.New("score criteria are required")

type CreateScoreInput struct {
	EventID      int                     `json:"event_id"`
	TeamID       int                     `json:"team_id"`
	SubmissionID string                  `json:"submission_id"`
	Criteria     []models.ScoreCriterion `json:"criteria"`
	Notes        *string                 `json:"notes"`
}

type ListScoresInput struct {
	EventID *int
	TeamID  *int
}

type ScoreService interface {
	// Create создаёт оценку. Судья должен быть назначен на событие;
	// гейт по окну судейства; итог считается на сервере как сумма
	// баллов критериев.
	Create(ctx context.Context, actor models.Principal, input CreateScoreInput) (*models.Score, error)
	List(ctx context.Context, input ListScoresInput) ([]*models.Score, error)
	// Leaderboard возвращает агрегированные итоги команд события.
	Leaderboard(ctx context.Context, eventID int) ([]models.TeamTotal, error)
}

type scoreService struct {
	scoreRepo      repositories.ScoreRepository
	assignmentRepo repositories.AssignmentRepository
	eventRepo      repositories.EventRepository
	publisher      realtime.Publisher
	now            func() time.Time
}

func NewScoreService(
	scoreRepo repositories.ScoreRepository,
	assignmentRepo repositories.AssignmentRepository,
	eventRepo repositories.EventRepository,
	publisher realtime.Publisher,
) ScoreService {
	return &scoreService{
		scoreRepo:      scoreRepo,
		assignmentRepo: assignmentRepo,
		eventRepo:      eventRepo,
		publisher:      publisher,
		now:            time.Now,
	}
}

// TotalOf — единственный источник итоговой оценки: сумма баллов критериев.
func TotalOf(criteria []models.ScoreCriterion) float64 {
	var total float64
	for _, c := range criteria {
		total += c.Score
	}
	return total
}

func (s *scoreService) Create(ctx context.Context, actor models.Principal, input CreateScoreInput) (*models.Score, error) {
	if actor.Role != models.RoleJudge {
		return nil, ErrForbiddenOperation
	}
	if len(input.Criteria) == 0 {
		return nil, ErrScoreCriteriaRequired
	}

	event, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to check event: %w", err)
	}

	// Оценивать можно только назначенные события.
	assigned, err := s.assignmentRepo.Exists(ctx, input.EventID, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check judge assignment: %w", err)
	}
	if !assigned {
		return nil, ErrJudgeNotAssigned
	}

	if !event.JudgingOpen(s.now()) {
		return nil, ErrJudgingWindowClosed
	}

	score := &models.Score{
		EventID:      input.EventID,
		TeamID:       input.TeamID,
		SubmissionID: input.SubmissionID,
		JudgeID:      actor.UserID,
		Criteria:     input.Criteria,
		Total:        TotalOf(input.Criteria),
		Notes:        input.Notes,
	}
	if err := s.scoreRepo.Create(ctx, score); err != nil {
		return nil, fmt.Errorf("failed to create score: %w", err)
	}

	s.publisher.Publish(realtime.EventChannel(input.EventID), "score:update", map[string]interface{}{
		"team_id": input.TeamID,
	})

	return score, nil
}

func (s *scoreService) List(ctx context.Context, input ListScoresInput) ([]*models.Score, error) {
	return s.scoreRepo.List(ctx, repositories.ScoreFilter{
		EventID: input.EventID,
		TeamID:  input.TeamID,
	})
}

func (s *scoreService) Leaderboard(ctx context.Context, eventID int) ([]models.TeamTotal, error) {
	return s.scoreRepo.TotalsByEvent(ctx, eventID)
}
