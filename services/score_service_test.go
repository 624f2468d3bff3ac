package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/hackathon-system/models"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestTotalOf(t *testing.T) {
	criteria := []models.ScoreCriterion{
		{Name: "Innovation", Score: 10, Max: 10},
		{Name: "Execution", Score: 7, Max: 10},
		{Name: "Design", Score: 5, Max: 10},
		{Name: "Pitch", Score: 3, Max: 10},
	}

	assert.Equal(t, 25.0, TotalOf(criteria))
	assert.Equal(t, 0.0, TotalOf(nil))
}

func newScoreServiceForTest(eventRepo *fakeEventRepo, assignmentRepo *fakeAssignmentRepo, now time.Time) (*scoreService, *fakeScoreRepo, *fakePublisher) {
	scoreRepo := &fakeScoreRepo{}
	publisher := &fakePublisher{}
	svc := &scoreService{
		scoreRepo:      scoreRepo,
		assignmentRepo: assignmentRepo,
		eventRepo:      eventRepo,
		publisher:      publisher,
		now:            func() time.Time { return now },
	}
	return svc, scoreRepo, publisher
}

func TestScoreCreate(t *testing.T) {
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	event := &models.Event{
		ID:          1,
		OrganizerID: 10,
		Name:        "Spring Hack",
		StartAt:     now.Add(-48 * time.Hour),
		EndAt:       now.Add(24 * time.Hour),
	}
	judge := models.Principal{UserID: 42, Name: "Judy", Role: models.RoleJudge}

	criteria := []models.ScoreCriterion{
		{Name: "Innovation", Score: 10, Max: 10},
		{Name: "Execution", Score: 7, Max: 10},
		{Name: "Design", Score: 5, Max: 10},
		{Name: "Pitch", Score: 3, Max: 10},
	}

	t.Run("assigned judge scores and total is computed server-side", func(t *testing.T) {
		assignmentRepo := newFakeAssignmentRepo()
		require.NoError(t, assignmentRepo.Upsert(context.Background(), &models.JudgeAssignment{EventID: 1, JudgeID: 42}))
		svc, scoreRepo, publisher := newScoreServiceForTest(newFakeEventRepo(event), assignmentRepo, now)

		score, err := svc.Create(context.Background(), judge, CreateScoreInput{
			EventID:  1,
			TeamID:   7,
			Criteria: criteria,
		})

		require.NoError(t, err)
		assert.Equal(t, 25.0, score.Total)
		assert.Equal(t, 42, score.JudgeID)
		assert.Len(t, scoreRepo.scores, 1)

		require.Len(t, publisher.published, 1)
		assert.Equal(t, "event-1", publisher.published[0].Channel)
		assert.Equal(t, "score:update", publisher.published[0].EventType)
		payload, ok := publisher.published[0].Payload.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, 7, payload["team_id"])
	})

	t.Run("unassigned judge is rejected", func(t *testing.T) {
		svc, scoreRepo, publisher := newScoreServiceForTest(newFakeEventRepo(event), newFakeAssignmentRepo(), now)

		_, err := svc.Create(context.Background(), judge, CreateScoreInput{
			EventID:  1,
			TeamID:   7,
			Criteria: criteria,
		})

		assert.ErrorIs(t, err, ErrJudgeNotAssigned)
		assert.Empty(t, scoreRepo.scores)
		assert.Empty(t, publisher.published)
	})

	t.Run("non-judge role is rejected before any lookup", func(t *testing.T) {
		svc, _, _ := newScoreServiceForTest(newFakeEventRepo(event), newFakeAssignmentRepo(), now)

		_, err := svc.Create(context.Background(), models.Principal{UserID: 1, Role: models.RoleParticipant}, CreateScoreInput{
			EventID:  1,
			Criteria: criteria,
		})

		assert.ErrorIs(t, err, ErrForbiddenOperation)
	})

	t.Run("empty criteria rejected", func(t *testing.T) {
		svc, _, _ := newScoreServiceForTest(newFakeEventRepo(event), newFakeAssignmentRepo(), now)

		_, err := svc.Create(context.Background(), judge, CreateScoreInput{EventID: 1})

		assert.ErrorIs(t, err, ErrScoreCriteriaRequired)
	})

	t.Run("closed judging window rejected", func(t *testing.T) {
		closedEvent := &models.Event{
			ID:             2,
			OrganizerID:    10,
			StartAt:        now.Add(-72 * time.Hour),
			EndAt:          now.Add(24 * time.Hour),
			JudgingStartAt: timePtr(now.Add(-48 * time.Hour)),
			JudgingEndAt:   timePtr(now.Add(-24 * time.Hour)),
		}
		assignmentRepo := newFakeAssignmentRepo()
		require.NoError(t, assignmentRepo.Upsert(context.Background(), &models.JudgeAssignment{EventID: 2, JudgeID: 42}))
		svc, _, _ := newScoreServiceForTest(newFakeEventRepo(closedEvent), assignmentRepo, now)

		_, err := svc.Create(context.Background(), judge, CreateScoreInput{
			EventID:  2,
			Criteria: criteria,
		})

		assert.ErrorIs(t, err, ErrJudgingWindowClosed)
	})

	t.Run("missing event yields not found", func(t *testing.T) {
		svc, _, _ := newScoreServiceForTest(newFakeEventRepo(), newFakeAssignmentRepo(), now)

		_, err := svc.Create(context.Background(), judge, CreateScoreInput{
			EventID:  99,
			Criteria: criteria,
		})

		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestScoreLeaderboard(t *testing.T) {
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	event := &models.Event{ID: 1, OrganizerID: 10, StartAt: now.Add(-time.Hour), EndAt: now.Add(time.Hour)}
	assignmentRepo := newFakeAssignmentRepo()
	_ = assignmentRepo.Upsert(context.Background(), &models.JudgeAssignment{EventID: 1, JudgeID: 42})
	svc, scoreRepo, _ := newScoreServiceForTest(newFakeEventRepo(event), assignmentRepo, now)

	_ = scoreRepo.Create(context.Background(), &models.Score{EventID: 1, TeamID: 1, Total: 20})
	_ = scoreRepo.Create(context.Background(), &models.Score{EventID: 1, TeamID: 1, Total: 10})
	_ = scoreRepo.Create(context.Background(), &models.Score{EventID: 1, TeamID: 2, Total: 25})
	_ = scoreRepo.Create(context.Background(), &models.Score{EventID: 2, TeamID: 3, Total: 99})

	totals, err := svc.Leaderboard(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	byTeam := make(map[int]models.TeamTotal)
	for _, total := range totals {
		byTeam[total.TeamID] = total
	}
	assert.Equal(t, 30.0, byTeam[1].Total)
	assert.Equal(t, 2, byTeam[1].Scores)
	assert.Equal(t, 25.0, byTeam[2].Total)
}
