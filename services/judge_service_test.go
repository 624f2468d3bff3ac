package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/hackathon-system/models"
)

func TestJudgeAssign(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	owner := models.Principal{UserID: 10, Role: models.RoleOrganizer}
	event := &models.Event{ID: 1, OrganizerID: 10, StartAt: now, EndAt: now.Add(48 * time.Hour)}

	t.Run("existing participant is promoted to judge", func(t *testing.T) {
		userRepo := newFakeUserRepo(&models.User{ID: 3, Name: "Pat", Email: "pat@example.com", Role: models.RoleParticipant})
		assignmentRepo := newFakeAssignmentRepo()
		svc := NewJudgeService(assignmentRepo, newFakeEventRepo(event), userRepo)

		assignment, err := svc.Assign(context.Background(), owner, AssignJudgeInput{EventID: 1, JudgeEmail: "pat@example.com"})

		require.NoError(t, err)
		assert.Equal(t, 3, assignment.JudgeID)
		require.NotNil(t, assignment.Judge)
		assert.Equal(t, models.RoleJudge, assignment.Judge.Role)

		stored, err := userRepo.GetByID(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, models.RoleJudge, stored.Role)
	})

	t.Run("unknown email gets a judge account", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		svc := NewJudgeService(newFakeAssignmentRepo(), newFakeEventRepo(event), userRepo)

		assignment, err := svc.Assign(context.Background(), owner, AssignJudgeInput{EventID: 1, JudgeEmail: "new.judge@example.com"})

		require.NoError(t, err)
		require.NotNil(t, assignment.Judge)
		assert.Equal(t, models.RoleJudge, assignment.Judge.Role)
		assert.Equal(t, "new.judge", assignment.Judge.Name)
		assert.Empty(t, assignment.Judge.PasswordHash)

		created, err := userRepo.GetByEmail(context.Background(), "new.judge@example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, created.PasswordHash)
	})

	t.Run("repeat assignment is an upsert", func(t *testing.T) {
		userRepo := newFakeUserRepo(&models.User{ID: 3, Email: "pat@example.com", Role: models.RoleJudge})
		assignmentRepo := newFakeAssignmentRepo()
		svc := NewJudgeService(assignmentRepo, newFakeEventRepo(event), userRepo)

		first, err := svc.Assign(context.Background(), owner, AssignJudgeInput{EventID: 1, JudgeEmail: "pat@example.com"})
		require.NoError(t, err)
		second, err := svc.Assign(context.Background(), owner, AssignJudgeInput{EventID: 1, JudgeEmail: "pat@example.com"})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, assignmentRepo.assignments, 1)
	})

	t.Run("non-owner organizer is rejected", func(t *testing.T) {
		svc := NewJudgeService(newFakeAssignmentRepo(), newFakeEventRepo(event), newFakeUserRepo())

		_, err := svc.Assign(context.Background(), models.Principal{UserID: 11, Role: models.RoleOrganizer}, AssignJudgeInput{EventID: 1, JudgeEmail: "x@example.com"})

		assert.ErrorIs(t, err, ErrNotEventOrganizer)
	})

	t.Run("participant cannot assign", func(t *testing.T) {
		svc := NewJudgeService(newFakeAssignmentRepo(), newFakeEventRepo(event), newFakeUserRepo())

		_, err := svc.Assign(context.Background(), models.Principal{UserID: 5, Role: models.RoleParticipant}, AssignJudgeInput{EventID: 1, JudgeEmail: "x@example.com"})

		assert.ErrorIs(t, err, ErrNotEventOrganizer)
	})

	t.Run("email required", func(t *testing.T) {
		svc := NewJudgeService(newFakeAssignmentRepo(), newFakeEventRepo(event), newFakeUserRepo())

		_, err := svc.Assign(context.Background(), owner, AssignJudgeInput{EventID: 1})

		assert.ErrorIs(t, err, ErrJudgeEmailRequired)
	})
}

func TestJudgeMyAssignments(t *testing.T) {
	assignmentRepo := newFakeAssignmentRepo()
	require.NoError(t, assignmentRepo.Upsert(context.Background(), &models.JudgeAssignment{EventID: 1, JudgeID: 42}))
	require.NoError(t, assignmentRepo.Upsert(context.Background(), &models.JudgeAssignment{EventID: 2, JudgeID: 7}))
	svc := NewJudgeService(assignmentRepo, newFakeEventRepo(), newFakeUserRepo())

	t.Run("judge sees own assignments", func(t *testing.T) {
		assignments, err := svc.MyAssignments(context.Background(), models.Principal{UserID: 42, Role: models.RoleJudge})

		require.NoError(t, err)
		require.Len(t, assignments, 1)
		assert.Equal(t, 1, assignments[0].EventID)
	})

	t.Run("non-judge is rejected", func(t *testing.T) {
		_, err := svc.MyAssignments(context.Background(), models.Principal{UserID: 42, Role: models.RoleParticipant})

		assert.ErrorIs(t, err, ErrForbiddenOperation)
	})
}
