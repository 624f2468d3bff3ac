package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/hackathon-system/models"
)

func newRegistrationServiceForTest(eventRepo *fakeEventRepo, regRepo *fakeRegistrationRepo, now time.Time) *registrationService {
	return &registrationService{
		registrationRepo: regRepo,
		eventRepo:        eventRepo,
		now:              func() time.Time { return now },
	}
}

func TestRegistrationRegister(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	participant := models.Principal{UserID: 5, Role: models.RoleParticipant}

	t.Run("registers while open", func(t *testing.T) {
		event := &models.Event{ID: 1, OrganizerID: 10, StartAt: now.Add(24 * time.Hour), EndAt: now.Add(72 * time.Hour)}
		svc := newRegistrationServiceForTest(newFakeEventRepo(event), newFakeRegistrationRepo(), now)

		reg, err := svc.Register(context.Background(), participant, 1)

		require.NoError(t, err)
		assert.Equal(t, 5, reg.UserID)
		assert.Equal(t, 1, reg.EventID)
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		event := &models.Event{ID: 1, OrganizerID: 10, StartAt: now.Add(24 * time.Hour), EndAt: now.Add(72 * time.Hour)}
		svc := newRegistrationServiceForTest(newFakeEventRepo(event), newFakeRegistrationRepo(), now)

		_, err := svc.Register(context.Background(), participant, 1)
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), participant, 1)
		assert.ErrorIs(t, err, ErrRegistrationConflict)
	})

	t.Run("closed without window falls back to start date", func(t *testing.T) {
		started := &models.Event{ID: 1, OrganizerID: 10, StartAt: now.Add(-time.Hour), EndAt: now.Add(72 * time.Hour)}
		svc := newRegistrationServiceForTest(newFakeEventRepo(started), newFakeRegistrationRepo(), now)

		_, err := svc.Register(context.Background(), participant, 1)

		assert.ErrorIs(t, err, ErrRegistrationNotOpen)
	})

	t.Run("explicit close window overrides start date", func(t *testing.T) {
		closeAt := now.Add(12 * time.Hour)
		event := &models.Event{
			ID:                  1,
			OrganizerID:         10,
			StartAt:             now.Add(-time.Hour),
			EndAt:               now.Add(72 * time.Hour),
			RegistrationCloseAt: &closeAt,
		}
		svc := newRegistrationServiceForTest(newFakeEventRepo(event), newFakeRegistrationRepo(), now)

		_, err := svc.Register(context.Background(), participant, 1)

		assert.NoError(t, err)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := newRegistrationServiceForTest(newFakeEventRepo(), newFakeRegistrationRepo(), now)

		_, err := svc.Register(context.Background(), participant, 404)

		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestRegistrationListForEvent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	event := &models.Event{ID: 1, OrganizerID: 10, StartAt: now.Add(24 * time.Hour), EndAt: now.Add(72 * time.Hour)}

	setup := func() *registrationService {
		regRepo := newFakeRegistrationRepo()
		svc := newRegistrationServiceForTest(newFakeEventRepo(event), regRepo, now)
		_, err := svc.Register(context.Background(), models.Principal{UserID: 5, Role: models.RoleParticipant}, 1)
		require.NoError(t, err)
		return svc
	}

	t.Run("owner sees registrations unconditionally", func(t *testing.T) {
		svc := setup()

		regs, err := svc.ListForEvent(context.Background(), models.Principal{UserID: 10, Role: models.RoleOrganizer}, 1)

		require.NoError(t, err)
		assert.Len(t, regs, 1)
	})

	t.Run("registered participant sees co-participants", func(t *testing.T) {
		svc := setup()

		regs, err := svc.ListForEvent(context.Background(), models.Principal{UserID: 5, Role: models.RoleParticipant}, 1)

		require.NoError(t, err)
		assert.Len(t, regs, 1)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		svc := setup()

		_, err := svc.ListForEvent(context.Background(), models.Principal{UserID: 99, Role: models.RoleParticipant}, 1)

		assert.ErrorIs(t, err, ErrForbiddenOperation)
	})

	t.Run("other organizer without registration is forbidden too", func(t *testing.T) {
		svc := setup()

		_, err := svc.ListForEvent(context.Background(), models.Principal{UserID: 11, Role: models.RoleOrganizer}, 1)

		assert.ErrorIs(t, err, ErrForbiddenOperation)
	})
}
