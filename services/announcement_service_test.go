package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/hackathon-system/models"
)

type fakeAnnouncementRepo struct {
	announcements []*models.Announcement
}

func (r *fakeAnnouncementRepo) Create(_ context.Context, a *models.Announcement) error {
	a.CreatedAt = time.Now()
	r.announcements = append(r.announcements, a)
	return nil
}

func (r *fakeAnnouncementRepo) ListByEvent(_ context.Context, eventID *int) ([]*models.Announcement, error) {
	if eventID == nil {
		return r.announcements, nil
	}
	var result []*models.Announcement
	for _, a := range r.announcements {
		if a.EventID == *eventID {
			result = append(result, a)
		}
	}
	return result, nil
}

func TestAnnouncementCreate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	event := &models.Event{ID: 1, OrganizerID: 10, StartAt: now, EndAt: now.Add(48 * time.Hour)}
	owner := models.Principal{UserID: 10, Role: models.RoleOrganizer}

	t.Run("owner announces and channel receives announcement:new", func(t *testing.T) {
		publisher := &fakePublisher{}
		svc := NewAnnouncementService(&fakeAnnouncementRepo{}, newFakeEventRepo(event), publisher)

		ann, err := svc.Create(context.Background(), owner, CreateAnnouncementInput{
			EventID: 1,
			Title:   "Kickoff",
			Message: "We start at noon",
		})

		require.NoError(t, err)
		assert.Equal(t, 10, ann.CreatedBy)

		require.Len(t, publisher.published, 1)
		assert.Equal(t, "event-1", publisher.published[0].Channel)
		assert.Equal(t, "announcement:new", publisher.published[0].EventType)
	})

	t.Run("non-owner organizer is rejected and nothing is published", func(t *testing.T) {
		publisher := &fakePublisher{}
		svc := NewAnnouncementService(&fakeAnnouncementRepo{}, newFakeEventRepo(event), publisher)

		_, err := svc.Create(context.Background(), models.Principal{UserID: 11, Role: models.RoleOrganizer}, CreateAnnouncementInput{
			EventID: 1,
			Title:   "Hijack",
			Message: "nope",
		})

		assert.ErrorIs(t, err, ErrNotEventOrganizer)
		assert.Empty(t, publisher.published)
	})

	t.Run("title and message required", func(t *testing.T) {
		svc := NewAnnouncementService(&fakeAnnouncementRepo{}, newFakeEventRepo(event), &fakePublisher{})

		_, err := svc.Create(context.Background(), owner, CreateAnnouncementInput{EventID: 1, Title: "only title"})

		assert.ErrorIs(t, err, ErrAnnouncementFieldsRequired)
	})
}
