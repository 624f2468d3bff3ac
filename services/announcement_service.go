package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/realtime"
	"github.com/Dosada05/hackathon-system/repositories"
)

var ErrAnnouncementFieldsRequired = errors.New("announcement title and message are required")

type CreateAnnouncementInput struct {
	EventID int    `json:"event_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type AnnouncementService interface {
	// Create создаёт объявление. Только владелец события; после записи
	// публикуется announcement:new в канал события.
	Create(ctx context.Context, actor models.Principal, input CreateAnnouncementInput) (*models.Announcement, error)
	List(ctx context.Context, eventID *int) ([]*models.Announcement, error)
}

type announcementService struct {
	announcementRepo repositories.AnnouncementRepository
	eventRepo        repositories.EventRepository
	publisher        realtime.Publisher
}

func NewAnnouncementService(
	announcementRepo repositories.AnnouncementRepository,
	eventRepo repositories.EventRepository,
	publisher realtime.Publisher,
) AnnouncementService {
	return &announcementService{
		announcementRepo: announcementRepo,
		eventRepo:        eventRepo,
		publisher:        publisher,
	}
}

func (s *announcementService) Create(ctx context.Context, actor models.Principal, input CreateAnnouncementInput) (*models.Announcement, error) {
	if input.Title == "" || input.Message == "" {
		return nil, ErrAnnouncementFieldsRequired
	}

	event, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to check event: %w", err)
	}
	if actor.Role != models.RoleOrganizer || event.OrganizerID != actor.UserID {
		return nil, ErrNotEventOrganizer
	}

	ann := &models.Announcement{
		EventID:   input.EventID,
		Title:     input.Title,
		Message:   input.Message,
		CreatedBy: actor.UserID,
	}
	if err := s.announcementRepo.Create(ctx, ann); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	s.publisher.Publish(realtime.EventChannel(input.EventID), "announcement:new", ann)

	return ann, nil
}

func (s *announcementService) List(ctx context.Context, eventID *int) ([]*models.Announcement, error) {
	return s.announcementRepo.ListByEvent(ctx, eventID)
}
