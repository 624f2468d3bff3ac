package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/repositories"
)

var (
	ErrEventNameRequired       = errors.New("event name is required")
	ErrEventDatesRequired      = errors.New("event start and end dates are required")
	ErrEventInvalidDateRange   = errors.New("event end date must be after start date")
	ErrEventInvalidRegWindow   = errors.New("registration close must be after registration open")
	ErrEventInvalidSubWindow   = errors.New("submission close must be after submission open")
	ErrEventInvalidJudgeWindow = errors.New("judging end must be after judging start")
)

type CreateEventInput struct {
	Name                string     `json:"name"`
	Description         *string    `json:"description"`
	Theme               *string    `json:"theme"`
	Online              *bool      `json:"online"`
	Location            *string    `json:"location"`
	StartAt             time.Time  `json:"start_at"`
	EndAt               time.Time  `json:"end_at"`
	RegistrationOpenAt  *time.Time `json:"registration_open_at"`
	RegistrationCloseAt *time.Time `json:"registration_close_at"`
	SubmissionOpenAt    *time.Time `json:"submission_open_at"`
	SubmissionCloseAt   *time.Time `json:"submission_close_at"`
	JudgingStartAt      *time.Time `json:"judging_start_at"`
	JudgingEndAt        *time.Time `json:"judging_end_at"`
}

// UpdateEventInput — частичное обновление: nil-поля не меняются.
type UpdateEventInput struct {
	Name                *string    `json:"name"`
	Description         *string    `json:"description"`
	Theme               *string    `json:"theme"`
	Online              *bool      `json:"online"`
	Location            *string    `json:"location"`
	StartAt             *time.Time `json:"start_at"`
	EndAt               *time.Time `json:"end_at"`
	RegistrationOpenAt  *time.Time `json:"registration_open_at"`
	RegistrationCloseAt *time.Time `json:"registration_close_at"`
	SubmissionOpenAt    *time.Time `json:"submission_open_at"`
	SubmissionCloseAt   *time.Time `json:"submission_close_at"`
	JudgingStartAt      *time.Time `json:"judging_start_at"`
	JudgingEndAt        *time.Time `json:"judging_end_at"`
}

type ListEventsInput struct {
	OrganizerID *int
}

type EventService interface {
	Create(ctx context.Context, organizer models.Principal, input CreateEventInput) (*models.Event, error)
	GetByID(ctx context.Context, id int) (*models.Event, error)
	// Update разрешено только организатору-владельцу события.
	Update(ctx context.Context, actor models.Principal, id int, input UpdateEventInput) (*models.Event, error)
	List(ctx context.Context, input ListEventsInput) ([]*models.Event, error)
}

type eventService struct {
	eventRepo repositories.EventRepository
}

func NewEventService(eventRepo repositories.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

func validateEventWindows(e *models.Event) error {
	if !e.EndAt.After(e.StartAt) {
		return ErrEventInvalidDateRange
	}
	if e.RegistrationOpenAt != nil && e.RegistrationCloseAt != nil && !e.RegistrationCloseAt.After(*e.RegistrationOpenAt) {
		return ErrEventInvalidRegWindow
	}
	if e.SubmissionOpenAt != nil && e.SubmissionCloseAt != nil && !e.SubmissionCloseAt.After(*e.SubmissionOpenAt) {
		return ErrEventInvalidSubWindow
	}
	if e.JudgingStartAt != nil && e.JudgingEndAt != nil && !e.JudgingEndAt.After(*e.JudgingStartAt) {
		return ErrEventInvalidJudgeWindow
	}
	return nil
}

func (s *eventService) Create(ctx context.Context, organizer models.Principal, input CreateEventInput) (*models.Event, error) {
	if organizer.Role != models.RoleOrganizer {
		return nil, ErrForbiddenOperation
	}
	if input.Name == "" {
		return nil, ErrEventNameRequired
	}
	if input.StartAt.IsZero() || input.EndAt.IsZero() {
		return nil, ErrEventDatesRequired
	}

	online := true
	if input.Online != nil {
		online = *input.Online
	}

	event := &models.Event{
		OrganizerID:         organizer.UserID,
		Name:                input.Name,
		Description:         input.Description,
		Theme:               input.Theme,
		Online:              online,
		Location:            input.Location,
		StartAt:             input.StartAt,
		EndAt:               input.EndAt,
		RegistrationOpenAt:  input.RegistrationOpenAt,
		RegistrationCloseAt: input.RegistrationCloseAt,
		SubmissionOpenAt:    input.SubmissionOpenAt,
		SubmissionCloseAt:   input.SubmissionCloseAt,
		JudgingStartAt:      input.JudgingStartAt,
		JudgingEndAt:        input.JudgingEndAt,
	}

	if err := validateEventWindows(event); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, id int) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, actor models.Principal, id int, input UpdateEventInput) (*models.Event, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Ресурс принадлежит создавшему его организатору.
	if actor.Role != models.RoleOrganizer || event.OrganizerID != actor.UserID {
		return nil, ErrNotEventOrganizer
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrEventNameRequired
		}
		event.Name = *input.Name
	}
	if input.Description != nil {
		event.Description = input.Description
	}
	if input.Theme != nil {
		event.Theme = input.Theme
	}
	if input.Online != nil {
		event.Online = *input.Online
	}
	if input.Location != nil {
		event.Location = input.Location
	}
	if input.StartAt != nil {
		event.StartAt = *input.StartAt
	}
	if input.EndAt != nil {
		event.EndAt = *input.EndAt
	}
	if input.RegistrationOpenAt != nil {
		event.RegistrationOpenAt = input.RegistrationOpenAt
	}
	if input.RegistrationCloseAt != nil {
		event.RegistrationCloseAt = input.RegistrationCloseAt
	}
	if input.SubmissionOpenAt != nil {
		event.SubmissionOpenAt = input.SubmissionOpenAt
	}
	if input.SubmissionCloseAt != nil {
		event.SubmissionCloseAt = input.SubmissionCloseAt
	}
	if input.JudgingStartAt != nil {
		event.JudgingStartAt = input.JudgingStartAt
	}
	if input.JudgingEndAt != nil {
		event.JudgingEndAt = input.JudgingEndAt
	}

	if err := validateEventWindows(event); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, input ListEventsInput) ([]*models.Event, error) {
	return s.eventRepo.List(ctx, repositories.ListEventsFilter{OrganizerID: input.OrganizerID})
}
