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
	ErrSubmissionTitleRequired = errors.New("submission title is required")
	ErrSubmissionRepoRequired  = errors.New("submission repo url is required")
)

type CreateSubmissionInput struct {
	EventID     int               `json:"event_id"`
	TeamID      int               `json:"team_id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	RepoURL     string            `json:"repo_url"`
	Files       []string          `json:"files"`
	Metadata    map[string]string `json:"metadata"`
}

type SubmissionService interface {
	// Create создаёт сдачу проекта. Гейт по окну подачи события, если
	// окно настроено.
	Create(ctx context.Context, actor models.Principal, input CreateSubmissionInput) (*models.Submission, error)
	List(ctx context.Context, eventID *int) ([]*models.Submission, error)
}

type submissionService struct {
	submissionRepo repositories.SubmissionRepository
	eventRepo      repositories.EventRepository
	now            func() time.Time
}

func NewSubmissionService(
	submissionRepo repositories.SubmissionRepository,
	eventRepo repositories.EventRepository,
) SubmissionService {
	return &submissionService{
		submissionRepo: submissionRepo,
		eventRepo:      eventRepo,
		now:            time.Now,
	}
}

func (s *submissionService) Create(ctx context.Context, actor models.Principal, input CreateSubmissionInput) (*models.Submission, error) {
	if input.Title == "" {
		return nil, ErrSubmissionTitleRequired
	}
	if input.RepoURL == "" {
		return nil, ErrSubmissionRepoRequired
	}

	event, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to check event: %w", err)
	}
	if !event.SubmissionOpen(s.now()) {
		return nil, ErrSubmissionWindowClosed
	}

	sub := &models.Submission{
		EventID:     input.EventID,
		TeamID:      input.TeamID,
		Title:       input.Title,
		Description: input.Description,
		RepoURL:     input.RepoURL,
		Files:       input.Files,
		Metadata:    input.Metadata,
	}
	if err := s.submissionRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}
	return sub, nil
}

func (s *submissionService) List(ctx context.Context, eventID *int) ([]*models.Submission, error) {
	return s.submissionRepo.ListByEvent(ctx, eventID)
}
