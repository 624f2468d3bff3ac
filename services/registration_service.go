package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/repositories"
)

type RegistrationService interface {
	// Register создаёт регистрацию пользователя на событие. Гейт по
	// времени: регистрация открыта, пока now < registration_close_at
	// (или, если окно не задано, now < start_at). Дубликат пары
	// (user, event) отклоняется constraint'ом, не предварительной проверкой.
	Register(ctx context.Context, actor models.Principal, eventID int) (*models.Registration, error)
	// ListForEvent — двухпутёвая проверка доступа: владелец-организатор
	// видит всех безусловно; зарегистрированный участник видит всех
	// (видимость соучастников); остальным — запрещено.
	ListForEvent(ctx context.Context, actor models.Principal, eventID int) ([]*models.Registration, error)
	ListMine(ctx context.Context, actor models.Principal) ([]*models.Registration, error)
}

type registrationService struct {
	registrationRepo repositories.RegistrationRepository
	eventRepo        repositories.EventRepository
	now              func() time.Time
}

func NewRegistrationService(
	registrationRepo repositories.RegistrationRepository,
	eventRepo repositories.EventRepository,
) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		now:              time.Now,
	}
}

func (s *registrationService) Register(ctx context.Context, actor models.Principal, eventID int) (*models.Registration, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to check event: %w", err)
	}

	if !event.RegistrationOpen(s.now()) {
		return nil, ErrRegistrationNotOpen
	}

	reg := &models.Registration{
		EventID: eventID,
		UserID:  actor.UserID,
	}
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRegistrationConflict):
			return nil, ErrRegistrationConflict
		case errors.Is(err, repositories.ErrRegistrationEventInvalid):
			return nil, ErrEventNotFound
		case errors.Is(err, repositories.ErrRegistrationUserInvalid):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}
	return reg, nil
}

func (s *registrationService) ListForEvent(ctx context.Context, actor models.Principal, eventID int) ([]*models.Registration, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to check event: %w", err)
	}

	if event.OrganizerID != actor.UserID {
		// Не владелец: доступ есть только у зарегистрированного участника.
		_, err := s.registrationRepo.FindByUserAndEvent(ctx, actor.UserID, eventID)
		if err != nil {
			if errors.Is(err, repositories.ErrRegistrationNotFound) {
				return nil, ErrForbiddenOperation
			}
			return nil, fmt.Errorf("failed to check own registration: %w", err)
		}
	}

	return s.registrationRepo.ListByEvent(ctx, eventID)
}

func (s *registrationService) ListMine(ctx context.Context, actor models.Principal) ([]*models.Registration, error) {
	return s.registrationRepo.ListByUser(ctx, actor.UserID)
}
