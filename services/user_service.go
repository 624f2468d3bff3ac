package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/repositories"
)

type UserService interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	// ChangeRole меняет роль пользователя. Доступно только организатору;
	// роль — закрытое перечисление.
	ChangeRole(ctx context.Context, actor models.Principal, userID int, role models.Role) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) ChangeRole(ctx context.Context, actor models.Principal, userID int, role models.Role) (*models.User, error) {
	if actor.Role != models.RoleOrganizer {
		return nil, ErrForbiddenOperation
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to change user role: %w", err)
	}
	return s.GetByID(ctx, userID)
}
