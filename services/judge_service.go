package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/repositories"
	"golang.org/x/crypto/bcrypt"
)

var ErrJudgeEmailRequired = errors.New("judge email is required")

type AssignJudgeInput struct {
	EventID    int    `json:"event_id"`
	JudgeEmail string `json:"judge_email"`
}

type ListAssignmentsInput struct {
	EventID *int
	JudgeID *int
}

type JudgeService interface {
	// Assign назначает судью на событие по email. Только владелец события.
	// Пользователь находится или создаётся по email; не-судья повышается
	// до судьи; сама пара (event, judge) — атомарный upsert.
	Assign(ctx context.Context, actor models.Principal, input AssignJudgeInput) (*models.JudgeAssignment, error)
	List(ctx context.Context, input ListAssignmentsInput) ([]*models.JudgeAssignment, error)
	// MyAssignments возвращает события, назначенные текущему судье.
	MyAssignments(ctx context.Context, actor models.Principal) ([]*models.JudgeAssignment, error)
}

type judgeService struct {
	assignmentRepo repositories.AssignmentRepository
	eventRepo      repositories.EventRepository
	userRepo       repositories.UserRepository
}

func NewJudgeService(
	assignmentRepo repositories.AssignmentRepository,
	eventRepo repositories.EventRepository,
	userRepo repositories.UserRepository,
) JudgeService {
	return &judgeService{
		assignmentRepo: assignmentRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
	}
}

func (s *judgeService) Assign(ctx context.Context, actor models.Principal, input AssignJudgeInput) (*models.JudgeAssignment, error) {
	if input.JudgeEmail == "" {
		return nil, ErrJudgeEmailRequired
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

	judge, err := s.userRepo.GetByEmail(ctx, input.JudgeEmail)
	switch {
	case err == nil:
		if judge.Role != models.RoleJudge {
			// Существующий пользователь повышается до судьи.
			if err := s.userRepo.UpdateRole(ctx, judge.ID, models.RoleJudge); err != nil {
				return nil, fmt.Errorf("failed to promote user to judge: %w", err)
			}
			judge.Role = models.RoleJudge
		}
	case errors.Is(err, repositories.ErrUserNotFound):
		judge, err = s.createJudgeAccount(ctx, input.JudgeEmail)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("failed to look up judge by email: %w", err)
	}

	assignment := &models.JudgeAssignment{EventID: input.EventID, JudgeID: judge.ID}
	if err := s.assignmentRepo.Upsert(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to upsert judge assignment: %w", err)
	}

	judge.PasswordHash = ""
	assignment.Judge = judge
	return assignment, nil
}

// createJudgeAccount заводит учётную запись судьи по email. Пароль
// генерируется случайным: судья задаст свой через сброс пароля.
func (s *judgeService) createJudgeAccount(ctx context.Context, email string) (*models.User, error) {
	password, err := randomPassword(24)
	if err != nil {
		return nil, fmt.Errorf("failed to generate judge password: %w", err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash judge password: %w", err)
	}

	// Имя по умолчанию — часть email до @.
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}

	judge := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleJudge,
	}
	if err := s.userRepo.Create(ctx, judge); err != nil {
		return nil, fmt.Errorf("failed to create judge account: %w", err)
	}
	return judge, nil
}

func (s *judgeService) List(ctx context.Context, input ListAssignmentsInput) ([]*models.JudgeAssignment, error) {
	return s.assignmentRepo.List(ctx, repositories.ListAssignmentsFilter{
		EventID: input.EventID,
		JudgeID: input.JudgeID,
	})
}

func (s *judgeService) MyAssignments(ctx context.Context, actor models.Principal) ([]*models.JudgeAssignment, error) {
	if actor.Role != models.RoleJudge {
		return nil, ErrForbiddenOperation
	}
	return s.assignmentRepo.ListByJudgeWithEvents(ctx, actor.UserID)
}

func randomPassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}
	return string(b), nil
}
