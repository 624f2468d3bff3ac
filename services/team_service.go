package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/repositories"
)

var ErrTeamNameRequired = errors.New("team name is required")

type CreateTeamInput struct {
	EventID int    `json:"event_id"`
	Name    string `json:"name"`
}

type ListTeamsInput struct {
	EventID *int
	Mine    bool
}

type TeamService interface {
	// Create создаёт команду; создатель сразу становится её участником.
	Create(ctx context.Context, actor models.Principal, input CreateTeamInput) (*models.Team, error)
	List(ctx context.Context, actor models.Principal, input ListTeamsInput) ([]*models.Team, error)
	// AddMember добавляет пользователя в команду (приглашение). Повтор
	// идемпотентен: существующее членство не считается ошибкой.
	AddMember(ctx context.Context, teamID, userID int) error
	// Join — самостоятельное вступление текущего пользователя.
	Join(ctx context.Context, actor models.Principal, teamID int) error
}

type teamService struct {
	teamRepo repositories.TeamRepository
}

func NewTeamService(teamRepo repositories.TeamRepository) TeamService {
	return &teamService{teamRepo: teamRepo}
}

func (s *teamService) Create(ctx context.Context, actor models.Principal, input CreateTeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}

	team := &models.Team{
		EventID:   input.EventID,
		Name:      input.Name,
		CreatedBy: actor.UserID,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamEventInvalid) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	member := &models.TeamMember{TeamID: team.ID, UserID: actor.UserID}
	if err := s.teamRepo.AddMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to add creator to team: %w", err)
	}
	team.Members = []models.TeamMember{*member}

	return team, nil
}

func (s *teamService) List(ctx context.Context, actor models.Principal, input ListTeamsInput) ([]*models.Team, error) {
	filter := repositories.ListTeamsFilter{EventID: input.EventID}
	if input.Mine {
		filter.MemberID = &actor.UserID
	}

	teams, err := s.teamRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, team := range teams {
		members, err := s.teamRepo.ListMembers(ctx, team.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load team members: %w", err)
		}
		team.Members = members
	}
	return teams, nil
}

func (s *teamService) AddMember(ctx context.Context, teamID, userID int) error {
	member := &models.TeamMember{TeamID: teamID, UserID: userID}
	err := s.teamRepo.AddMember(ctx, member)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamMemberConflict):
			return nil // уже в команде — повтор идемпотентен
		case errors.Is(err, repositories.ErrTeamMemberTeamInvalid):
			return ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamMemberUserInvalid):
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to add team member: %w", err)
	}
	return nil
}

func (s *teamService) Join(ctx context.Context, actor models.Principal, teamID int) error {
	return s.AddMember(ctx, teamID, actor.UserID)
}
