package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound           = errors.New("team not found")
	ErrTeamEventInvalid       = errors.New("team event conflict or invalid")
	ErrTeamMemberConflict     = errors.New("user is already a member of this team")
	ErrTeamMemberTeamInvalid  = errors.New("team member team conflict or invalid")
	ErrTeamMemberUserInvalid  = errors.New("team member user conflict or invalid")
)

// ListTeamsFilter задаёт опциональные фильтры для списка команд.
type ListTeamsFilter struct {
	EventID  *int
	MemberID *int
}

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context, filter ListTeamsFilter) ([]*models.Team, error)
	// AddMember — атомарный условный INSERT: повторное добавление
	// отклоняется constraint'ом (teamId, userId).
	AddMember(ctx context.Context, member *models.TeamMember) error
	ListMembers(ctx context.Context, teamID int) ([]models.TeamMember, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (event_id, name, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, team.EventID, team.Name, team.CreatedBy).
		Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" && pqErr.Constraint == "teams_event_id_fkey" {
				return ErrTeamEventInvalid
			}
		}
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, event_id, name, created_by, created_at FROM teams WHERE id = $1`

	t := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&t.ID, &t.EventID, &t.Name, &t.CreatedBy, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return t, nil
}

func (r *postgresTeamRepository) List(ctx context.Context, filter ListTeamsFilter) ([]*models.Team, error) {
	var queryBuilder strings.Builder
	args := []interface{}{}
	conditions := []string{}

	queryBuilder.WriteString(`SELECT t.id, t.event_id, t.name, t.created_by, t.created_at FROM teams t`)

	if filter.MemberID != nil {
		args = append(args, *filter.MemberID)
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM team_members m WHERE m.team_id = t.id AND m.user_id = $%d)", len(args)))
	}
	if filter.EventID != nil {
		args = append(args, *filter.EventID)
		conditions = append(conditions, fmt.Sprintf("t.event_id = $%d", len(args)))
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY t.created_at ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.EventID, &t.Name, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team rows: %w", err)
	}
	return teams, nil
}

func (r *postgresTeamRepository) AddMember(ctx context.Context, member *models.TeamMember) error {
	query := `
		INSERT INTO team_members (team_id, user_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, member.TeamID, member.UserID).
		Scan(&member.ID, &member.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "team_members_team_id_user_id_key" {
					return ErrTeamMemberConflict
				}
			case "23503":
				switch pqErr.Constraint {
				case "team_members_team_id_fkey":
					return ErrTeamMemberTeamInvalid
				case "team_members_user_id_fkey":
					return ErrTeamMemberUserInvalid
				}
			}
		}
		return fmt.Errorf("failed to add team member: %w", err)
	}
	return nil
}

func (r *postgresTeamRepository) ListMembers(ctx context.Context, teamID int) ([]models.TeamMember, error) {
	query := `
		SELECT m.id, m.team_id, m.user_id, m.created_at,
			u.id, u.name, u.email, u.role, u.created_at
		FROM team_members m
		JOIN users u ON m.user_id = u.id
		WHERE m.team_id = $1
		ORDER BY m.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	members := make([]models.TeamMember, 0)
	for rows.Next() {
		var m models.TeamMember
		var u models.User
		if err := rows.Scan(
			&m.ID, &m.TeamID, &m.UserID, &m.CreatedAt,
			&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan team member row: %w", err)
		}
		m.User = &u
		members = append(members, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team member rows: %w", err)
	}
	return members, nil
}
