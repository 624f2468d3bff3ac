package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/lib/pq"
)

var (
	ErrAssignmentNotFound     = errors.New("judge assignment not found")
	ErrAssignmentEventInvalid = errors.New("judge assignment event conflict or invalid")
	ErrAssignmentJudgeInvalid = errors.New("judge assignment judge conflict or invalid")
)

// ListAssignmentsFilter задаёт опциональные фильтры для списка назначений.
type ListAssignmentsFilter struct {
	EventID *int
	JudgeID *int
}

type AssignmentRepository interface {
	// Upsert — один атомарный INSERT ... ON CONFLICT: повторное назначение
	// той же пары (event_id, judge_id) возвращает существующую строку.
	Upsert(ctx context.Context, a *models.JudgeAssignment) error
	Exists(ctx context.Context, eventID, judgeID int) (bool, error)
	List(ctx context.Context, filter ListAssignmentsFilter) ([]*models.JudgeAssignment, error)
	ListByJudgeWithEvents(ctx context.Context, judgeID int) ([]*models.JudgeAssignment, error)
}

type postgresAssignmentRepository struct {
	db *sql.DB
}

func NewPostgresAssignmentRepository(db *sql.DB) AssignmentRepository {
	return &postgresAssignmentRepository{db: db}
}

func (r *postgresAssignmentRepository) Upsert(ctx context.Context, a *models.JudgeAssignment) error {
	// DO UPDATE с no-op присваиванием нужен, чтобы RETURNING отдал строку
	// и при конфликте.
	query := `
		INSERT INTO judge_assignments (event_id, judge_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id, judge_id) DO UPDATE SET event_id = EXCLUDED.event_id
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, a.EventID, a.JudgeID).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" {
				switch pqErr.Constraint {
				case "judge_assignments_event_id_fkey":
					return ErrAssignmentEventInvalid
				case "judge_assignments_judge_id_fkey":
					return ErrAssignmentJudgeInvalid
				}
			}
		}
		return fmt.Errorf("failed to upsert judge assignment: %w", err)
	}
	return nil
}

func (r *postgresAssignmentRepository) Exists(ctx context.Context, eventID, judgeID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM judge_assignments WHERE event_id = $1 AND judge_id = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, eventID, judgeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check judge assignment: %w", err)
	}
	return exists, nil
}

func (r *postgresAssignmentRepository) List(ctx context.Context, filter ListAssignmentsFilter) ([]*models.JudgeAssignment, error) {
	query := `
		SELECT a.id, a.event_id, a.judge_id, a.created_at,
			u.id, u.name, u.email, u.role, u.created_at
		FROM judge_assignments a
		JOIN users u ON a.judge_id = u.id
		WHERE ($1::int IS NULL OR a.event_id = $1)
		  AND ($2::int IS NULL OR a.judge_id = $2)
		ORDER BY a.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, filter.EventID, filter.JudgeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list judge assignments: %w", err)
	}
	defer rows.Close()

	assignments := make([]*models.JudgeAssignment, 0)
	for rows.Next() {
		var a models.JudgeAssignment
		var u models.User
		if err := rows.Scan(
			&a.ID, &a.EventID, &a.JudgeID, &a.CreatedAt,
			&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan judge assignment row: %w", err)
		}
		a.Judge = &u
		assignments = append(assignments, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating judge assignment rows: %w", err)
	}
	return assignments, nil
}

func (r *postgresAssignmentRepository) ListByJudgeWithEvents(ctx context.Context, judgeID int) ([]*models.JudgeAssignment, error) {
	query := fmt.Sprintf(`
		SELECT a.id, a.event_id, a.judge_id, a.created_at,
			%s
		FROM judge_assignments a
		JOIN events e ON a.event_id = e.id
		WHERE a.judge_id = $1
		ORDER BY a.created_at DESC`, prefixedEventColumns("e"))

	rows, err := r.db.QueryContext(ctx, query, judgeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for judge: %w", err)
	}
	defer rows.Close()

	assignments := make([]*models.JudgeAssignment, 0)
	for rows.Next() {
		var a models.JudgeAssignment
		var e models.Event
		if err := rows.Scan(
			&a.ID, &a.EventID, &a.JudgeID, &a.CreatedAt,
			&e.ID, &e.OrganizerID, &e.Name, &e.Description, &e.Theme, &e.Online, &e.Location,
			&e.StartAt, &e.EndAt, &e.RegistrationOpenAt, &e.RegistrationCloseAt,
			&e.SubmissionOpenAt, &e.SubmissionCloseAt, &e.JudgingStartAt, &e.JudgingEndAt, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assignment row: %w", err)
		}
		a.Event = &e
		assignments = append(assignments, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment rows: %w", err)
	}
	return assignments, nil
}

func prefixedEventColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.organizer_id, %[1]s.name, %[1]s.description, %[1]s.theme, %[1]s.online, %[1]s.location,
		%[1]s.start_at, %[1]s.end_at, %[1]s.registration_open_at, %[1]s.registration_close_at,
		%[1]s.submission_open_at, %[1]s.submission_close_at, %[1]s.judging_start_at, %[1]s.judging_end_at, %[1]s.created_at`, alias)
}
