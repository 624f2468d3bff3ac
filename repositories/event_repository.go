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
	ErrEventNotFound         = errors.New("event not found")
	ErrEventOrganizerInvalid = errors.New("event organizer conflict or invalid")
)

// ListEventsFilter задаёт опциональные фильтры для списка событий.
type ListEventsFilter struct {
	OrganizerID *int
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	List(ctx context.Context, filter ListEventsFilter) ([]*models.Event, error)
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

// eventColumns включает коррелированные подзапросы на счётчики,
// поэтому выборка всегда идёт из events с алиасом e.
const eventColumns = `e.id, e.organizer_id, e.name, e.description, e.theme, e.online, e.location,
	e.start_at, e.end_at, e.registration_open_at, e.registration_close_at,
	e.submission_open_at, e.submission_close_at, e.judging_start_at, e.judging_end_at, e.created_at,
	(SELECT COUNT(*) FROM registrations reg WHERE reg.event_id = e.id) AS registration_count,
	(SELECT COUNT(*) FROM teams t WHERE t.event_id = e.id) AS team_count`

func (r *postgresEventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (organizer_id, name, description, theme, online, location,
			start_at, end_at, registration_open_at, registration_close_at,
			submission_open_at, submission_close_at, judging_start_at, judging_end_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		event.OrganizerID,
		event.Name,
		event.Description,
		event.Theme,
		event.Online,
		event.Location,
		event.StartAt,
		event.EndAt,
		event.RegistrationOpenAt,
		event.RegistrationCloseAt,
		event.SubmissionOpenAt,
		event.SubmissionCloseAt,
		event.JudgingStartAt,
		event.JudgingEndAt,
	).Scan(&event.ID, &event.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" && pqErr.Constraint == "events_organizer_id_fkey" {
				return ErrEventOrganizerInvalid
			}
		}
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *postgresEventRepository) scanEvent(rowScanner interface {
	Scan(dest ...interface{}) error
}, e *models.Event) error {
	return rowScanner.Scan(
		&e.ID,
		&e.OrganizerID,
		&e.Name,
		&e.Description,
		&e.Theme,
		&e.Online,
		&e.Location,
		&e.StartAt,
		&e.EndAt,
		&e.RegistrationOpenAt,
		&e.RegistrationCloseAt,
		&e.SubmissionOpenAt,
		&e.SubmissionCloseAt,
		&e.JudgingStartAt,
		&e.JudgingEndAt,
		&e.CreatedAt,
		&e.RegistrationCount,
		&e.TeamCount,
	)
}

func (r *postgresEventRepository) GetByID(ctx context.Context, id int) (*models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events e WHERE e.id = $1`, eventColumns)

	e := &models.Event{}
	err := r.scanEvent(r.db.QueryRowContext(ctx, query, id), e)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return e, nil
}

func (r *postgresEventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events SET
			name = $1, description = $2, theme = $3, online = $4, location = $5,
			start_at = $6, end_at = $7,
			registration_open_at = $8, registration_close_at = $9,
			submission_open_at = $10, submission_close_at = $11,
			judging_start_at = $12, judging_end_at = $13
		WHERE id = $14`

	result, err := r.db.ExecContext(ctx, query,
		event.Name,
		event.Description,
		event.Theme,
		event.Online,
		event.Location,
		event.StartAt,
		event.EndAt,
		event.RegistrationOpenAt,
		event.RegistrationCloseAt,
		event.SubmissionOpenAt,
		event.SubmissionCloseAt,
		event.JudgingStartAt,
		event.JudgingEndAt,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) List(ctx context.Context, filter ListEventsFilter) ([]*models.Event, error) {
	var queryBuilder strings.Builder
	args := []interface{}{}

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s FROM events e`, eventColumns))
	if filter.OrganizerID != nil {
		args = append(args, *filter.OrganizerID)
		queryBuilder.WriteString(fmt.Sprintf(" WHERE e.organizer_id = $%d", len(args)))
	}
	queryBuilder.WriteString(" ORDER BY e.start_at DESC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.Event, 0)
	for rows.Next() {
		var e models.Event
		if err := r.scanEvent(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}
	return events, nil
}
