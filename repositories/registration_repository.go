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
	ErrRegistrationNotFound     = errors.New("registration not found")
	ErrRegistrationConflict     = errors.New("user is already registered for this event")
	ErrRegistrationEventInvalid = errors.New("registration event conflict or invalid")
	ErrRegistrationUserInvalid  = errors.New("registration user conflict or invalid")
)

type RegistrationRepository interface {
	// Create — единственный атомарный INSERT: гонка двух конкурентных
	// регистраций разрешается uniqueness constraint'ом, не проверкой до записи.
	Create(ctx context.Context, reg *models.Registration) error
	FindByUserAndEvent(ctx context.Context, userID, eventID int) (*models.Registration, error)
	ListByEvent(ctx context.Context, eventID int) ([]*models.Registration, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Registration, error)
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	query := `
		INSERT INTO registrations (event_id, user_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, reg.EventID, reg.UserID).Scan(&reg.ID, &reg.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				if pqErr.Constraint == "registrations_user_id_event_id_key" {
					return ErrRegistrationConflict
				}
			case "23503": // foreign_key_violation
				switch pqErr.Constraint {
				case "registrations_event_id_fkey":
					return ErrRegistrationEventInvalid
				case "registrations_user_id_fkey":
					return ErrRegistrationUserInvalid
				}
			}
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *postgresRegistrationRepository) FindByUserAndEvent(ctx context.Context, userID, eventID int) (*models.Registration, error) {
	query := `SELECT id, event_id, user_id, created_at FROM registrations WHERE user_id = $1 AND event_id = $2`

	reg := &models.Registration{}
	err := r.db.QueryRowContext(ctx, query, userID, eventID).
		Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to find registration: %w", err)
	}
	return reg, nil
}

func (r *postgresRegistrationRepository) ListByEvent(ctx context.Context, eventID int) ([]*models.Registration, error) {
	query := `
		SELECT r.id, r.event_id, r.user_id, r.created_at,
			u.id, u.name, u.email, u.role, u.created_at
		FROM registrations r
		JOIN users u ON r.user_id = u.id
		WHERE r.event_id = $1
		ORDER BY r.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations by event: %w", err)
	}
	defer rows.Close()

	regs := make([]*models.Registration, 0)
	for rows.Next() {
		var reg models.Registration
		var u models.User
		if err := rows.Scan(
			&reg.ID, &reg.EventID, &reg.UserID, &reg.CreatedAt,
			&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", err)
		}
		reg.User = &u
		regs = append(regs, &reg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}
	return regs, nil
}

func (r *postgresRegistrationRepository) ListByUser(ctx context.Context, userID int) ([]*models.Registration, error) {
	query := `SELECT id, event_id, user_id, created_at FROM registrations WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations by user: %w", err)
	}
	defer rows.Close()

	regs := make([]*models.Registration, 0)
	for rows.Next() {
		var reg models.Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", err)
		}
		regs = append(regs, &reg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}
	return regs, nil
}
