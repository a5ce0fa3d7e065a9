package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventlottery/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (organizer_id, name, capacity, entrants_to_draw, start_time, end_time, selection_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.OrganizerID, e.Name, e.Capacity, e.EntrantsToDraw,
		e.StartTime, e.EndTime, e.SelectionDate, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, organizer_id, name, capacity, entrants_to_draw, start_time, end_time, selection_date, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var selectionNull sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.OrganizerID, &e.Name, &e.Capacity, &e.EntrantsToDraw,
		&e.StartTime, &e.EndTime, &selectionNull, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if selectionNull.Valid {
		e.SelectionDate = &selectionNull.Time
	}
	return e, nil
}

// AddToWaitlist is a set-union write: inserting an existing membership row is
// a no-op, so two concurrent joins for the same user collapse to one.
func (r *eventRepository) AddToWaitlist(ctx context.Context, eventID, userID string, lat, lng *float64) error {
	query := `
		INSERT INTO event_waitlist (event_id, user_id, lat, lng)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, eventID, userID, lat, lng)
	return err
}

// RemoveFromWaitlist is a set-difference write; removing an absent user
// affects zero rows and is not an error.
func (r *eventRepository) RemoveFromWaitlist(ctx context.Context, eventID, userID string) error {
	query := `DELETE FROM event_waitlist WHERE event_id = $1 AND user_id = $2`
	_, err := r.DB.ExecContext(ctx, query, eventID, userID)
	return err
}

func (r *eventRepository) ListWaitlist(ctx context.Context, eventID string) ([]string, error) {
	query := `
		SELECT user_id
		FROM event_waitlist
		WHERE event_id = $1
		ORDER BY created_at
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
