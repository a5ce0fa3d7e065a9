package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventlottery/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (email, name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, u.Email, u.Name, u.LastName, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, name, last_name, rating, rating_count, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	u := &domain.User{}
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.LastName, &u.Rating, &u.RatingCount, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, name, last_name, rating, rating_count, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	u := &domain.User{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.Name, &u.LastName, &u.Rating, &u.RatingCount, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetRating(ctx context.Context, userID string) (float64, int, error) {
	query := `SELECT rating, rating_count FROM users WHERE id = $1`
	var rating float64
	var count int
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&rating, &count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, domain.ErrNotFound
		}
		return 0, 0, err
	}
	return rating, count, nil
}

// ApplyRating folds a rating into the organizer's running average and
// consumes the triggering notification in a single transaction. The row is
// locked for the read-dependent update; without the lock, two concurrent
// raters would compute from the same snapshot and one rating would be lost.
func (r *userRepository) ApplyRating(ctx context.Context, organizerID string, rating float64, notificationID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var current float64
	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT rating, rating_count FROM users WHERE id = $1 FOR UPDATE`,
		organizerID,
	).Scan(&current, &count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock organizer row: %w", err)
	}

	newAverage := (current*float64(count) + rating) / float64(count+1)
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET rating = $1, rating_count = $2, updated_at = NOW() WHERE id = $3`,
		newAverage, count+1, organizerID,
	); err != nil {
		return fmt.Errorf("update rating: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM notifications WHERE id = $1`,
		notificationID,
	); err != nil {
		return fmt.Errorf("consume notification: %w", err)
	}

	return tx.Commit()
}
