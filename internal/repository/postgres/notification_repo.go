package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventlottery/internal/domain"
)

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) domain.NotificationRepository {
	return &notificationRepository{DB: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := insertNotification(ctx, tx, n); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	query := `
		SELECT n.id, n.type, COALESCE(n.event_id::text, ''), n.event_name, n.message, n.from_name, COALESCE(n.from_id::text, ''), n.created_at,
		       COALESCE(array_agg(nr.user_id::text) FILTER (WHERE nr.user_id IS NOT NULL), '{}')
		FROM notifications n
		LEFT JOIN notification_recipients nr ON nr.notification_id = n.id
		WHERE n.id = $1
		GROUP BY n.id
	`
	n := &domain.Notification{}
	var typ string
	var recipients pq.StringArray
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&n.ID, &typ, &n.EventID, &n.EventName, &n.Message, &n.From, &n.FromID, &n.CreatedAt, &recipients,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	n.Type = domain.NotificationType(typ)
	n.Recipients = []string(recipients)
	return n, nil
}

// RemoveRecipient deletes the user from the recipient set of every matching
// notification. Parent notification rows are never touched here, even when
// a recipient set becomes empty.
func (r *notificationRepository) RemoveRecipient(ctx context.Context, eventID string, t domain.NotificationType, userID string) error {
	query := `
		DELETE FROM notification_recipients nr
		USING notifications n
		WHERE nr.notification_id = n.id
		  AND n.event_id = $1 AND n.type = $2 AND nr.user_id = $3
	`
	_, err := r.DB.ExecContext(ctx, query, eventID, string(t), userID)
	return err
}

func (r *notificationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.Notification, int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM notification_recipients
		WHERE user_id = $1
	`, userID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT n.id, n.type, COALESCE(n.event_id::text, ''), n.event_name, n.message, n.from_name, COALESCE(n.from_id::text, ''), n.created_at
		FROM notifications n
		JOIN notification_recipients nr ON nr.notification_id = n.id
		WHERE nr.user_id = $1
		ORDER BY n.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		n := &domain.Notification{}
		var typ string
		if err := rows.Scan(&n.ID, &typ, &n.EventID, &n.EventName, &n.Message, &n.From, &n.FromID, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		n.Type = domain.NotificationType(typ)
		notifications = append(notifications, n)
	}
	return notifications, total, rows.Err()
}
