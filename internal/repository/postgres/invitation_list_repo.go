package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"eventlottery/internal/domain"
)

type invitationListRepository struct {
	DB *sql.DB
}

// NewInvitationListRepository returns a domain.InvitationListRepository
// implemented with Postgres membership rows. Single-list writes are plain
// INSERT ... ON CONFLICT / DELETE statements, which keeps them commutative
// under concurrent callers; multi-list effects run in one transaction.
func NewInvitationListRepository(db *sql.DB) domain.InvitationListRepository {
	return &invitationListRepository{DB: db}
}

func (r *invitationListRepository) AddTo(ctx context.Context, eventID string, list domain.ListName, userIDs []string) error {
	if !list.Valid() {
		return domain.ErrInvalidInput
	}
	if len(userIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO invitation_list_members (event_id, list_name, user_id)
		SELECT $1, $2, unnest($3::uuid[])
		ON CONFLICT (event_id, list_name, user_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, eventID, string(list), pq.Array(userIDs))
	return err
}

func (r *invitationListRepository) RemoveFrom(ctx context.Context, eventID string, list domain.ListName, userIDs []string) error {
	if !list.Valid() {
		return domain.ErrInvalidInput
	}
	if len(userIDs) == 0 {
		return nil
	}
	query := `
		DELETE FROM invitation_list_members
		WHERE event_id = $1 AND list_name = $2 AND user_id = ANY($3::uuid[])
	`
	_, err := r.DB.ExecContext(ctx, query, eventID, string(list), pq.Array(userIDs))
	return err
}

func (r *invitationListRepository) ListMembers(ctx context.Context, eventID string, list domain.ListName) ([]string, error) {
	if !list.Valid() {
		return nil, domain.ErrInvalidInput
	}
	query := `
		SELECT user_id
		FROM invitation_list_members
		WHERE event_id = $1 AND list_name = $2
		ORDER BY added_at
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, string(list))
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

func (r *invitationListRepository) Membership(ctx context.Context, eventID, userID string) (domain.ListMembership, error) {
	query := `
		SELECT list_name
		FROM invitation_list_members
		WHERE event_id = $1 AND user_id = $2
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, userID)
	if err != nil {
		return domain.ListMembership{}, err
	}
	defer rows.Close()

	var m domain.ListMembership
	for rows.Next() {
		var list string
		if err := rows.Scan(&list); err != nil {
			return domain.ListMembership{}, err
		}
		switch domain.ListName(list) {
		case domain.ListAll:
			m.All = true
		case domain.ListWaiting:
			m.Waiting = true
		case domain.ListInvited:
			m.Invited = true
		case domain.ListFinal:
			m.Final = true
		case domain.ListCancelled:
			m.Cancelled = true
		}
	}
	return m, rows.Err()
}

// Move removes the ids from one list and adds them to the other as a unit,
// so a crash cannot leave a user in neither list.
func (r *invitationListRepository) Move(ctx context.Context, eventID string, from, to domain.ListName, userIDs []string) error {
	if !from.Valid() || !to.Valid() {
		return domain.ErrInvalidInput
	}
	if len(userIDs) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := moveMembers(ctx, tx, eventID, from, to, userIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// PromoteWinners moves the winners from waiting to invited and records the
// lottery-win notification with its recipient set, all in one transaction.
func (r *invitationListRepository) PromoteWinners(ctx context.Context, eventID string, winners []string, n *domain.Notification) error {
	if len(winners) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := moveMembers(ctx, tx, eventID, domain.ListWaiting, domain.ListInvited, winners); err != nil {
		return err
	}
	if err := insertNotification(ctx, tx, n); err != nil {
		return fmt.Errorf("create lottery notification: %w", err)
	}
	return tx.Commit()
}

// Revoke removes the user from the invited and all lists only, and prunes
// the user from every lottery-win notification of the event. The waiting,
// final, and cancelled lists are untouched and no notification is deleted,
// so the second invocation finds nothing to remove and succeeds.
func (r *invitationListRepository) Revoke(ctx context.Context, eventID, userID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM invitation_list_members
		WHERE event_id = $1 AND list_name = ANY($2::text[]) AND user_id = $3
	`, eventID, pq.Array([]string{string(domain.ListInvited), string(domain.ListAll)}), userID); err != nil {
		return fmt.Errorf("remove from invited/all: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM notification_recipients nr
		USING notifications n
		WHERE nr.notification_id = n.id
		  AND n.event_id = $1 AND n.type = $2 AND nr.user_id = $3
	`, eventID, string(domain.NotificationLotteryWin), userID); err != nil {
		return fmt.Errorf("prune notification recipient: %w", err)
	}

	return tx.Commit()
}

func moveMembers(ctx context.Context, tx *sql.Tx, eventID string, from, to domain.ListName, userIDs []string) error {
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM invitation_list_members
		WHERE event_id = $1 AND list_name = $2 AND user_id = ANY($3::uuid[])
	`, eventID, string(from), pq.Array(userIDs)); err != nil {
		return fmt.Errorf("remove from %s: %w", from, err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO invitation_list_members (event_id, list_name, user_id)
		SELECT $1, $2, unnest($3::uuid[])
		ON CONFLICT (event_id, list_name, user_id) DO NOTHING
	`, eventID, string(to), pq.Array(userIDs)); err != nil {
		return fmt.Errorf("add to %s: %w", to, err)
	}
	return nil
}

func insertNotification(ctx context.Context, tx *sql.Tx, n *domain.Notification) error {
	err := tx.QueryRowContext(ctx, `
		INSERT INTO notifications (type, event_id, event_name, message, from_name, from_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, string(n.Type), n.EventID, n.EventName, n.Message, n.From, nullableID(n.FromID), n.CreatedAt).Scan(&n.ID)
	if err != nil {
		return err
	}
	if len(n.Recipients) == 0 {
		return nil
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO notification_recipients (notification_id, user_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT (notification_id, user_id) DO NOTHING
	`, n.ID, pq.Array(n.Recipients))
	return err
}

func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}
