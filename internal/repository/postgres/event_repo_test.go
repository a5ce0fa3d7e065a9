package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"eventlottery/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestEventRepository_AddToWaitlist(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts the membership row", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		lat, lng := 49.28, -123.12
		mock.ExpectExec(`INSERT INTO event_waitlist`).
			WithArgs("ev-1", "u1", &lat, &lng).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewEventRepository(db).AddToWaitlist(ctx, "ev-1", "u1", &lat, &lng))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate join affects zero rows and still succeeds", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`INSERT INTO event_waitlist`).
			WithArgs("ev-1", "u1", nil, nil).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, NewEventRepository(db).AddToWaitlist(ctx, "ev-1", "u1", nil, nil))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_RemoveFromWaitlist(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the membership row", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM event_waitlist`).
			WithArgs("ev-1", "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewEventRepository(db).RemoveFromWaitlist(ctx, "ev-1", "u1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent user affects zero rows and still succeeds", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM event_waitlist`).
			WithArgs("ev-1", "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, NewEventRepository(db).RemoveFromWaitlist(ctx, "ev-1", "ghost"))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("scans the event row", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		end := start.Add(2 * time.Hour)
		created := start.Add(-24 * time.Hour)

		mock.ExpectQuery(`SELECT id, organizer_id, name, capacity, entrants_to_draw`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "organizer_id", "name", "capacity", "entrants_to_draw",
				"start_time", "end_time", "selection_date", "created_at", "updated_at",
			}).AddRow("ev-1", "org-1", "Spring Run", 100, 20, start, end, nil, created, created))

		event, err := NewEventRepository(db).GetByID(ctx, "ev-1")
		require.NoError(t, err)
		require.Equal(t, "ev-1", event.ID)
		require.Equal(t, "org-1", event.OrganizerID)
		require.Equal(t, 20, event.EntrantsToDraw)
		require.Nil(t, event.SelectionDate)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing event is NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, organizer_id, name, capacity, entrants_to_draw`).
			WithArgs("nonexistent").
			WillReturnError(sql.ErrNoRows)

		_, err = NewEventRepository(db).GetByID(ctx, "nonexistent")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
