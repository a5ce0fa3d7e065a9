package services

import (
	"context"
	"testing"
	"time"

	"eventlottery/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitlistService_Join(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("adds the user to the waitlist", func(t *testing.T) {
		repo := newFakeEventRepo()
		event := repo.add(domain.NewEvent("org-1", "Spring Run", 100, 20, now, now.Add(2*time.Hour), now, now))
		svc := NewWaitlistService(repo)

		err := svc.Join(ctx, event.ID, "user-1", nil, nil)
		require.NoError(t, err)
		assert.True(t, repo.waitlist[event.ID]["user-1"])
	})

	t.Run("joining twice leaves one membership", func(t *testing.T) {
		repo := newFakeEventRepo()
		event := repo.add(domain.NewEvent("org-1", "Spring Run", 100, 20, now, now.Add(2*time.Hour), now, now))
		svc := NewWaitlistService(repo)

		require.NoError(t, svc.Join(ctx, event.ID, "user-1", nil, nil))
		require.NoError(t, svc.Join(ctx, event.ID, "user-1", nil, nil))

		ids, err := repo.ListWaitlist(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"user-1"}, ids)
	})

	t.Run("joining a missing event is NotFound", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewWaitlistService(repo)

		err := svc.Join(ctx, "nonexistent", "user-1", nil, nil)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, repo.waitlist["nonexistent"])
	})

	t.Run("stores the optional signup location", func(t *testing.T) {
		repo := newFakeEventRepo()
		event := repo.add(domain.NewEvent("org-1", "Spring Run", 100, 20, now, now.Add(2*time.Hour), now, now))
		svc := NewWaitlistService(repo)

		lat, lng := 49.28, -123.12
		require.NoError(t, svc.Join(ctx, event.ID, "user-1", &lat, &lng))
		assert.True(t, repo.waitlist[event.ID]["user-1"])
	})
}

func TestWaitlistService_Leave(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("removes the user from the waitlist", func(t *testing.T) {
		repo := newFakeEventRepo()
		event := repo.add(domain.NewEvent("org-1", "Spring Run", 100, 20, now, now.Add(2*time.Hour), now, now))
		svc := NewWaitlistService(repo)

		require.NoError(t, svc.Join(ctx, event.ID, "user-1", nil, nil))
		require.NoError(t, svc.Leave(ctx, event.ID, "user-1"))
		assert.False(t, repo.waitlist[event.ID]["user-1"])
	})

	t.Run("leaving while absent is a no-op", func(t *testing.T) {
		repo := newFakeEventRepo()
		event := repo.add(domain.NewEvent("org-1", "Spring Run", 100, 20, now, now.Add(2*time.Hour), now, now))
		svc := NewWaitlistService(repo)

		require.NoError(t, svc.Join(ctx, event.ID, "user-1", nil, nil))
		err := svc.Leave(ctx, event.ID, "user-2")
		require.NoError(t, err)

		ids, err := repo.ListWaitlist(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"user-1"}, ids)
	})
}
