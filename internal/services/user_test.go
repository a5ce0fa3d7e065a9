package services

import (
	"context"
	"testing"
	"time"

	"eventlottery/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RequestLoginCode(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a hashed code and emails the plain one", func(t *testing.T) {
		codeRepo := &fakeLoginCodeRepo{}
		emails := &fakeEmailService{}
		svc := NewUserService(newFakeUserRepo(), codeRepo, &fakeTokenIssuer{}, time.Hour, emails)

		require.NoError(t, svc.RequestLoginCode(ctx, "Alice@Example.com "))

		assert.Equal(t, "alice@example.com", codeRepo.email)
		assert.Len(t, codeRepo.codeHash, 64)
		assert.True(t, codeRepo.expiresAt.After(time.Now()))

		require.Len(t, emails.loginCodes, 1)
		sent := emails.loginCodes[0]
		assert.Equal(t, "alice@example.com", sent.Email)
		assert.Regexp(t, `^\d{6}$`, sent.Code)
		assert.Equal(t, hashLoginCode(sent.Code), codeRepo.codeHash)
	})

	t.Run("rejects malformed emails", func(t *testing.T) {
		codeRepo := &fakeLoginCodeRepo{}
		svc := NewUserService(newFakeUserRepo(), codeRepo, &fakeTokenIssuer{}, time.Hour, &fakeEmailService{})

		for _, email := range []string{"", "not-an-email", "a@b", "@example.com"} {
			err := svc.RequestLoginCode(ctx, email)
			require.ErrorIs(t, err, domain.ErrInvalidInput, "email %q", email)
		}
		assert.Empty(t, codeRepo.codeHash)
	})
}

func TestUserService_VerifyLoginCode(t *testing.T) {
	ctx := context.Background()

	t.Run("first login creates the user and issues a token", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		issuer := &fakeTokenIssuer{token: "signed-token"}
		svc := NewUserService(userRepo, &fakeLoginCodeRepo{consume: true}, issuer, time.Hour, &fakeEmailService{})

		token, user, err := svc.VerifyLoginCode(ctx, "alice@example.com", "123456")
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		require.NotNil(t, user)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, user.ID, issuer.userID)
	})

	t.Run("returning user is reused", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		existing := userRepo.add(&domain.User{Email: "alice@example.com", Name: "Alice"})
		svc := NewUserService(userRepo, &fakeLoginCodeRepo{consume: true}, &fakeTokenIssuer{token: "t"}, time.Hour, &fakeEmailService{})

		_, user, err := svc.VerifyLoginCode(ctx, "alice@example.com", "123456")
		require.NoError(t, err)
		assert.Equal(t, existing.ID, user.ID)
		assert.Len(t, userRepo.byID, 1)
	})

	t.Run("unconsumed code is rejected", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo(), &fakeLoginCodeRepo{consume: false}, &fakeTokenIssuer{}, time.Hour, &fakeEmailService{})

		_, _, err := svc.VerifyLoginCode(ctx, "alice@example.com", "123456")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("code format is validated before storage is hit", func(t *testing.T) {
		codeRepo := &fakeLoginCodeRepo{consume: true}
		svc := NewUserService(newFakeUserRepo(), codeRepo, &fakeTokenIssuer{}, time.Hour, &fakeEmailService{})

		for _, code := range []string{"", "12345", "1234567", "abcdef"} {
			_, _, err := svc.VerifyLoginCode(ctx, "alice@example.com", code)
			require.ErrorIs(t, err, domain.ErrInvalidInput, "code %q", code)
		}
	})
}

func TestUserService_GetByID(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	existing := userRepo.add(&domain.User{Email: "alice@example.com"})
	svc := NewUserService(userRepo, &fakeLoginCodeRepo{}, &fakeTokenIssuer{}, time.Hour, &fakeEmailService{})

	user, err := svc.GetByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)

	_, err = svc.GetByID(ctx, "nonexistent")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
