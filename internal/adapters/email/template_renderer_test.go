package email

import (
	"testing"

	"eventlottery/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_Render(t *testing.T) {
	r := NewTemplateRenderer()

	t.Run("login code", func(t *testing.T) {
		data := &domain.LoginCodeEmailData{
			Email:            "alice@example.com",
			Code:             "123456",
			ExpiresInMinutes: 15,
		}
		subject, html, text, err := r.Render("login_code", data)
		require.NoError(t, err)
		assert.Equal(t, "Your login code", subject)
		assert.Contains(t, html, "123456")
		assert.Contains(t, text, "123456")
		assert.Contains(t, text, "15 minutes")
	})

	t.Run("lottery win", func(t *testing.T) {
		data := &domain.NotificationEmailData{
			Email:     "winner@example.com",
			EventName: "Spring Run",
			Message:   "You have been selected.",
			From:      "Spring Run",
		}
		subject, html, text, err := r.Render("lottery_win", data)
		require.NoError(t, err)
		assert.Contains(t, subject, "Spring Run")
		assert.Contains(t, html, "Spring Run")
		assert.Contains(t, text, "You have been selected.")
	})

	t.Run("rating request", func(t *testing.T) {
		data := &domain.NotificationEmailData{
			Email:     "u1@example.com",
			EventName: "Spring Run",
			Message:   "Tell us how it went.",
			From:      "Ana Silva",
		}
		subject, _, text, err := r.Render("rating_request", data)
		require.NoError(t, err)
		assert.NotEmpty(t, subject)
		assert.Contains(t, text, "Tell us how it went.")
	})

	t.Run("unknown template errors", func(t *testing.T) {
		_, _, _, err := r.Render("nonexistent", nil)
		require.Error(t, err)
	})
}
