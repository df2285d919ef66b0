package services

import (
	"context"
	"errors"
	"testing"

	"eventrewards/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMailer struct {
	msg domain.EmailMessage
	err error
}

func (m *mockMailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	m.msg = msg
	return m.err
}

type mockRenderer struct {
	name string
	data any
	err  error
}

func (m *mockRenderer) Render(templateName string, data any) (string, string, string, error) {
	m.name, m.data = templateName, data
	if m.err != nil {
		return "", "", "", m.err
	}
	return "You earned a reward", "<p>reward</p>", "reward", nil
}

func TestEmailService_SendRewardCredited(t *testing.T) {
	ctx := context.Background()
	data := &domain.RewardCreditedEmailData{Email: "alice@example.com", Point: 100, TotalPoint: 110}

	t.Run("renders and sends", func(t *testing.T) {
		mailer, renderer := &mockMailer{}, &mockRenderer{}
		svc := NewEmailService(mailer, renderer, discardLogger())

		require.NoError(t, svc.SendRewardCredited(ctx, data))
		assert.Equal(t, "reward_credited", renderer.name)
		assert.Same(t, data, renderer.data)
		assert.Equal(t, "alice@example.com", mailer.msg.To)
		assert.Equal(t, "You earned a reward", mailer.msg.Subject)
	})

	t.Run("nil data", func(t *testing.T) {
		svc := NewEmailService(&mockMailer{}, &mockRenderer{}, discardLogger())
		require.Error(t, svc.SendRewardCredited(ctx, nil))
	})

	t.Run("render error", func(t *testing.T) {
		mailer := &mockMailer{}
		svc := NewEmailService(mailer, &mockRenderer{err: errors.New("missing template")}, discardLogger())
		require.Error(t, svc.SendRewardCredited(ctx, data))
		assert.Empty(t, mailer.msg.To)
	})

	t.Run("send error", func(t *testing.T) {
		sendErr := errors.New("ses down")
		svc := NewEmailService(&mockMailer{err: sendErr}, &mockRenderer{}, discardLogger())
		require.ErrorIs(t, svc.SendRewardCredited(ctx, data), sendErr)
	})
}
