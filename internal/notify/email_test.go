package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/wneessen/go-mail"
)

func fullConfig() Config {
	return Config{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "bot@x-fit.tj",
		Password: "secret",
		StartTLS: true,
		From:     "bot@x-fit.tj",
		To:       "sales@x-fit.tj",
		ClubName: "X-fit Premium Dushanbe",
	}
}

func TestNotifySkippedWhenUnconfigured(t *testing.T) {
	for _, missing := range []func(*Config){
		func(c *Config) { c.Host = "" },
		func(c *Config) { c.Username = "" },
		func(c *Config) { c.Password = "" },
		func(c *Config) { c.To = "" },
	} {
		cfg := fullConfig()
		missing(&cfg)
		m := NewMailer(cfg, zerolog.Nop())

		sent := false
		m.send = func(context.Context, *mail.Msg) error { sent = true; return nil }

		got := m.Notify(context.Background(), 1, "Ali", "+992900000000", 42, "ali")
		assert.Equal(t, Skipped, got)
		assert.False(t, sent, "an unconfigured mailer must not attempt a send")
	}
}

func TestNotifyDelivered(t *testing.T) {
	m := NewMailer(fullConfig(), zerolog.Nop())

	var captured *mail.Msg
	m.send = func(_ context.Context, msg *mail.Msg) error { captured = msg; return nil }

	got := m.Notify(context.Background(), 7, "Ali Rahimov", "+992900000000", 42, "ali")
	assert.Equal(t, Delivered, got)
	assert.NotNil(t, captured)
	assert.Equal(t, "Заявка с ТГ бота №7", captured.GetGenHeader(mail.HeaderSubject)[0])
}

func TestNotifyFailed(t *testing.T) {
	m := NewMailer(fullConfig(), zerolog.Nop())
	m.send = func(context.Context, *mail.Msg) error { return errors.New("connection refused") }

	got := m.Notify(context.Background(), 7, "Ali", "+992900000000", 42, "ali")
	assert.Equal(t, Failed, got)
}

func TestComposeBody(t *testing.T) {
	m := NewMailer(fullConfig(), zerolog.Nop())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	body := m.composeBody(7, "Ali Rahimov", "+992900000000", 42, "ali", now)

	assert.Contains(t, body, "X-fit Premium Dushanbe")
	assert.Contains(t, body, "ID заявки: 7")
	assert.Contains(t, body, "Имя: Ali Rahimov")
	assert.Contains(t, body, "+992900000000")
	assert.Contains(t, body, "@ali")
	assert.Contains(t, body, "TG user id: 42")
	assert.Contains(t, body, "2025-06-01T12:00:00Z")
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "delivered", Delivered.String())
	assert.Equal(t, "skipped", Skipped.String())
	assert.Equal(t, "failed", Failed.String())
}
