package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"github.com/MNodiridev/xfit/internal/phone"
)

// Outcome reports what happened to one notification attempt. Skipped means
// the mailer has no transport configured, which is a normal condition and
// distinct from a delivery failure.
type Outcome int

const (
	Delivered Outcome = iota
	Skipped
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Delivered:
		return "delivered"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

const dialTimeout = 10 * time.Second

// Config holds the SMTP transport settings and the message envelope.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// StartTLS upgrades a plain connection; otherwise implicit TLS is used.
	StartTLS bool
	From     string
	To       string
	ClubName string
}

// Mailer sends one email per accepted guest-visit request to the sales inbox.
// Sends are single-shot and best-effort: no retries, and a failure never
// propagates past Notify.
type Mailer struct {
	cfg  Config
	log  zerolog.Logger
	send func(ctx context.Context, msg *mail.Msg) error
}

// NewMailer creates a mailer. An incompletely configured transport is
// allowed; Notify will report Skipped until host, credentials, and recipient
// are all present.
func NewMailer(cfg Config, log zerolog.Logger) *Mailer {
	m := &Mailer{
		cfg: cfg,
		log: log.With().Str("component", "notify").Logger(),
	}
	m.send = m.smtpSend
	return m
}

// Configured reports whether the transport has everything it needs to send.
func (m *Mailer) Configured() bool {
	c := m.cfg
	return c.Host != "" && c.Username != "" && c.Password != "" && c.From != "" && c.To != ""
}

// Notify composes and sends the new-request email. The request is already
// durably stored by the time this runs; the outcome only ever affects the
// wording of the user-facing confirmation.
func (m *Mailer) Notify(ctx context.Context, id int64, name, phoneNum string, userID int64, username string) Outcome {
	if !m.Configured() {
		m.log.Warn().Int64("request_id", id).Msg("SMTP not configured; skipping email")
		return Skipped
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		m.log.Error().Err(err).Str("from", m.cfg.From).Msg("invalid sender address")
		return Failed
	}
	if err := msg.To(m.cfg.To); err != nil {
		m.log.Error().Err(err).Str("to", m.cfg.To).Msg("invalid recipient address")
		return Failed
	}
	msg.Subject(fmt.Sprintf("Заявка с ТГ бота №%d", id))
	msg.SetBodyString(mail.TypeTextPlain, m.composeBody(id, name, phoneNum, userID, username, time.Now().UTC()))

	if err := m.send(ctx, msg); err != nil {
		m.log.Error().Err(err).Int64("request_id", id).Msg("email send failed")
		return Failed
	}

	m.log.Info().Int64("request_id", id).Str("to", m.cfg.To).Msg("email sent")
	return Delivered
}

func (m *Mailer) composeBody(id int64, name, phoneNum string, userID int64, username string, now time.Time) string {
	display := phoneNum
	if pretty := phone.Pretty(phoneNum); pretty != phoneNum {
		display = fmt.Sprintf("%s (%s)", phoneNum, pretty)
	}
	return fmt.Sprintf(
		"Новая заявка на гостевой визит в %s\n\n"+
			"ID заявки: %d\n"+
			"Имя: %s\n"+
			"Телефон: %s\n"+
			"TG user: @%s\n"+
			"TG user id: %d\n"+
			"Дата (UTC): %s\n",
		m.cfg.ClubName, id, name, display, username, userID, now.Format(time.RFC3339),
	)
}

func (m *Mailer) smtpSend(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTimeout(dialTimeout),
	}
	if m.cfg.StartTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithSSL())
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}
