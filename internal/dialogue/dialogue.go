// Package dialogue implements the guest-visit intake conversation: a small
// per-chat state machine that collects a name and a phone number, stores the
// resulting request, and notifies the sales inbox.
package dialogue

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/MNodiridev/xfit/internal/notify"
	"github.com/MNodiridev/xfit/internal/phone"
)

// State is the position of one chat inside the intake flow.
type State int

const (
	StateMenu State = iota
	StateAwaitName
	StateAwaitPhone
)

// Keyboard selects which quick-reply affordance accompanies an outgoing
// message.
type Keyboard int

const (
	// KeyboardMenu shows the main menu buttons.
	KeyboardMenu Keyboard = iota
	// KeyboardNone removes any custom keyboard.
	KeyboardNone
	// KeyboardPhone shows the share-contact and back-to-menu buttons.
	KeyboardPhone
)

// Message is one inbound chat message, detached from the transport's types.
type Message struct {
	ChatID   int64
	UserID   int64
	Username string
	Text     string
	// ContactPhone is set when the user shared a contact instead of typing;
	// it takes precedence over Text.
	ContactPhone string
}

// Store persists accepted requests and issues their ids.
type Store interface {
	InsertVisit(ctx context.Context, name, phone string, userID int64, username string) (int64, error)
}

// Notifier reports an accepted request to the sales inbox.
type Notifier interface {
	Notify(ctx context.Context, id int64, name, phone string, userID int64, username string) notify.Outcome
}

// Replier sends a message back to a chat with the given quick-reply keyboard.
type Replier interface {
	Reply(chatID int64, text string, kb Keyboard) error
}

const (
	promptName         = "🎟️ Гостевой визит.\n\nВведите, пожалуйста, ваше имя (как к вам обращаться)?"
	promptNameTooShort = "Имя слишком короткое. Введите имя ещё раз:"
	promptBadPhone     = "Не удалось распознать номер. Отправьте контакт кнопкой ниже или введите номер в формате +XXXXXXXXXXX:"
	msgCancelled       = "Отменено. Главное меню:"
	msgStoreFailed     = "Произошла ошибка при сохранении заявки. Попробуйте позже."
	emailCaveat        = "\n\n⚠️ Письмо на почту не отправлено."

	promptPhone = "Отлично! Теперь отправьте номер телефона.\n" +
		"• Нажмите кнопку ниже, чтобы отправить номер из Telegram\n" +
		"• Или введите номер текстом (например: +992 900 000 000)"
)

// Manager owns every chat's dialogue session and drives the intake flow.
// Sessions are created on demand and processed one message at a time.
type Manager struct {
	store    Store
	notifier Notifier
	replier  Replier
	log      zerolog.Logger

	mu       sync.Mutex
	sessions map[int64]*session
}

type session struct {
	mu          sync.Mutex
	state       State
	pendingName string
}

func (s *session) reset() {
	s.state = StateMenu
	s.pendingName = ""
}

// NewManager creates a dialogue manager.
func NewManager(store Store, notifier Notifier, replier Replier, log zerolog.Logger) *Manager {
	return &Manager{
		store:    store,
		notifier: notifier,
		replier:  replier,
		log:      log.With().Str("component", "dialogue").Logger(),
		sessions: make(map[int64]*session),
	}
}

// IsGuestVisitTrigger reports whether text starts the guest-visit flow,
// either as the exact menu button or as a keyword anywhere in the message.
func IsGuestVisitTrigger(text string) bool {
	return strings.Contains(strings.ToLower(text), "гостевой")
}

func isCancel(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "↩️ назад в меню", "назад", "отмена", "cancel", "/cancel", "/menu", "/start":
		return true
	}
	return false
}

// HandleMessage advances the sender's session by one turn. It returns false
// when the message belongs to the idle menu and is not an entry trigger, so
// the caller can resolve it as a static menu request instead.
func (m *Manager) HandleMessage(ctx context.Context, msg Message) (bool, error) {
	s := m.session(msg.ChatID)
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateAwaitName:
		return true, m.handleName(ctx, s, msg)
	case StateAwaitPhone:
		return true, m.handlePhone(ctx, s, msg)
	default:
		if !IsGuestVisitTrigger(msg.Text) {
			return false, nil
		}
		return true, m.startIntake(s, msg)
	}
}

// StateOf returns the current state for a chat, creating no session.
func (m *Manager) StateOf(chatID int64) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[chatID]; ok {
		return s.state
	}
	return StateMenu
}

// Evict drops a chat's session. Intended for an external idle-timeout sweep;
// an evicted chat starts from the menu on its next message.
func (m *Manager) Evict(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
}

func (m *Manager) session(chatID int64) *session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[chatID]
	if !ok {
		s = &session{}
		m.sessions[chatID] = s
	}
	return s
}

func (m *Manager) startIntake(s *session, msg Message) error {
	s.pendingName = ""
	s.state = StateAwaitName
	return m.replier.Reply(msg.ChatID, promptName, KeyboardNone)
}

func (m *Manager) cancel(s *session, msg Message) error {
	s.reset()
	return m.replier.Reply(msg.ChatID, msgCancelled, KeyboardMenu)
}

func (m *Manager) handleName(ctx context.Context, s *session, msg Message) error {
	if isCancel(msg.Text) {
		return m.cancel(s, msg)
	}
	// A fresh entry trigger restarts the flow instead of becoming a name.
	if IsGuestVisitTrigger(msg.Text) {
		return m.startIntake(s, msg)
	}

	name := strings.TrimSpace(msg.Text)
	if len([]rune(name)) < 2 {
		return m.replier.Reply(msg.ChatID, promptNameTooShort, KeyboardNone)
	}

	s.pendingName = name
	s.state = StateAwaitPhone
	return m.replier.Reply(msg.ChatID, promptPhone, KeyboardPhone)
}

func (m *Manager) handlePhone(ctx context.Context, s *session, msg Message) error {
	if msg.ContactPhone == "" && isCancel(msg.Text) {
		return m.cancel(s, msg)
	}
	if msg.ContactPhone == "" && IsGuestVisitTrigger(msg.Text) {
		return m.startIntake(s, msg)
	}

	input := msg.Text
	if msg.ContactPhone != "" {
		input = msg.ContactPhone
	}

	canonical, err := phone.Normalize(input)
	if err != nil {
		return m.replier.Reply(msg.ChatID, promptBadPhone, KeyboardPhone)
	}
	return m.accept(ctx, s, msg, canonical)
}

// accept runs the acceptance procedure: store first, then notify, then
// confirm. A storage failure aborts before notification and never shows an
// id; a notification failure only softens the confirmation.
func (m *Manager) accept(ctx context.Context, s *session, msg Message, canonical string) error {
	name := s.pendingName
	s.reset()

	id, err := m.store.InsertVisit(ctx, name, canonical, msg.UserID, msg.Username)
	if err != nil {
		m.log.Error().Err(err).Int64("chat_id", msg.ChatID).Msg("guest visit insert failed")
		return m.replier.Reply(msg.ChatID, msgStoreFailed, KeyboardMenu)
	}

	outcome := m.notifier.Notify(ctx, id, name, canonical, msg.UserID, msg.Username)

	confirm := fmt.Sprintf(
		"Спасибо! Заявка №%d принята.\nИмя: %s\nТелефон: %s\n\n"+
			"Мы свяжемся с вами для подтверждения гостевого визита.",
		id, name, canonical,
	)
	if outcome != notify.Delivered {
		confirm += emailCaveat
	}

	m.log.Info().
		Int64("request_id", id).
		Int64("chat_id", msg.ChatID).
		Stringer("email", outcome).
		Msg("guest visit accepted")

	return m.replier.Reply(msg.ChatID, confirm, KeyboardMenu)
}
