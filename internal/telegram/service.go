package telegram

import (
	"context"
	"fmt"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/MNodiridev/xfit/internal/dialogue"
)

// Handler consumes inbound messages before the static menu gets a chance.
// It reports whether it handled the message.
type Handler interface {
	HandleMessage(ctx context.Context, msg dialogue.Message) (bool, error)
}

// Config holds the bot token and the club texts served from the static menu.
type Config struct {
	Token    string
	ClubName string

	WorkingHours    string
	ScheduleText    string
	TrainersText    string
	PricingText     string
	FeedbackFormURL string

	ClubPhone   string
	ClubEmail   string
	ClubAddress string
	ClubWebsite string
	ClubMapURL  string
}

// Service is the Telegram transport: it long-polls for updates, routes each
// message through the dialogue handler, and falls back to the static menu.
type Service struct {
	bot     *tgbotapi.BotAPI
	cfg     *Config
	log     zerolog.Logger
	handler Handler
}

// Menu button labels. The entry-trigger and back buttons double as the
// dialogue's keywords.
const (
	btnSchedule   = "📆 Расписание"
	btnTrainers   = "🧑‍🏫 Тренеры"
	btnPricing    = "💳 Абонементы"
	btnContacts   = "📞 Контакты"
	btnGuestVisit = "🎟️ Гостевой визит"
	btnFeedback   = "✍ Жалобы и предложения"
	btnSharePhone = "📲 Отправить мой номер из Telegram"
	btnBackToMenu = "↩️ Назад в меню"
)

// NewService creates a Telegram service and verifies the token against the
// Bot API.
func NewService(cfg *Config) (*Service, error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "telegram").Logger()

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info().Str("username", bot.Self.UserName).Msg("authorized on Telegram")

	return &Service{
		bot: bot,
		cfg: cfg,
		log: logger,
	}, nil
}

// SetHandler sets the dialogue handler for incoming messages.
func (s *Service) SetHandler(handler Handler) {
	s.handler = handler
}

// Run long-polls for updates until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := s.bot.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			s.bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			s.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage routes one inbound message: the dialogue first, then the
// static menu.
func (s *Service) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	in := dialogue.Message{
		ChatID: msg.Chat.ID,
		Text:   msg.Text,
	}
	if msg.From != nil {
		in.UserID = msg.From.ID
		in.Username = msg.From.UserName
	}
	if msg.Contact != nil {
		in.ContactPhone = msg.Contact.PhoneNumber
	}

	if s.handler != nil {
		handled, err := s.handler.HandleMessage(ctx, in)
		if err != nil {
			s.log.Error().Err(err).Int64("chat_id", in.ChatID).Msg("error handling message")
			return
		}
		if handled {
			return
		}
	}

	if err := s.Reply(in.ChatID, s.staticReply(msg.Text), dialogue.KeyboardMenu); err != nil {
		s.log.Error().Err(err).Int64("chat_id", in.ChatID).Msg("error sending menu reply")
	}
}

// staticReply resolves a menu request to its informational text. Unrecognized
// input re-shows the menu with a hint.
func (s *Service) staticReply(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.HasPrefix(lower, "/start"):
		return fmt.Sprintf("Добро пожаловать в %s! Выберите раздел:", s.cfg.ClubName)
	case strings.HasPrefix(lower, "/menu"), strings.HasPrefix(lower, "/cancel"):
		return "Главное меню:"
	case strings.Contains(lower, "расписание"):
		return s.cfg.ScheduleText
	case strings.Contains(lower, "тренер"):
		return s.cfg.TrainersText
	case strings.Contains(lower, "абонемент"), strings.Contains(lower, "стоимость"):
		return s.cfg.PricingText
	case strings.Contains(lower, "контакты"), strings.Contains(lower, "режим работы"):
		return s.contactsText()
	case strings.Contains(lower, "жалоб"):
		return "✍ Оставьте жалобу/предложение по ссылке:\n" + s.cfg.FeedbackFormURL
	default:
		return "Раздел в разработке. Выберите другой пункт."
	}
}

func (s *Service) contactsText() string {
	lines := []string{
		"📍 Режим работы:",
		s.cfg.WorkingHours,
		"",
		"📞 Контакты:",
		s.cfg.ClubPhone,
		s.cfg.ClubEmail,
		"",
		"📍 Адрес:",
		s.cfg.ClubAddress,
	}
	if s.cfg.ClubWebsite != "" {
		lines = append(lines, "", "🌐 Сайт:", s.cfg.ClubWebsite)
	}
	if s.cfg.ClubMapURL != "" {
		lines = append(lines, "", "🗺️ Карта:", s.cfg.ClubMapURL)
	}
	return strings.Join(lines, "\n")
}

// Reply sends text to a chat with the requested quick-reply keyboard. It
// implements dialogue.Replier.
func (s *Service) Reply(chatID int64, text string, kb dialogue.Keyboard) error {
	msg := tgbotapi.NewMessage(chatID, text)
	switch kb {
	case dialogue.KeyboardNone:
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	case dialogue.KeyboardPhone:
		msg.ReplyMarkup = phoneKeyboard()
	default:
		msg.ReplyMarkup = menuKeyboard()
	}

	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func menuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSchedule),
			tgbotapi.NewKeyboardButton(btnTrainers),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnPricing),
			tgbotapi.NewKeyboardButton(btnContacts),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnGuestVisit),
			tgbotapi.NewKeyboardButton(btnFeedback),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func phoneKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonContact(btnSharePhone),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBackToMenu),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}
