package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/MNodiridev/xfit/internal/config"
	"github.com/MNodiridev/xfit/internal/dialogue"
	"github.com/MNodiridev/xfit/internal/notify"
	"github.com/MNodiridev/xfit/internal/storage"
	"github.com/MNodiridev/xfit/internal/telegram"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer store.Close()

	mailer := notify.NewMailer(notify.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		StartTLS: cfg.SMTPUseTLS,
		From:     cfg.EmailFrom,
		To:       cfg.EmailTo,
		ClubName: cfg.ClubName,
	}, log)
	if !mailer.Configured() {
		log.Warn().Msg("SMTP is not fully configured; request emails will be skipped")
	}

	service, err := telegram.NewService(&telegram.Config{
		Token:           cfg.BotToken,
		ClubName:        cfg.ClubName,
		WorkingHours:    cfg.WorkingHours,
		ScheduleText:    cfg.ScheduleText,
		TrainersText:    cfg.TrainersText,
		PricingText:     cfg.PricingText,
		FeedbackFormURL: cfg.FeedbackFormURL,
		ClubPhone:       cfg.ClubPhone,
		ClubEmail:       cfg.ClubEmail,
		ClubAddress:     cfg.ClubAddress,
		ClubWebsite:     cfg.ClubWebsite,
		ClubMapURL:      cfg.ClubMapURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Telegram")
	}

	manager := dialogue.NewManager(store, mailer, service, log)
	service.SetHandler(manager)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("club", cfg.ClubName).Msg("bot is starting")
	if err := service.Run(ctx); err != nil {
		log.Error().Err(err).Msg("bot stopped with error")
		return
	}
	log.Info().Msg("shutting down")
}
