package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	BotToken string `env:"TG_BOT_TOKEN,required,notEmpty"`
	ClubName string `env:"CLUB_NAME" envDefault:"X-fit Premium Dushanbe"`

	DBPath string `env:"DB_PATH" envDefault:"guest_visits.sqlite3"`

	SMTPHost   string `env:"SMTP_HOST"`
	SMTPPort   int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser   string `env:"SMTP_USER"`
	SMTPUseTLS bool   `env:"SMTP_USE_TLS" envDefault:"true"`
	EmailTo    string `env:"EMAIL_TO" envDefault:"sales@x-fit.tj"`

	WorkingHours    string `env:"WORKING_HOURS" envDefault:"Пн–Вс: 06:00–23:00"`
	ScheduleText    string `env:"SCHEDULE_TEXT" envDefault:"Актуальное расписание групповых программ уточняйте на ресепшн или по телефону."`
	TrainersText    string `env:"TRAINERS_TEXT" envDefault:"Наши тренеры — сертифицированные специалисты. Подробнее о команде расскажут на ресепшн."`
	PricingText     string `env:"PRICING_TEXT" envDefault:"Стоимость абонементов уточняйте по телефону или на ресепшн клуба."`
	FeedbackFormURL string `env:"FEEDBACK_FORM_URL" envDefault:"https://forms.gle/example"`
	ClubMapURL      string `env:"CLUB_MAP_URL"`

	// Filled by Load via ordered multi-key lookup, see below.
	SMTPPass    string `env:"-"`
	EmailFrom   string `env:"-"`
	ClubPhone   string `env:"-"`
	ClubEmail   string `env:"-"`
	ClubAddress string `env:"-"`
	ClubWebsite string `env:"-"`
}

// Load reads configuration from the environment, after loading a .env file
// if one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	// Several deployments exported these under older names; first match wins.
	cfg.SMTPPass = envFirst([]string{"SMTP_PASSWORD", "SMTP_PASS"}, "")
	cfg.EmailFrom = envFirst([]string{"EMAIL_FROM", "SMTP_USER"}, "")
	cfg.ClubPhone = envFirst([]string{"CLUB_PHONE", "CONTACT_PHONE"}, "+992 48 8888 555")
	cfg.ClubEmail = envFirst([]string{"CLUB_EMAIL", "CONTACT_EMAIL"}, "info@x-fit.tj")
	cfg.ClubAddress = envFirst([]string{"CLUB_ADDRESS", "CONTACT_ADDRESS"}, "г. Душанбе, ул. Мухаммадиева, 24/2")
	cfg.ClubWebsite = envFirst([]string{"CLUB_WEBSITE", "CONTACT_WEBSITE"}, "https://x-fit.tj")

	return cfg, nil
}

func envFirst(keys []string, defaultValue string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return defaultValue
}
