package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/geocoder89/ticketdesk/internal/domain/event"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	startLayout = "2006-01-02 15:04"

	defaultSMTPHost = "smtp.gmail.com"
	defaultSMTPPort = 587
)

type Config struct {
	Env          string `validate:"required"`
	Port         int    `validate:"min=1,max=65535"`
	ServiceName  string `validate:"required"`
	MaxBodyBytes int64  `validate:"gt=0"`
	OTLPEndpoint string

	// DryRun logs deliveries instead of sending them.
	DryRun          bool
	DeliveryTimeout time.Duration `validate:"gte=0"`

	SMTP   SMTPConfig
	Chat   ChatConfig
	Ticket TicketConfig
	Event  event.Descriptor
}

type SMTPConfig struct {
	Host     string `validate:"required,hostname|ip"`
	Port     int    `validate:"min=1,max=65535"`
	User     string `validate:"required,email"`
	Password string `validate:"required"`
	FromName string
}

// ChatConfig is the WhatsApp gateway. An empty Token disables the channel.
type ChatConfig struct {
	Endpoint    string `validate:"required,url"`
	Token       string
	CountryCode string `validate:"required,numeric,max=4"`
}

type TicketConfig struct {
	Prefix         string `validate:"required,alphanum,max=10"`
	QRPublicURL    string `validate:"required,url"`
	CalendarDomain string `validate:"required,hostname"`
	Fee            decimal.Decimal
}

var ErrConfiguration = errors.New("invalid configuration")

// ConfigurationError lists every setting that failed to parse or validate.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConfiguration.Error(), strings.Join(e.Problems, "; "))
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// Load reads the environment, after merging an optional .env file, and
// validates the result. Any problem is reported as a *ConfigurationError.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, &ConfigurationError{Problems: []string{".env: " + err.Error()}}
	}

	p := &parser{}
	cfg := p.parse()

	if len(p.problems) > 0 {
		return cfg, &ConfigurationError{Problems: p.problems}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags. Field names in the error are the environment
// variables an operator has to fix.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return &ConfigurationError{Problems: []string{err.Error()}}
	}

	problems := make([]string, 0, len(fields))
	for _, f := range fields {
		problems = append(problems, fmt.Sprintf("%s failed %q", envName(f.StructNamespace()), f.Tag()))
	}
	return &ConfigurationError{Problems: problems}
}

// envName maps "Config.SMTP.User" to the variable that feeds it.
func envName(namespace string) string {
	if v, ok := envByField[strings.TrimPrefix(namespace, "Config.")]; ok {
		return v
	}
	return namespace
}

var envByField = map[string]string{
	"Env":                   "APP_ENV",
	"Port":                  "PORT",
	"ServiceName":           "SERVICE_NAME",
	"MaxBodyBytes":          "MAX_BODY_BYTES",
	"DeliveryTimeout":       "DELIVERY_TIMEOUT",
	"SMTP.Host":             "SMTP_HOST",
	"SMTP.Port":             "SMTP_PORT",
	"SMTP.User":             "GMAIL_USER",
	"SMTP.Password":         "GMAIL_APP_PASSWORD",
	"Chat.Endpoint":         "WA_GATEWAY_URL",
	"Chat.CountryCode":      "PHONE_COUNTRY_CODE",
	"Ticket.Prefix":         "TICKET_PREFIX",
	"Ticket.QRPublicURL":    "QR_PUBLIC_URL",
	"Ticket.CalendarDomain": "CALENDAR_UID_DOMAIN",
	"Event.Title":           "EVENT_TITLE",
	"Event.Venue":           "EVENT_VENUE",
	"Event.DisplayDate":     "EVENT_DATE_DISPLAY",
	"Event.DisplayTime":     "EVENT_TIME_DISPLAY",
	"Event.OrganizerName":   "EVENT_ORGANIZER_NAME",
	"Event.OrganizerEmail":  "EVENT_ORGANIZER_EMAIL",
	"Event.LogoURL":         "EVENT_LOGO_URL",
}

type parser struct {
	problems []string
}

func (p *parser) parse() Config {
	smtpUser := getEnv("GMAIL_USER", "")

	cfg := Config{
		Env:             getEnv("APP_ENV", "dev"),
		Port:            p.int("PORT", 8080),
		ServiceName:     getEnv("SERVICE_NAME", "ticketdesk"),
		MaxBodyBytes:    int64(p.int("MAX_BODY_BYTES", 64<<10)),
		OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		DryRun:          p.bool("DELIVERY_DRY_RUN", false),
		DeliveryTimeout: p.duration("DELIVERY_TIMEOUT", 0),
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", defaultSMTPHost),
			Port:     p.int("SMTP_PORT", defaultSMTPPort),
			User:     smtpUser,
			Password: getEnv("GMAIL_APP_PASSWORD", ""),
			FromName: getEnv("MAIL_FROM_NAME", "Panitia Event"),
		},
		Chat: ChatConfig{
			Endpoint:    getEnv("WA_GATEWAY_URL", "https://api.fonnte.com/send"),
			Token:       getEnv("WA_GATEWAY_TOKEN", ""),
			CountryCode: getEnv("PHONE_COUNTRY_CODE", "62"),
		},
		Ticket: TicketConfig{
			Prefix:         strings.ToUpper(getEnv("TICKET_PREFIX", "TIX")),
			QRPublicURL:    getEnv("QR_PUBLIC_URL", "https://api.qrserver.com/v1/create-qr-code/?size=250x250&data="),
			CalendarDomain: getEnv("CALENDAR_UID_DOMAIN", "ticketdesk.local"),
			Fee:            p.decimal("TICKET_FEE", decimal.Zero),
		},
		Event: event.Descriptor{
			Title:          getEnv("EVENT_TITLE", "Webinar"),
			Venue:          getEnv("EVENT_VENUE", "Online"),
			DisplayDate:    getEnv("EVENT_DATE_DISPLAY", "Minggu, 8 Maret 2026"),
			DisplayTime:    getEnv("EVENT_TIME_DISPLAY", "15.00 - 18.00 WIB"),
			Start:          p.start("EVENT_START", event.Start{Year: 2026, Month: 3, Day: 8, Hour: 15}),
			Duration:       p.eventDuration("EVENT_DURATION", event.Duration{Hours: 3}),
			OrganizerName:  getEnv("EVENT_ORGANIZER_NAME", "Panitia Event"),
			OrganizerEmail: getEnv("EVENT_ORGANIZER_EMAIL", smtpUser),
			LogoURL:        getEnv("EVENT_LOGO_URL", ""),
		},
	}

	if _, err := cfg.Event.Start.Time(); err != nil {
		p.fail("EVENT_START", err)
	}
	if cfg.Event.Duration.Value() <= 0 {
		p.fail("EVENT_DURATION", errors.New("must be positive"))
	}

	return cfg
}

func (p *parser) fail(key string, err error) {
	p.problems = append(p.problems, fmt.Sprintf("%s: %v", key, err))
}

func (p *parser) int(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	num, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	return num
}

func (p *parser) bool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	return b
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	return d
}

func (p *parser) decimal(key string, fallback decimal.Decimal) decimal.Decimal {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	if d.IsNegative() {
		p.fail(key, errors.New("must not be negative"))
		return fallback
	}
	return d
}

// start parses "2026-03-08 15:00" as naive wall-clock fields.
func (p *parser) start(key string, fallback event.Start) event.Start {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	t, err := time.Parse(startLayout, v)
	if err != nil {
		p.fail(key, fmt.Errorf("want %q: %w", startLayout, err))
		return fallback
	}
	return event.Start{Year: t.Year(), Month: int(t.Month()), Day: t.Day(), Hour: t.Hour(), Minute: t.Minute()}
}

// eventDuration accepts Go duration syntax ("3h", "1h30m") at minute precision.
func (p *parser) eventDuration(key string, fallback event.Duration) event.Duration {
	d := p.duration(key, fallback.Value())
	if d%time.Minute != 0 {
		p.fail(key, errors.New("must be whole minutes"))
		return fallback
	}
	return event.Duration{Hours: int(d / time.Hour), Minutes: int((d % time.Hour) / time.Minute)}
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
