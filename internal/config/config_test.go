package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/geocoder89/ticketdesk/internal/domain/event"
	"github.com/shopspring/decimal"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GMAIL_USER", "panitia@example.com")
	t.Setenv("GMAIL_APP_PASSWORD", "abcd efgh ijkl mnop")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.SMTP.Host != "smtp.gmail.com" || cfg.SMTP.Port != 587 {
		t.Fatalf("unexpected smtp defaults: %+v", cfg.SMTP)
	}
	if cfg.Chat.Token != "" {
		t.Fatalf("expected chat disabled by default")
	}
	if cfg.Event.OrganizerEmail != "panitia@example.com" {
		t.Fatalf("organizer email should default to GMAIL_USER, got %q", cfg.Event.OrganizerEmail)
	}
	if !cfg.Ticket.Fee.Equal(decimal.Zero) {
		t.Fatalf("expected zero fee, got %s", cfg.Ticket.Fee)
	}
}

func TestLoad_MissingSMTPCredentialsIsFatal(t *testing.T) {
	t.Setenv("GMAIL_USER", "")
	t.Setenv("GMAIL_APP_PASSWORD", "")

	_, err := Load()
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}

	var cErr *ConfigurationError
	if !errors.As(err, &cErr) {
		t.Fatalf("expected *ConfigurationError, got %T", err)
	}

	want := map[string]bool{"GMAIL_USER": false, "GMAIL_APP_PASSWORD": false}
	for _, p := range cErr.Problems {
		for k := range want {
			if strings.HasPrefix(p, k) {
				want[k] = true
			}
		}
	}
	for k, seen := range want {
		if !seen {
			t.Fatalf("expected a problem for %s, got %v", k, cErr.Problems)
		}
	}
}

func TestLoad_EventSchedule(t *testing.T) {
	setRequired(t)
	t.Setenv("EVENT_START", "2026-12-31 19:30")
	t.Setenv("EVENT_DURATION", "1h45m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStart := event.Start{Year: 2026, Month: 12, Day: 31, Hour: 19, Minute: 30}
	if cfg.Event.Start != wantStart {
		t.Fatalf("start = %+v, want %+v", cfg.Event.Start, wantStart)
	}
	if cfg.Event.Duration != (event.Duration{Hours: 1, Minutes: 45}) {
		t.Fatalf("unexpected duration %+v", cfg.Event.Duration)
	}
}

func TestLoad_ParseProblems(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad_port", "PORT", "eighty"},
		{"bad_start", "EVENT_START", "08/03/2026"},
		{"zero_duration", "EVENT_DURATION", "0s"},
		{"sub_minute_duration", "EVENT_DURATION", "90s"},
		{"bad_fee", "TICKET_FEE", "gratis"},
		{"negative_fee", "TICKET_FEE", "-5000"},
		{"bad_dry_run", "DELIVERY_DRY_RUN", "maybe"},
		{"bad_country_code", "PHONE_COUNTRY_CODE", "sixty-two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("expected ErrConfiguration for %s=%q, got %v", tt.key, tt.val, err)
			}
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("WA_GATEWAY_TOKEN", "tok")
	t.Setenv("TICKET_PREFIX", "semnas")
	t.Setenv("TICKET_FEE", "150000")
	t.Setenv("DELIVERY_DRY_RUN", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Chat.Token != "tok" || !cfg.DryRun {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.Ticket.Prefix != "SEMNAS" {
		t.Fatalf("prefix = %q", cfg.Ticket.Prefix)
	}
	if !cfg.Ticket.Fee.Equal(decimal.NewFromInt(150000)) {
		t.Fatalf("fee = %s", cfg.Ticket.Fee)
	}
}
