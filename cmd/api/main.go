package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/ticketdesk/internal/artifacts/calendar"
	"github.com/geocoder89/ticketdesk/internal/artifacts/document"
	"github.com/geocoder89/ticketdesk/internal/artifacts/qr"
	"github.com/geocoder89/ticketdesk/internal/config"
	"github.com/geocoder89/ticketdesk/internal/domain/ticket"
	httpx "github.com/geocoder89/ticketdesk/internal/http"
	"github.com/geocoder89/ticketdesk/internal/notifications"
	"github.com/geocoder89/ticketdesk/internal/observability"
	"github.com/geocoder89/ticketdesk/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load the config set up
	cfg, err := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	// email is mandatory: refuse to listen without SMTP credentials
	if err != nil {
		log.Error("configuration invalid", "err", err)
		os.Exit(1)
	}

	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(context.Background(), cfg.ServiceName, cfg.Env, cfg.OTLPEndpoint)
		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdownTracer(ctx)
		}()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(registry)

	email, chat := buildChannels(cfg, log)

	p := pipeline.New(pipeline.Deps{
		Codes:      ticket.NewCodeGenerator(cfg.Ticket.Prefix),
		QR:         qr.NewProducer(cfg.Ticket.QRPublicURL, qr.DefaultSize),
		Renderer:   document.NewRenderer(document.A4()),
		Invites:    calendar.NewEncoder(cfg.Ticket.CalendarDomain),
		Dispatcher: notifications.NewDispatcher(email, chat, log, prom),
		Event:      cfg.Event,
		Fee:        cfg.Ticket.Fee,
		Log:        log,
		Metrics:    prom,
	})

	router := httpx.NewRouter(log, httpx.RouterConfig{
		Env:          cfg.Env,
		ServiceName:  cfg.ServiceName,
		MaxBodyBytes: cfg.MaxBodyBytes,
		ChatEnabled:  cfg.Chat.Token != "",
		DryRun:       cfg.DryRun,
		Registrar:    p,
		Prom:         prom,
		Gatherer:     registry,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// artifact rendering plus SMTP and gateway round trips
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting",
			"port", cfg.Port,
			"env", cfg.Env,
			"chat_enabled", cfg.Chat.Token != "",
			"dry_run", cfg.DryRun,
		)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		// in-flight webhooks may still be delivering
		ctx, cancel := config.WithTimeout(30 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(32 * time.Second):
		log.Error("shutdown timed out")
	}
}

// buildChannels returns the email and chat channels. In dry-run mode both
// log instead of sending. Without a gateway token the chat channel reports
// itself disabled and the dispatcher skips it.
func buildChannels(cfg config.Config, log *slog.Logger) (email, chat notifications.Channel) {
	if cfg.DryRun {
		email = notifications.NewLogChannel("email", log)
		if cfg.Chat.Token != "" {
			chat = notifications.NewLogChannel("chat", log)
		}
		return email, chat
	}

	protect := notifications.ProtectedChannelConfig{Timeout: cfg.DeliveryTimeout}

	email = notifications.NewProtectedChannel(notifications.NewEmailChannel(notifications.EmailConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		FromName: cfg.SMTP.FromName,
	}), protect)

	chat = notifications.NewProtectedChannel(notifications.NewChatChannel(notifications.ChatConfig{
		Endpoint:    cfg.Chat.Endpoint,
		Token:       cfg.Chat.Token,
		CountryCode: cfg.Chat.CountryCode,
	}), protect)

	return email, chat
}
