// Package pipeline turns one registration into an issued ticket: validate,
// generate the code and artifacts, then hand everything to the dispatcher.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/geocoder89/ticketdesk/internal/artifacts/document"
	"github.com/geocoder89/ticketdesk/internal/artifacts/layout"
	"github.com/geocoder89/ticketdesk/internal/artifacts/qr"
	"github.com/geocoder89/ticketdesk/internal/domain/event"
	"github.com/geocoder89/ticketdesk/internal/domain/registration"
	"github.com/geocoder89/ticketdesk/internal/domain/ticket"
	"github.com/geocoder89/ticketdesk/internal/notifications"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var (
	ErrValidation         = registration.ErrValidation
	ErrArtifactGeneration = errors.New("artifact generation failed")
)

type CodeGenerator interface {
	Generate() string
}

type QREncoder interface {
	Encode(payload string) (qr.Artifact, error)
}

type DocumentRenderer interface {
	Page() document.PageSpec
	Render(instructions []document.Instruction) ([]byte, error)
}

type InviteEncoder interface {
	Encode(ev event.Descriptor, code, attendeeName string, now time.Time) ([]byte, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, msg notifications.Message) notifications.Outcome
}

// ArtifactObserver receives the build time of every produced artifact.
type ArtifactObserver interface {
	ObserveArtifact(artifact string, elapsed time.Duration)
}

type Deps struct {
	Codes      CodeGenerator
	QR         QREncoder
	Renderer   DocumentRenderer
	Invites    InviteEncoder
	Dispatcher Dispatcher

	Event event.Descriptor
	Fee   decimal.Decimal

	Log     *slog.Logger
	Metrics ArtifactObserver
	Now     func() time.Time
	Tracer  trace.Tracer
}

type Pipeline struct {
	deps Deps
}

func New(deps Deps) *Pipeline {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Tracer == nil {
		deps.Tracer = otel.Tracer("ticketdesk/pipeline")
	}
	return &Pipeline{deps: deps}
}

// Result describes one processed registration. Ticket carries the generated
// artifacts; Outcome the per-channel delivery results.
type Result struct {
	Request registration.Request
	Ticket  ticket.Ticket
	Outcome notifications.Outcome
}

// Run processes one registration. A *registration.ValidationError is returned
// before any artifact work starts. Delivery failures are reported in
// Result.Outcome, never as an error.
func (p *Pipeline) Run(ctx context.Context, req registration.Request) (Result, error) {
	ctx, span := p.deps.Tracer.Start(ctx, "pipeline.run")
	defer span.End()

	if err := req.Validate(); err != nil {
		span.SetStatus(codes.Error, "validation")
		return Result{}, err
	}
	req = req.Normalize()

	ev := p.deps.Event
	if req.EventName != "" {
		ev = ev.WithTitle(req.EventName)
	}

	code := p.deps.Codes.Generate()
	span.SetAttributes(attribute.String("ticket.code", code))

	log := p.deps.Log.With("ticket_code", code)
	log.InfoContext(ctx, "registration.accepted", "email", req.Email, "has_phone", req.Phone != "")

	tk, err := p.buildArtifacts(ctx, req, ev, code)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "artifacts")
		log.ErrorContext(ctx, "registration.artifacts_failed", "err", err)
		return Result{}, err
	}

	// Delivery runs to completion even if the caller goes away.
	dispatchCtx, dispatchSpan := p.deps.Tracer.Start(context.WithoutCancel(ctx), "pipeline.dispatch")
	outcome := p.deps.Dispatcher.Dispatch(dispatchCtx, notifications.Message{Ticket: tk, Request: req, Event: ev})
	dispatchSpan.SetAttributes(
		attribute.String("delivery.email", string(outcome.Email.Status)),
		attribute.String("delivery.chat", string(outcome.Chat.Status)),
	)
	dispatchSpan.End()

	log.InfoContext(ctx, "registration.processed",
		"email_status", outcome.Email.Status,
		"chat_status", outcome.Chat.Status,
	)

	return Result{Request: req, Ticket: tk, Outcome: outcome}, nil
}

func (p *Pipeline) buildArtifacts(ctx context.Context, req registration.Request, ev event.Descriptor, code string) (ticket.Ticket, error) {
	tk := ticket.Ticket{Code: code}

	var qrArt qr.Artifact
	err := p.stage(ctx, "qr", func(context.Context) error {
		var err error
		qrArt, err = p.deps.QR.Encode(code)
		return err
	})
	if err != nil {
		return tk, fmt.Errorf("%w: qr: %v", ErrArtifactGeneration, err)
	}
	tk.QRRaster = qrArt.Raster
	tk.QRPublicURL = qrArt.PublicURL

	in := layout.Input{
		Code:     code,
		Request:  req,
		Event:    ev,
		QRRaster: qrArt.Raster,
		IssuedAt: p.deps.Now(),
		Fee:      p.deps.Fee,
	}
	page := p.deps.Renderer.Page()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.stage(gctx, "ticket_pdf", func(context.Context) error {
			var err error
			tk.TicketPDF, err = p.deps.Renderer.Render(layout.Ticket(page, in))
			if err != nil {
				return fmt.Errorf("%w: ticket pdf: %v", ErrArtifactGeneration, err)
			}
			return nil
		})
	})
	g.Go(func() error {
		return p.stage(gctx, "receipt_pdf", func(context.Context) error {
			var err error
			tk.ReceiptPDF, err = p.deps.Renderer.Render(layout.Receipt(page, in))
			if err != nil {
				return fmt.Errorf("%w: receipt pdf: %v", ErrArtifactGeneration, err)
			}
			return nil
		})
	})
	if err := g.Wait(); err != nil {
		return tk, err
	}

	// A broken invite is not worth failing the registration over.
	err = p.stage(ctx, "calendar", func(context.Context) error {
		var err error
		tk.CalendarInvite, err = p.deps.Invites.Encode(ev, code, req.Name, p.deps.Now())
		return err
	})
	if err != nil {
		tk.CalendarInvite = nil
		p.deps.Log.WarnContext(ctx, "registration.invite_omitted", "ticket_code", code, "err", err)
	}

	return tk, nil
}

// stage runs fn inside its own span and records its duration.
func (p *Pipeline) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := p.deps.Tracer.Start(ctx, "pipeline."+name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	if p.deps.Metrics != nil {
		p.deps.Metrics.ObserveArtifact(name, time.Since(start))
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
