package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DeliveryObserver receives one observation per attempted channel.
type DeliveryObserver interface {
	ObserveDelivery(channel, status string, elapsed time.Duration)
}

// Dispatcher fans a ticket out to the email and chat channels concurrently and
// joins both results. One channel failing never affects the other.
type Dispatcher struct {
	email    Channel
	chat     Channel
	log      *slog.Logger
	observer DeliveryObserver
}

// NewDispatcher wires the channels. chat may be nil; observer may be nil.
func NewDispatcher(email, chat Channel, log *slog.Logger, observer DeliveryObserver) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{email: email, chat: chat, log: log, observer: observer}
}

func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) Outcome {
	out := Outcome{TicketCode: msg.Ticket.Code}

	var wg sync.WaitGroup

	if enabled(d.email) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out.Email = d.deliver(ctx, d.email, msg, msg.Request.Email)
		}()
	} else {
		out.Email = d.skip(ctx, "email", msg, "email channel not configured")
	}

	switch {
	case strings.TrimSpace(msg.Request.Phone) == "":
		out.Chat = d.skip(ctx, "chat", msg, "no phone number")
	case !enabled(d.chat):
		out.Chat = d.skip(ctx, "chat", msg, "chat gateway token not configured")
	default:
		wg.Add(1)
		go func() {
			defer wg.Done()
			out.Chat = d.deliver(ctx, d.chat, msg, msg.Request.Phone)
		}()
	}

	wg.Wait()
	return out
}

func (d *Dispatcher) deliver(ctx context.Context, ch Channel, msg Message, recipient string) (res ChannelResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			res = ChannelResult{Status: StatusFailed, Error: fmt.Sprintf("%v: %v", ErrChannelPanic, r)}
		}

		elapsed := time.Since(start)
		if d.observer != nil {
			d.observer.ObserveDelivery(ch.Name(), string(res.Status), elapsed)
		}

		attrs := []any{
			"channel", ch.Name(),
			"ticket_code", msg.Ticket.Code,
			"recipient", recipient,
			"latency_ms", elapsed.Milliseconds(),
		}
		if res.Status == StatusSent {
			d.log.InfoContext(ctx, "delivery.sent", attrs...)
		} else {
			d.log.ErrorContext(ctx, "delivery.failed", append(attrs, "err", res.Error)...)
		}
	}()

	if err := ch.Send(ctx, msg); err != nil {
		return ChannelResult{Status: StatusFailed, Error: err.Error()}
	}
	return ChannelResult{Status: StatusSent}
}

func (d *Dispatcher) skip(ctx context.Context, channel string, msg Message, reason string) ChannelResult {
	d.log.InfoContext(ctx, "delivery.skipped", "channel", channel, "ticket_code", msg.Ticket.Code, "reason", reason)
	if d.observer != nil {
		d.observer.ObserveDelivery(channel, string(StatusSkipped), 0)
	}
	return ChannelResult{Status: StatusSkipped, Reason: reason}
}
