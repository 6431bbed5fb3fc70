package notifications

import (
	"context"
	"errors"

	"github.com/geocoder89/ticketdesk/internal/domain/event"
	"github.com/geocoder89/ticketdesk/internal/domain/registration"
	"github.com/geocoder89/ticketdesk/internal/domain/ticket"
)

// Message is everything a channel needs to deliver one issued ticket.
type Message struct {
	Ticket  ticket.Ticket
	Request registration.Request
	Event   event.Descriptor
}

// Channel delivers a ticket through one medium (email, chat).
type Channel interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// Toggler is implemented by channels that can be configured off, such as the
// chat gateway without a token.
type Toggler interface {
	Enabled() bool
}

func enabled(ch Channel) bool {
	if ch == nil {
		return false
	}
	if t, ok := ch.(Toggler); ok {
		return t.Enabled()
	}
	return true
}

var (
	ErrChannelPanic = errors.New("channel panicked")
	ErrInvalidPhone = errors.New("phone number has no digits")
)

type Status string

const (
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

type ChannelResult struct {
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func (r ChannelResult) Attempted() bool { return r.Status != StatusSkipped }

// Outcome is the joined result of one fan-out.
type Outcome struct {
	TicketCode string        `json:"ticketId"`
	Email      ChannelResult `json:"email"`
	Chat       ChannelResult `json:"chat"`
}

func (o Outcome) results() []ChannelResult {
	return []ChannelResult{o.Email, o.Chat}
}

// AllDelivered is true when every attempted channel sent successfully and at
// least one channel was attempted.
func (o Outcome) AllDelivered() bool {
	attempted := 0
	for _, r := range o.results() {
		if !r.Attempted() {
			continue
		}
		attempted++
		if r.Status != StatusSent {
			return false
		}
	}
	return attempted > 0
}

// AnyDelivered is true when at least one channel sent successfully.
func (o Outcome) AnyDelivered() bool {
	for _, r := range o.results() {
		if r.Status == StatusSent {
			return true
		}
	}
	return false
}
