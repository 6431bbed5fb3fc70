package notifications

import (
	"context"
	"log/slog"
)

// LogChannel records what would have been sent. Used for dry runs in development.
type LogChannel struct {
	name string
	log  *slog.Logger
}

func NewLogChannel(name string, log *slog.Logger) *LogChannel {
	return &LogChannel{name: name, log: log}
}

func (n *LogChannel) Name() string { return n.name }

func (n *LogChannel) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.log.InfoContext(ctx, "notification.dry_run",
		"channel", n.name,
		"ticket_code", msg.Ticket.Code,
		"email", msg.Request.Email,
		"phone", msg.Request.Phone,
		"ticket_pdf_bytes", len(msg.Ticket.TicketPDF),
		"receipt_pdf_bytes", len(msg.Ticket.ReceiptPDF),
		"has_invite", msg.Ticket.HasInvite(),
	)
	return nil
}
