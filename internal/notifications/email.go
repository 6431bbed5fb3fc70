package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"

	gomail "gopkg.in/gomail.v2"
)

// Dialer is the part of *gomail.Dialer the email channel uses.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
}

type EmailChannel struct {
	dialer   Dialer
	from     string
	fromName string
}

func NewEmailChannel(cfg EmailConfig) *EmailChannel {
	return NewEmailChannelWithDialer(
		gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		cfg.Username,
		cfg.FromName,
	)
}

func NewEmailChannelWithDialer(d Dialer, from, fromName string) *EmailChannel {
	if fromName == "" {
		fromName = "Panitia Event"
	}
	return &EmailChannel{dialer: d, from: from, fromName: fromName}
}

func (c *EmailChannel) Name() string { return "email" }

func (c *EmailChannel) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m, err := c.Build(msg)
	if err != nil {
		return err
	}

	if err := c.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.Request.Email, err)
	}
	return nil
}

// Build composes the MIME message: HTML body plus ticket PDF, receipt PDF and,
// when present, the calendar invite.
func (c *EmailChannel) Build(msg Message) (*gomail.Message, error) {
	body, err := renderEmailBody(msg)
	if err != nil {
		return nil, fmt.Errorf("render email body: %w", err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", c.from, c.fromName)
	m.SetHeader("To", msg.Request.Email)
	m.SetHeader("Subject", "Tiket Masuk: "+msg.Event.Title)
	m.SetBody("text/html", body)

	attach(m, TicketFilename(msg.Ticket.Code), "application/pdf", msg.Ticket.TicketPDF)
	attach(m, ReceiptFilename(msg.Ticket.Code), "application/pdf", msg.Ticket.ReceiptPDF)

	if msg.Ticket.HasInvite() {
		attach(m, "undangan.ics", "text/calendar; charset=utf-8; method=REQUEST", msg.Ticket.CalendarInvite)
	}

	return m, nil
}

func TicketFilename(code string) string  { return "tiket-" + code + ".pdf" }
func ReceiptFilename(code string) string { return "kuitansi-" + code + ".pdf" }

func attach(m *gomail.Message, name, contentType string, data []byte) {
	m.Attach(name,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {contentType}}),
	)
}

var emailTemplate = template.Must(template.New("ticket").Parse(`<div style="font-family: sans-serif; border: 1px solid #ccc; padding: 20px; border-radius: 8px; max-width: 520px;">
  {{if .Event.LogoURL}}<img src="{{.Event.LogoURL}}" alt="{{.Event.OrganizerName}}" style="max-height: 48px;" />{{end}}
  <h2 style="color: #0f172a;">Tiket Event: {{.Event.Title}}</h2>
  <p>Halo <strong>{{.Request.Name}}</strong>,</p>
  <p>Terima kasih sudah mendaftar. Tunjukkan QR Code ini saat registrasi ulang:</p>
  <div style="text-align: center; margin: 20px 0;">
    <img src="{{.Ticket.QRPublicURL}}" alt="QR Code Tiket" style="width: 200px;" />
    <p style="font-size: 1.1rem; letter-spacing: 2px;"><strong>{{.Ticket.Code}}</strong></p>
  </div>
  <table style="font-size: 0.9rem; color: #334155;">
    <tr><td>Tanggal</td><td>: {{.Event.DisplayDate}}</td></tr>
    <tr><td>Waktu</td><td>: {{.Event.DisplayTime}}</td></tr>
    <tr><td>Lokasi</td><td>: {{.Event.Venue}}</td></tr>
  </table>
  <p>E-ticket dan kuitansi terlampir dalam format PDF.</p>
  <p style="font-size: 0.8rem; color: #7f8c8d;">Tiket ini dikirim otomatis oleh sistem.</p>
</div>`))

func renderEmailBody(msg Message) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, msg); err != nil {
		return "", err
	}
	return buf.String(), nil
}
