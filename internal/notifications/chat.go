package notifications

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const DefaultChatEndpoint = "https://api.fonnte.com/send"

type ChatConfig struct {
	Endpoint    string
	Token       string
	CountryCode string
	Client      *http.Client
}

// ChatChannel posts the ticket PDF to a WhatsApp HTTP gateway.
type ChatChannel struct {
	endpoint    string
	token       string
	countryCode string
	client      *http.Client
}

func NewChatChannel(cfg ChatConfig) *ChatChannel {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultChatEndpoint
	}
	if cfg.CountryCode == "" {
		cfg.CountryCode = DefaultCountryCode
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	return &ChatChannel{
		endpoint:    cfg.Endpoint,
		token:       cfg.Token,
		countryCode: cfg.CountryCode,
		client:      cfg.Client,
	}
}

func (c *ChatChannel) Name() string { return "chat" }

// Enabled is false when no gateway token is configured.
func (c *ChatChannel) Enabled() bool { return c.token != "" }

func (c *ChatChannel) Send(ctx context.Context, msg Message) error {
	target := NormalizePhone(msg.Request.Phone, c.countryCode)
	if target == "" {
		return ErrInvalidPhone
	}

	body, contentType, err := c.buildForm(target, msg)
	if err != nil {
		return fmt.Errorf("build gateway form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request for %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway rejected %s: status %d: %s", target, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *ChatChannel) buildForm(target string, msg Message) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"target", target},
		{"message", ChatText(msg)},
		{"countryCode", c.countryCode},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	part, err := w.CreateFormFile("file", TicketFilename(msg.Ticket.Code))
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(msg.Ticket.TicketPDF); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// ChatText is the plain-text body sent alongside the ticket PDF.
func ChatText(msg Message) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Halo *%s*,\n\n", msg.Request.Name)
	fmt.Fprintf(&b, "Terima kasih telah mendaftar *%s*.\n\n", msg.Event.Title)
	fmt.Fprintf(&b, "Kode tiket: *%s*\n", msg.Ticket.Code)
	fmt.Fprintf(&b, "Tanggal: %s\n", msg.Event.DisplayDate)
	fmt.Fprintf(&b, "Waktu: %s\n", msg.Event.DisplayTime)
	fmt.Fprintf(&b, "Lokasi: %s\n\n", msg.Event.Venue)
	b.WriteString("E-ticket terlampir. Tunjukkan QR code pada tiket saat registrasi ulang.")

	return b.String()
}
