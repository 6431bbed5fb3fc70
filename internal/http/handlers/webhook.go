package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/geocoder89/ticketdesk/internal/domain/registration"
	"github.com/geocoder89/ticketdesk/internal/http/middlewares"
	"github.com/geocoder89/ticketdesk/internal/notifications"
	"github.com/geocoder89/ticketdesk/internal/pipeline"
	"github.com/gin-gonic/gin"
)

const (
	msgIncomplete     = "Data tidak lengkap. Butuh nama dan email."
	msgDelivered      = "Tiket berhasil dikirim."
	msgPartial        = "Tiket dibuat, sebagian pengiriman gagal."
	msgUndelivered    = "Tiket dibuat tetapi gagal dikirim."
	errArtifactFailed = "ticket artifacts could not be generated"
	errInternal       = "internal error"
)

type Registrar interface {
	Run(ctx context.Context, req registration.Request) (pipeline.Result, error)
}

type WebhookHandler struct {
	pipeline Registrar
	log      *slog.Logger
}

func NewWebhookHandler(p Registrar, log *slog.Logger) *WebhookHandler {
	if log == nil {
		log = slog.Default()
	}
	return &WebhookHandler{pipeline: p, log: log}
}

type Delivery struct {
	Email notifications.ChannelResult `json:"email"`
	Chat  notifications.ChannelResult `json:"chat"`
}

type WebhookResponse struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	TicketID  string   `json:"ticketId"`
	Delivery  Delivery `json:"delivery"`
	RequestID string   `json:"requestId,omitempty"`
}

// Register issues a ticket for one registration and reports per-channel delivery.
func (h *WebhookHandler) Register(ctx *gin.Context) {
	var req registration.Request

	if !BindJSON(ctx, &req) {
		return
	}

	res, err := h.pipeline.Run(ctx.Request.Context(), req)

	var vErr *registration.ValidationError
	switch {
	case errors.As(err, &vErr):
		RespondBadRequest(ctx, msgIncomplete, ValidationDetails(vErr.Fields, &req))
		return
	case errors.Is(err, pipeline.ErrArtifactGeneration):
		h.log.ErrorContext(ctx.Request.Context(), "webhook.artifacts_failed", "err", err)
		RespondInternal(ctx, errArtifactFailed)
		return
	case err != nil:
		h.log.ErrorContext(ctx.Request.Context(), "webhook.failed", "err", err)
		RespondInternal(ctx, errInternal)
		return
	}

	status, message := deliveryStatus(res.Outcome)
	ctx.Header(middlewares.TicketIDHeader, res.Outcome.TicketCode)

	ctx.JSON(status, WebhookResponse{
		Success:   status != http.StatusBadGateway,
		Message:   message,
		TicketID:  res.Outcome.TicketCode,
		Delivery:  Delivery{Email: res.Outcome.Email, Chat: res.Outcome.Chat},
		RequestID: requestIDFrom(ctx),
	})
}

// deliveryStatus maps the joined fan-out to an HTTP status: 200 when every
// attempted channel sent, 207 when some did, 502 when none did.
func deliveryStatus(o notifications.Outcome) (int, string) {
	switch {
	case o.AllDelivered():
		return http.StatusOK, msgDelivered
	case o.AnyDelivered():
		return http.StatusMultiStatus, msgPartial
	default:
		return http.StatusBadGateway, msgUndelivered
	}
}
