package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const livenessText = "Server Tiket Pendaftaran Aktif!"

type HealthHandler struct {
	chatEnabled bool
	dryRun      bool
}

func NewHealthHandler(chatEnabled, dryRun bool) *HealthHandler {
	return &HealthHandler{chatEnabled: chatEnabled, dryRun: dryRun}
}

// Root is the plain-text liveness probe.
func (h *HealthHandler) Root(ctx *gin.Context) {
	ctx.String(http.StatusOK, livenessText)
}

func (h *HealthHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"channels": gin.H{
			"email": true,
			"chat":  h.chatEnabled,
		},
		"dryRun": h.dryRun,
	})
}
