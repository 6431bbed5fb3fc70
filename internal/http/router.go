package http

import (
	"log/slog"

	"github.com/geocoder89/ticketdesk/internal/http/handlers"
	"github.com/geocoder89/ticketdesk/internal/http/middlewares"
	"github.com/geocoder89/ticketdesk/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type RouterConfig struct {
	Env          string
	ServiceName  string
	MaxBodyBytes int64
	ChatEnabled  bool
	DryRun       bool

	Registrar handlers.Registrar
	Prom      *observability.Prom
	Gatherer  prometheus.Gatherer
}

func NewRouter(log *slog.Logger, cfg RouterConfig) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	if cfg.Prom != nil {
		r.Use(cfg.Prom.GinHandleMiddleware())
	}

	// health
	h := handlers.NewHealthHandler(cfg.ChatEnabled, cfg.DryRun)
	r.GET("/", h.Root)
	r.GET("/healthz", h.Healthz)

	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	webhook := handlers.NewWebhookHandler(cfg.Registrar, log)
	r.POST("/webhook",
		middlewares.RequireJSON(),
		middlewares.MaxBodyBytes(cfg.MaxBodyBytes),
		webhook.Register,
	)

	return r
}
