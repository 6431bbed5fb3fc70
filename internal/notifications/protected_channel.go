package notifications

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker open")

type ProtectedChannelConfig struct {
	Timeout          time.Duration // per send; 0 leaves it to the underlying transport
	FailureThreshold int           // consecutive failures to open circuit
	Cooldown         time.Duration // how long to stay open before half-open
	HalfOpenMaxCalls int           // allow N trial calls in half-open
}

// ProtectedChannel wraps a Channel with an optional timeout and a circuit
// breaker so a dead provider fails fast instead of hanging every request.
type ProtectedChannel struct {
	inner Channel
	cfg   ProtectedChannelConfig
	mu    sync.Mutex

	state string // "closed" | "open" | "half_open"

	consecutiveFailures int
	openedAt            time.Time
	halfOpenInFlight    int

	now func() time.Time
}

func NewProtectedChannel(inner Channel, cfg ProtectedChannelConfig) *ProtectedChannel {
	if cfg.Timeout < 0 {
		cfg.Timeout = 0
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	if cfg.HalfOpenMaxCalls <= 0 {
		cfg.HalfOpenMaxCalls = 1
	}

	return &ProtectedChannel{
		inner: inner,
		cfg:   cfg,
		state: "closed",
		now:   time.Now,
	}
}

func (p *ProtectedChannel) Name() string { return p.inner.Name() }

func (p *ProtectedChannel) Enabled() bool { return enabled(p.inner) }

func (p *ProtectedChannel) State() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *ProtectedChannel) Send(ctx context.Context, msg Message) error {
	if !p.allowRequest() {
		return ErrCircuitOpen
	}

	sendCtx := ctx
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	err := p.inner.Send(sendCtx, msg)

	p.afterRequest(err)

	return err
}

func (p *ProtectedChannel) allowRequest() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case "closed":
		return true
	case "open":
		if p.now().Sub(p.openedAt) >= p.cfg.Cooldown {
			p.state = "half_open"
			p.halfOpenInFlight = 1
			return true
		}
		return false
	case "half_open":
		if p.halfOpenInFlight >= p.cfg.HalfOpenMaxCalls {
			return false
		}
		p.halfOpenInFlight++
		return true
	default:
		return true
	}
}

func (p *ProtectedChannel) afterRequest(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == "half_open" && p.halfOpenInFlight > 0 {
		p.halfOpenInFlight--
	}

	if err == nil {
		p.consecutiveFailures = 0
		p.state = "closed"
		return
	}

	p.consecutiveFailures++

	// a failed trial call reopens immediately
	if p.state == "half_open" {
		p.state = "open"
		p.openedAt = p.now()
		return
	}

	if p.consecutiveFailures >= p.cfg.FailureThreshold {
		p.state = "open"
		p.openedAt = p.now()
	}
}
