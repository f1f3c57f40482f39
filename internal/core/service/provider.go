package service

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Wyydra/vtprovider/internal/core/domain"
	"github.com/Wyydra/vtprovider/internal/core/port"
	"github.com/Wyydra/vtprovider/internal/telemetry"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Provider adapts one video call session. Inbound calls arrive through
// Stub on any goroutine and are handled on the looper; outbound events go
// to whichever callback the controller registered last.
type Provider struct {
	id      domain.SessionID
	looper  port.Looper
	handler port.VideoCallHandler
	logger  zerolog.Logger
	stub    *Stub

	callback atomic.Pointer[callbackRef] // stored only on the looper
	closed   atomic.Bool
	dropped  atomic.Uint64
}

var (
	_ port.EventEmitter      = (*Provider)(nil)
	_ port.VideoCallProvider = (*Stub)(nil)
)

type callbackRef struct {
	cb port.RemoteCallback
}

type Option func(*Provider)

func WithSessionID(id domain.SessionID) Option {
	return func(p *Provider) {
		p.id = id
	}
}

// WithLogger sets the base logger. NewProvider adds the session_id field,
// so l should not carry one.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Provider) {
		p.logger = l
	}
}

func NewProvider(looper port.Looper, handler port.VideoCallHandler, opts ...Option) *Provider {
	p := &Provider{
		id:      domain.NewSessionID(),
		looper:  looper,
		handler: handler,
		logger:  log.Logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With().Str("session_id", p.id.String()).Logger()
	p.stub = &Stub{p: p}
	return p
}

func (p *Provider) ID() domain.SessionID {
	return p.id
}

// Stub returns the handle exported to the controller.
func (p *Provider) Stub() port.VideoCallProvider {
	return p.stub
}

// Dropped returns how many inbound commands the looper refused.
func (p *Provider) Dropped() uint64 {
	return p.dropped.Load()
}

// Close ends the session. Queued commands are abandoned, later inbound
// calls are ignored and no outbound event is emitted afterwards.
func (p *Provider) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	p.looper.Post(func() {
		p.callback.Store(nil)
	})
	p.logger.Debug().Msg("Provider closed")
}

func (p *Provider) enqueue(cmd Command) {
	if p.closed.Load() {
		return
	}
	if !p.looper.Post(func() { p.dispatch(cmd) }) {
		p.dropped.Add(1)
		telemetry.Metrics.QueueDropped.Inc()
		p.logger.Warn().Str("kind", cmd.Kind()).Msg("Looper rejected command, dropping")
	}
}

func (p *Provider) dispatch(cmd Command) {
	if p.closed.Load() {
		return
	}

	start := time.Now()
	err := p.handle(cmd)
	telemetry.Metrics.CommandDuration.WithLabelValues(cmd.Kind()).Observe(time.Since(start).Seconds())

	if err != nil {
		telemetry.Metrics.CommandsTotal.WithLabelValues(cmd.Kind(), "error").Inc()
		p.logger.Debug().Err(err).Str("kind", cmd.Kind()).Msg("Handler failed")
		return
	}
	telemetry.Metrics.CommandsTotal.WithLabelValues(cmd.Kind(), "ok").Inc()
}

func (p *Provider) handle(cmd Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()

	switch c := cmd.(type) {
	case SetCallback:
		if c.Callback == nil {
			p.callback.Store(nil)
		} else {
			p.callback.Store(&callbackRef{cb: c.Callback})
		}
		return nil
	case SetCamera:
		return p.handler.OnSetCamera(c.CameraID)
	case SetPreviewSurface:
		return p.handler.OnSetPreviewSurface(c.Surface)
	case SetDisplaySurface:
		return p.handler.OnSetDisplaySurface(c.Surface)
	case SetDeviceOrientation:
		return p.handler.OnSetDeviceOrientation(c.Rotation)
	case SetZoom:
		return p.handler.OnSetZoom(c.Value)
	case SendModifyRequest:
		return p.handler.OnSendSessionModifyRequest(c.From, c.To)
	case SendModifyResponse:
		return p.handler.OnSendSessionModifyResponse(c.Response)
	case RequestCameraCapabilities:
		return p.handler.OnRequestCameraCapabilities()
	case RequestCallDataUsage:
		return p.handler.OnRequestCallDataUsage()
	case SetPauseImage:
		return p.handler.OnSetPauseImage(c.URI)
	default:
		return fmt.Errorf("unknown command %T", cmd)
	}
}
