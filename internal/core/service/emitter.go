package service

import (
	"github.com/Wyydra/vtprovider/internal/core/domain"
	"github.com/Wyydra/vtprovider/internal/core/port"
	"github.com/Wyydra/vtprovider/internal/telemetry"
)

// The emitters below may run on any goroutine. A callback registered
// concurrently may not be seen yet, in which case the event goes to the
// previous one. Delivery failures are not reported.

func (p *Provider) ReceiveSessionModifyRequest(request domain.VideoProfile) {
	p.emit(domain.OutboundModifyRequest, func(cb port.RemoteCallback) error {
		return cb.ReceiveSessionModifyRequest(request)
	})
}

func (p *Provider) ReceiveSessionModifyResponse(status domain.ModifyStatus, requested, response domain.VideoProfile) {
	p.emit(domain.OutboundModifyResponse, func(cb port.RemoteCallback) error {
		return cb.ReceiveSessionModifyResponse(status, requested, response)
	})
}

func (p *Provider) HandleCallSessionEvent(event domain.SessionEvent) {
	p.emit(domain.OutboundSessionEvent, func(cb port.RemoteCallback) error {
		return cb.HandleCallSessionEvent(event)
	})
}

func (p *Provider) ChangePeerDimensions(width, height int) {
	p.emit(domain.OutboundPeerDimensions, func(cb port.RemoteCallback) error {
		return cb.ChangePeerDimensions(width, height)
	})
}

func (p *Provider) ChangeCallDataUsage(dataUsage int64) {
	p.emit(domain.OutboundCallDataUsage, func(cb port.RemoteCallback) error {
		return cb.ChangeCallDataUsage(dataUsage)
	})
}

func (p *Provider) ChangeCameraCapabilities(caps domain.CameraCapabilities) {
	p.emit(domain.OutboundCameraCapabilities, func(cb port.RemoteCallback) error {
		return cb.ChangeCameraCapabilities(caps)
	})
}

func (p *Provider) ChangeVideoQuality(quality domain.VideoQuality) {
	p.emit(domain.OutboundVideoQuality, func(cb port.RemoteCallback) error {
		return cb.ChangeVideoQuality(quality)
	})
}

func (p *Provider) emit(event domain.OutboundEvent, send func(cb port.RemoteCallback) error) {
	if p.closed.Load() {
		return
	}
	ref := p.callback.Load()
	if ref == nil {
		telemetry.Metrics.OutboundTotal.WithLabelValues(event.String(), "no_callback").Inc()
		return
	}
	if err := send(ref.cb); err != nil {
		telemetry.Metrics.OutboundTotal.WithLabelValues(event.String(), "error").Inc()
		p.logger.Debug().Err(err).Str("event", event.String()).Msg("Callback unreachable")
		return
	}
	telemetry.Metrics.OutboundTotal.WithLabelValues(event.String(), "delivered").Inc()
}
