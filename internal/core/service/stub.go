package service

import (
	"github.com/Wyydra/vtprovider/internal/core/domain"
	"github.com/Wyydra/vtprovider/internal/core/port"
)

// Stub is the inbound half of a Provider. Each method captures its
// arguments in a Command and posts it; none of them block.
type Stub struct {
	p *Provider
}

func (s *Stub) SetCallback(cb port.RemoteCallback) {
	s.p.enqueue(SetCallback{Callback: cb})
}

func (s *Stub) SetCamera(cameraID string) {
	s.p.enqueue(SetCamera{CameraID: cameraID})
}

func (s *Stub) SetPreviewSurface(surface *domain.Surface) {
	s.p.enqueue(SetPreviewSurface{Surface: surface})
}

func (s *Stub) SetDisplaySurface(surface *domain.Surface) {
	s.p.enqueue(SetDisplaySurface{Surface: surface})
}

func (s *Stub) SetDeviceOrientation(rotation int) {
	s.p.enqueue(SetDeviceOrientation{Rotation: rotation})
}

func (s *Stub) SetZoom(value float32) {
	s.p.enqueue(SetZoom{Value: value})
}

func (s *Stub) SendSessionModifyRequest(from, to domain.VideoProfile) {
	s.p.enqueue(SendModifyRequest{From: from, To: to})
}

func (s *Stub) SendSessionModifyResponse(response domain.VideoProfile) {
	s.p.enqueue(SendModifyResponse{Response: response})
}

func (s *Stub) RequestCameraCapabilities() {
	s.p.enqueue(RequestCameraCapabilities{})
}

func (s *Stub) RequestCallDataUsage() {
	s.p.enqueue(RequestCallDataUsage{})
}

func (s *Stub) SetPauseImage(uri string) {
	s.p.enqueue(SetPauseImage{URI: uri})
}
