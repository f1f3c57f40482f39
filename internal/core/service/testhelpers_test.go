package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Wyydra/vtprovider/internal/core/domain"
	"github.com/Wyydra/vtprovider/internal/core/looper"
)

var errTransport = errors.New("peer gone")

type hookCall struct {
	Hook string
	Args []any
}

// recordingHandler records every hook call and notes whether it ran while
// the manual looper was draining.
type recordingHandler struct {
	mu       sync.Mutex
	calls    []hookCall
	offLoop  int
	loop     *looper.Manual
	failures map[string]error
	panics   map[string]bool
}

func newRecordingHandler(loop *looper.Manual) *recordingHandler {
	return &recordingHandler{
		loop:     loop,
		failures: map[string]error{},
		panics:   map[string]bool{},
	}
}

func (h *recordingHandler) record(hook string, args ...any) error {
	h.mu.Lock()
	h.calls = append(h.calls, hookCall{Hook: hook, Args: args})
	if h.loop != nil && !h.loop.Draining() {
		h.offLoop++
	}
	err := h.failures[hook]
	delete(h.failures, hook)
	doPanic := h.panics[hook]
	delete(h.panics, hook)
	h.mu.Unlock()

	if doPanic {
		panic(fmt.Sprintf("%s exploded", hook))
	}
	return err
}

func (h *recordingHandler) failOnce(hook string, err error) {
	h.mu.Lock()
	h.failures[hook] = err
	h.mu.Unlock()
}

func (h *recordingHandler) panicOnce(hook string) {
	h.mu.Lock()
	h.panics[hook] = true
	h.mu.Unlock()
}

func (h *recordingHandler) Calls() []hookCall {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]hookCall, len(h.calls))
	copy(out, h.calls)
	return out
}

func (h *recordingHandler) Hooks() []string {
	var out []string
	for _, c := range h.Calls() {
		out = append(out, c.Hook)
	}
	return out
}

func (h *recordingHandler) OnSetCamera(cameraID string) error {
	return h.record("OnSetCamera", cameraID)
}

func (h *recordingHandler) OnSetPreviewSurface(surface *domain.Surface) error {
	return h.record("OnSetPreviewSurface", surface)
}

func (h *recordingHandler) OnSetDisplaySurface(surface *domain.Surface) error {
	return h.record("OnSetDisplaySurface", surface)
}

func (h *recordingHandler) OnSetDeviceOrientation(rotation int) error {
	return h.record("OnSetDeviceOrientation", rotation)
}

func (h *recordingHandler) OnSetZoom(value float32) error {
	return h.record("OnSetZoom", value)
}

func (h *recordingHandler) OnSendSessionModifyRequest(from, to domain.VideoProfile) error {
	return h.record("OnSendSessionModifyRequest", from, to)
}

func (h *recordingHandler) OnSendSessionModifyResponse(response domain.VideoProfile) error {
	return h.record("OnSendSessionModifyResponse", response)
}

func (h *recordingHandler) OnRequestCameraCapabilities() error {
	return h.record("OnRequestCameraCapabilities")
}

func (h *recordingHandler) OnRequestCallDataUsage() error {
	return h.record("OnRequestCallDataUsage")
}

func (h *recordingHandler) OnSetPauseImage(uri string) error {
	return h.record("OnSetPauseImage", uri)
}

type remoteCall struct {
	Method string
	Args   []any
}

// recordingCallback records deliveries; when err is set every method
// fails with it after recording the attempt.
type recordingCallback struct {
	mu    sync.Mutex
	calls []remoteCall
	err   error
}

func (c *recordingCallback) record(method string, args ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, remoteCall{Method: method, Args: args})
	return c.err
}

func (c *recordingCallback) Calls() []remoteCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]remoteCall, len(c.calls))
	copy(out, c.calls)
	return out
}

func (c *recordingCallback) ReceiveSessionModifyRequest(request domain.VideoProfile) error {
	return c.record("ReceiveSessionModifyRequest", request)
}

func (c *recordingCallback) ReceiveSessionModifyResponse(status domain.ModifyStatus, requested, response domain.VideoProfile) error {
	return c.record("ReceiveSessionModifyResponse", status, requested, response)
}

func (c *recordingCallback) HandleCallSessionEvent(event domain.SessionEvent) error {
	return c.record("HandleCallSessionEvent", event)
}

func (c *recordingCallback) ChangePeerDimensions(width, height int) error {
	return c.record("ChangePeerDimensions", width, height)
}

func (c *recordingCallback) ChangeCallDataUsage(dataUsage int64) error {
	return c.record("ChangeCallDataUsage", dataUsage)
}

func (c *recordingCallback) ChangeCameraCapabilities(caps domain.CameraCapabilities) error {
	return c.record("ChangeCameraCapabilities", caps)
}

func (c *recordingCallback) ChangeVideoQuality(quality domain.VideoQuality) error {
	return c.record("ChangeVideoQuality", quality)
}

func newTestProvider() (*Provider, *recordingHandler, *looper.Manual) {
	loop := looper.NewManual()
	h := newRecordingHandler(loop)
	return NewProvider(loop, h), h, loop
}

// emitAll fires every outbound emitter once.
func emitAll(p *Provider) {
	profile := domain.NewVideoProfile(domain.StateBidirectional, domain.QualityHigh)
	p.ReceiveSessionModifyRequest(profile)
	p.ReceiveSessionModifyResponse(domain.ModifySuccess, profile, profile)
	p.HandleCallSessionEvent(domain.EventCameraReady)
	p.ChangePeerDimensions(640, 480)
	p.ChangeCallDataUsage(1024)
	p.ChangeCameraCapabilities(domain.CameraCapabilities{Width: 640, Height: 480})
	p.ChangeVideoQuality(domain.QualityMedium)
}
