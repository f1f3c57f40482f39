package memory

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Wyydra/vtprovider/internal/core/domain"
	"github.com/Wyydra/vtprovider/internal/core/port"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownCamera   = errors.New("unknown camera")
	ErrNoCamera        = errors.New("no camera selected")
	ErrZoomUnsupported = errors.New("camera does not support zoom")
	ErrZoomOutOfRange  = errors.New("zoom out of range")
)

// DefaultCameras mirrors a typical handset: a zoomable back camera and a
// fixed front camera.
var DefaultCameras = map[string]domain.CameraCapabilities{
	"0": {Width: 1280, Height: 720, ZoomSupported: true, MaxZoom: 4},
	"1": {Width: 640, Height: 480},
}

// State is a copy of what the call has been told so far.
type State struct {
	CameraID   string
	Preview    *domain.Surface
	Display    *domain.Surface
	Rotation   int
	Zoom       float32
	PauseImage string
	Profile    domain.VideoProfile
	PeerWidth  int
	PeerHeight int
}

// bytesPerSecond approximates the video bitrate negotiated for a quality.
var bytesPerSecond = map[domain.VideoQuality]int64{
	domain.QualityHigh:   1_500_000 / 8,
	domain.QualityMedium: 768_000 / 8,
	domain.QualityLow:    384_000 / 8,
}

// VideoCall is an in-memory port.VideoCallHandler. It keeps the state the
// controller pushes and answers requests through the bound emitter the way
// a simple IMS stack would.
type VideoCall struct {
	cameras map[string]domain.CameraCapabilities
	emitter port.EventEmitter
	now     func() time.Time

	mu        sync.Mutex
	state     State
	dataUsage int64
	since     time.Time
}

type Option func(*VideoCall)

func WithCameras(cameras map[string]domain.CameraCapabilities) Option {
	return func(c *VideoCall) {
		c.cameras = cameras
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *VideoCall) {
		c.now = now
	}
}

func NewVideoCall(opts ...Option) *VideoCall {
	c := &VideoCall{
		cameras: DefaultCameras,
		emitter: noopEmitter{},
		now:     time.Now,
		state: State{
			Zoom:       1,
			Profile:    domain.NewVideoProfile(domain.StateAudioOnly, domain.QualityDefault),
			PeerWidth:  640,
			PeerHeight: 480,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.since = c.now()
	return c
}

// Bind sets where outbound events go. Call it before the provider starts
// dispatching.
func (c *VideoCall) Bind(emitter port.EventEmitter) {
	if emitter == nil {
		emitter = noopEmitter{}
	}
	c.emitter = emitter
}

func (c *VideoCall) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// accrue adds the bytes the current profile moved since the last change.
// Callers hold c.mu.
func (c *VideoCall) accrue() {
	now := c.now()
	p := c.state.Profile
	if p.State.IsVideo() && p.State&domain.StatePaused == 0 {
		rate, ok := bytesPerSecond[p.Quality]
		if !ok {
			rate = bytesPerSecond[domain.QualityMedium]
		}
		c.dataUsage += int64(now.Sub(c.since).Seconds() * float64(rate))
	}
	c.since = now
}

func (c *VideoCall) OnSetCamera(cameraID string) error {
	if cameraID == "" {
		c.mu.Lock()
		c.state.CameraID = ""
		c.state.Zoom = 1
		c.mu.Unlock()
		return nil
	}

	caps, ok := c.cameras[cameraID]
	if !ok {
		c.emitter.HandleCallSessionEvent(domain.EventCameraFailure)
		return fmt.Errorf("%w: %q", ErrUnknownCamera, cameraID)
	}

	c.mu.Lock()
	c.state.CameraID = cameraID
	c.state.Zoom = 1
	c.mu.Unlock()

	c.emitter.ChangeCameraCapabilities(caps)
	c.emitter.HandleCallSessionEvent(domain.EventCameraReady)
	return nil
}

func (c *VideoCall) OnSetPreviewSurface(surface *domain.Surface) error {
	c.mu.Lock()
	c.state.Preview = surface
	c.mu.Unlock()
	return nil
}

func (c *VideoCall) OnSetDisplaySurface(surface *domain.Surface) error {
	c.mu.Lock()
	c.state.Display = surface
	w, h := c.state.PeerWidth, c.state.PeerHeight
	c.mu.Unlock()

	if surface != nil {
		c.emitter.ChangePeerDimensions(w, h)
	}
	return nil
}

func (c *VideoCall) OnSetDeviceOrientation(rotation int) error {
	c.mu.Lock()
	c.state.Rotation = rotation
	c.mu.Unlock()
	return nil
}

func (c *VideoCall) OnSetZoom(value float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.CameraID == "" {
		return ErrNoCamera
	}
	caps := c.cameras[c.state.CameraID]
	if !caps.ZoomSupported {
		return ErrZoomUnsupported
	}
	if value < 1 || value > caps.MaxZoom {
		return fmt.Errorf("%w: %v not in [1, %v]", ErrZoomOutOfRange, value, caps.MaxZoom)
	}
	c.state.Zoom = value
	return nil
}

func (c *VideoCall) OnSendSessionModifyRequest(from, to domain.VideoProfile) error {
	c.mu.Lock()
	c.accrue()
	prev := c.state.Profile
	c.state.Profile = to
	c.mu.Unlock()

	log.Debug().
		Str("from", from.State.String()).
		Str("to", to.State.String()).
		Msg("Session modify request")

	c.emitter.ReceiveSessionModifyResponse(domain.ModifySuccess, to, to)
	if to.State.IsVideo() && to.Quality != prev.Quality {
		c.emitter.ChangeVideoQuality(to.Quality)
	}
	return nil
}

func (c *VideoCall) OnSendSessionModifyResponse(response domain.VideoProfile) error {
	c.mu.Lock()
	c.accrue()
	c.state.Profile = response
	c.mu.Unlock()
	return nil
}

func (c *VideoCall) OnRequestCameraCapabilities() error {
	c.mu.Lock()
	id := c.state.CameraID
	c.mu.Unlock()

	if id == "" {
		return nil
	}
	c.emitter.ChangeCameraCapabilities(c.cameras[id])
	return nil
}

func (c *VideoCall) OnRequestCallDataUsage() error {
	c.mu.Lock()
	c.accrue()
	usage := c.dataUsage
	c.mu.Unlock()

	c.emitter.ChangeCallDataUsage(usage)
	return nil
}

func (c *VideoCall) OnSetPauseImage(uri string) error {
	c.mu.Lock()
	c.state.PauseImage = uri
	c.mu.Unlock()
	return nil
}

type noopEmitter struct{}

func (noopEmitter) ReceiveSessionModifyRequest(domain.VideoProfile) {}

func (noopEmitter) ReceiveSessionModifyResponse(domain.ModifyStatus, domain.VideoProfile, domain.VideoProfile) {
}

func (noopEmitter) HandleCallSessionEvent(domain.SessionEvent)         {}
func (noopEmitter) ChangePeerDimensions(int, int)                      {}
func (noopEmitter) ChangeCallDataUsage(int64)                          {}
func (noopEmitter) ChangeCameraCapabilities(domain.CameraCapabilities) {}
func (noopEmitter) ChangeVideoQuality(domain.VideoQuality)             {}
