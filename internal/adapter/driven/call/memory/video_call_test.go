package memory

import (
	"testing"
	"time"

	"github.com/Wyydra/vtprovider/internal/core/domain"
	"github.com/Wyydra/vtprovider/internal/core/looper"
	"github.com/Wyydra/vtprovider/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emitted struct {
	Event string
	Args  []any
}

type fakeEmitter struct {
	events []emitted
}

func (f *fakeEmitter) add(event string, args ...any) {
	f.events = append(f.events, emitted{Event: event, Args: args})
}

func (f *fakeEmitter) ReceiveSessionModifyRequest(request domain.VideoProfile) {
	f.add("modify_request", request)
}

func (f *fakeEmitter) ReceiveSessionModifyResponse(status domain.ModifyStatus, requested, response domain.VideoProfile) {
	f.add("modify_response", status, requested, response)
}

func (f *fakeEmitter) HandleCallSessionEvent(event domain.SessionEvent) {
	f.add("session_event", event)
}

func (f *fakeEmitter) ChangePeerDimensions(width, height int) {
	f.add("peer_dimensions", width, height)
}

func (f *fakeEmitter) ChangeCallDataUsage(dataUsage int64) {
	f.add("data_usage", dataUsage)
}

func (f *fakeEmitter) ChangeCameraCapabilities(caps domain.CameraCapabilities) {
	f.add("camera_capabilities", caps)
}

func (f *fakeEmitter) ChangeVideoQuality(quality domain.VideoQuality) {
	f.add("video_quality", quality)
}

func newBoundCall() (*VideoCall, *fakeEmitter) {
	c := NewVideoCall()
	e := &fakeEmitter{}
	c.Bind(e)
	return c, e
}

func TestSetCameraAnnouncesCapabilities(t *testing.T) {
	c, e := newBoundCall()

	require.NoError(t, c.OnSetCamera("0"))

	assert.Equal(t, []emitted{
		{Event: "camera_capabilities", Args: []any{DefaultCameras["0"]}},
		{Event: "session_event", Args: []any{domain.EventCameraReady}},
	}, e.events)
	assert.Equal(t, "0", c.Snapshot().CameraID)
}

func TestSetUnknownCamera(t *testing.T) {
	c, e := newBoundCall()

	err := c.OnSetCamera("9")

	assert.ErrorIs(t, err, ErrUnknownCamera)
	assert.Equal(t, []emitted{{Event: "session_event", Args: []any{domain.EventCameraFailure}}}, e.events)
}

func TestClearCamera(t *testing.T) {
	c, e := newBoundCall()
	require.NoError(t, c.OnSetCamera("0"))
	e.events = nil

	require.NoError(t, c.OnSetCamera(""))
	assert.Empty(t, e.events)
	assert.Empty(t, c.Snapshot().CameraID)

	require.NoError(t, c.OnRequestCameraCapabilities())
	assert.Empty(t, e.events, "no capabilities without a camera")
}

func TestZoomRules(t *testing.T) {
	c, _ := newBoundCall()

	assert.ErrorIs(t, c.OnSetZoom(2), ErrNoCamera)

	require.NoError(t, c.OnSetCamera("1"))
	assert.ErrorIs(t, c.OnSetZoom(2), ErrZoomUnsupported)

	require.NoError(t, c.OnSetCamera("0"))
	assert.ErrorIs(t, c.OnSetZoom(0.5), ErrZoomOutOfRange)
	assert.ErrorIs(t, c.OnSetZoom(4.5), ErrZoomOutOfRange)
	require.NoError(t, c.OnSetZoom(2.5))
	assert.Equal(t, float32(2.5), c.Snapshot().Zoom)
}

func TestModifyRequestIsAccepted(t *testing.T) {
	c, e := newBoundCall()
	from := domain.NewVideoProfile(domain.StateAudioOnly, domain.QualityDefault)
	to := domain.NewVideoProfile(domain.StateBidirectional, domain.QualityHigh)

	require.NoError(t, c.OnSendSessionModifyRequest(from, to))

	assert.Equal(t, []emitted{
		{Event: "modify_response", Args: []any{domain.ModifySuccess, to, to}},
		{Event: "video_quality", Args: []any{domain.QualityHigh}},
	}, e.events)
	assert.Equal(t, to, c.Snapshot().Profile)
}

func TestVideoQualityOnlyOnQualityChange(t *testing.T) {
	c, e := newBoundCall()
	audio := domain.NewVideoProfile(domain.StateAudioOnly, domain.QualityDefault)
	high := domain.NewVideoProfile(domain.StateBidirectional, domain.QualityHigh)
	highTx := domain.NewVideoProfile(domain.StateTx, domain.QualityHigh)
	lowAudio := domain.NewVideoProfile(domain.StateAudioOnly, domain.QualityLow)

	require.NoError(t, c.OnSendSessionModifyRequest(audio, high))
	require.NoError(t, c.OnSendSessionModifyRequest(high, highTx))
	require.NoError(t, c.OnSendSessionModifyRequest(highTx, lowAudio))

	var qualities []any
	for _, ev := range e.events {
		if ev.Event == "video_quality" {
			qualities = append(qualities, ev.Args...)
		}
	}
	assert.Equal(t, []any{domain.QualityHigh}, qualities,
		"state change at equal quality and audio-only targets report no quality")
}

func TestDisplaySurfaceReportsPeerDimensions(t *testing.T) {
	c, e := newBoundCall()
	display := &domain.Surface{ID: "remote"}

	require.NoError(t, c.OnSetDisplaySurface(display))
	require.NoError(t, c.OnSetDisplaySurface(nil))

	assert.Equal(t, []emitted{{Event: "peer_dimensions", Args: []any{640, 480}}}, e.events)
	assert.Nil(t, c.Snapshot().Display)
}

func TestDataUsageFollowsProfile(t *testing.T) {
	now := time.Unix(1000, 0)
	c := NewVideoCall(WithClock(func() time.Time { return now }))
	e := &fakeEmitter{}
	c.Bind(e)

	now = now.Add(10 * time.Second)
	require.NoError(t, c.OnRequestCallDataUsage())

	video := domain.NewVideoProfile(domain.StateBidirectional, domain.QualityLow)
	require.NoError(t, c.OnSendSessionModifyResponse(video))
	now = now.Add(2 * time.Second)
	require.NoError(t, c.OnRequestCallDataUsage())

	paused := domain.NewVideoProfile(domain.StateBidirectional|domain.StatePaused, domain.QualityLow)
	require.NoError(t, c.OnSendSessionModifyResponse(paused))
	now = now.Add(5 * time.Second)
	require.NoError(t, c.OnRequestCallDataUsage())

	assert.Equal(t, []emitted{
		{Event: "data_usage", Args: []any{int64(0)}},
		{Event: "data_usage", Args: []any{int64(96000)}},
		{Event: "data_usage", Args: []any{int64(96000)}},
	}, e.events)
}

func TestUnboundCallDoesNotPanic(t *testing.T) {
	c := NewVideoCall()
	assert.NotPanics(t, func() {
		_ = c.OnSetCamera("0")
		_ = c.OnRequestCallDataUsage()
		_ = c.OnSetDisplaySurface(&domain.Surface{ID: "x"})
	})
}

func TestVideoCallBehindProvider(t *testing.T) {
	loop := looper.NewManual()
	c := NewVideoCall()
	p := service.NewProvider(loop, c)
	c.Bind(p)

	stub := p.Stub()
	stub.SetCamera("0")
	stub.SetZoom(9)
	stub.SetDeviceOrientation(270)
	stub.SetPauseImage("content://pause.png")
	loop.Drain()

	s := c.Snapshot()
	assert.Equal(t, "0", s.CameraID)
	assert.Equal(t, float32(1), s.Zoom, "rejected zoom leaves the previous value")
	assert.Equal(t, 270, s.Rotation)
	assert.Equal(t, "content://pause.png", s.PauseImage)
}
