package domain

// VideoState is a bit set: TX and RX combine into Bidirectional, Paused
// may be set on top of any of them.
type VideoState int

const (
	StateAudioOnly     VideoState = 0x0
	StateTx            VideoState = 0x1
	StateRx            VideoState = 0x2
	StateBidirectional VideoState = StateTx | StateRx
	StatePaused        VideoState = 0x4
)

func (s VideoState) IsVideo() bool {
	return s&StateBidirectional != 0
}

func (s VideoState) String() string {
	var base string
	switch s &^ StatePaused {
	case StateAudioOnly:
		base = "audio_only"
	case StateTx:
		base = "tx"
	case StateRx:
		base = "rx"
	case StateBidirectional:
		base = "bidirectional"
	}
	if s&StatePaused != 0 {
		return base + "|paused"
	}
	return base
}

type VideoQuality int

const (
	QualityUnknown VideoQuality = 0
	QualityHigh    VideoQuality = 1
	QualityMedium  VideoQuality = 2
	QualityLow     VideoQuality = 3
	QualityDefault VideoQuality = 4
)

// VideoProfile describes a requested or negotiated video configuration.
type VideoProfile struct {
	State   VideoState
	Quality VideoQuality
}

func NewVideoProfile(state VideoState, quality VideoQuality) VideoProfile {
	return VideoProfile{
		State:   state,
		Quality: quality,
	}
}

type CameraCapabilities struct {
	Width         int
	Height        int
	ZoomSupported bool
	MaxZoom       float32
}

// Surface is an opaque handle to a rendering target owned by the controller.
type Surface struct {
	ID string
}

// ModifyStatus is the outcome reported with a session modify response.
type ModifyStatus int

const (
	ModifySuccess          ModifyStatus = 1
	ModifyFail             ModifyStatus = 2
	ModifyInvalid          ModifyStatus = 3
	ModifyTimedOut         ModifyStatus = 4
	ModifyRejectedByRemote ModifyStatus = 5
)

type SessionEvent int

const (
	EventRxPause               SessionEvent = 1
	EventRxResume              SessionEvent = 2
	EventTxStart               SessionEvent = 3
	EventTxStop                SessionEvent = 4
	EventCameraFailure         SessionEvent = 5
	EventCameraReady           SessionEvent = 6
	EventCameraPermissionError SessionEvent = 7
)
