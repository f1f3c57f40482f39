package port

import "github.com/Wyydra/vtprovider/internal/core/domain"

// RemoteCallback is the controller-side sink for outbound events. Errors
// mean the peer could not be reached.
type RemoteCallback interface {
	ReceiveSessionModifyRequest(request domain.VideoProfile) error
	ReceiveSessionModifyResponse(status domain.ModifyStatus, requested, response domain.VideoProfile) error
	HandleCallSessionEvent(event domain.SessionEvent) error
	ChangePeerDimensions(width, height int) error
	ChangeCallDataUsage(dataUsage int64) error
	ChangeCameraCapabilities(caps domain.CameraCapabilities) error
	ChangeVideoQuality(quality domain.VideoQuality) error
}

// EventEmitter is what a VideoCallHandler uses to signal the controller.
// Safe to call from any goroutine; delivery is best effort.
type EventEmitter interface {
	ReceiveSessionModifyRequest(request domain.VideoProfile)
	ReceiveSessionModifyResponse(status domain.ModifyStatus, requested, response domain.VideoProfile)
	HandleCallSessionEvent(event domain.SessionEvent)
	ChangePeerDimensions(width, height int)
	ChangeCallDataUsage(dataUsage int64)
	ChangeCameraCapabilities(caps domain.CameraCapabilities)
	ChangeVideoQuality(quality domain.VideoQuality)
}

// VideoCallProvider is the inbound surface exported to the controller.
// Every method returns immediately.
type VideoCallProvider interface {
	SetCallback(cb RemoteCallback)
	SetCamera(cameraID string)
	SetPreviewSurface(surface *domain.Surface)
	SetDisplaySurface(surface *domain.Surface)
	SetDeviceOrientation(rotation int)
	SetZoom(value float32)
	SendSessionModifyRequest(from, to domain.VideoProfile)
	SendSessionModifyResponse(response domain.VideoProfile)
	RequestCameraCapabilities()
	RequestCallDataUsage()
	SetPauseImage(uri string)
}
