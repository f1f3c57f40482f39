package port

import "github.com/Wyydra/vtprovider/internal/core/domain"

// VideoCallHandler is implemented by the embedder. Every hook runs on the
// provider's looper and should return quickly; work that blocks belongs on
// another goroutine.
type VideoCallHandler interface {
	OnSetCamera(cameraID string) error
	OnSetPreviewSurface(surface *domain.Surface) error
	OnSetDisplaySurface(surface *domain.Surface) error
	OnSetDeviceOrientation(rotation int) error
	OnSetZoom(value float32) error
	OnSendSessionModifyRequest(from, to domain.VideoProfile) error
	OnSendSessionModifyResponse(response domain.VideoProfile) error
	OnRequestCameraCapabilities() error
	OnRequestCallDataUsage() error
	OnSetPauseImage(uri string) error
}
