package service

import (
	"github.com/Wyydra/vtprovider/internal/core/domain"
	"github.com/Wyydra/vtprovider/internal/core/port"
)

// Command is one inbound call captured by the stub. The concrete types
// below are the only implementations.
type Command interface {
	Kind() string
	command()
}

type SetCallback struct{ Callback port.RemoteCallback }

type SetCamera struct{ CameraID string }

type SetPreviewSurface struct{ Surface *domain.Surface }

type SetDisplaySurface struct{ Surface *domain.Surface }

type SetDeviceOrientation struct{ Rotation int }

type SetZoom struct{ Value float32 }

type SendModifyRequest struct{ From, To domain.VideoProfile }

type SendModifyResponse struct{ Response domain.VideoProfile }

type RequestCameraCapabilities struct{}

type RequestCallDataUsage struct{}

type SetPauseImage struct{ URI string }

func (SetCallback) Kind() string               { return "set_callback" }
func (SetCamera) Kind() string                 { return "set_camera" }
func (SetPreviewSurface) Kind() string         { return "set_preview_surface" }
func (SetDisplaySurface) Kind() string         { return "set_display_surface" }
func (SetDeviceOrientation) Kind() string      { return "set_device_orientation" }
func (SetZoom) Kind() string                   { return "set_zoom" }
func (SendModifyRequest) Kind() string         { return "send_modify_request" }
func (SendModifyResponse) Kind() string        { return "send_modify_response" }
func (RequestCameraCapabilities) Kind() string { return "request_camera_capabilities" }
func (RequestCallDataUsage) Kind() string      { return "request_call_data_usage" }
func (SetPauseImage) Kind() string             { return "set_pause_image" }

func (SetCallback) command()               {}
func (SetCamera) command()                 {}
func (SetPreviewSurface) command()         {}
func (SetDisplaySurface) command()         {}
func (SetDeviceOrientation) command()      {}
func (SetZoom) command()                   {}
func (SendModifyRequest) command()         {}
func (SendModifyResponse) command()        {}
func (RequestCameraCapabilities) command() {}
func (RequestCallDataUsage) command()      {}
func (SetPauseImage) command()             {}
