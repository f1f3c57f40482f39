package domain

// OutboundEvent names the callbacks delivered to the remote controller.
type OutboundEvent string

const (
	OutboundModifyRequest      OutboundEvent = "receive_modify_request"
	OutboundModifyResponse     OutboundEvent = "receive_modify_response"
	OutboundSessionEvent       OutboundEvent = "session_event"
	OutboundPeerDimensions     OutboundEvent = "peer_dimensions"
	OutboundCallDataUsage      OutboundEvent = "call_data_usage"
	OutboundCameraCapabilities OutboundEvent = "camera_capabilities"
	OutboundVideoQuality       OutboundEvent = "video_quality"
)

func (e OutboundEvent) String() string {
	return string(e)
}
