package ws

import "github.com/Wyydra/vtprovider/internal/core/domain"

// Profile is the JSON form of domain.VideoProfile shared by inbound
// commands and outbound events.
type Profile struct {
	State   int `json:"state"`
	Quality int `json:"quality"`
}

func ProfileFrom(p domain.VideoProfile) Profile {
	return Profile{State: int(p.State), Quality: int(p.Quality)}
}

func (p Profile) Domain() domain.VideoProfile {
	return domain.NewVideoProfile(domain.VideoState(p.State), domain.VideoQuality(p.Quality))
}

type Capabilities struct {
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	ZoomSupported bool    `json:"zoom_supported"`
	MaxZoom       float32 `json:"max_zoom"`
}

func CapabilitiesFrom(c domain.CameraCapabilities) Capabilities {
	return Capabilities{
		Width:         c.Width,
		Height:        c.Height,
		ZoomSupported: c.ZoomSupported,
		MaxZoom:       c.MaxZoom,
	}
}

// Event is one outbound frame. Only the fields relevant to Event are set;
// scalar payloads are pointers so that a zero value still goes on the wire.
type Event struct {
	Event        string        `json:"event"`
	Status       *int          `json:"status,omitempty"`
	Profile      *Profile      `json:"profile,omitempty"`
	Requested    *Profile      `json:"requested,omitempty"`
	Code         *int          `json:"code,omitempty"`
	Width        *int          `json:"width,omitempty"`
	Height       *int          `json:"height,omitempty"`
	DataUsage    *int64        `json:"data_usage,omitempty"`
	Capabilities *Capabilities `json:"capabilities,omitempty"`
	Quality      *int          `json:"quality,omitempty"`
}

func ptr[T any](v T) *T {
	return &v
}
