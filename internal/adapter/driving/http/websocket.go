package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Wyydra/vtprovider/internal/adapter/driven/gateway/ws"
	"github.com/Wyydra/vtprovider/internal/core/domain"
	"github.com/Wyydra/vtprovider/internal/core/port"
	"github.com/Wyydra/vtprovider/internal/core/service"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownOp      = errors.New("unknown op")
	ErrMissingProfile = errors.New("missing profile")
)

// commandDTO is one inbound frame from the controller. Which fields are
// read depends on Op.
type commandDTO struct {
	Op       string      `json:"op"`
	Enabled  *bool       `json:"enabled,omitempty"`
	CameraID string      `json:"camera_id,omitempty"`
	Surface  *string     `json:"surface,omitempty"`
	Rotation int         `json:"rotation,omitempty"`
	Zoom     float32     `json:"zoom,omitempty"`
	From     *ws.Profile `json:"from,omitempty"`
	To       *ws.Profile `json:"to,omitempty"`
	Profile  *ws.Profile `json:"profile,omitempty"`
	URI      string      `json:"uri,omitempty"`
}

// HTTP handler
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Error while upgrading ws")
		return
	}

	sessionID := domain.NewSessionID()
	client := ws.NewConn(sessionID, conn, h.opts.WriteTimeout, h.opts.SendQueue)

	l := log.With().Str("session_id", sessionID.String()).Logger()

	call := h.NewCall()
	provider := service.NewProvider(h.Looper, call, service.WithSessionID(sessionID))
	call.Bind(provider)

	if !h.Hub.Register(client) {
		l.Warn().Msg("Hub stopped, refusing controller")
		client.Close()
		return
	}
	l.Info().Msg("Controller connected")

	defer func() {
		l.Info().Uint64("dropped", provider.Dropped()).Msg("Controller disconnected")
		provider.Close()
		h.Hub.Unregister(client)
		client.Close()
	}()

	stub := provider.Stub()
	for {
		var req commandDTO
		if err := client.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Error().Err(err).Msg("Unexpected close error")
			}
			break
		}

		if err := apply(stub, client, req); err != nil {
			l.Warn().Err(err).Str("op", req.Op).Msg("Dropping malformed command")
		}
	}
}

// apply forwards one frame to the stub. cb is what set_callback registers.
func apply(stub port.VideoCallProvider, cb port.RemoteCallback, req commandDTO) error {
	switch req.Op {
	case "set_callback":
		if req.Enabled != nil && !*req.Enabled {
			stub.SetCallback(nil)
		} else {
			stub.SetCallback(cb)
		}
	case "set_camera":
		stub.SetCamera(req.CameraID)
	case "set_preview_surface":
		stub.SetPreviewSurface(surface(req.Surface))
	case "set_display_surface":
		stub.SetDisplaySurface(surface(req.Surface))
	case "set_device_orientation":
		stub.SetDeviceOrientation(req.Rotation)
	case "set_zoom":
		stub.SetZoom(req.Zoom)
	case "send_modify_request":
		if req.From == nil || req.To == nil {
			return fmt.Errorf("%s: %w", req.Op, ErrMissingProfile)
		}
		stub.SendSessionModifyRequest(req.From.Domain(), req.To.Domain())
	case "send_modify_response":
		if req.Profile == nil {
			return fmt.Errorf("%s: %w", req.Op, ErrMissingProfile)
		}
		stub.SendSessionModifyResponse(req.Profile.Domain())
	case "request_camera_capabilities":
		stub.RequestCameraCapabilities()
	case "request_call_data_usage":
		stub.RequestCallDataUsage()
	case "set_pause_image":
		stub.SetPauseImage(req.URI)
	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, req.Op)
	}
	return nil
}

func surface(id *string) *domain.Surface {
	if id == nil {
		return nil
	}
	return &domain.Surface{ID: *id}
}
