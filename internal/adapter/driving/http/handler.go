package http

import (
	"net/http"
	"time"

	"github.com/Wyydra/vtprovider/internal/adapter/driven/gateway/ws"
	"github.com/Wyydra/vtprovider/internal/core/port"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CallHandler is a per-session implementation that reports back through
// the emitter it is bound to.
type CallHandler interface {
	port.VideoCallHandler
	Bind(emitter port.EventEmitter)
}

type Options struct {
	ReadBufferSize  int
	WriteBufferSize int
	WriteTimeout    time.Duration
	// SendQueue bounds the events waiting to be written per controller.
	SendQueue int
	// MetricsPath exposes prometheus metrics when not empty.
	MetricsPath string
}

type Handler struct {
	Looper  port.Looper
	Hub     *ws.Hub
	NewCall func() CallHandler

	opts     Options
	upgrader websocket.Upgrader
}

func NewHandler(looper port.Looper, hub *ws.Hub, newCall func() CallHandler, opts Options) *Handler {
	return &Handler{
		Looper:  looper,
		Hub:     hub,
		NewCall: newCall,
		opts:    opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  opts.ReadBufferSize,
			WriteBufferSize: opts.WriteBufferSize,
			// controllers are local processes, not browsers
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ws", h.ServeWS)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if h.opts.MetricsPath != "" {
		r.Handle(h.opts.MetricsPath, promhttp.Handler())
	}

	return r
}
