package ws

import (
	"errors"
	"sync"
	"time"

	"github.com/Wyydra/vtprovider/internal/core/domain"
	"github.com/Wyydra/vtprovider/internal/core/port"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrClosed    = errors.New("ws: connection closed")
	ErrQueueFull = errors.New("ws: send queue full")
)

// DefaultSendQueue is used when NewConn is given a non-positive queue size.
const DefaultSendQueue = 64

type Client interface {
	ID() string
	port.RemoteCallback
	Close() error
}

// Conn is a controller connection. Events are queued and written by a
// dedicated goroutine, so callers never wait on the peer. When the queue
// is full the event is dropped.
type Conn struct {
	id           domain.SessionID
	conn         *websocket.Conn
	writeTimeout time.Duration

	send     chan Event
	done     chan struct{}
	once     sync.Once
	closeErr error
}

var _ Client = (*Conn)(nil)

func NewConn(id domain.SessionID, conn *websocket.Conn, writeTimeout time.Duration, sendQueue int) *Conn {
	if sendQueue <= 0 {
		sendQueue = DefaultSendQueue
	}
	c := &Conn{
		id:           id,
		conn:         conn,
		writeTimeout: writeTimeout,
		send:         make(chan Event, sendQueue),
		done:         make(chan struct{}),
	}
	go c.writePump()
	return c
}

func (c *Conn) ID() string {
	return c.id.String()
}

// ReadJSON reads the next inbound frame. Only one goroutine may read.
func (c *Conn) ReadJSON(v any) error {
	return c.conn.ReadJSON(v)
}

// Close stops the writer and closes the socket. Queued events are discarded.
func (c *Conn) Close() error {
	c.once.Do(func() {
		close(c.done)
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

func (c *Conn) ReceiveSessionModifyRequest(request domain.VideoProfile) error {
	p := ProfileFrom(request)
	return c.write(Event{Event: domain.OutboundModifyRequest.String(), Profile: &p})
}

func (c *Conn) ReceiveSessionModifyResponse(status domain.ModifyStatus, requested, response domain.VideoProfile) error {
	req, resp := ProfileFrom(requested), ProfileFrom(response)
	return c.write(Event{
		Event:     domain.OutboundModifyResponse.String(),
		Status:    ptr(int(status)),
		Requested: &req,
		Profile:   &resp,
	})
}

func (c *Conn) HandleCallSessionEvent(event domain.SessionEvent) error {
	return c.write(Event{Event: domain.OutboundSessionEvent.String(), Code: ptr(int(event))})
}

func (c *Conn) ChangePeerDimensions(width, height int) error {
	return c.write(Event{Event: domain.OutboundPeerDimensions.String(), Width: ptr(width), Height: ptr(height)})
}

func (c *Conn) ChangeCallDataUsage(dataUsage int64) error {
	return c.write(Event{Event: domain.OutboundCallDataUsage.String(), DataUsage: ptr(dataUsage)})
}

func (c *Conn) ChangeCameraCapabilities(caps domain.CameraCapabilities) error {
	dto := CapabilitiesFrom(caps)
	return c.write(Event{Event: domain.OutboundCameraCapabilities.String(), Capabilities: &dto})
}

func (c *Conn) ChangeVideoQuality(quality domain.VideoQuality) error {
	return c.write(Event{Event: domain.OutboundVideoQuality.String(), Quality: ptr(int(quality))})
}

// write only enqueues.
func (c *Conn) write(ev Event) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.send <- ev:
		return nil
	default:
		return ErrQueueFull
	}
}

func (c *Conn) writePump() {
	for {
		select {
		case <-c.done:
			return
		case ev := <-c.send:
			if c.writeTimeout > 0 {
				if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
					c.fail(err)
					return
				}
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				c.fail(err)
				return
			}
		}
	}
}

// fail closes a connection whose peer can no longer be written to; the
// read loop then sees the error and ends the session.
func (c *Conn) fail(err error) {
	log.Debug().Err(err).Str("session_id", c.ID()).Msg("Write to controller failed, closing")
	_ = c.Close()
}
