// Package websocket wraps a gorilla connection as a one-shot server-to-client
// event stream: the server pushes progress events and closes; inbound
// messages are drained only to service pong frames.
package websocket

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrSendQueueFull reports a consumer that stopped reading while events were
// still being produced.
var ErrSendQueueFull = errors.New("websocket: send queue full")

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

// Stream is a single outbound-only connection. Create with NewStream, push
// events with Send, and finish with Close; the pumps shut the connection
// down on error or close.
type Stream struct {
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func NewStream(conn *websocket.Conn) *Stream {
	s := &Stream{
		conn: conn,
		send: make(chan []byte, 64),
		done: make(chan struct{}),
	}
	go s.writePump()
	go s.discardReads()
	return s
}

// Send marshals v and queues it. It fails once the peer has gone away or the
// queue is saturated, so a slow consumer cannot stall generation.
func (s *Stream) Send(v any) error {
	msg, err := json.Marshal(v)
	if err != nil {
		return err
	}
	select {
	case <-s.done:
		return websocket.ErrCloseSent
	default:
	}
	select {
	case s.send <- msg:
		return nil
	case <-s.done:
		return websocket.ErrCloseSent
	default:
		return ErrSendQueueFull
	}
}

// Close flushes queued events and closes the connection.
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		close(s.send)
	})
}

func (s *Stream) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// discardReads keeps the pong handler serviced and detects the peer closing.
func (s *Stream) discardReads() {
	defer close(s.done)

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}
