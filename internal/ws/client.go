package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 16
)

type client struct {
	conn *websocket.Conn

	// mu guards send against a close racing an in-flight enqueue.
	mu     sync.Mutex
	closed bool
	send   chan []byte
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// enqueue hands a message to the writeLoop. It reports false when the
// client is gone or its buffer is full.
func (cl *client) enqueue(msg []byte) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.closed {
		return false
	}
	select {
	case cl.send <- msg:
		return true
	default:
		return false
	}
}

// shutdown closes the send channel exactly once, after which enqueue
// can no longer reach it.
func (cl *client) shutdown() {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.closed {
		return
	}
	cl.closed = true
	close(cl.send)
}

// writeLoop drains the send channel onto the connection. It exits
// when the hub shuts the client down or the connection breaks.
func (cl *client) writeLoop() {
	defer cl.conn.Close()

	for msg := range cl.send {
		cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
