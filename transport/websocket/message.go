package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	defaultPingInterval = 30 * time.Second
	sendBufferSize      = 16
	maxMessageBytes     = 1 << 12
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload carries both requests and responses. Requests fill the session
// reference and arguments, responses the session or an error.
type Payload struct {
	SessionID  string          `json:"session_id,omitempty"`
	Difficulty string          `json:"difficulty,omitempty"`
	AIFirst    *bool           `json:"ai_first,omitempty"`
	Row        *int            `json:"row,omitempty"`
	Col        *int            `json:"col,omitempty"`
	Session    *entity.Session `json:"session,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// client is one upgraded connection. Only the reader goroutine sends on
// send; the writer goroutine owns the connection's write side.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

func (that *client) sendMessage(action string, payload Payload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response, err := json.Marshal(Message{Action: action, Payload: payloadJSON})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	select {
	case that.send <- response:
		return nil
	default:
		return errSendBufferFull
	}
}

// writeWithHeartbeat drains send onto the connection and writes a ping
// message whenever the connection has been idle for interval.
func (that *client) writeWithHeartbeat(interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastWrite := time.Now()

	pingMessage, err := json.Marshal(Message{Action: actionPing})
	if err != nil {
		return fmt.Errorf("failed to marshal ping: %w", err)
	}

	for {
		select {
		case msg, ok := <-that.send:
			if !ok {
				return nil
			}
			if err = that.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return fmt.Errorf("failed to write message: %w", err)
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < interval {
				continue
			}
			if err = that.conn.WriteMessage(websocket.TextMessage, pingMessage); err != nil {
				return fmt.Errorf("failed to write ping: %w", err)
			}
			lastWrite = time.Now()
		}
	}
}
