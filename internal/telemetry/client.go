// Package telemetry streams world snapshots to a local visual-debugging
// endpoint over a websocket. The connection is strictly best effort: a failed
// connect is reported once as a warning and frames are dropped whenever the
// writer cannot keep up. Nothing in the simulation ever waits on telemetry.
package telemetry

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/physkit/internal/logx"
)

// Defaults for the local debugger endpoint.
const (
	DefaultAddress = "127.0.0.1:5425"
	DefaultRetries = 10

	dialTimeout = 200 * time.Millisecond
	frameBuffer = 64
)

// Config configures the telemetry connection.
type Config struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
	Retries int    `yaml:"retries"`
}

// DefaultConfig returns the standard local-debugger settings, disabled.
func DefaultConfig() Config {
	return Config{
		Enabled: false,
		Address: DefaultAddress,
		Retries: DefaultRetries,
	}
}

// ControllerState is one controller's position in a frame.
type ControllerState struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Frame is a single simulation snapshot sent to the debugger.
type Frame struct {
	Time        float64           `json:"time"`
	ActorCount  int               `json:"actors"`
	Controllers []ControllerState `json:"controllers"`
}

// Client is a fire-and-forget telemetry publisher.
type Client struct {
	conn   *websocket.Conn
	frames chan Frame
	done   chan struct{}
}

// Connect dials the debugger endpoint, trying up to cfg.Retries times.
// On success a writer goroutine takes ownership of the connection.
func Connect(cfg Config, sink logx.Sink) (*Client, error) {
	addr := cfg.Address
	if addr == "" {
		addr = DefaultAddress
	}
	retries := cfg.Retries
	if retries <= 0 {
		retries = DefaultRetries
	}

	u := url.URL{Scheme: "ws", Host: addr, Path: "/"}
	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}

	var conn *websocket.Conn
	var err error
	for attempt := 0; attempt < retries; attempt++ {
		conn, _, err = dialer.Dial(u.String(), nil)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("telemetry: could not reach debugger at %s after %d attempts: %w", addr, retries, err)
	}

	c := &Client{
		conn:   conn,
		frames: make(chan Frame, frameBuffer),
		done:   make(chan struct{}),
	}
	go c.writer(sink)
	return c, nil
}

func (c *Client) writer(sink logx.Sink) {
	defer close(c.done)
	for frame := range c.frames {
		if err := c.conn.WriteJSON(frame); err != nil {
			sink.Warn("telemetry stream closed", "error", err)
			// Drain the channel so Publish never blocks.
			for range c.frames {
			}
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Publish queues a frame. Frames are dropped when the buffer is full.
func (c *Client) Publish(frame Frame) {
	if c == nil {
		return
	}
	select {
	case c.frames <- frame:
	default:
	}
}

// Close shuts the stream down and releases the connection.
func (c *Client) Close() {
	if c == nil {
		return
	}
	close(c.frames)
	<-c.done
	c.conn.Close()
}
