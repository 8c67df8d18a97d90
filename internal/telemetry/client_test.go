package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/physkit/internal/logx"
)

// debugSink is a minimal debugger endpoint collecting received frames.
type debugSink struct {
	upgrader websocket.Upgrader
	frames   chan Frame
}

func (d *debugSink) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := d.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		var f Frame
		if err := conn.ReadJSON(&f); err != nil {
			return
		}
		d.frames <- f
	}
}

func TestConnectAndPublish(t *testing.T) {
	sink := &debugSink{frames: make(chan Frame, 8)}
	srv := httptest.NewServer(sink)
	defer srv.Close()

	cfg := Config{
		Enabled: true,
		Address: srv.Listener.Addr().String(),
		Retries: 3,
	}
	client, err := Connect(cfg, logx.Nop())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer client.Close()

	client.Publish(Frame{
		Time:        1.5,
		ActorCount:  2,
		Controllers: []ControllerState{{X: 1, Y: 2, Z: 3}},
	})

	select {
	case f := <-sink.frames:
		if f.Time != 1.5 || f.ActorCount != 2 || len(f.Controllers) != 1 {
			t.Errorf("unexpected frame: %+v", f)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("frame never arrived")
	}
}

func TestConnectFailureAfterRetries(t *testing.T) {
	cfg := Config{
		Enabled: true,
		Address: "127.0.0.1:1", // nothing listens here
		Retries: 2,
	}
	if _, err := Connect(cfg, logx.Nop()); err == nil {
		t.Fatal("expected connect failure")
	}
}

func TestPublishOnNilClientIsSafe(t *testing.T) {
	var c *Client
	c.Publish(Frame{})
	c.Close()
}
