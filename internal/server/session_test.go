package server

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gravitas-games/hexline/internal/config"
	"github.com/gravitas-games/hexline/internal/network"
	"github.com/gravitas-games/hexline/pkg/hex"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	cfg := config.Default()
	cfg.World.Seed = 5
	cfg.World.Stations = 3
	s, err := NewSession(context.Background(), "test", cfg)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func newTestConn() *Connection {
	return &Connection{clientID: "test-client", send: make(chan []byte, 256)}
}

// drain decodes every message currently buffered for the connection.
func drain(t *testing.T, c *Connection) []network.ServerMessage {
	t.Helper()
	var out []network.ServerMessage
	for {
		select {
		case data := <-c.send:
			var msg struct {
				Type    string          `json:"type"`
				Payload json.RawMessage `json:"payload"`
			}
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Fatalf("bad server message %q: %v", data, err)
			}
			out = append(out, network.ServerMessage{Type: msg.Type, Payload: msg.Payload})
		default:
			return out
		}
	}
}

func clientMsg(t *testing.T, typ string, payload interface{}) *network.ClientMessage {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return &network.ClientMessage{Type: typ, Payload: data}
}

func pointerMsg(t *testing.T, typ string, c hex.Axial, hexSize float64, button string) *network.ClientMessage {
	x, y := hex.AxialToPixel(c, hexSize)
	return clientMsg(t, typ, network.PointerPayload{X: x, Y: y, Button: button})
}

func TestJoinSendsInitialState(t *testing.T) {
	s := newTestSession(t)
	c := newTestConn()

	s.handleEvent(clientEvent{conn: c})

	msgs := drain(t, c)
	if len(msgs) != 3 {
		t.Fatalf("expected welcome + 2 snapshots, got %d messages", len(msgs))
	}
	wantOrder := []string{
		network.MsgTypeWelcome,
		network.MsgTypeGridSnapshot,
		network.MsgTypeLinesSnapshot,
	}
	for i, want := range wantOrder {
		if msgs[i].Type != want {
			t.Errorf("message %d: type %q, want %q", i, msgs[i].Type, want)
		}
	}

	var gridPayload network.GridSnapshotPayload
	if err := json.Unmarshal(msgs[1].Payload.(json.RawMessage), &gridPayload); err != nil {
		t.Fatalf("grid payload: %v", err)
	}
	if len(gridPayload.Stations) != 5 { // start + end + 3 normals
		t.Fatalf("grid snapshot carries %d stations, want 5", len(gridPayload.Stations))
	}
}

func TestDrawBroadcastsLinesSnapshot(t *testing.T) {
	s := newTestSession(t)
	c := newTestConn()
	s.handleEvent(clientEvent{conn: c})
	drain(t, c)

	size := s.config.Grid.HexSize
	start := s.grid.Stations()[0].Coord
	mid := start.Add(hex.Directions[0])
	end := mid.Add(hex.Directions[0])

	s.handleEvent(clientEvent{conn: c, msg: pointerMsg(t, network.MsgTypePointerDown, start, size, network.ButtonPrimary)})
	s.handleEvent(clientEvent{conn: c, msg: pointerMsg(t, network.MsgTypePointerMove, mid, size, "")})
	s.handleEvent(clientEvent{conn: c, msg: pointerMsg(t, network.MsgTypePointerMove, end, size, "")})

	// While drawing, every pointer event republishes the preview.
	previews := 0
	for _, m := range drain(t, c) {
		if m.Type == network.MsgTypePreview {
			previews++
		}
	}
	if previews != 3 {
		t.Fatalf("expected 3 preview messages while drawing, got %d", previews)
	}

	s.handleEvent(clientEvent{conn: c, msg: pointerMsg(t, network.MsgTypePointerUp, end, size, network.ButtonPrimary)})

	var lines *network.LinesSnapshotPayload
	for _, m := range drain(t, c) {
		if m.Type == network.MsgTypeLinesSnapshot {
			var p network.LinesSnapshotPayload
			if err := json.Unmarshal(m.Payload.(json.RawMessage), &p); err != nil {
				t.Fatalf("lines payload: %v", err)
			}
			lines = &p
		}
	}
	if lines == nil {
		t.Fatalf("release did not broadcast a lines snapshot")
	}
	if len(lines.Lines) != 1 || len(lines.Lines[0].Points) != 3 {
		t.Fatalf("snapshot = %+v, want one 3-point line", lines)
	}
}

func TestUnknownMessageType(t *testing.T) {
	s := newTestSession(t)
	c := newTestConn()
	s.handleEvent(clientEvent{conn: c})
	drain(t, c)

	s.handleEvent(clientEvent{conn: c, msg: clientMsg(t, "teleport", struct{}{})})
	msgs := drain(t, c)
	if len(msgs) != 1 || msgs[0].Type != network.MsgTypeError {
		t.Fatalf("expected a single error message, got %v", msgs)
	}
}

func TestBoundsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.BoundsPolicy = "pixel"
	if _, err := boundsFromConfig(cfg); err != nil {
		t.Fatalf("pixel policy: %v", err)
	}
	cfg.Grid.BoundsPolicy = "spherical"
	if _, err := boundsFromConfig(cfg); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
