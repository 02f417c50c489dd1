package server

import (
	"testing"

	"github.com/gravitas-games/hexline/internal/network"
)

func TestSendAfterCloseIsDropped(t *testing.T) {
	c := newTestConn()
	c.Close()

	// A broadcast can still reach a connection that just left the
	// session. It must be dropped, not panic on the closed channel.
	c.SendError("test", "late broadcast")
	c.SendMessage(&network.ServerMessage{Type: network.MsgTypePong})

	select {
	case data, ok := <-c.send:
		if ok {
			t.Fatalf("message delivered after close: %s", data)
		}
	default:
		t.Fatalf("send channel should be closed")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	c := newTestConn()
	c.Close()
	c.Close()
}
