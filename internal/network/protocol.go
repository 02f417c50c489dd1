package network

import "encoding/json"

// Message types - Client → Server
const (
	MsgTypePointerDown = "pointer_down"
	MsgTypePointerMove = "pointer_move"
	MsgTypePointerUp   = "pointer_up"
	MsgTypeSelectColor = "select_color"
	MsgTypePing        = "ping"
)

// Message types - Server → Client
const (
	MsgTypeWelcome       = "welcome"
	MsgTypeGridSnapshot  = "grid_snapshot"
	MsgTypeLinesSnapshot = "lines_snapshot"
	MsgTypePreview       = "preview"
	MsgTypeError         = "error"
	MsgTypePong          = "pong"
)

// Pointer buttons on the wire.
const (
	ButtonPrimary   = "primary"
	ButtonSecondary = "secondary"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// --- Client Message Payloads ---

// PointerPayload carries a pointer event in the drawing layer's pixel
// coordinate space. Button is empty for moves.
type PointerPayload struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button string  `json:"button,omitempty"`
}

// SelectColorPayload switches the active palette color.
type SelectColorPayload struct {
	Index int `json:"index"`
}

// --- Server Message Payloads ---

// WelcomePayload is sent to a client after connecting.
type WelcomePayload struct {
	ClientID string   `json:"client_id"`
	Username string   `json:"username,omitempty"`
	HexSize  float64  `json:"hex_size"`
	Palette  []string `json:"palette"`
}

// PixelPoint is one point of a polyline in drawing-layer pixels.
type PixelPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StationInfo describes one placed station.
type StationInfo struct {
	Q      int     `json:"q"`
	R      int     `json:"r"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Kind   string  `json:"kind"`
	Facing int     `json:"facing"`
}

// GridSnapshotPayload carries the full station set.
type GridSnapshotPayload struct {
	Stations []StationInfo `json:"stations"`
}

// LineInfo is one persisted line ready for rendering: its waypoints mapped
// to pixel space plus stroke color and width.
type LineInfo struct {
	ID     string       `json:"id"`
	Points []PixelPoint `json:"points"`
	Color  string       `json:"color"`
	Width  float64      `json:"width"`
}

// LinesSnapshotPayload carries every persisted line and the derived
// connection count. Republished after every store change.
type LinesSnapshotPayload struct {
	Lines       []LineInfo `json:"lines"`
	Connections int        `json:"connections"`
}

// PreviewPayload carries the in-progress session path, including the
// synthetic trailing point at the live pointer position. Empty points
// means no session is active.
type PreviewPayload struct {
	Points []PixelPoint `json:"points"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
