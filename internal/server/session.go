package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gravitas-games/hexline/internal/config"
	"github.com/gravitas-games/hexline/internal/editor"
	"github.com/gravitas-games/hexline/internal/grid"
	"github.com/gravitas-games/hexline/internal/line"
	"github.com/gravitas-games/hexline/internal/network"
	"github.com/gravitas-games/hexline/internal/worldgen"
	"github.com/gravitas-games/hexline/pkg/hex"
)

// clientEvent is one unit of work for the session loop. A nil msg is a
// join; leave marks a departure.
type clientEvent struct {
	conn  *Connection
	msg   *network.ClientMessage
	leave bool
}

// Session owns the editable map: grid, line store, mutation engine, and
// the drawing editor. All mutation happens on the single Run goroutine,
// which consumes client events in order; connections only ever enqueue.
// That keeps the editor a sole mutator and gives every pointer event the
// hover -> path -> broadcast sequencing downstream renderers rely on.
type Session struct {
	ID        string
	CreatedAt time.Time

	grid   *grid.Grid
	store  *line.Store
	engine *line.Engine
	editor *editor.Editor

	events chan clientEvent
	conns  map[*Connection]bool // owned by the Run goroutine

	previewShown bool

	config *config.Config
	ctx    context.Context
}

// NewSession builds the session world: bounds policy, populated grid, and
// an editor wired to an empty line store.
func NewSession(ctx context.Context, id string, cfg *config.Config) (*Session, error) {
	log.Printf("Creating session: %s", id)

	seed := cfg.World.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	bounds, err := boundsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	g := grid.New(bounds, cfg.Grid.PlacementAttempts, rng)
	placed, err := worldgen.Populate(g, cfg.World.Stations, cfg.World.MinSeparation, rng)
	if err != nil {
		return nil, fmt.Errorf("populate grid: %w", err)
	}

	store := line.NewStore()
	engine := line.NewEngine(store, g)
	ed := editor.New(g, store, engine, editor.Params{
		HexSize:   cfg.Grid.HexSize,
		Palette:   cfg.Editor.Palette,
		LineWidth: cfg.Editor.LineWidth,
		HitSlop:   cfg.Editor.HitSlop,
	})

	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		grid:      g,
		store:     store,
		engine:    engine,
		editor:    ed,
		events:    make(chan clientEvent, 512),
		conns:     make(map[*Connection]bool),
		config:    cfg,
		ctx:       ctx,
	}

	// The engine's recount subscription is already registered, so the
	// snapshot the broadcast builds always carries a fresh count.
	store.OnChange(s.broadcastLines)

	log.Printf("Session %s created: %d stations, %s bounds", id, placed, cfg.Grid.BoundsPolicy)
	return s, nil
}

func boundsFromConfig(cfg *config.Config) (grid.BoundsPolicy, error) {
	switch cfg.Grid.BoundsPolicy {
	case "radius":
		return grid.NewRadiusBounds(cfg.Grid.Radius), nil
	case "pixel":
		return grid.PixelBounds{
			HexSize: cfg.Grid.HexSize,
			Width:   cfg.Grid.Width,
			Height:  cfg.Grid.Height,
			Margin:  cfg.Grid.Margin,
		}, nil
	default:
		return nil, fmt.Errorf("unknown bounds policy %q", cfg.Grid.BoundsPolicy)
	}
}

// Run consumes client events until the context is cancelled. It is the
// only goroutine that touches the grid, store, or editor.
func (s *Session) Run() {
	log.Printf("Session %s running", s.ID)
	for {
		select {
		case <-s.ctx.Done():
			log.Printf("Session %s stopped", s.ID)
			return
		case ev := <-s.events:
			s.handleEvent(ev)
		}
	}
}

// Join enqueues a connection join; Leave its departure. Both are safe to
// call from connection goroutines.
func (s *Session) Join(c *Connection) {
	select {
	case s.events <- clientEvent{conn: c}:
	case <-s.ctx.Done():
	}
}

func (s *Session) Leave(c *Connection) {
	select {
	case s.events <- clientEvent{conn: c, leave: true}:
	case <-s.ctx.Done():
	}
}

// Dispatch enqueues a client message. Pointer moves arrive at display
// rate, so a full queue drops them rather than stalling the read pump;
// everything else blocks until the loop catches up.
func (s *Session) Dispatch(c *Connection, msg *network.ClientMessage) {
	ev := clientEvent{conn: c, msg: msg}
	if msg.Type == network.MsgTypePointerMove {
		select {
		case s.events <- ev:
		default:
		}
		return
	}
	select {
	case s.events <- ev:
	case <-s.ctx.Done():
	}
}

func (s *Session) handleEvent(ev clientEvent) {
	switch {
	case ev.leave:
		delete(s.conns, ev.conn)
		log.Printf("Client %s left session %s (%d connected)", ev.conn.clientID, s.ID, len(s.conns))

	case ev.msg == nil:
		s.conns[ev.conn] = true
		log.Printf("Client %s joined session %s (%d connected)", ev.conn.clientID, s.ID, len(s.conns))
		ev.conn.SendMessage(s.welcomeMessage(ev.conn))
		ev.conn.SendMessage(s.gridSnapshot())
		ev.conn.SendMessage(s.linesSnapshot())

	default:
		s.handleClientMessage(ev.conn, ev.msg)
	}
}

func (s *Session) handleClientMessage(c *Connection, msg *network.ClientMessage) {
	switch msg.Type {
	case network.MsgTypePointerDown:
		p, ok := parsePointer(c, msg.Payload)
		if !ok {
			return
		}
		s.editor.PointerDown(p.X, p.Y, buttonFromWire(p.Button))
		s.publishPreview()

	case network.MsgTypePointerMove:
		p, ok := parsePointer(c, msg.Payload)
		if !ok {
			return
		}
		s.editor.PointerMove(p.X, p.Y)
		s.publishPreview()

	case network.MsgTypePointerUp:
		p, ok := parsePointer(c, msg.Payload)
		if !ok {
			return
		}
		s.editor.PointerUp(p.X, p.Y, buttonFromWire(p.Button))
		s.publishPreview()

	case network.MsgTypeSelectColor:
		var sel network.SelectColorPayload
		if err := json.Unmarshal(msg.Payload, &sel); err != nil {
			c.SendError("invalid_payload", "Invalid color selection")
			return
		}
		s.editor.SelectColor(sel.Index)

	default:
		c.SendError("unknown_message_type", "Unknown message type")
	}
}

func parsePointer(c *Connection, payload json.RawMessage) (network.PointerPayload, bool) {
	var p network.PointerPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.SendError("invalid_payload", "Invalid pointer payload")
		return p, false
	}
	return p, true
}

func buttonFromWire(name string) editor.Button {
	if name == network.ButtonSecondary {
		return editor.Secondary
	}
	return editor.Primary
}

// publishPreview pushes the in-progress path after a pointer event. One
// trailing empty payload clears the preview once the session ends.
func (s *Session) publishPreview() {
	pts := s.editor.PreviewPoints()
	if pts == nil && !s.previewShown {
		return
	}
	s.previewShown = pts != nil

	payload := network.PreviewPayload{Points: make([]network.PixelPoint, 0, len(pts))}
	for _, p := range pts {
		payload.Points = append(payload.Points, network.PixelPoint{X: p.X, Y: p.Y})
	}
	s.broadcast(&network.ServerMessage{Type: network.MsgTypePreview, Payload: payload})
}

// broadcastLines runs on every store change, after the engine's recount.
func (s *Session) broadcastLines() {
	s.broadcast(s.linesSnapshot())
}

func (s *Session) broadcast(msg *network.ServerMessage) {
	for c := range s.conns {
		c.SendMessage(msg)
	}
}

func (s *Session) welcomeMessage(c *Connection) *network.ServerMessage {
	username := ""
	if c.player != nil {
		username = c.player.Username
	}
	return &network.ServerMessage{
		Type: network.MsgTypeWelcome,
		Payload: network.WelcomePayload{
			ClientID: c.clientID,
			Username: username,
			HexSize:  s.config.Grid.HexSize,
			Palette:  s.config.Editor.Palette,
		},
	}
}

func (s *Session) gridSnapshot() *network.ServerMessage {
	stations := s.grid.Stations()
	payload := network.GridSnapshotPayload{Stations: make([]network.StationInfo, 0, len(stations))}
	for _, st := range stations {
		x, y := hex.AxialToPixel(st.Coord, s.config.Grid.HexSize)
		payload.Stations = append(payload.Stations, network.StationInfo{
			Q:      st.Coord.Q,
			R:      st.Coord.R,
			X:      x,
			Y:      y,
			Kind:   st.Kind.String(),
			Facing: int(st.Facing),
		})
	}
	return &network.ServerMessage{Type: network.MsgTypeGridSnapshot, Payload: payload}
}

func (s *Session) linesSnapshot() *network.ServerMessage {
	lines := s.store.All()
	payload := network.LinesSnapshotPayload{
		Lines:       make([]network.LineInfo, 0, len(lines)),
		Connections: s.engine.Connections(),
	}
	for _, l := range lines {
		info := network.LineInfo{
			ID:     l.ID.String(),
			Points: make([]network.PixelPoint, 0, len(l.Points)),
			Color:  l.Color,
			Width:  l.Width,
		}
		for _, c := range l.Points {
			x, y := hex.AxialToPixel(c, s.config.Grid.HexSize)
			info.Points = append(info.Points, network.PixelPoint{X: x, Y: y})
		}
		payload.Lines = append(payload.Lines, info)
	}
	return &network.ServerMessage{Type: network.MsgTypeLinesSnapshot, Payload: payload}
}
