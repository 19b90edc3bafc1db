package net

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"MeetBoard/internal/board"
	"MeetBoard/internal/event"
	"MeetBoard/internal/export"
	"MeetBoard/internal/logger"
)

// Frame types sent to viewers.
const (
	FrameSnapshot = "snapshot" // pixels changed; Image is set
	FrameState    = "state"    // tool or pen changed
	FrameClosed   = "closed"   // the board was torn down
)

const (
	sendBuffer = 16
	writeWait  = 5 * time.Second
)

// Frame is one message on the mirror stream.
type Frame struct {
	Type      string `json:"type"`
	Session   string `json:"session"`
	Tool      string `json:"tool"`
	PenMode   string `json:"pen_mode"`
	PenColor  string `json:"pen_color"`
	UndoDepth int    `json:"undo_depth"`
	RedoDepth int    `json:"redo_depth"`
	Image     []byte `json:"image,omitempty"` // PNG
}

// peer is a connected viewer.
type peer struct {
	conn *websocket.Conn
	send chan []byte
}

// Mirror streams a read-only view of a board to websocket viewers, such as
// the host of a meeting. Viewers never send operations back.
type Mirror struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	peers   map[*peer]struct{}
	current Frame
	closed  bool
}

// NewMirror creates a hub with no board attached.
func NewMirror() *Mirror {
	return &Mirror{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		peers: make(map[*peer]struct{}),
	}
}

// Attach publishes b's state on every committed change. It must be called
// from the goroutine that drives b.
func (m *Mirror) Attach(b *board.Board) {
	m.mu.Lock()
	m.current = stateFrame(b, FrameSnapshot)
	m.current.Image = encodeImage(b)
	m.mu.Unlock()

	b.Events().Subscribe(func(e event.Event) {
		switch e.Type {
		case event.TypeHistoryChanged:
			f := stateFrame(b, FrameSnapshot)
			f.Image = encodeImage(b)
			m.Publish(f)
		case event.TypeToolChanged:
			m.Publish(stateFrame(b, FrameState))
		case event.TypeBoardClosed:
			m.Publish(Frame{Type: FrameClosed, Session: b.Session()})
			m.Close()
		}
	}, event.TypeHistoryChanged, event.TypeToolChanged, event.TypeBoardClosed)
	logger.InfoTagf("mirror", "Mirroring board %s", b.Session())
}

func stateFrame(b *board.Board, typ string) Frame {
	pen := b.Pen()
	undo, redo := b.Depths()
	return Frame{
		Type:      typ,
		Session:   b.Session(),
		Tool:      b.Tool().String(),
		PenMode:   pen.Mode.String(),
		PenColor:  pen.Color.String(),
		UndoDepth: undo,
		RedoDepth: redo,
	}
}

func encodeImage(b *board.Board) []byte {
	var buf bytes.Buffer
	if err := export.WritePNG(&buf, b.Image()); err != nil {
		logger.WarnTagf("mirror", "Failed to encode frame: %v", err)
		return nil
	}
	return buf.Bytes()
}

// Publish sends f to every viewer. Snapshot frames also become the frame
// that new viewers receive first. Viewers that fall behind are dropped.
func (m *Mirror) Publish(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		logger.Errorf("Failed to marshal mirror frame: %v", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	if f.Type == FrameSnapshot {
		m.current = f
	} else {
		img := m.current.Image
		m.current = f
		m.current.Type = FrameSnapshot
		m.current.Image = img
	}
	for p := range m.peers {
		select {
		case p.send <- data:
		default:
			logger.WarnTagf("mirror", "Viewer %s too slow, dropping", p.conn.RemoteAddr())
			m.dropLocked(p)
		}
	}
}

// Peers returns the number of connected viewers.
func (m *Mirror) Peers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.peers)
}

// ServeHTTP upgrades the request and registers a viewer. The viewer first
// receives the latest snapshot.
func (m *Mirror) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WarnTagf("mirror", "Upgrade failed: %v", err)
		return
	}
	p := &peer{conn: conn, send: make(chan []byte, sendBuffer)}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		conn.Close()
		return
	}
	first, err := json.Marshal(m.current)
	if err == nil {
		p.send <- first
	}
	m.peers[p] = struct{}{}
	m.mu.Unlock()

	logger.InfoTagf("mirror", "Viewer connected from %s", conn.RemoteAddr())
	go m.writePump(p)
	m.readPump(p)
}

// readPump discards anything the viewer sends and detects disconnects.
func (m *Mirror) readPump(p *peer) {
	defer func() {
		m.mu.Lock()
		m.dropLocked(p)
		m.mu.Unlock()
	}()
	for {
		if _, _, err := p.conn.ReadMessage(); err != nil {
			logger.DebugTagf("mirror", "Viewer %s disconnected: %v", p.conn.RemoteAddr(), err)
			return
		}
	}
}

func (m *Mirror) writePump(p *peer) {
	defer p.conn.Close()
	for data := range p.send {
		p.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logger.DebugTagf("mirror", "Write to %s failed: %v", p.conn.RemoteAddr(), err)
			return
		}
	}
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	p.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (m *Mirror) dropLocked(p *peer) {
	if _, ok := m.peers[p]; !ok {
		return
	}
	delete(m.peers, p)
	close(p.send)
}

// Close disconnects every viewer and refuses new ones.
func (m *Mirror) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for p := range m.peers {
		m.dropLocked(p)
	}
	logger.InfoTagf("mirror", "Mirror closed")
}

// Serve listens on addr until ctx is cancelled. Viewers connect to /ws.
func (m *Mirror) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", m)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.InfoTagf("mirror", "Mirror listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
