package net

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MeetBoard/internal/board"
	"MeetBoard/internal/config"
	"MeetBoard/internal/state"
)

func newMirrorFixture(t *testing.T) (*board.Board, *Mirror, string) {
	t.Helper()
	cfg := config.NewDefaultConfig().Board
	cfg.Width, cfg.Height = 64, 48
	b, err := board.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })

	m := NewMirror()
	m.Attach(b)
	srv := httptest.NewServer(m)
	t.Cleanup(srv.Close)
	return b, m, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var f Frame
	require.NoError(t, json.Unmarshal(data, &f))
	return f
}

func TestViewerReceivesInitialSnapshot(t *testing.T) {
	b, _, url := newMirrorFixture(t)
	conn := dial(t, url)

	f := readFrame(t, conn)
	assert.Equal(t, FrameSnapshot, f.Type)
	assert.Equal(t, b.Session(), f.Session)
	assert.Equal(t, state.ToolDraw.String(), f.Tool)

	img, err := png.Decode(bytes.NewReader(f.Image))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestViewerFollowsHistory(t *testing.T) {
	b, m, url := newMirrorFixture(t)
	conn := dial(t, url)
	readFrame(t, conn)
	assert.Equal(t, 1, m.Peers())

	b.PointerDown(state.Point{X: 5, Y: 5}, state.Point{})
	b.PointerMove(state.Point{X: 40, Y: 30}, state.Point{})
	b.PointerUp()

	f := readFrame(t, conn)
	assert.Equal(t, FrameSnapshot, f.Type)
	assert.Equal(t, 1, f.UndoDepth)
	assert.NotEmpty(t, f.Image)

	b.Undo()
	f = readFrame(t, conn)
	assert.Equal(t, 0, f.UndoDepth)
	assert.Equal(t, 1, f.RedoDepth)

	b.ToggleDrawErase()
	f = readFrame(t, conn)
	assert.Equal(t, FrameState, f.Type)
	assert.Equal(t, state.PenErase.String(), f.PenMode)
	assert.Empty(t, f.Image)
}

func TestLateViewerGetsLatestSnapshot(t *testing.T) {
	b, _, url := newMirrorFixture(t)
	b.PointerDown(state.Point{X: 5, Y: 5}, state.Point{})
	b.PointerUp()
	b.ToggleDrawErase()

	f := readFrame(t, dial(t, url))
	assert.Equal(t, FrameSnapshot, f.Type)
	assert.Equal(t, 1, f.UndoDepth)
	assert.Equal(t, state.PenErase.String(), f.PenMode)
	assert.NotEmpty(t, f.Image)
}

func TestBoardCloseEndsStream(t *testing.T) {
	b, m, url := newMirrorFixture(t)
	conn := dial(t, url)
	readFrame(t, conn)

	require.NoError(t, b.Close())
	f := readFrame(t, conn)
	assert.Equal(t, FrameClosed, f.Type)

	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, m.Peers())
}

func TestAddressHelpers(t *testing.T) {
	port, err := PortOf(":8888")
	require.NoError(t, err)
	assert.Equal(t, 8888, port)

	_, err = PortOf("nope")
	assert.Error(t, err)

	assert.Equal(t, "ws://10.0.0.2:8888/ws", MirrorURL("10.0.0.2", 8888))

	a := advertFromEntry("laptop.local.", "10.0.0.2", 8888, []string{"MeetBoard", "session=abc"})
	assert.Equal(t, Advert{Host: "laptop.local", URL: "ws://10.0.0.2:8888/ws", Session: "abc"}, a)
}
