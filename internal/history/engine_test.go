package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MeetBoard/internal/surface"
)

// fakeSurface records what the engine restored.
type fakeSurface struct {
	shown surface.Snapshot // zero means blank
	loads int
	reset int
}

func (f *fakeSurface) LoadSnapshot(s surface.Snapshot) {
	f.shown = s
	f.loads++
}

func (f *fakeSurface) Reset() {
	f.shown = surface.Snapshot{}
	f.reset++
}

func snap(seq uint64) surface.Snapshot {
	return surface.NewSnapshot(1, 1, []uint8{uint8(seq), 0, 0, 255}, seq)
}

func TestUndoRedoOnEmptyStacksAreNoops(t *testing.T) {
	fs := &fakeSurface{}
	e := NewEngine(fs, 0)

	assert.False(t, e.Undo())
	assert.False(t, e.Redo())
	assert.Zero(t, fs.loads+fs.reset)
	assert.False(t, e.CanUndo())
	assert.False(t, e.CanRedo())
}

func TestUndoRestoresPreviousThenBlank(t *testing.T) {
	fs := &fakeSurface{}
	e := NewEngine(fs, 0)
	a, b := snap(1), snap(2)
	e.RecordChange(a)
	e.RecordChange(b)

	require.True(t, e.Undo())
	assert.Equal(t, a.ID(), fs.shown.ID())

	require.True(t, e.Undo())
	assert.True(t, fs.shown.IsZero())
	assert.Equal(t, 1, fs.reset)

	require.True(t, e.Redo())
	assert.Equal(t, a.ID(), fs.shown.ID())

	undo, redo := e.Depths()
	assert.Equal(t, 1, undo)
	assert.Equal(t, 1, redo)
}

func TestRedoPushesBackOntoUndo(t *testing.T) {
	e := NewEngine(&fakeSurface{}, 0)
	a := snap(1)
	e.RecordChange(a)
	e.Undo()
	e.Redo()

	cur, ok := e.Current()
	require.True(t, ok)
	assert.Equal(t, a.ID(), cur.ID())
	assert.True(t, e.CanUndo())
	assert.False(t, e.CanRedo())
}

func TestRecordChangeDropsRedo(t *testing.T) {
	fs := &fakeSurface{}
	e := NewEngine(fs, 0)
	e.RecordChange(snap(1))
	e.RecordChange(snap(2))
	e.Undo()
	e.Undo()
	require.True(t, e.CanRedo())

	e.RecordChange(snap(3))
	assert.False(t, e.CanRedo())

	loads := fs.loads
	assert.False(t, e.Redo())
	assert.Equal(t, loads, fs.loads)
}

func TestClearIsIdempotent(t *testing.T) {
	fs := &fakeSurface{}
	e := NewEngine(fs, 0)
	e.RecordChange(snap(1))
	e.RecordChange(snap(2))
	e.Undo()

	for i := 0; i < 2; i++ {
		e.Clear()
		undo, redo := e.Depths()
		assert.Zero(t, undo)
		assert.Zero(t, redo)
		assert.True(t, fs.shown.IsZero())
	}
	assert.Equal(t, 2, fs.reset)
}

func TestMaxHistoryKeepsEvictedFloor(t *testing.T) {
	fs := &fakeSurface{}
	e := NewEngine(fs, 2)
	s1, s2, s3 := snap(1), snap(2), snap(3)
	e.RecordChange(s1)
	e.RecordChange(s2)
	e.RecordChange(s3)

	undo, _ := e.Depths()
	assert.Equal(t, 2, undo)

	e.Undo()
	assert.Equal(t, s2.ID(), fs.shown.ID())
	e.Undo()
	assert.Equal(t, s1.ID(), fs.shown.ID(), "undo stops at the evicted snapshot, not blank")
	assert.False(t, e.Undo())

	e.Clear()
	e.RecordChange(snap(4))
	e.Undo()
	assert.True(t, fs.shown.IsZero(), "clear forgets the evicted floor")
}

func TestOnChangeReportsDepths(t *testing.T) {
	e := NewEngine(nil, 0)
	var got [][2]int
	e.OnChange = func(u, r int) { got = append(got, [2]int{u, r}) }

	e.RecordChange(snap(1))
	e.Undo()
	e.Redo()
	e.Clear()
	e.Undo() // no-op, no notification

	assert.Equal(t, [][2]int{{1, 0}, {0, 1}, {1, 0}, {0, 0}}, got)
}
