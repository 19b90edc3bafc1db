package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchReachesSubscribersInOrder(t *testing.T) {
	m := NewManager()
	var got []string
	m.Subscribe(func(e Event) { got = append(got, "a:"+e.Type.String()) }, TypeToolChanged, TypeHistoryChanged)
	m.Subscribe(func(e Event) { got = append(got, "b:"+e.Type.String()) }, TypeToolChanged)

	m.Dispatch(TypeToolChanged, nil)
	m.Dispatch(TypeHistoryChanged, HistoryChangedData{UndoDepth: 1})
	m.Dispatch(TypeSurfaceChanged, nil)

	assert.Equal(t, []string{"a:tool", "b:tool", "a:history"}, got)
}

func TestUnsubscribe(t *testing.T) {
	m := NewManager()
	calls := 0
	unsub := m.Subscribe(func(Event) { calls++ }, TypeSurfaceChanged, TypeBoardClosed)

	m.Dispatch(TypeSurfaceChanged, nil)
	unsub()
	unsub()
	m.Dispatch(TypeSurfaceChanged, nil)
	m.Dispatch(TypeBoardClosed, nil)

	assert.Equal(t, 1, calls)
}

func TestHandlerMayUnsubscribeDuringDispatch(t *testing.T) {
	m := NewManager()
	calls := 0
	var unsub func()
	unsub = m.Subscribe(func(Event) {
		calls++
		unsub()
	}, TypeTextPending)

	m.Dispatch(TypeTextPending, TextPendingData{Open: true})
	m.Dispatch(TypeTextPending, TextPendingData{})

	assert.Equal(t, 1, calls)
}
