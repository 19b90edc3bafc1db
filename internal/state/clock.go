package state

import (
	"github.com/google/uuid"
)

// Clock hands out a session id and a monotonically increasing sequence
// number. Snapshots are stamped with it so observers can order them.
type Clock struct {
	session string
	seq     uint64
}

func NewClock() *Clock {
	return &Clock{session: uuid.NewString()}
}

// Tick returns the next sequence number, starting at 1.
func (c *Clock) Tick() uint64 {
	c.seq++
	return c.seq
}

// Session identifies this mounted whiteboard.
func (c *Clock) Session() string {
	return c.session
}
