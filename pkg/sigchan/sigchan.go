// Package sigchan provides a non-blocking signal channel: it notifies
// that an event happened without carrying data, and emitting never
// blocks the sender.
package sigchan

// Chan is a non-blocking signal channel.
type Chan struct {
	c chan struct{}
}

// New creates a signal channel with the given buffer size.
func New(bufferSize int) *Chan {
	return &Chan{
		c: make(chan struct{}, bufferSize),
	}
}

// Emit sends a signal. If the buffer is full the signal is dropped;
// a pending signal already says everything a second one would.
func (c *Chan) Emit() {
	select {
	case c.c <- struct{}{}:
	default:
	}
}

// C exposes the channel for select loops.
func (c *Chan) C() <-chan struct{} {
	return c.c
}
