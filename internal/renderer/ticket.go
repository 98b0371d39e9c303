package renderer

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Ticket is an abortable handle for one in-flight render operation.
// Cancellation is advisory: the scheduler checks the ticket between
// batch items, so a small bounded amount of already-scheduled work may
// still land after Cancel is called. Work is never rolled back; a
// later clear-and-redraw restores consistency.
type Ticket struct {
	id        string
	cancelled atomic.Bool
}

// NewTicket creates a live ticket.
func NewTicket() *Ticket {
	return &Ticket{id: uuid.NewString()}
}

// ID returns the ticket's unique identifier.
func (t *Ticket) ID() string {
	return t.id
}

// Cancel marks the ticket cancelled. Safe to call more than once and
// from any goroutine.
func (t *Ticket) Cancel() {
	t.cancelled.Store(true)
}

// Cancelled reports whether Cancel has been called.
func (t *Ticket) Cancelled() bool {
	return t.cancelled.Load()
}
