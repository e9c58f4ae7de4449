// Package response correlates synchronous requests with the asynchronous HID
// events that answer them.
//
// A requester issues a Ticket before sending, then waits on it. The
// ingestion path offers every inbound event to Deliver, which only ever
// looks at the oldest pending ticket. Callers must keep at most one request
// of a given shape outstanding; the queue does not enforce it.
package response

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultTimeout bounds each wait.
const DefaultTimeout = 500 * time.Millisecond

var (
	ErrTimeout = errors.New("response timed out")
	ErrClosed  = errors.New("response queue closed")
)

// Kind is the HID event kind a ticket waits for.
type Kind uint8

const (
	KindData Kind = iota + 1
	KindSetReport
	KindGetReport
)

func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindSetReport:
		return "set_report"
	case KindGetReport:
		return "get_report"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Event is an inbound HID event as offered by the ingestion path.
type Event struct {
	Kind   Kind
	Status uint32
	Report []byte
}

// Ticket is one outstanding request.
type Ticket struct {
	kind   Kind
	tag    byte
	hasTag bool

	done  chan struct{}
	event Event
}

func (t *Ticket) matches(ev Event) bool {
	if t.kind != ev.Kind {
		return false
	}
	if t.kind == KindData && t.hasTag {
		return len(ev.Report) > 0 && ev.Report[0] == t.tag
	}
	return true
}

// Queue is the FIFO of pending tickets for one connection.
type Queue struct {
	mu      sync.Mutex
	pending []*Ticket
	closed  chan struct{}
	timeout time.Duration
	once    sync.Once
}

// NewQueue returns a queue whose waits time out after timeout, or
// DefaultTimeout when timeout is zero.
func NewQueue(timeout time.Duration) *Queue {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Queue{timeout: timeout, closed: make(chan struct{})}
}

// Issue appends a ticket for an event of kind k.
func (q *Queue) Issue(k Kind) *Ticket {
	return q.issue(&Ticket{kind: k, done: make(chan struct{})})
}

// IssueTagged appends a ticket for a data event whose first byte is tag.
func (q *Queue) IssueTagged(tag byte) *Ticket {
	return q.issue(&Ticket{kind: KindData, tag: tag, hasTag: true, done: make(chan struct{})})
}

func (q *Queue) issue(t *Ticket) *Ticket {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, t)
	return t
}

// Release drops t from the queue. It is safe to call more than once.
func (q *Queue) Release(t *Ticket) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, p := range q.pending {
		if p == t {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Await blocks until t is answered, the queue timeout elapses or ctx ends.
// t is released on return whatever the outcome.
func (q *Queue) Await(ctx context.Context, t *Ticket) (Event, error) {
	defer q.Release(t)

	timer := time.NewTimer(q.timeout)
	defer timer.Stop()

	select {
	case <-t.done:
		return t.event, nil
	case <-timer.C:
		return Event{}, fmt.Errorf("%w: %s after %s", ErrTimeout, t.kind, q.timeout)
	case <-q.closed:
		return Event{}, ErrClosed
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

// Pending reports whether any ticket is outstanding.
func (q *Queue) Pending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending) > 0
}

// Deliver offers ev to the oldest pending ticket. It returns true when that
// ticket matched and has been completed. Events that do not match the front
// ticket leave the queue untouched.
func (q *Queue) Deliver(ev Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return false
	}
	front := q.pending[0]
	if !front.matches(ev) {
		return false
	}
	select {
	case <-front.done:
		// answered already, waiting for the requester to release it
		return false
	default:
	}
	front.event = Event{Kind: ev.Kind, Status: ev.Status, Report: append([]byte(nil), ev.Report...)}
	close(front.done)
	return true
}

// Close fails every current and future wait with ErrClosed.
func (q *Queue) Close() {
	q.once.Do(func() { close(q.closed) })
}
