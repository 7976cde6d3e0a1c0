package clock

import (
	"container/heap"
	"time"
)

// Handle identifies a scheduled event so it can be cancelled.
type Handle uint64

// Event is a callback due at a fixed point on the match clock. Guard is
// evaluated when the event comes due; a false result drops the event.
type Event struct {
	At    time.Duration
	Label string
	Guard func() bool
	Fire  func(now time.Duration)
}

type scheduled struct {
	Event
	handle Handle
	seq    uint64
	index  int
}

// Clock is the single monotonic time source of a match and owns the queue
// of delayed actions keyed by their target time.
type Clock struct {
	now     time.Duration
	seq     uint64
	next    Handle
	queue   eventQueue
	handles map[Handle]*scheduled
	dropped int
}

func New() *Clock {
	return &Clock{handles: make(map[Handle]*scheduled)}
}

// Now returns the elapsed match time.
func (c *Clock) Now() time.Duration {
	if c == nil {
		return 0
	}
	return c.now
}

// Advance moves time forward by dt without firing anything.
func (c *Clock) Advance(dt time.Duration) {
	if c == nil || dt <= 0 {
		return
	}
	c.now += dt
}

// After schedules fire at now+delay.
func (c *Clock) After(delay time.Duration, label string, guard func() bool, fire func(now time.Duration)) Handle {
	if c == nil {
		return 0
	}
	return c.Schedule(Event{At: c.now + delay, Label: label, Guard: guard, Fire: fire})
}

// Schedule queues an event. Events at the same time fire in insertion order.
func (c *Clock) Schedule(evt Event) Handle {
	if c == nil || evt.Fire == nil {
		return 0
	}
	if c.handles == nil {
		c.handles = make(map[Handle]*scheduled)
	}
	c.next++
	c.seq++
	s := &scheduled{Event: evt, handle: c.next, seq: c.seq}
	heap.Push(&c.queue, s)
	c.handles[s.handle] = s
	return s.handle
}

// Cancel removes a pending event. It reports whether the event was pending.
func (c *Clock) Cancel(h Handle) bool {
	if c == nil || h == 0 {
		return false
	}
	s, ok := c.handles[h]
	if !ok {
		return false
	}
	heap.Remove(&c.queue, s.index)
	delete(c.handles, h)
	return true
}

// Pending reports whether h is still queued.
func (c *Clock) Pending(h Handle) bool {
	if c == nil {
		return false
	}
	_, ok := c.handles[h]
	return ok
}

// Len returns the number of queued events.
func (c *Clock) Len() int {
	if c == nil {
		return 0
	}
	return c.queue.Len()
}

// RunDue fires every event whose time has come, including events that
// become due while firing. It returns how many events fired.
func (c *Clock) RunDue() int {
	if c == nil {
		return 0
	}
	fired := 0
	for c.queue.Len() > 0 {
		s := c.queue[0]
		if s.At > c.now {
			break
		}
		heap.Pop(&c.queue)
		delete(c.handles, s.handle)
		if s.Guard != nil && !s.Guard() {
			c.dropped++
			continue
		}
		s.Fire(c.now)
		fired++
	}
	return fired
}

// Dropped counts events skipped by their guard since the last Reset.
func (c *Clock) Dropped() int {
	if c == nil {
		return 0
	}
	return c.dropped
}

// Reset discards all pending events and rewinds time to zero.
func (c *Clock) Reset() {
	if c == nil {
		return
	}
	c.now = 0
	c.queue = nil
	c.handles = make(map[Handle]*scheduled)
	c.dropped = 0
}

type eventQueue []*scheduled

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].At == q[j].At {
		return q[i].seq < q[j].seq
	}
	return q[i].At < q[j].At
}

func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *eventQueue) Push(x any) {
	s := x.(*scheduled)
	s.index = len(*q)
	*q = append(*q, s)
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	s := old[n-1]
	old[n-1] = nil
	s.index = -1
	*q = old[:n-1]
	return s
}
