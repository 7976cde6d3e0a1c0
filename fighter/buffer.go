package fighter

import "time"

// BufferWindow is how long a buffered action stays usable.
const BufferWindow = 100 * time.Millisecond

// InputBuffer remembers the most recent unconsumed action.
type InputBuffer struct {
	action Action
	at     time.Duration
	set    bool
}

// Write stores action, replacing anything not yet consumed.
func (b *InputBuffer) Write(action Action, now time.Duration) {
	if action == ActionNone {
		return
	}
	b.action = action
	b.at = now
	b.set = true
}

// Consume empties the buffer. The action is returned only if it was written
// no more than BufferWindow ago.
func (b *InputBuffer) Consume(now time.Duration) (Action, bool) {
	if !b.set {
		return ActionNone, false
	}
	b.set = false
	if now-b.at > BufferWindow {
		return ActionNone, false
	}
	return b.action, true
}

// Pending reports whether an action is stored, fresh or not.
func (b *InputBuffer) Pending() bool {
	return b.set
}

// Clear drops any stored action.
func (b *InputBuffer) Clear() {
	*b = InputBuffer{}
}
