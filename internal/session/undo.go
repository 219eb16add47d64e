package session

import "time"

// undoSlot remembers the single most recent deletion from a collection as
// an expiring token: the record, where it sat, and a deadline checked
// against the session clock. Only one deletion is ever recoverable;
// arming the slot again discards the previous token and cancels its
// expiry timer.
type undoSlot[T any] struct {
	armed    bool
	record   T
	index    int
	deadline time.Time
	timer    *time.Timer
}

// arm stores a deletion token and schedules notify once the window
// elapses. notify may be nil (CLI callers check the deadline instead).
func (u *undoSlot[T]) arm(record T, index int, deadline time.Time, window time.Duration, notify func()) {
	u.disarm()
	u.armed = true
	u.record = record
	u.index = index
	u.deadline = deadline
	if notify != nil {
		u.timer = time.AfterFunc(window, notify)
	}
}

// take returns the token if it is still live at now. Expired or empty
// slots return ok=false and are cleared.
func (u *undoSlot[T]) take(now time.Time) (record T, index int, ok bool) {
	if !u.armed || now.After(u.deadline) {
		u.disarm()
		var zero T
		return zero, 0, false
	}
	record, index = u.record, u.index
	u.disarm()
	return record, index, true
}

func (u *undoSlot[T]) disarm() {
	if u.timer != nil {
		u.timer.Stop()
		u.timer = nil
	}
	var zero T
	u.armed = false
	u.record = zero
	u.index = 0
	u.deadline = time.Time{}
}

// live reports whether an undo is still possible at now.
func (u *undoSlot[T]) live(now time.Time) bool {
	return u.armed && !now.After(u.deadline)
}
