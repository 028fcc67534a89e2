package vault

import (
	"sync"
	"time"
)

// AutoLocker locks the session after the app has been backgrounded past a
// timeout. The platform layer decides *when* backgrounding happens and
// calls Background/Foreground; what locking means stays in the Session.
type AutoLocker struct {
	timeout time.Duration
	lock    func()

	mu    sync.Mutex
	timer *time.Timer
}

// NewAutoLocker builds an AutoLocker that calls lock (typically
// Session.Lock) once the background timeout elapses.
func NewAutoLocker(timeout time.Duration, lock func()) *AutoLocker {
	return &AutoLocker{timeout: timeout, lock: lock}
}

// Background starts (or restarts) the countdown.
func (a *AutoLocker) Background() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.timeout, a.lock)
}

// Foreground cancels a pending countdown. If the timeout already fired the
// session is locked and the user must re-unlock.
func (a *AutoLocker) Foreground() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// Stop cancels any pending countdown permanently (process shutdown).
func (a *AutoLocker) Stop() {
	a.Foreground()
}
