package service

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultAutosaveDelay is how long after the last change the draft is
// written. Every further change pushes the timer back.
const DefaultAutosaveDelay = 30 * time.Second

// Autosaver debounces draft writes behind an explicit, cancellable timer
// owned by the form session. The save callback runs when the timer fires,
// so it always sees the record as it is at fire time, not a snapshot from
// when the timer was set. Flush gives deterministic save-on-teardown.
type Autosaver struct {
	delay   time.Duration
	save    func()
	logger  *zap.Logger
	enabled bool

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewAutosaver creates an autosaver. A disabled autosaver ignores Touch and
// Flush entirely, for read-only contexts that must never write drafts.
func NewAutosaver(delay time.Duration, enabled bool, save func(), logger *zap.Logger) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Autosaver{
		delay:   delay,
		save:    save,
		logger:  logger,
		enabled: enabled,
	}
}

// Touch restarts the debounce window after a record change.
func (a *Autosaver) Touch() {
	if !a.enabled {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, func() {
		a.logger.Debug("Autosave timer fired")
		a.save()
	})
}

// Flush cancels any pending timer and saves immediately.
func (a *Autosaver) Flush() {
	if !a.enabled {
		return
	}

	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()

	a.save()
}

// Stop cancels any pending save without writing. The autosaver cannot be
// restarted afterwards.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.stopped = true
}
