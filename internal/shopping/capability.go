package shopping

import "time"

// Confirmer answers the yes/no question asked before an item is deleted.
// Confirm blocks until the user has answered.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

// Confirm calls f(prompt).
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// declineAll is the Confirmer used when none is configured.
var declineAll = ConfirmFunc(func(string) bool { return false })

// Scheduler runs f once after d has elapsed. Scheduled work cannot be
// cancelled.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// TimerScheduler schedules work on the runtime timer.
type TimerScheduler struct{}

// AfterFunc runs f on its own goroutine after d.
func (TimerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}
