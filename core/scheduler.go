package core

import "time"

// Scheduler runs f once after d. The returned stop function cancels a callback that has
// not started yet and reports whether it did.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// RealScheduler is backed by the runtime timers.
var RealScheduler Scheduler = timeScheduler{}
