// Package retry provides the bounded wait-and-recheck sequence used by
// lifecycle commands to await asynchronous remote state transitions.
package retry

import (
	"iter"
	"time"
)

// Attempt is one step of a polling loop. At every yielded step
// Elapsed+Remaining equals the total timeout; Wait is how long the caller
// should sleep before re-reading the resource.
type Attempt struct {
	Elapsed   time.Duration
	Remaining time.Duration
	Wait      time.Duration
}

// Retries yields a finite sequence of attempts covering timeout in steps
// of at most interval. A zero or negative timeout yields nothing: the
// caller never waits and inspects the resource exactly once. Termination
// before the timeout is the caller's business; breaking out of the range
// is the intended way to stop early.
func Retries(timeout, interval time.Duration) iter.Seq[Attempt] {
	return func(yield func(Attempt) bool) {
		if timeout <= 0 {
			return
		}

		remaining := timeout
		for remaining > 0 {
			wait := interval
			if wait <= 0 || wait > remaining {
				wait = remaining
			}

			if !yield(Attempt{
				Elapsed:   timeout - remaining,
				Remaining: remaining,
				Wait:      wait,
			}) {
				return
			}

			remaining -= wait
		}
	}
}
