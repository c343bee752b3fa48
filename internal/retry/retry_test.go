package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(timeout, interval time.Duration) []Attempt {
	var attempts []Attempt
	for attempt := range Retries(timeout, interval) {
		attempts = append(attempts, attempt)
	}
	return attempts
}

func TestRetriesZeroTimeoutYieldsNothing(t *testing.T) {
	t.Parallel()

	assert.Empty(t, collect(0, time.Second))
	assert.Empty(t, collect(-5*time.Second, time.Second))
}

func TestRetriesInvariants(t *testing.T) {
	t.Parallel()

	timeout := 5 * time.Second
	interval := time.Second

	attempts := collect(timeout, interval)
	require.Len(t, attempts, 5)

	previous := timeout + 1
	for i, attempt := range attempts {
		assert.Equal(t, timeout, attempt.Elapsed+attempt.Remaining, "step %d", i)
		assert.Less(t, attempt.Remaining, previous, "remaining must strictly decrease")
		assert.Positive(t, attempt.Remaining)
		assert.Equal(t, interval, attempt.Wait)
		previous = attempt.Remaining
	}
}

func TestRetriesFinalWaitClampedToRemainder(t *testing.T) {
	t.Parallel()

	attempts := collect(5*time.Second, 2*time.Second)
	require.Len(t, attempts, 3)
	assert.Equal(t, 2*time.Second, attempts[0].Wait)
	assert.Equal(t, 2*time.Second, attempts[1].Wait)
	assert.Equal(t, time.Second, attempts[2].Wait)
	assert.Equal(t, 4*time.Second, attempts[2].Elapsed)
}

func TestRetriesIntervalLargerThanTimeout(t *testing.T) {
	t.Parallel()

	attempts := collect(time.Second, time.Minute)
	require.Len(t, attempts, 1)
	assert.Equal(t, Attempt{Elapsed: 0, Remaining: time.Second, Wait: time.Second}, attempts[0])
}

func TestRetriesNonPositiveIntervalConsumesRemainderAtOnce(t *testing.T) {
	t.Parallel()

	attempts := collect(3*time.Second, 0)
	require.Len(t, attempts, 1)
	assert.Equal(t, 3*time.Second, attempts[0].Wait)
}

func TestRetriesCountBound(t *testing.T) {
	t.Parallel()

	// ceil(T / min(I, T)) for a non-divisible pair.
	attempts := collect(7*time.Second, 3*time.Second)
	assert.Len(t, attempts, 3)
}

func TestRetriesEarlyBreakStopsSequence(t *testing.T) {
	t.Parallel()

	var seen int
	for range Retries(time.Hour, time.Nanosecond) {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}
