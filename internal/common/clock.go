package common

import "time"

// SystemClock reads time from the host. It is the production Clock
// implementation; tests substitute a fixed clock so every computation
// is replayable.
type SystemClock struct{}

// Now returns the current time in UTC.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
