package frame

import "time"

// TimeSource provides the timestamp handed to frame callbacks. The default
// implementation uses system time. Tests can inject a fake source via
// SetTimeSource to control frame timestamps deterministically.
type TimeSource interface {
	Now() time.Time
}

// realTime uses system time.
type realTime struct{}

func (realTime) Now() time.Time { return time.Now() }

// source is the package-level time source, replaceable for testing.
var source TimeSource = realTime{}

// SetTimeSource replaces the frame time source. Returns the previous source
// so callers can restore it during cleanup.
func SetTimeSource(s TimeSource) TimeSource {
	prev := source
	if s == nil {
		s = realTime{}
	}
	source = s
	return prev
}

// Now returns the current time from the active source.
func Now() time.Time { return source.Now() }
