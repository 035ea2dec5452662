package stitcher

import (
	"sync/atomic"
	"time"
)

// CancellationFlag is a cooperative, boolean-valued observer the stitcher
// polls between phases and at least once per Config.CancelPollInterval
// paths processed within a phase.
type CancellationFlag struct {
	tripped atomic.Bool
}

// Trip marks the flag as set; subsequent Tripped calls return true.
func (f *CancellationFlag) Trip() { f.tripped.Store(true) }

// Tripped reports whether the flag has been set.
func (f *CancellationFlag) Tripped() bool { return f.tripped.Load() }

// CancelAfterDuration returns a CancellationFlag that trips itself once d
// has elapsed, measured from the call to CancelAfterDuration.
func CancelAfterDuration(d time.Duration) *CancellationFlag {
	f := &CancellationFlag{}
	timer := time.AfterFunc(d, f.Trip)
	_ = timer
	return f
}
