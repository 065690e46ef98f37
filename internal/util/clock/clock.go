// Package clock provides millisecond timestamps.
package clock

import "time"

// NowMs returns the current Unix time in milliseconds.
func NowMs() uint64 { return uint64(time.Now().UnixMilli()) }

// ElapsedMs returns now - start in milliseconds, or zero when start lies after
// now.
func ElapsedMs(now, start uint64) uint64 {
	if now < start {
		return 0
	}
	return now - start
}
