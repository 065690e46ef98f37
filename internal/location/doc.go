// Package location provides the simple position sources sessions report with
// each envelope: a settable fixed point and a no-op source for sessions that
// do not know where they are.
package location
