package main

import "time"

// timeNowUnixMicro returns the current wall-clock time in microseconds,
// the timestamp unit keycode.Event and the tap-hold registry use.
func timeNowUnixMicro() int64 {
	return time.Now().UnixMicro()
}
