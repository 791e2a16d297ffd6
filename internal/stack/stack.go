// Package stack captures bounded call stacks and resolves program
// counters to symbolic frames.
package stack

import "runtime"

// Frame is one resolved call site.
type Frame struct {
	Func string
	File string
	Line int
}

// Capture records up to max return addresses of the current goroutine,
// innermost call first. skip counts frames to omit above the caller of
// Capture itself (0 means the caller appears first).
func Capture(skip, max int) []uintptr {
	if max <= 0 {
		return nil
	}
	pcs := make([]uintptr, max)
	// +2 skips runtime.Callers and Capture.
	n := runtime.Callers(skip+2, pcs)
	return pcs[:n]
}

// Resolve maps a program counter from Capture to its frame. Unresolvable
// counters produce a Frame with Func "<unknown>".
func Resolve(pc uintptr) Frame {
	frames := runtime.CallersFrames([]uintptr{pc})
	fr, _ := frames.Next()
	if fr.Function == "" {
		return Frame{Func: "<unknown>"}
	}
	return Frame{Func: fr.Function, File: fr.File, Line: fr.Line}
}
