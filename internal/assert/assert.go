// Package assert provides fatal precondition checks for programmer errors.
//
// These helpers panic; they are for contract violations (nil dereference,
// double release, misuse of a sentinel), never for runtime faults. Nothing
// in this module returns a recoverable error, so there is no soft-failure
// variant.
package assert

import "fmt"

// That panics with msg if cond is false.
func That(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}

// Thatf panics with the formatted message if cond is false.
// Formatting only happens on the failure path.
func Thatf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
