// Package invariant raises panics for states the simulation must never reach.
package invariant

import "fmt"

// Violation is the panic value used when an invariant does not hold.
type Violation struct {
	Msg string
}

// Error implements the error interface.
func (v *Violation) Error() string {
	return "invariant violated: " + v.Msg
}

// True panics with a Violation when ok is false.
func True(ok bool, format string, args ...any) {
	if !ok {
		panic(&Violation{Msg: fmt.Sprintf(format, args...)})
	}
}

// Unreachable always panics. It marks branches that valid input cannot take.
func Unreachable(format string, args ...any) {
	panic(&Violation{Msg: fmt.Sprintf(format, args...)})
}
