package loadelim

import "fmt"

// InvariantError marks a state Reduce should never reach if its callers
// upheld their own preconditions — e.g. an access descriptor whose Aux
// carries the wrong concrete type. The driver recovers from these at its
// single call site rather than letting a panic escape to the caller: the
// pass stops and reports zero stats. Rewrites it already applied stay in
// place; the pre-pass SSA is not restored.
type InvariantError struct {
	Op  string
	Msg string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("loadelim: invariant violated reducing %s: %s", e.Op, e.Msg)
}

func newInvariantError(op, format string, args ...interface{}) *InvariantError {
	return &InvariantError{Op: op, Msg: fmt.Sprintf(format, args...)}
}
