package pipeline

import "fmt"

// State is a step of a single Run.
//
//	Start -> Compiled -> Matched -> Reported -> Done
//
// Any failure, including "no match", ends in Failed.
type State int

const (
	StateStart State = iota
	StateCompiled
	StateMatched
	StateReported
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateCompiled:
		return "compiled"
	case StateMatched:
		return "matched"
	case StateReported:
		return "reported"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether no further transition can follow s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}
