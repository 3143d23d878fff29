package regexp

import (
	"errors"
	"fmt"
)

// ErrReleased indicates that a Regexp was used after Close.
var ErrReleased = errors.New("regexp: use of released pattern")

// ErrInvalidOption indicates that a compile option was malformed.
//
// It is wrapped by option validation failures.
var ErrInvalidOption = errors.New("regexp: invalid option")

// CompileError reports a pattern rejected by the engine.
type CompileError struct {
	Pattern string
	Engine  Engine
	// Code is the engine's own diagnostic code.
	Code string
	// Message is the engine's formatted diagnostic. It is empty when
	// diagnostics are disabled.
	Message string
}

func (e *CompileError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("regexp: %s compile failed with code %q", e.Engine, e.Code)
	}

	return fmt.Sprintf("regexp: %s compile failed with code %q: %s", e.Engine, e.Code, e.Message)
}

// ExecError reports an engine failure during a search. It is never used for
// "no match", which Search reports as a nil Match.
type ExecError struct {
	Engine  Engine
	Code    string
	Message string
}

func (e *ExecError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("regexp: %s search failed with code %q", e.Engine, e.Code)
	}

	return fmt.Sprintf("regexp: %s search failed with code %q: %s", e.Engine, e.Code, e.Message)
}

// DecodeError reports a matched byte range that is not valid UTF-8 text, or
// that does not lie within the subject.
type DecodeError struct {
	Start, End int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("regexp: matched range [%d:%d] is not valid UTF-8 text", e.Start, e.End)
}
