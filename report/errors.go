package report

import (
	"errors"
	"fmt"
)

// ErrPayloadTooLarge indicates that an encoded payload does not fit in one
// UDP datagram.
var ErrPayloadTooLarge = errors.New("report: payload exceeds maximum datagram size")

// ErrInvalidOption indicates that a reporter option was malformed.
var ErrInvalidOption = errors.New("report: invalid option")

// TransportError reports a failure to create the local endpoint or to send
// the datagram. Op is one of "resolve", "listen", "encode" or "write".
type TransportError struct {
	Op   string
	Addr string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("report: %s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
