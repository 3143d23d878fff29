package sandbox

import "errors"

// ErrUnsupported indicates that Landlock is not available on this platform.
var ErrUnsupported = errors.New("sandbox: landlock is only supported on linux")

// ErrLandlockUnavailable indicates that the kernel does not support Landlock
// or it cannot be queried.
var ErrLandlockUnavailable = errors.New("sandbox: landlock is unavailable")

// ErrABINotSupported indicates that the requested ABI is newer than what the
// running kernel offers.
var ErrABINotSupported = errors.New("sandbox: requested landlock ABI is not supported")

// ErrInvalidOption indicates that an option was malformed.
var ErrInvalidOption = errors.New("sandbox: invalid option")
