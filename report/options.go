package report

import (
	"fmt"
	"net"
	"time"
)

// Option configures a UDP reporter.
type Option func(*UDP) error

// WithFormat selects the datagram encoding.
func WithFormat(f Format) Option {
	return func(u *UDP) error {
		switch f {
		case FormatRaw, FormatJSON:
		default:
			return fmt.Errorf("%w: unknown format %d", ErrInvalidOption, int(f))
		}

		u.format = f
		return nil
	}
}

// WithLocalAddr binds the sending socket to addr instead of DefaultLocalAddr.
func WithLocalAddr(addr string) Option {
	return func(u *UDP) error {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("%w: local address %q: %v", ErrInvalidOption, addr, err)
		}

		u.localAddr = addr
		return nil
	}
}

// WithWriteTimeout sets a deadline on the datagram write. Zero means none.
func WithWriteTimeout(d time.Duration) Option {
	return func(u *UDP) error {
		if d < 0 {
			return fmt.Errorf("%w: negative write timeout %s", ErrInvalidOption, d)
		}

		u.writeTimeout = d
		return nil
	}
}
