//go:build !linux
// +build !linux

package sandbox

// Restrict validates opts and reports ErrUnsupported.
func Restrict(opts ...Option) error {
	if _, err := newConfig(opts); err != nil {
		return err
	}

	return ErrUnsupported
}
