package sandbox

import "fmt"

const maxABIVersion = 6

// ResolverFiles are read by the Go resolver when the destination is a host
// name; keep them readable if the report still has to resolve one.
var ResolverFiles = []string{
	"/etc/hosts",
	"/etc/nsswitch.conf",
	"/etc/resolv.conf",
	"/etc/services",
}

// Option configures Restrict.
type Option func(*config) error

type config struct {
	abi        int
	bestEffort bool
	readFiles  []string
}

func defaultConfig() config {
	return config{abi: maxABIVersion}
}

// WithABI selects the Landlock ABI version (1-6).
func WithABI(version int) Option {
	return func(cfg *config) error {
		if version < 1 || version > maxABIVersion {
			return fmt.Errorf("%w: unsupported ABI version %d", ErrInvalidOption, version)
		}

		cfg.abi = version
		return nil
	}
}

// WithBestEffort degrades gracefully on kernels without (full) Landlock
// support instead of failing.
func WithBestEffort() Option {
	return func(cfg *config) error {
		cfg.bestEffort = true
		return nil
	}
}

// WithReadFiles keeps read access to the given files. Missing files are
// ignored.
func WithReadFiles(paths ...string) Option {
	return func(cfg *config) error {
		for _, p := range paths {
			if p == "" {
				return fmt.Errorf("%w: empty read path", ErrInvalidOption)
			}
		}

		cfg.readFiles = append(cfg.readFiles, paths...)
		return nil
	}
}

func newConfig(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}
