// nolint
//go:build linux
// +build linux

package sandbox

import (
	"fmt"

	"github.com/landlock-lsm/go-landlock/landlock"
	"github.com/landlock-lsm/go-landlock/landlock/syscall"
)

// Restrict removes filesystem access from the current process, except read
// access to the files named by WithReadFiles.
func Restrict(opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	llcfg, err := toLandlockConfig(cfg.abi)
	if err != nil {
		return err
	}

	if cfg.bestEffort {
		llcfg = llcfg.BestEffort()
	} else if err := checkABI(cfg.abi); err != nil {
		return err
	}

	var rules []landlock.Rule
	if len(cfg.readFiles) > 0 {
		rules = append(rules, landlock.ROFiles(cfg.readFiles...).IgnoreIfMissing())
	}

	if err := llcfg.RestrictPaths(rules...); err != nil {
		return fmt.Errorf("landlock restrict paths failed: %w", err)
	}

	return nil
}

func checkABI(abi int) error {
	supported, err := syscall.LandlockGetABIVersion()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLandlockUnavailable, err)
	}

	if supported < abi {
		return fmt.Errorf("%w: requested ABI %d, supported %d", ErrABINotSupported, abi, supported)
	}

	return nil
}

func toLandlockConfig(version int) (landlock.Config, error) {
	switch version {
	case 1:
		return landlock.V1, nil
	case 2:
		return landlock.V2, nil
	case 3:
		return landlock.V3, nil
	case 4:
		return landlock.V4, nil
	case 5:
		return landlock.V5, nil
	case 6:
		return landlock.V6, nil
	default:
		return landlock.Config{}, fmt.Errorf("%w: unsupported ABI version %d", ErrInvalidOption, version)
	}
}
