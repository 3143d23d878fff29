package regexp

import (
	"fmt"
	"strings"
	"time"
)

// Engine names the backend that executes a compiled pattern.
type Engine int

const (
	// EngineAuto picks EnginePCRE for patterns using PCRE-only constructs
	// and EngineCore for everything else.
	EngineAuto Engine = iota
	// EngineCore is coregex, RE2 syntax only.
	EngineCore
	// EnginePCRE is regexp2, which understands lookaround and backreferences.
	EnginePCRE
)

func (e Engine) String() string {
	switch e {
	case EngineAuto:
		return "auto"
	case EngineCore:
		return "coregex"
	case EnginePCRE:
		return "regexp2"
	default:
		return fmt.Sprintf("Engine(%d)", int(e))
	}
}

// ParseEngine maps an engine name to an Engine. Matching is case-insensitive
// and accepts "core"/"re2" and "pcre" as aliases.
func ParseEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return EngineAuto, nil
	case "coregex", "core", "re2":
		return EngineCore, nil
	case "regexp2", "pcre":
		return EnginePCRE, nil
	default:
		return EngineAuto, fmt.Errorf("%w: unknown engine %q", ErrInvalidOption, name)
	}
}

// Option configures Compile.
type Option func(*config) error

type config struct {
	engine       Engine
	matchTimeout time.Duration
	diagnostics  bool
}

func defaultConfig() config {
	return config{engine: EngineAuto, diagnostics: true}
}

// WithEngine forces a specific engine instead of automatic selection.
func WithEngine(e Engine) Option {
	return func(c *config) error {
		switch e {
		case EngineAuto, EngineCore, EnginePCRE:
		default:
			return fmt.Errorf("%w: unknown engine %d", ErrInvalidOption, int(e))
		}

		c.engine = e
		return nil
	}
}

// WithMatchTimeout bounds a single regexp2 search. Zero leaves searches
// unbounded. coregex runs in linear time and ignores it.
func WithMatchTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d < 0 {
			return fmt.Errorf("%w: negative match timeout %s", ErrInvalidOption, d)
		}

		c.matchTimeout = d
		return nil
	}
}

// WithDiagnostics controls whether engine diagnostic messages are kept in
// CompileError and ExecError. Codes are always kept.
func WithDiagnostics(enabled bool) Option {
	return func(c *config) error {
		c.diagnostics = enabled
		return nil
	}
}
