package regexp

import (
	"errors"
	stdsyntax "regexp/syntax"
	"sync"
	"sync/atomic"

	"github.com/coregx/coregex"
	"github.com/dlclark/regexp2"
	pcresyntax "github.com/dlclark/regexp2/syntax"
)

// liveHandles counts compiled patterns that have not been released yet.
var liveHandles atomic.Int64

// Regexp is a compiled pattern owned by its caller. It delegates to either
// coregex (fast, RE2-compatible) or regexp2 (PCRE-compatible) depending on
// the pattern features detected at compile time.
//
// Search and Close are serialized by an internal mutex, so a Regexp may be
// shared, but concurrent searches on one handle do not run in parallel.
type Regexp struct {
	pattern     string
	engine      Engine
	diagnostics bool

	mu       sync.Mutex
	released bool
	core     *coregex.Regex
	pcre     *regexp2.Regexp
}

// Compile parses pattern and returns an owned handle. Syntax errors are
// reported as *CompileError; malformed options wrap ErrInvalidOption.
func Compile(pattern string, opts ...Option) (*Regexp, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	engine := cfg.engine
	if engine == EngineAuto {
		engine = EngineCore
		if needsPCRE(pattern) {
			engine = EnginePCRE
		}
	}

	re := &Regexp{
		pattern:     pattern,
		engine:      engine,
		diagnostics: cfg.diagnostics,
	}

	switch engine {
	case EnginePCRE:
		// RE2 mode keeps \d, \s and \w ASCII-only, as they are in coregex
		// and in PCRE without UCP.
		prog, err := regexp2.Compile(pattern, regexp2.RE2)
		if err != nil {
			return nil, re.compileError(err)
		}
		if cfg.matchTimeout > 0 {
			prog.MatchTimeout = cfg.matchTimeout
		}
		re.pcre = prog
	default:
		prog, err := coregex.Compile(pattern)
		if err != nil {
			return nil, re.compileError(err)
		}
		re.core = prog
	}

	liveHandles.Add(1)

	return re, nil
}

// MustCompile is like Compile but panics if the expression cannot be parsed.
func MustCompile(pattern string, opts ...Option) *Regexp {
	re, err := Compile(pattern, opts...)
	if err != nil {
		panic(err)
	}
	return re
}

// String returns the source pattern used to compile the Regexp.
func (r *Regexp) String() string {
	return r.pattern
}

// Engine reports the backend the pattern was compiled with.
func (r *Regexp) Engine() Engine {
	return r.engine
}

// Search finds the leftmost match of the pattern in subject. It returns a nil
// Match and a nil error when there is no match, and *ExecError when the
// engine fails for any other reason.
func (r *Regexp) Search(subject []byte) (*Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return nil, ErrReleased
	}

	if r.core != nil {
		loc := r.core.FindIndex(subject)
		if loc == nil {
			return nil, nil
		}
		return &Match{Start: loc[0], End: loc[1]}, nil
	}

	s := string(subject)
	m, err := r.pcre.FindStringMatch(s)
	if err != nil {
		return nil, r.execError(err)
	}
	if m == nil {
		return nil, nil
	}

	start, end := runeRangeToByte(s, m.Index, m.Length)
	return &Match{Start: start, End: end}, nil
}

// Close releases the compiled program. Only the first call has an effect;
// it always returns nil.
func (r *Regexp) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return nil
	}

	r.released = true
	r.core = nil
	r.pcre = nil
	liveHandles.Add(-1)

	return nil
}

func (r *Regexp) compileError(err error) *CompileError {
	ce := &CompileError{
		Pattern: r.pattern,
		Engine:  r.engine,
		Code:    "compile",
	}

	var pcreErr *pcresyntax.Error
	var stdErr *stdsyntax.Error
	switch {
	case errors.As(err, &pcreErr):
		ce.Code = string(pcreErr.Code)
	case errors.As(err, &stdErr):
		ce.Code = string(stdErr.Code)
	}

	if r.diagnostics {
		ce.Message = err.Error()
	}

	return ce
}

func (r *Regexp) execError(err error) *ExecError {
	ee := &ExecError{Engine: r.engine, Code: "exec"}
	if r.diagnostics {
		ee.Message = err.Error()
	}
	return ee
}
