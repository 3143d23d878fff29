// Package pipeline runs one compile, search, report cycle.
package pipeline

import (
	"errors"
	"io"
	"log"

	"go.dw1.io/matchsend/regexp"
	"go.dw1.io/matchsend/report"
)

// ErrNoMatch is returned by Run when the pattern does not occur in the
// subject. The reporter is not called in that case.
var ErrNoMatch = errors.New("pipeline: no match found")

// ErrNoReporter is returned by Run on a Pipeline built with a nil Reporter.
var ErrNoReporter = errors.New("pipeline: no reporter configured")

var compile = regexp.Compile

// Reporter delivers a match to its destination.
type Reporter interface {
	Report(p report.Payload) error
}

// Result describes a match that was reported.
type Result struct {
	Match  regexp.Match
	Text   string
	Engine regexp.Engine
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for progress messages. The default discards them.
func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithCompileOptions passes opts to regexp.Compile.
func WithCompileOptions(opts ...regexp.Option) Option {
	return func(p *Pipeline) {
		p.compileOpts = append(p.compileOpts, opts...)
	}
}

// Pipeline may be reused: each Run starts from StateStart and the compiled
// pattern never outlives the call. It is not safe for concurrent use.
type Pipeline struct {
	reporter    Reporter
	compileOpts []regexp.Option
	log         *log.Logger
	state       State
}

// New returns a Pipeline that hands matches to r.
func New(r Reporter, opts ...Option) *Pipeline {
	p := &Pipeline{
		reporter: r,
		log:      log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p
}

// State returns the state reached by the last Run.
func (p *Pipeline) State() State {
	return p.state
}

// Run compiles pattern, finds its first match in subject and reports the
// matched text. Errors are *regexp.CompileError, *regexp.ExecError,
// *regexp.DecodeError, ErrNoMatch, or whatever the reporter returns.
func (p *Pipeline) Run(pattern string, subject []byte) (res *Result, err error) {
	p.state = StateStart
	defer func() {
		if r := recover(); r != nil {
			p.state = StateFailed
			panic(r)
		}
		if err != nil {
			p.state = StateFailed
			p.log.Printf("%s: %v", StateFailed, err)
		}
	}()

	if p.reporter == nil {
		return nil, ErrNoReporter
	}

	re, err := compile(pattern, p.compileOpts...)
	if err != nil {
		return nil, err
	}
	defer re.Close()

	p.transition(StateCompiled, "pattern %q compiled with %s", pattern, re.Engine())

	m, err := re.Search(subject)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNoMatch
	}

	text, err := m.Text(subject)
	if err != nil {
		return nil, err
	}

	p.transition(StateMatched, "matched string: %q at [%d:%d]", text, m.Start, m.End)

	if err := p.reporter.Report(report.Payload{
		Pattern: pattern,
		Start:   m.Start,
		End:     m.End,
		Text:    text,
	}); err != nil {
		return nil, err
	}

	p.transition(StateReported, "sent data: %q", text)
	p.transition(StateDone, "done")

	return &Result{Match: *m, Text: text, Engine: re.Engine()}, nil
}

func (p *Pipeline) transition(to State, format string, args ...any) {
	p.state = to
	p.log.Printf("%s: "+format, append([]any{to}, args...)...)
}
