// Command matchsend finds the first match of a pattern in a text and sends
// the matched string as a single UDP datagram to a local listener.
//
// With no arguments it searches the built-in subject for
// (?<=\d{4})([^\s\d]{3,11})(?=\S) and sends the result to 127.0.0.1:34254:
//
//	nc -ul 127.0.0.1 34254 &
//	matchsend
//	matchsend --port 12345 --pattern '\d+' --subject 'abc 42'
//
// Exit status is 0 when a match was sent, 1 when there was no match and 2
// for any other failure.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go.dw1.io/matchsend/config"
	"go.dw1.io/matchsend/internal/sandbox"
	"go.dw1.io/matchsend/pipeline"
	"go.dw1.io/matchsend/report"
)

const (
	exitNoMatch = 1
	exitFailure = 2
)

func main() {
	log.SetFlags(0)
	log.SetPrefix(filepath.Base(os.Args[0]) + ": ")

	cfg, err := config.Load(os.Args, os.Environ())
	if errors.Is(err, config.ErrHelp) {
		config.Usage(os.Stderr, filepath.Base(os.Args[0]))
		os.Exit(0)
	}
	if err != nil {
		log.Printf("%s", err)
		config.Usage(os.Stderr, filepath.Base(os.Args[0]))
		os.Exit(exitFailure)
	}

	subject, err := cfg.ReadSubject()
	if err != nil {
		fatal(exitFailure, "reading subject: %s", err)
	}

	if cfg.Sandbox {
		if err := sandbox.Restrict(
			sandbox.WithBestEffort(),
			sandbox.WithReadFiles(sandbox.ResolverFiles...),
		); err != nil {
			fatal(exitFailure, "sandbox: %s", err)
		}
	}

	reporter, err := report.NewUDP(cfg.Addr(), cfg.ReportOptions()...)
	if err != nil {
		fatal(exitFailure, "%s", err)
	}

	opts := []pipeline.Option{pipeline.WithCompileOptions(cfg.CompileOptions()...)}
	if cfg.Verbose {
		opts = append(opts, pipeline.WithLogger(log.Default()))
	}

	res, err := pipeline.New(reporter, opts...).Run(cfg.Pattern, subject)
	switch {
	case errors.Is(err, pipeline.ErrNoMatch):
		fatal(exitNoMatch, "no match found")
	case err != nil:
		fatal(exitFailure, "%s", err)
	}

	fmt.Printf("Matched string: %q\n", res.Text)
	fmt.Printf("Sent data: %q to %s (%s)\n", res.Text, reporter.Addr(), reporter.Format())
}

func fatal(code int, format string, args ...any) {
	log.Printf(format, args...)
	os.Exit(code)
}
