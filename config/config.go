package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"go.dw1.io/matchsend/regexp"
	"go.dw1.io/matchsend/report"
)

// Setting keys shared by the JSON file, the environment and the flags.
const (
	KeyPattern      = "pattern"
	KeySubject      = "subject"
	KeySubjectFile  = "subject_file"
	KeyHost         = "host"
	KeyPort         = "port"
	KeyFormat       = "format"
	KeyEngine       = "engine"
	KeyMatchTimeout = "match_timeout"
	KeyWriteTimeout = "write_timeout"
	KeyDiagnostics  = "diagnostics"
	KeySandbox      = "sandbox"
	KeyVerbose      = "verbose"
)

// Keys lists every setting key in a stable order.
var Keys = []string{
	KeyPattern, KeySubject, KeySubjectFile, KeyHost, KeyPort, KeyFormat,
	KeyEngine, KeyMatchTimeout, KeyWriteTimeout, KeyDiagnostics, KeySandbox,
	KeyVerbose,
}

const (
	DefaultPattern = `(?<=\d{4})([^\s\d]{3,11})(?=\S)`
	DefaultSubject = "a;jhgoqoghqoj0329 u0tyu10hg0h9Y0Y9827342482y(Y0y(G)_)lajf;lqjfgqhgpqjopjqa=)*(^!@#$%^&*())9999999"
	DefaultHost    = "127.0.0.1"
	DefaultPort    = 34254
)

// Config is the resolved configuration of one run.
type Config struct {
	// ConfigFile is the JSON file the settings were read from, if any.
	ConfigFile string

	Pattern string
	Subject string
	// SubjectFile, when set, replaces Subject with the contents of the
	// file. "-" reads standard input.
	SubjectFile string

	Host   string
	Port   uint16
	Format report.Format

	Engine       regexp.Engine
	MatchTimeout time.Duration
	WriteTimeout time.Duration
	// Diagnostics keeps engine messages in compile and search errors.
	Diagnostics bool

	// Sandbox drops filesystem access once the subject has been read.
	Sandbox bool
	Verbose bool
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Pattern:     DefaultPattern,
		Subject:     DefaultSubject,
		Host:        DefaultHost,
		Port:        DefaultPort,
		Format:      report.FormatRaw,
		Engine:      regexp.EngineAuto,
		Diagnostics: true,
	}
}

// Addr returns the destination as "host:port".
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}

// CompileOptions returns the regexp options implied by c.
func (c *Config) CompileOptions() []regexp.Option {
	return []regexp.Option{
		regexp.WithEngine(c.Engine),
		regexp.WithMatchTimeout(c.MatchTimeout),
		regexp.WithDiagnostics(c.Diagnostics),
	}
}

// ReportOptions returns the reporter options implied by c.
func (c *Config) ReportOptions() []report.Option {
	return []report.Option{
		report.WithFormat(c.Format),
		report.WithWriteTimeout(c.WriteTimeout),
	}
}

// Validate checks settings that no single key can check on its own.
func (c *Config) Validate() error {
	if c.Pattern == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, KeyPattern)
	}

	if c.Host == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, KeyHost)
	}

	if c.Port == 0 {
		return fmt.Errorf("%w: %s must be in [1:65535]", ErrInvalidConfig, KeyPort)
	}

	return nil
}

// Set converts raw and stores it under key.
func (c *Config) Set(key string, raw any) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
		}
	}()

	switch key {
	case KeyPattern:
		c.Pattern, err = toString(raw)
	case KeySubject:
		c.Subject, err = toString(raw)
	case KeySubjectFile:
		c.SubjectFile, err = toString(raw)
	case KeyHost:
		c.Host, err = toString(raw)
	case KeyPort:
		c.Port, err = toPort(raw)
	case KeyFormat:
		var s string
		if s, err = toString(raw); err == nil {
			c.Format, err = report.ParseFormat(s)
		}
	case KeyEngine:
		var s string
		if s, err = toString(raw); err == nil {
			c.Engine, err = regexp.ParseEngine(s)
		}
	case KeyMatchTimeout:
		c.MatchTimeout, err = toDuration(raw)
	case KeyWriteTimeout:
		c.WriteTimeout, err = toDuration(raw)
	case KeyDiagnostics:
		c.Diagnostics, err = toBool(raw)
	case KeySandbox:
		c.Sandbox, err = toBool(raw)
	case KeyVerbose:
		c.Verbose, err = toBool(raw)
	default:
		return fmt.Errorf("unknown setting")
	}

	return err
}

// apply sets every pair of values in the order of Keys, so the outcome does
// not depend on map iteration.
func (c *Config) apply(values map[string]any, source string) error {
	for k := range values {
		if !isKey(k) {
			return fmt.Errorf("%w: %s: unknown setting %q", ErrInvalidConfig, source, k)
		}
	}

	for _, k := range Keys {
		raw, ok := values[k]
		if !ok {
			continue
		}

		if err := c.Set(k, raw); err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}
	}

	return nil
}

func isKey(k string) bool {
	for _, key := range Keys {
		if key == k {
			return true
		}
	}
	return false
}

func flagKey(long string) string {
	return strings.ReplaceAll(long, "-", "_")
}
