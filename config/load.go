package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	getopt "github.com/pborman/getopt/v2"
	"github.com/pborman/options"
)

// EnvPrefix is the prefix of the environment variables Load reads.
const EnvPrefix = "MATCHSEND_"

// envConfigFile names the JSON file when --config is not given.
const envConfigFile = EnvPrefix + "CONFIG"

var api = sonic.ConfigStd

// flags mirrors the settings as command-line options. Values stay strings
// so that flags convert exactly like the environment does.
type flags struct {
	Help        bool   `getopt:"-h --help                 Display this help"`
	ConfigFile  string `getopt:"-c --config=path          JSON file with settings (keys as in the environment, lowercase, without prefix)"`
	Pattern     string `getopt:"-e --pattern=regex        Pattern to search for, PCRE syntax"`
	Subject     string `getopt:"-s --subject=text         Text to search"`
	SubjectFile string `getopt:"-f --subject-file=path    Read the text to search from a file, - for stdIN"`
	Host        string `getopt:"--host=addr               Destination host. Default: 127.0.0.1"`
	Port        string `getopt:"-p --port=uint16          Destination UDP port. Default: 34254"`
	Format      string `getopt:"--format=name             Datagram format, one of: raw, json. Default: raw"`
	Engine      string `getopt:"--engine=name             Regex engine, one of: auto, coregex, regexp2. Default: auto"`
	MatchTime   string `getopt:"--match-timeout=duration  Abort a backtracking search after this long, 0 disables. Default: 0"`
	WriteTime   string `getopt:"--write-timeout=duration  Deadline for sending the datagram, 0 disables. Default: 0"`
	Diagnostics string `getopt:"--diagnostics=bool        Include engine messages in errors. Default: true"`
	Sandbox     bool   `getopt:"--sandbox                 Drop filesystem access (Landlock) after reading the subject"`
	Verbose     bool   `getopt:"-v --verbose              Log every pipeline step to stdERR"`
}

func newFlagSet(program string, fl *flags) (*getopt.Set, error) {
	// Operate over a fresh set instead of the pborman/options globals so
	// Load can run any number of times.
	set := getopt.New()
	if err := options.RegisterSet("", fl, set); err != nil {
		return nil, fmt.Errorf("option set registration failed: %w", err)
	}

	set.SetProgram(program)
	// no freeform arguments
	set.SetParameters("")

	return set, nil
}

// Usage writes the flag help for program to w.
func Usage(w io.Writer, program string) {
	set, err := newFlagSet(program, &flags{})
	if err != nil {
		fmt.Fprintln(w, err)
		return
	}

	set.PrintUsage(w)
	fmt.Fprintf(w, "\nEvery setting may also be given as %s<KEY> in the environment, e.g. %sPORT=12345\n", EnvPrefix, EnvPrefix)
}

// Load resolves the configuration from argv (argv[0] is the program name)
// and environ (as returned by os.Environ). It returns ErrHelp when help was
// requested.
func Load(argv, environ []string) (*Config, error) {
	program := "matchsend"
	if len(argv) > 0 {
		program = argv[0]
	} else {
		argv = []string{program}
	}

	fl := &flags{}
	set, err := newFlagSet(program, fl)
	if err != nil {
		return nil, err
	}

	if err := set.Getopt(argv, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if args := set.Args(); len(args) != 0 {
		return nil, fmt.Errorf("%w: unexpected parameter(s): %s", ErrInvalidConfig, strings.Join(args, " "))
	}

	if fl.Help {
		return nil, ErrHelp
	}

	env := envValues(environ)

	cfg := Default()
	cfg.ConfigFile = env[envConfigFile]
	delete(env, envConfigFile)
	if set.IsSet("config") {
		cfg.ConfigFile = fl.ConfigFile
	}

	if cfg.ConfigFile != "" {
		values, err := readValues(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}

		if err := cfg.apply(values, "file "+cfg.ConfigFile); err != nil {
			return nil, err
		}
	}

	if err := cfg.apply(trimEnv(env), "environment"); err != nil {
		return nil, err
	}

	if err := cfg.apply(flagValues(set), "flags"); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func flagValues(set *getopt.Set) map[string]any {
	values := make(map[string]any)

	set.VisitAll(func(o getopt.Option) {
		switch o.LongName() {
		case "help", "config":
			// handled before the layers are applied
		default:
			if set.IsSet(o.LongName()) {
				values[flagKey(o.LongName())] = o.Value().String()
			}
		}
	})

	return values
}

// envValues picks the variables carrying EnvPrefix out of environ.
func envValues(environ []string) map[string]string {
	env := make(map[string]string)

	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}

		env[name] = value
	}

	return env
}

// trimEnv maps MATCHSEND_SUBJECT_FILE to subject_file. Unknown variables are
// ignored; the environment is shared with everything else.
func trimEnv(env map[string]string) map[string]any {
	values := make(map[string]any, len(env))

	for name, value := range env {
		key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
		if isKey(key) {
			values[key] = value
		}
	}

	return values
}

func readValues(path string) (map[string]any, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: config file: %v", ErrInvalidConfig, err)
	}

	values := make(map[string]any)
	if err := api.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: config file %s: %v", ErrInvalidConfig, path, err)
	}

	return values, nil
}
