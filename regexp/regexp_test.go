package regexp

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const (
	defaultPattern = `(?<=\d{4})([^\s\d]{3,11})(?=\S)`
	defaultSubject = "a;jhgoqoghqoj0329 u0tyu10hg0h9Y0Y9827342482y(Y0y(G)_)lajf;lqjfgqhgpqjopjqa=)*(^!@#$%^&*())9999999"
)

func TestCompileEngineSelection(t *testing.T) {
	coreRe := MustCompile("a+")
	defer coreRe.Close()
	if coreRe.Engine() != EngineCore || coreRe.core == nil || coreRe.pcre != nil {
		t.Fatalf("expected core backend for %q, got %s", "a+", coreRe.Engine())
	}

	pcreRe := MustCompile("(?<=a)b")
	defer pcreRe.Close()
	if pcreRe.Engine() != EnginePCRE || pcreRe.pcre == nil || pcreRe.core != nil {
		t.Fatalf("expected regexp2 backend for %q, got %s", "(?<=a)b", pcreRe.Engine())
	}

	forced := MustCompile("a+", WithEngine(EnginePCRE))
	defer forced.Close()
	if forced.Engine() != EnginePCRE {
		t.Fatalf("WithEngine(EnginePCRE) ignored, got %s", forced.Engine())
	}
}

func TestSearchDefaultPattern(t *testing.T) {
	re := MustCompile(defaultPattern)
	defer re.Close()

	subject := []byte(defaultSubject)
	m, err := re.Search(subject)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if m == nil {
		t.Fatal("expected a match")
	}
	if m.Start != 43 || m.End != 46 {
		t.Fatalf("match offsets = [%d:%d], want [43:46]", m.Start, m.End)
	}

	text, err := m.Text(subject)
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if text != "y(Y" {
		t.Fatalf("matched text = %q, want %q", text, "y(Y")
	}
}

func TestSearchNoMatch(t *testing.T) {
	cases := []struct {
		name    string
		pattern string
		subject string
	}{
		{"core", `\d+`, "abc"},
		{"pcre", `(?<=\d{4})x`, "123x"},
		{"empty subject", `a`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			re := MustCompile(tc.pattern)
			defer re.Close()

			m, err := re.Search([]byte(tc.subject))
			if err != nil {
				t.Fatalf("no-match must not be an error, got %v", err)
			}
			if m != nil {
				t.Fatalf("expected no match, got %+v", *m)
			}
		})
	}
}

func TestSearchOffsetsWithinSubject(t *testing.T) {
	cases := []struct {
		pattern string
		subject string
		want    string
	}{
		{`\d+`, "abc123def", "123"},
		{`(\w+)\s+\1`, "say go go now", "go go"},
		{`(?<=🙂)a`, "🙂a🙂a", "a"},
		{`(?<=1)\S+`, "héllo1wörld", "wörld"},
		{`x*`, "abc", ""},
	}

	for _, tc := range cases {
		t.Run(tc.pattern, func(t *testing.T) {
			re := MustCompile(tc.pattern)
			defer re.Close()

			subject := []byte(tc.subject)
			m, err := re.Search(subject)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if m == nil {
				t.Fatal("expected a match")
			}
			if m.Start < 0 || m.Start > m.End || m.End > len(subject) {
				t.Fatalf("offsets [%d:%d] outside subject of length %d", m.Start, m.End, len(subject))
			}
			if got := string(m.Bytes(subject)); got != tc.want {
				t.Fatalf("matched %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSearchRuneOffsets(t *testing.T) {
	// é and ö are two bytes each; regexp2 reports rune offsets.
	re := MustCompile(`(?<=1)\S+`)
	defer re.Close()

	m, err := re.Search([]byte("héllo1wörld"))
	if err != nil || m == nil {
		t.Fatalf("search: %v, %v", m, err)
	}
	if m.Start != 7 || m.End != 13 {
		t.Fatalf("offsets = [%d:%d], want [7:13]", m.Start, m.End)
	}
}

func TestSearchASCIIClassesAgreeAcrossEngines(t *testing.T) {
	// ١٢٣٤ are Arabic-Indic digits, é is a Unicode letter.
	cases := []struct {
		pattern string
		subject string
	}{
		{`\d+`, "x١٢٣٤abc!"},
		{`\w+`, "é"},
		{`\s`, "a\u00a0b"},
		{defaultPattern, "x١٢٣٤abc!"},
	}

	for _, tc := range cases {
		t.Run(tc.pattern, func(t *testing.T) {
			for _, engine := range []Engine{EngineCore, EnginePCRE} {
				if engine == EngineCore && needsPCRE(tc.pattern) {
					continue
				}

				re := MustCompile(tc.pattern, WithEngine(engine))
				m, err := re.Search([]byte(tc.subject))
				re.Close()
				if err != nil {
					t.Fatalf("%s: search: %v", engine, err)
				}
				if m != nil {
					t.Fatalf("%s: expected no match, got %+v", engine, *m)
				}
			}
		})
	}

	re := MustCompile(`\d+`, WithEngine(EnginePCRE))
	defer re.Close()

	m, err := re.Search([]byte("١٢3456"))
	if err != nil || m == nil {
		t.Fatalf("search: %v, %v", m, err)
	}
	if m.Start != 4 || m.End != 8 {
		t.Fatalf("offsets = [%d:%d], want [4:8]", m.Start, m.End)
	}
}

func TestSearchExecErrorOnTimeout(t *testing.T) {
	// Catastrophic backtracking; regexp2 gives up once the timeout elapses.
	re := MustCompile(`(a+)+$`, WithEngine(EnginePCRE), WithMatchTimeout(50*time.Millisecond))
	defer re.Close()

	_, err := re.Search([]byte(strings.Repeat("a", 40) + "!"))

	var ee *ExecError
	if !errors.As(err, &ee) {
		t.Fatalf("expected *ExecError, got %v", err)
	}
	if ee.Engine != EnginePCRE || ee.Message == "" {
		t.Fatalf("unexpected exec error %+v", ee)
	}
}

func TestCompileError(t *testing.T) {
	_, err := Compile(`(?<=\d{4}`)

	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CompileError, got %T (%v)", err, err)
	}
	if ce.Engine != EnginePCRE {
		t.Fatalf("engine = %s, want %s", ce.Engine, EnginePCRE)
	}
	if ce.Code == "" || ce.Message == "" {
		t.Fatalf("expected code and message, got %+v", ce)
	}
	if ce.Pattern != `(?<=\d{4}` {
		t.Fatalf("pattern = %q", ce.Pattern)
	}
}

func TestCompileErrorCoreRejectsLookbehind(t *testing.T) {
	_, err := Compile(`(?<=a)b`, WithEngine(EngineCore))

	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CompileError, got %T (%v)", err, err)
	}
	if ce.Engine != EngineCore {
		t.Fatalf("engine = %s, want %s", ce.Engine, EngineCore)
	}
}

func TestCompileErrorWithoutDiagnostics(t *testing.T) {
	_, err := Compile(`(abc`, WithDiagnostics(false))

	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CompileError, got %T (%v)", err, err)
	}
	if ce.Message != "" {
		t.Fatalf("expected empty message, got %q", ce.Message)
	}
	if ce.Code == "" {
		t.Fatal("code must be kept without diagnostics")
	}
}

func TestCompileInvalidOption(t *testing.T) {
	if _, err := Compile("a", WithEngine(Engine(42))); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
	if _, err := Compile("a", WithMatchTimeout(-1)); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
}

func TestCloseLifecycle(t *testing.T) {
	before := liveHandles.Load()

	re := MustCompile(defaultPattern)
	if got := liveHandles.Load(); got != before+1 {
		t.Fatalf("live handles after compile = %d, want %d", got, before+1)
	}

	if err := re.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := re.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if got := liveHandles.Load(); got != before {
		t.Fatalf("live handles after close = %d, want %d", got, before)
	}

	if _, err := re.Search([]byte(defaultSubject)); !errors.Is(err, ErrReleased) {
		t.Fatalf("search after close: expected ErrReleased, got %v", err)
	}
}

func TestFailedCompileHoldsNoHandle(t *testing.T) {
	before := liveHandles.Load()

	if _, err := Compile(`(?<=\d{4}`); err == nil {
		t.Fatal("expected compile error")
	}
	if got := liveHandles.Load(); got != before {
		t.Fatalf("live handles = %d, want %d", got, before)
	}
}

func TestMatchText(t *testing.T) {
	subject := []byte("é")

	if _, err := (Match{Start: 0, End: 1}).Text(subject); err == nil {
		t.Fatal("expected decode error for split multi-byte rune")
	} else {
		var de *DecodeError
		if !errors.As(err, &de) || de.Start != 0 || de.End != 1 {
			t.Fatalf("expected *DecodeError [0:1], got %v", err)
		}
	}

	if _, err := (Match{Start: 1, End: 5}).Text(subject); err == nil {
		t.Fatal("expected decode error for out-of-range match")
	}

	text, err := (Match{Start: 0, End: 2}).Text(subject)
	if err != nil || text != "é" {
		t.Fatalf("Text = %q, %v", text, err)
	}
}

func TestSearchInvalidUTF8Subject(t *testing.T) {
	re := MustCompile(`(?<=a)[^a]+`)
	defer re.Close()

	subject := []byte("a\xff\xfeb")
	m, err := re.Search(subject)
	if err != nil || m == nil {
		t.Fatalf("search: %v, %v", m, err)
	}
	if m.Start != 1 || m.End != 4 {
		t.Fatalf("offsets = [%d:%d], want [1:4]", m.Start, m.End)
	}

	var de *DecodeError
	if _, err := m.Text(subject); !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
}

func TestParseEngine(t *testing.T) {
	cases := map[string]Engine{
		"":        EngineAuto,
		"auto":    EngineAuto,
		"CoreGex": EngineCore,
		"re2":     EngineCore,
		"pcre":    EnginePCRE,
		"regexp2": EnginePCRE,
	}

	for in, want := range cases {
		got, err := ParseEngine(in)
		if err != nil {
			t.Fatalf("ParseEngine(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseEngine(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := ParseEngine("pcre2-jit"); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
}

func TestNeedsPCRE(t *testing.T) {
	cases := map[string]bool{
		`a+`:           false,
		`(?P<x>a)`:     false,
		`\\1`:          false,
		`(?<=a)b`:      true,
		`a(?=b)`:       true,
		`(\w)\1`:       true,
		`(?>a+)b`:      true,
		`(?'name'a)`:   true,
		`\h+`:          true,
		`a\vb`:         false,
		defaultPattern: true,
	}

	for pattern, want := range cases {
		if got := needsPCRE(pattern); got != want {
			t.Fatalf("needsPCRE(%q) = %v, want %v", pattern, got, want)
		}
	}
}
