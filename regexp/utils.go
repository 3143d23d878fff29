package regexp

import "strings"

// pcreOnly lists constructs from pcre2syntax that RE2, and therefore coregex,
// cannot execute.
//
// Ref: https://pcre2project.github.io/pcre2/doc/pcre2syntax/
var pcreOnly = []string{
	// Lookaround assertions, including the alpha spellings
	"(?=", "(?!", "(?<=", "(?<!",
	"(*pla:", "(*positive_lookahead:", "(*nla:", "(*negative_lookahead:",
	"(*plb:", "(*positive_lookbehind:", "(*nlb:", "(*negative_lookbehind:",
	"(?*", "(*napla:", "(*non_atomic_positive_lookahead:",
	"(?<*", "(*naplb:", "(*non_atomic_positive_lookbehind:",

	// Atomic, branch reset, conditional and comment groups
	"(?>", "(*atomic:", "(?|", "(?(", "(?#",

	// Recursion and subroutine calls
	"(?R)", "(?P>", "(?&", "(?[",

	// Backtracking control verbs and leading option settings
	"(*ACCEPT)", "(*FAIL)", "(*F)", "(*MARK:", "(*:", "(*COMMIT)",
	"(*PRUNE)", "(*SKIP)", "(*THEN)",
	"(*LIMIT_", "(*NO_", "(*NOTEMPTY", "(*UTF)", "(*UCP)",
	"(*CR)", "(*LF)", "(*CRLF)", "(*ANYCRLF)", "(*ANY)", "(*NUL)", "(*BSR_",

	// Escapes Go does not know
	`(?C`, `\C`, `\h`, `\H`, `\V`, `\R`, `\X`, `\N`, `\K`,
	`\e`, `\o{`, `\x{`, `\p{`, `\P{`,

	// Named backreferences
	`\g`, `\k<`, `\k'`, `\k{`, `(?P=`,

	// Anchors beyond ^, $, \A and \z
	`\Z`, `\G`,
}

// needsPCRE reports whether pattern uses a construct only regexp2 can run.
func needsPCRE(pattern string) bool {
	for _, tok := range pcreOnly {
		if strings.Contains(pattern, tok) {
			return true
		}
	}

	// numbered backreferences: \1 ... \9, unless the backslash is escaped
	escaped := false
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '\\' {
			escaped = false
			continue
		}

		if !escaped && i+1 < len(pattern) && pattern[i+1] >= '1' && pattern[i+1] <= '9' {
			return true
		}
		escaped = !escaped
	}

	// NOTE(dwisiswant0): Go supports (?P<name>...) and (?<name>...) since
	// 1.22, but not (?'name'...). (?<= and (?<! are caught above.
	return strings.Contains(pattern, "(?'")
}

// runeRangeToByte converts a regexp2 rune range into byte offsets of s.
func runeRangeToByte(s string, startRune, length int) (int, int) {
	if startRune < 0 || length < 0 {
		return -1, -1
	}

	return runeToByteOffset(s, startRune), runeToByteOffset(s, startRune+length)
}

func runeToByteOffset(s string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}

	count := 0
	for i := range s {
		if count == runeIndex {
			return i
		}
		count++
	}

	return len(s)
}
