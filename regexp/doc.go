// Package regexp compiles a single pattern into an owned handle and finds the
// first match of it in a subject.
//
// Patterns are compiled with coregex (an accelerated RE2-compatible engine)
// unless they use PCRE/Perl features that RE2 cannot execute, such as
// look-behind or look-ahead assertions, in which case [regexp2] is used.
//
// A compiled [Regexp] must be released with Close exactly once; Close is safe
// to call again and every later Search reports [ErrReleased]:
//
//	re, err := regexp.Compile(`(?<=\d{4})([^\s\d]{3,11})(?=\S)`)
//	if err != nil {
//		// *CompileError
//	}
//	defer re.Close()
//
//	m, err := re.Search(subject)
//	if err != nil {
//		// *ExecError
//	}
//	if m == nil {
//		// no match
//	}
//	text, err := m.Text(subject) // *DecodeError on invalid UTF-8
package regexp
