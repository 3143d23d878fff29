package regexp

import "unicode/utf8"

// Match holds the byte offsets of the whole match within the searched
// subject: 0 <= Start <= End <= len(subject).
type Match struct {
	Start int
	End   int
}

// Len returns the length of the match in bytes.
func (m Match) Len() int {
	return m.End - m.Start
}

// Bytes returns subject[Start:End] without copying, or nil when the offsets
// do not fit subject.
func (m Match) Bytes(subject []byte) []byte {
	if !m.within(subject) {
		return nil
	}

	return subject[m.Start:m.End]
}

// Text returns the matched bytes as a string. It fails with *DecodeError when
// the range does not fit subject or is not valid UTF-8, for example when it
// starts or ends inside a multi-byte sequence.
func (m Match) Text(subject []byte) (string, error) {
	if !m.within(subject) {
		return "", &DecodeError{Start: m.Start, End: m.End}
	}

	b := subject[m.Start:m.End]
	if !utf8.Valid(b) {
		return "", &DecodeError{Start: m.Start, End: m.End}
	}

	return string(b), nil
}

func (m Match) within(subject []byte) bool {
	return 0 <= m.Start && m.Start <= m.End && m.End <= len(subject)
}
