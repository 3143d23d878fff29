package config

import (
	"io"
	"os"

	"go.dw1.io/mmapfile"
)

// ReadSubject returns the text to search: the contents of SubjectFile when
// it is set, Subject otherwise.
func (c *Config) ReadSubject() ([]byte, error) {
	if c.SubjectFile == "" {
		return []byte(c.Subject), nil
	}

	return readFile(c.SubjectFile)
}

// readFile prefers a memory-mapped read and falls back to os.ReadFile when
// mmap is unavailable or unsuitable, e.g. for empty files or pipes. The
// returned slice is a copy and stays valid after the mapping is closed.
func readFile(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}

	mf, err := mmapfile.Open(name)
	if err != nil {
		return os.ReadFile(name)
	}
	defer mf.Close()

	mapped := mf.Bytes()
	data := make([]byte, len(mapped))
	copy(data, mapped)

	return data, nil
}
