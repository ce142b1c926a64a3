package text

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

const maxLineBytes = 1024 * 1024

// LineSource yields lines from a sequence of readers in order.
type LineSource struct {
	readers []io.Reader
	scanner *bufio.Scanner
}

// NewLineSource reads lines from each reader in turn.
func NewLineSource(readers ...io.Reader) *LineSource {
	return &LineSource{readers: readers}
}

// Next returns the next line. ok is false once every reader is exhausted.
func (s *LineSource) Next() (line string, ok bool, err error) {
	for {
		if s.scanner == nil {
			if len(s.readers) == 0 {
				return "", false, nil
			}
			s.scanner = bufio.NewScanner(s.readers[0])
			s.scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
			s.readers = s.readers[1:]
		}
		if s.scanner.Scan() {
			return s.scanner.Text(), true, nil
		}
		if err := s.scanner.Err(); err != nil {
			return "", false, fmt.Errorf("failed to read input: %w", err)
		}
		s.scanner = nil
	}
}

// OpenFiles opens every path for reading. The returned closer closes all of
// them; on error nothing is left open.
func OpenFiles(paths []string) ([]io.Reader, func(), error) {
	files := make([]*os.File, 0, len(paths))
	closeAll := func() {
		for _, f := range files {
			if cerr := f.Close(); cerr != nil {
				// Best-effort close for read-only input.
				_ = cerr
			}
		}
	}
	readers := make([]io.Reader, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		files = append(files, f)
		readers = append(readers, f)
	}
	return readers, closeAll, nil
}
