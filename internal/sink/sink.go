// Package sink delivers rendered report text to a file or to stdout.
package sink

import (
	"fmt"
	"io"
	"os"
)

// stdoutLabel precedes the report when it is printed instead of saved.
const stdoutLabel = "\nCSV data:\n"

// Sink is an output destination for one report.
type Sink struct {
	path   string
	stdout io.Writer
	file   *os.File
	wrote  bool
}

// Open prepares the destination. An empty path selects stdout; otherwise the
// file is created or truncated right away so an unusable path fails before
// any lookup is made.
func Open(path string, stdout io.Writer) (*Sink, error) {
	s := &Sink{path: path, stdout: stdout}
	if path == "" {
		return s, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating file %s: %w", path, err)
	}
	s.file = f
	return s, nil
}

// Path returns the file path, or "" for stdout.
func (s *Sink) Path() string { return s.path }

// Write emits text to the destination.
func (s *Sink) Write(text string) error {
	if s.file == nil {
		if _, err := io.WriteString(s.stdout, stdoutLabel+text); err != nil {
			return fmt.Errorf("writing to stdout: %w", err)
		}
		return nil
	}
	if _, err := io.WriteString(s.file, text); err != nil {
		return fmt.Errorf("writing to file %s: %w", s.path, err)
	}
	s.wrote = true
	return nil
}

// Close releases the file. After a successful write it prints the
// confirmation line on stdout.
func (s *Sink) Close() error {
	if s.file == nil {
		return nil
	}
	f := s.file
	s.file = nil
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing to file %s: %w", s.path, err)
	}
	if s.wrote {
		fmt.Fprintf(s.stdout, "CSV data written to %s\n", s.path)
	}
	return nil
}
