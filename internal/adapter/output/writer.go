package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// WriteLines writes each line with trailing whitespace removed, one per
// line, newline terminated.
func WriteLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(strings.TrimRightFunc(line, unicode.IsSpace)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Sink delivers expanded lines to stdout or to a named file.
type Sink struct {
	stdout io.Writer
}

func NewSink(stdout io.Writer) *Sink {
	return &Sink{stdout: stdout}
}

// Write sends lines to path, or to stdout when path is empty.
func (s *Sink) Write(path string, lines []string, executable bool) error {
	if path == "" {
		return WriteLines(s.stdout, lines)
	}
	return writeAtomic(path, executable, func(w io.Writer) error {
		return WriteLines(w, lines)
	})
}

// WriteFile replaces path with data.
func WriteFile(path string, data []byte) error {
	return writeAtomic(path, false, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// writeAtomic fills a temporary sibling of path and renames it into
// place, so a failed run never leaves a partial output file behind. An
// existing file keeps its permissions.
func writeAtomic(path string, executable bool, fill func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := fill(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if executable {
		mode |= 0111
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("failed to set output mode: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}
