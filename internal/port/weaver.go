package port

import (
	"io"

	"noweb/internal/domain"
)

// Weaver renders classified document lines as documentation.
type Weaver interface {
	Weave(out io.Writer, lines []domain.Line, markdown bool) error
}

// Sink receives tangled output. An empty path means standard output.
type Sink interface {
	Write(path string, lines []string, executable bool) error
}
