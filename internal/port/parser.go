package port

import (
	"io"

	"noweb/internal/domain"
)

// DocumentParser reads a complete document into a chunk store.
type DocumentParser interface {
	Parse(r io.Reader) (*domain.ChunkStore, error)

	// Scan classifies each line of the document in order.
	Scan(r io.Reader, visit func(domain.Line)) error
}
