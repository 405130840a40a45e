package port

import "noweb/internal/domain"

// Expander flattens a root chunk into output lines.
type Expander interface {
	Expand(root string) ([]string, error)
}

// ExpanderFactory binds an expander to a parsed store.
type ExpanderFactory func(store *domain.ChunkStore) Expander
