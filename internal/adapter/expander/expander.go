// Package expander flattens a chunk and everything it references into
// output lines, carrying indentation down through nested references.
package expander

import (
	"log/slog"

	"noweb/internal/adapter/dialect"
	"noweb/internal/domain"
)

// Expander resolves references against a fully parsed store. It keeps no
// state between calls; recursion depth equals reference nesting depth.
//
// Cyclic references are not detected and recurse until the stack is
// exhausted.
type Expander struct {
	store   *domain.ChunkStore
	dialect *dialect.Dialect
	logger  *slog.Logger
}

func NewExpander(store *domain.ChunkStore, d *dialect.Dialect) *Expander {
	return &Expander{
		store:   store,
		dialect: d,
		logger:  slog.Default(),
	}
}

// Expand returns the fully expanded lines of the root chunk.
func (e *Expander) Expand(root string) ([]string, error) {
	out, err := e.expand(root, "", "", nil)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("expanded chunk", slog.String("chunk", root), slog.Int("lines", len(out)))
	return out, nil
}

func (e *Expander) expand(name, referrer, indent string, out []string) ([]string, error) {
	lines, ok := e.store.Lines(name)
	if !ok {
		return nil, &UnknownChunkError{
			Name:        name,
			Referrer:    referrer,
			Suggestions: Suggest(e.store, name),
		}
	}

	for _, line := range lines {
		if ref, ok := e.dialect.MatchReference(line); ok {
			var err error
			out, err = e.expand(ref.Name, name, indent+ref.Indent, out)
			if err != nil {
				return nil, err
			}
			continue
		}
		out = append(out, indent+line)
	}
	return out, nil
}

// References lists every reference occurrence, grouped by the chunk that
// contains it, in sorted chunk order and line order within a chunk.
func References(store *domain.ChunkStore, d *dialect.Dialect) []domain.ReferenceSite {
	var sites []domain.ReferenceSite
	for _, name := range store.Names() {
		lines, _ := store.Lines(name)
		for i, line := range lines {
			if ref, ok := d.MatchReference(line); ok {
				sites = append(sites, domain.ReferenceSite{
					Reference: ref,
					Chunk:     name,
					Index:     i,
				})
			}
		}
	}
	return sites
}

// Roots returns the chunks that no other chunk references, sorted.
func Roots(store *domain.ChunkStore, d *dialect.Dialect) []string {
	referenced := make(map[string]bool)
	for _, site := range References(store, d) {
		if site.Name != site.Chunk {
			referenced[site.Name] = true
		}
	}

	var roots []string
	for _, name := range store.Names() {
		if !referenced[name] {
			roots = append(roots, name)
		}
	}
	return roots
}
