package usecase

import (
	"fmt"

	"noweb/internal/adapter/dialect"
	"noweb/internal/adapter/expander"
	"noweb/internal/domain"
	"noweb/internal/port"
)

// ListUseCase summarizes the chunks a document defines.
type ListUseCase struct {
	source  port.DocumentSource
	parser  port.DocumentParser
	dialect *dialect.Dialect
}

func NewListUseCase(source port.DocumentSource, parser port.DocumentParser, d *dialect.Dialect) *ListUseCase {
	return &ListUseCase{
		source:  source,
		parser:  parser,
		dialect: d,
	}
}

// List returns one summary per chunk, sorted by name. With rootsOnly set,
// only chunks that no other chunk references are returned.
func (u *ListUseCase) List(document string, rootsOnly bool) ([]domain.ChunkSummary, error) {
	r, err := u.source.Open(document)
	if err != nil {
		return nil, err
	}
	store, err := u.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", document, err)
	}

	refs := make(map[string]int)
	for _, site := range expander.References(store, u.dialect) {
		refs[site.Chunk]++
	}
	roots := make(map[string]bool)
	for _, name := range expander.Roots(store, u.dialect) {
		roots[name] = true
	}

	summaries := make([]domain.ChunkSummary, 0, store.Len())
	for _, name := range store.Names() {
		if rootsOnly && !roots[name] {
			continue
		}
		lines, _ := store.Lines(name)
		summaries = append(summaries, domain.ChunkSummary{
			Name:       name,
			Lines:      len(lines),
			References: refs[name],
			Root:       roots[name],
		})
	}
	return summaries, nil
}
