// Package parser turns a literate document into a chunk store.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"noweb/internal/adapter/dialect"
	"noweb/internal/domain"
)

type mode int

const (
	idle mode = iota
	announcing
	accumulating
)

// state is the parser position. name is the pending chunk while
// announcing and the active chunk while accumulating.
type state struct {
	mode mode
	name string
}

type Parser struct {
	dialect *dialect.Dialect
	logger  *slog.Logger
}

func NewParser(d *dialect.Dialect) *Parser {
	return &Parser{
		dialect: d,
		logger:  slog.Default(),
	}
}

// Parse reads the whole document and returns its chunks. Unterminated
// blocks keep whatever was accumulated; lines outside any block are dropped.
func (p *Parser) Parse(r io.Reader) (*domain.ChunkStore, error) {
	store := domain.NewChunkStore()
	lines := 0

	err := p.Scan(r, func(line domain.Line) {
		lines++
		switch line.Kind {
		case domain.LineOpen:
			store.Define(line.Chunk)
		case domain.LineCode:
			store.Append(line.Chunk, line.Text)
		}
	})
	if err != nil {
		return nil, err
	}

	p.logger.Debug("parsed document",
		slog.String("dialect", p.dialect.Name),
		slog.Int("lines", lines),
		slog.Int("chunks", store.Len()),
	)
	return store, nil
}

// Scan classifies every document line in order and hands it to visit.
func (p *Parser) Scan(r io.Reader, visit func(domain.Line)) error {
	br := bufio.NewReader(r)
	st := state{}
	number := 0

	for {
		text, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read document: %w", err)
		}
		if text == "" && err != nil {
			return nil
		}

		number++
		text = strings.TrimSuffix(text, "\n")
		text = strings.TrimSuffix(text, "\r")

		var line domain.Line
		st, line = p.step(st, text)
		line.Number = number
		visit(line)

		if err != nil {
			return nil
		}
	}
}

func (p *Parser) step(st state, text string) (state, domain.Line) {
	d := p.dialect
	line := domain.Line{Text: text, Kind: domain.LineProse}

	if name, ok := d.MatchAnnounce(text); ok {
		line.Kind = domain.LineAnnounce
		line.Chunk = name
		return state{mode: announcing, name: name}, line
	}

	if name, ok := d.MatchOpener(text); ok {
		if d.Announces() {
			name = ""
			if st.mode == announcing {
				name = st.name
			}
		}
		if name == "" {
			line.Kind = domain.LineClose
			return state{}, line
		}
		line.Kind = domain.LineOpen
		line.Chunk = name
		return state{mode: accumulating, name: name}, line
	}

	if d.MatchCloser(text) {
		line.Kind = domain.LineClose
		return state{}, line
	}

	switch st.mode {
	case announcing:
		p.logger.Debug("discarding chunk name without block", slog.String("chunk", st.name))
		return state{}, line
	case accumulating:
		line.Kind = domain.LineCode
		line.Chunk = st.name
		return st, line
	}
	return st, line
}
