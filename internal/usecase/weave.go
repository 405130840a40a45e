package usecase

import (
	"fmt"
	"io"

	"noweb/internal/domain"
	"noweb/internal/port"
)

// WeaveUseCase renders a document as documentation.
type WeaveUseCase struct {
	source   port.DocumentSource
	parser   port.DocumentParser
	weaver   port.Weaver
	markdown bool
}

// NewWeaveUseCase creates a weave use case. markdown tells the weaver the
// document is already markdown and only chunk labels need rewriting.
func NewWeaveUseCase(source port.DocumentSource, parser port.DocumentParser, weaver port.Weaver, markdown bool) *WeaveUseCase {
	return &WeaveUseCase{
		source:   source,
		parser:   parser,
		weaver:   weaver,
		markdown: markdown,
	}
}

func (u *WeaveUseCase) Weave(document string, out io.Writer) error {
	r, err := u.source.Open(document)
	if err != nil {
		return err
	}

	var lines []domain.Line
	if err := u.parser.Scan(r, func(l domain.Line) { lines = append(lines, l) }); err != nil {
		return fmt.Errorf("failed to parse %s: %w", document, err)
	}

	return u.weaver.Weave(out, lines, u.markdown)
}
