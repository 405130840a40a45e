package usecase

import (
	"fmt"
	"log/slog"

	"noweb/internal/port"
)

// TangleUseCase extracts one root chunk from a document.
type TangleUseCase struct {
	source    port.DocumentSource
	parser    port.DocumentParser
	expanders port.ExpanderFactory
	sink      port.Sink
}

// NewTangleUseCase creates a new tangle use case.
func NewTangleUseCase(
	source port.DocumentSource,
	parser port.DocumentParser,
	expanders port.ExpanderFactory,
	sink port.Sink,
) *TangleUseCase {
	return &TangleUseCase{
		source:    source,
		parser:    parser,
		expanders: expanders,
		sink:      sink,
	}
}

type TangleRequest struct {
	Document   string // path, or "-" for stdin
	Root       string
	Output     string // empty for stdout
	Executable bool
}

type TangleResult struct {
	Chunks int
	Lines  int
}

// Tangle parses the whole document, expands the root chunk and only then
// hands the lines to the sink. Nothing is written when expansion fails.
func (u *TangleUseCase) Tangle(req TangleRequest) (*TangleResult, error) {
	if req.Root == "" {
		return nil, fmt.Errorf("root chunk name is required")
	}

	r, err := u.source.Open(req.Document)
	if err != nil {
		return nil, err
	}

	store, err := u.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", req.Document, err)
	}

	lines, err := u.expanders(store).Expand(req.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to expand %s: %w", req.Document, err)
	}

	executable := req.Executable && req.Output != ""
	if err := u.sink.Write(req.Output, lines, executable); err != nil {
		return nil, err
	}

	slog.Debug("tangled chunk",
		slog.String("document", req.Document),
		slog.String("root", req.Root),
		slog.String("output", req.Output),
		slog.Int("lines", len(lines)),
	)

	return &TangleResult{Chunks: store.Len(), Lines: len(lines)}, nil
}
