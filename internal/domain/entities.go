package domain

import (
	"errors"
	"sort"
)

var (
	ErrUnknownChunk   = errors.New("unknown chunk")
	ErrInvalidDialect = errors.New("invalid dialect")
)

// ChunkStore maps a chunk name to its raw, unexpanded lines.
// It is filled once by the parser and read-only afterwards.
type ChunkStore struct {
	chunks map[string][]string
}

func NewChunkStore() *ChunkStore {
	return &ChunkStore{chunks: make(map[string][]string)}
}

// Define selects name as an accumulation target, creating an empty entry
// the first time it is seen.
func (s *ChunkStore) Define(name string) {
	if _, ok := s.chunks[name]; !ok {
		s.chunks[name] = []string{}
	}
}

// Append adds a raw line to an already defined chunk.
func (s *ChunkStore) Append(name, line string) {
	s.chunks[name] = append(s.chunks[name], line)
}

// Lines returns the raw lines of a chunk. The slice must not be modified.
func (s *ChunkStore) Lines(name string) ([]string, bool) {
	lines, ok := s.chunks[name]
	return lines, ok
}

func (s *ChunkStore) Has(name string) bool {
	_, ok := s.chunks[name]
	return ok
}

// Names returns all chunk names in sorted order.
func (s *ChunkStore) Names() []string {
	names := make([]string, 0, len(s.chunks))
	for name := range s.chunks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *ChunkStore) Len() int {
	return len(s.chunks)
}

// Reference is a chunk line that stands in for another chunk's expansion.
type Reference struct {
	Indent string
	Name   string
}

// ReferenceSite records where a reference occurs.
type ReferenceSite struct {
	Reference
	Chunk string // chunk containing the reference line
	Index int    // zero-based position within that chunk's raw lines
}

type LineKind int

const (
	LineProse LineKind = iota
	LineAnnounce
	LineOpen
	LineClose
	LineCode
)

func (k LineKind) String() string {
	switch k {
	case LineProse:
		return "prose"
	case LineAnnounce:
		return "announce"
	case LineOpen:
		return "open"
	case LineClose:
		return "close"
	case LineCode:
		return "code"
	default:
		return "unknown"
	}
}

// Line is one classified document line.
type Line struct {
	Number int // 1-based
	Kind   LineKind
	Text   string
	Chunk  string // set for LineAnnounce, LineOpen and LineCode
}

// ChunkSummary describes a chunk for listings.
type ChunkSummary struct {
	Name       string `json:"name"`
	Lines      int    `json:"lines"`
	References int    `json:"references"`
	Root       bool   `json:"root"`
}

// Finding is a problem detected by a document check.
type Finding struct {
	Path        string   `json:"path"`
	Chunk       string   `json:"chunk"`
	Missing     string   `json:"missing"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type FileReport struct {
	Path     string    `json:"path"`
	Chunks   int       `json:"chunks"`
	Roots    []string  `json:"roots,omitempty"`
	Findings []Finding `json:"findings,omitempty"`
}
