// Package weave renders a literate document as HTML documentation.
package weave

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"noweb/internal/domain"
)

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Anchor returns the HTML id used for a chunk definition.
func Anchor(name string) string {
	slug := strings.Trim(slugInvalid.ReplaceAllString(strings.ToLower(name), "-"), "-")
	return "chunk-" + slug
}

type HTMLWeaver struct {
	md goldmark.Markdown
}

func NewHTMLWeaver() *HTMLWeaver {
	return &HTMLWeaver{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
			goldmark.WithRendererOptions(
				ghhtml.WithUnsafe(),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
	}
}

// Weave converts classified lines to markdown and renders it. Chunk
// definitions get an anchor and a label; documents whose dialect is not
// markdown-shaped have their blocks turned into fenced code.
func (w *HTMLWeaver) Weave(out io.Writer, lines []domain.Line, markdown bool) error {
	var src bytes.Buffer
	if markdown {
		weaveMarkdown(&src, lines)
	} else {
		weaveBlocks(&src, lines)
	}

	if err := w.md.Convert(src.Bytes(), out); err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	return nil
}

// weaveMarkdown passes the document through. An announce line only
// becomes a label when a block opens right after it; otherwise it is
// ordinary prose.
func weaveMarkdown(src *bytes.Buffer, lines []domain.Line) {
	var pending *domain.Line

	for i := range lines {
		line := lines[i]
		if line.Kind == domain.LineAnnounce {
			if pending != nil {
				writeText(src, pending.Text)
			}
			pending = &lines[i]
			continue
		}

		if line.Kind == domain.LineOpen && line.Chunk != "" {
			writeLabel(src, line.Chunk)
			pending = nil
		}
		if pending != nil {
			writeText(src, pending.Text)
			pending = nil
		}
		writeText(src, line.Text)
	}
	if pending != nil {
		writeText(src, pending.Text)
	}
}

// weaveBlocks rewrites opener/closer delimited chunks as fenced code.
func weaveBlocks(src *bytes.Buffer, lines []domain.Line) {
	var block []string
	open := false

	flush := func() {
		if open {
			writeFenced(src, block)
		}
		block = block[:0]
		open = false
	}

	for _, line := range lines {
		switch {
		case line.Kind == domain.LineOpen:
			flush()
			writeLabel(src, line.Chunk)
			open = true
		case line.Kind == domain.LineClose:
			flush()
			if rest := strings.TrimSpace(strings.TrimPrefix(line.Text, "@")); rest != "" {
				writeText(src, rest)
			}
		case open:
			block = append(block, line.Text)
		default:
			writeText(src, line.Text)
		}
	}
	flush()
}

// writeFenced wraps code in a backtick fence longer than any backtick run
// inside it, so no code line can close the fence early.
func writeFenced(src *bytes.Buffer, code []string) {
	longest := 0
	for _, line := range code {
		run := 0
		for _, r := range line {
			if r == '`' {
				run++
				if run > longest {
					longest = run
				}
			} else {
				run = 0
			}
		}
	}
	fence := strings.Repeat("`", max(3, longest+1))

	writeText(src, fence)
	for _, line := range code {
		writeText(src, line)
	}
	writeText(src, fence)
}

func writeText(src *bytes.Buffer, text string) {
	src.WriteString(text)
	src.WriteByte('\n')
}

func writeLabel(b *bytes.Buffer, name string) {
	fmt.Fprintf(b, "<a id=\"%s\"></a>\n\n**⟨%s⟩≡**\n\n", Anchor(name), html.EscapeString(name))
}
