package usecase

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"noweb/internal/adapter/dialect"
	"noweb/internal/adapter/expander"
	"noweb/internal/adapter/fs"
	"noweb/internal/adapter/output"
	"noweb/internal/adapter/parser"
	"noweb/internal/domain"
	"noweb/internal/port"
)

const helperDoc = `# Example

*main*
` + "```main" + `
  #*helper*#
` + "```" + `

*helper*
` + "```helper" + `
print(1)
` + "```" + `
`

func lookup(t *testing.T, name string) *dialect.Dialect {
	t.Helper()
	d, err := dialect.Lookup(name)
	if err != nil {
		t.Fatalf("failed to look up dialect: %v", err)
	}
	return d
}

func newTangle(t *testing.T, dialectName string, stdout *bytes.Buffer) *TangleUseCase {
	t.Helper()
	d := lookup(t, dialectName)
	factory := func(store *domain.ChunkStore) port.Expander {
		return expander.NewExpander(store, d)
	}
	return NewTangleUseCase(fs.NewDocumentReader(strings.NewReader("")), parser.NewParser(d), factory, output.NewSink(stdout))
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write document: %v", err)
	}
	return path
}

func TestTangle_Stdout(t *testing.T) {
	var stdout bytes.Buffer
	uc := newTangle(t, dialect.Fenced, &stdout)

	result, err := uc.Tangle(TangleRequest{Document: writeDoc(t, helperDoc), Root: "main"})
	if err != nil {
		t.Fatalf("Tangle failed: %v", err)
	}

	if stdout.String() != "  print(1)\n" {
		t.Errorf("expected %q, got %q", "  print(1)\n", stdout.String())
	}
	if result.Chunks != 2 {
		t.Errorf("expected 2 chunks, got %d", result.Chunks)
	}
	if result.Lines != 1 {
		t.Errorf("expected 1 line, got %d", result.Lines)
	}
}

func TestTangle_FileIsIdempotent(t *testing.T) {
	uc := newTangle(t, dialect.Fenced, nil)
	doc := writeDoc(t, helperDoc)
	out := filepath.Join(t.TempDir(), "main.py")

	var runs [2][]byte
	for i := range runs {
		if _, err := uc.Tangle(TangleRequest{Document: doc, Root: "main", Output: out}); err != nil {
			t.Fatalf("run %d: Tangle failed: %v", i+1, err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("run %d: failed to read output: %v", i+1, err)
		}
		runs[i] = data
	}

	if !bytes.Equal(runs[0], runs[1]) {
		t.Errorf("expected identical output, got %q then %q", runs[0], runs[1])
	}
}

func TestTangle_UnknownRootWritesNothing(t *testing.T) {
	var stdout bytes.Buffer
	uc := newTangle(t, dialect.Fenced, &stdout)
	out := filepath.Join(t.TempDir(), "never.py")

	_, err := uc.Tangle(TangleRequest{Document: writeDoc(t, helperDoc), Root: "nope", Output: out})
	if !errors.Is(err, domain.ErrUnknownChunk) {
		t.Fatalf("expected ErrUnknownChunk, got %v", err)
	}

	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("expected no output file, got stat error %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("expected nothing on stdout, got %q", stdout.String())
	}
}

func TestTangle_BrokenNestedReferenceWritesNothing(t *testing.T) {
	var stdout bytes.Buffer
	uc := newTangle(t, dialect.Fenced, &stdout)
	doc := "*main*\n```\nfirst line\n#*missing*#\n```\n"

	if _, err := uc.Tangle(TangleRequest{Document: writeDoc(t, doc), Root: "main"}); err == nil {
		t.Fatal("expected error for missing nested chunk")
	}
	if stdout.Len() != 0 {
		t.Errorf("expected nothing on stdout, got %q", stdout.String())
	}
}

func TestTangle_UnreadableDocument(t *testing.T) {
	uc := newTangle(t, dialect.Fenced, nil)

	_, err := uc.Tangle(TangleRequest{Document: filepath.Join(t.TempDir(), "missing.md"), Root: "main"})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestTangle_RequiresRoot(t *testing.T) {
	uc := newTangle(t, dialect.Fenced, nil)

	if _, err := uc.Tangle(TangleRequest{Document: "-"}); err == nil {
		t.Error("expected error when no root chunk is given")
	}
}

func TestTangle_Angle(t *testing.T) {
	var stdout bytes.Buffer
	uc := newTangle(t, dialect.Angle, &stdout)
	doc := "<<hello.sh>>=\n#!/bin/sh\n<<greet>>\n@\n<<greet>>=\necho hello   \n@\n"

	if _, err := uc.Tangle(TangleRequest{Document: writeDoc(t, doc), Root: "hello.sh"}); err != nil {
		t.Fatalf("Tangle failed: %v", err)
	}

	want := "#!/bin/sh\necho hello\n"
	if stdout.String() != want {
		t.Errorf("expected %q, got %q", want, stdout.String())
	}
}
