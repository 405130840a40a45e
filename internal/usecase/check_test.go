package usecase

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"noweb/internal/adapter/dialect"
	"noweb/internal/adapter/fs"
	"noweb/internal/adapter/parser"
)

func TestList(t *testing.T) {
	d := lookup(t, dialect.Fenced)
	uc := NewListUseCase(fs.NewDocumentReader(nil), parser.NewParser(d), d)

	doc := helperDoc + "\n*tests*\n```\n#*helper*#\nassert True\n```\n"
	summaries, err := uc.List(writeDoc(t, doc), false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(summaries))
	}

	helper, main, tests := summaries[0], summaries[1], summaries[2]
	if helper.Name != "helper" || helper.Root || helper.Lines != 1 {
		t.Errorf("unexpected helper summary: %+v", helper)
	}
	if main.Name != "main" || !main.Root || main.References != 1 {
		t.Errorf("unexpected main summary: %+v", main)
	}
	if tests.Name != "tests" || tests.Lines != 2 {
		t.Errorf("unexpected tests summary: %+v", tests)
	}

	roots, err := uc.List(writeDoc(t, doc), true)
	if err != nil {
		t.Fatalf("List roots failed: %v", err)
	}
	var names []string
	for _, r := range roots {
		names = append(names, r.Name)
	}
	if !slices.Equal(names, []string{"main", "tests"}) {
		t.Errorf("expected roots [main tests], got %v", names)
	}
}

func TestCheck(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
	write("good.md", helperDoc)
	write("docs/broken.md", "*main*\n```\n#*helpr*#\n```\n*helper*\n```\nx\n```\n")
	write("docs/prose.md", "Just prose, no chunks.\n")
	write("vendor/skip.md", "*main*\n```\n#*absent*#\n```\n")
	write("notes.txt", "*main*\n```\n#*absent*#\n```\n")

	d := lookup(t, dialect.Fenced)
	walker := fs.NewWalker([]string{"**/*.md"}, []string{"vendor/**", "vendor/"})
	uc := NewCheckUseCase(walker, fs.NewDocumentReader(nil), parser.NewParser(d), d)

	var calls int
	result, err := uc.Check(root, func(processed, total int, current string) {
		calls++
		if total != 3 {
			t.Errorf("expected 3 documents in total, got %d", total)
		}
		if !strings.HasSuffix(current, ".md") {
			t.Errorf("expected a markdown document, got %s", current)
		}
	})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if calls != 3 {
		t.Errorf("expected 3 progress calls, got %d", calls)
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %v", result.Errors)
	}
	if result.Findings != 1 {
		t.Errorf("expected 1 finding, got %d", result.Findings)
	}
	if len(result.Files) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(result.Files))
	}

	broken := result.Files[0]
	if !strings.HasSuffix(broken.Path, filepath.Join("docs", "broken.md")) {
		t.Errorf("expected broken.md first, got %s", broken.Path)
	}
	if len(broken.Findings) != 1 {
		t.Fatalf("expected 1 finding in broken.md, got %d", len(broken.Findings))
	}
	f := broken.Findings[0]
	if f.Chunk != "main" || f.Missing != "helpr" {
		t.Errorf("expected main -> helpr, got %s -> %s", f.Chunk, f.Missing)
	}
	if !slices.Equal(f.Suggestions, []string{"helper"}) {
		t.Errorf("expected suggestion [helper], got %v", f.Suggestions)
	}

	good := result.Files[1]
	if len(good.Findings) != 0 {
		t.Errorf("expected no findings in good.md, got %v", good.Findings)
	}
	if !slices.Equal(good.Roots, []string{"main"}) {
		t.Errorf("expected roots [main], got %v", good.Roots)
	}
}

func TestCheckResult_JSONKeys(t *testing.T) {
	result := CheckResult{Findings: 2, Errors: []string{"a.md: boom"}}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, key := range []string{"files", "findings", "errors"} {
		if _, ok := got[key]; !ok {
			t.Errorf("expected key %q in %s", key, data)
		}
	}
	if _, ok := got["Findings"]; ok {
		t.Errorf("expected lowercase keys only, got %s", data)
	}
}
