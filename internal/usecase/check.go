package usecase

import (
	"fmt"

	"noweb/internal/adapter/dialect"
	"noweb/internal/adapter/expander"
	"noweb/internal/domain"
	"noweb/internal/port"
)

// CheckUseCase verifies that every reference in a set of documents
// resolves to a defined chunk.
type CheckUseCase struct {
	walker  port.FileWalker
	source  port.DocumentSource
	parser  port.DocumentParser
	dialect *dialect.Dialect
}

// NewCheckUseCase creates a new check use case.
func NewCheckUseCase(
	walker port.FileWalker,
	source port.DocumentSource,
	parser port.DocumentParser,
	d *dialect.Dialect,
) *CheckUseCase {
	return &CheckUseCase{
		walker:  walker,
		source:  source,
		parser:  parser,
		dialect: d,
	}
}

// CheckResult contains the results of a check run.
type CheckResult struct {
	Files    []domain.FileReport `json:"files"`
	Findings int                 `json:"findings"`
	Errors   []string            `json:"errors,omitempty"`
}

// ProgressFunc is called after each document is checked.
type ProgressFunc func(processed, total int, current string)

// Check walks root and checks every matching document. Documents that
// cannot be read are recorded in Errors and do not stop the walk.
func (u *CheckUseCase) Check(root string, progress ProgressFunc) (*CheckResult, error) {
	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	result := &CheckResult{}
	for i, file := range files {
		report, err := u.CheckDocument(file.Path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", file.Path, err))
		} else if report.Chunks > 0 {
			result.Files = append(result.Files, *report)
			result.Findings += len(report.Findings)
		}
		if progress != nil {
			progress(i+1, len(files), file.Path)
		}
	}

	return result, nil
}

// CheckDocument checks a single document.
func (u *CheckUseCase) CheckDocument(path string) (*domain.FileReport, error) {
	r, err := u.source.Open(path)
	if err != nil {
		return nil, err
	}
	store, err := u.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}

	report := &domain.FileReport{
		Path:   path,
		Chunks: store.Len(),
		Roots:  expander.Roots(store, u.dialect),
	}
	for _, site := range expander.References(store, u.dialect) {
		if store.Has(site.Name) {
			continue
		}
		report.Findings = append(report.Findings, domain.Finding{
			Path:        path,
			Chunk:       site.Chunk,
			Missing:     site.Name,
			Suggestions: expander.Suggest(store, site.Name),
		})
	}
	return report, nil
}
