package expander

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"noweb/internal/domain"
)

const maxSuggestions = 3

// UnknownChunkError is returned when expansion reaches a chunk name that
// the document never defines.
type UnknownChunkError struct {
	Name        string
	Referrer    string // empty for the root chunk
	Suggestions []string
}

func (e *UnknownChunkError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unknown chunk %q", e.Name)
	if e.Referrer != "" {
		fmt.Fprintf(&b, " referenced from %q", e.Referrer)
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", quoteAll(e.Suggestions))
	}
	return b.String()
}

func (e *UnknownChunkError) Unwrap() error {
	return domain.ErrUnknownChunk
}

// Suggest returns up to three known chunk names resembling name.
func Suggest(store *domain.ChunkStore, name string) []string {
	matches := fuzzy.Find(name, store.Names())
	if len(matches) == 0 {
		// fuzzy only matches subsequences, so retry the other way round
		// to catch names that are shorter than what was asked for.
		for _, candidate := range store.Names() {
			if len(fuzzy.Find(candidate, []string{name})) > 0 {
				matches = append(matches, fuzzy.Match{Str: candidate})
			}
		}
	}

	var out []string
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, " or ")
}
