// Package dialect holds the delimiter conventions recognized by the parser
// and the expander. A Dialect is compiled once and shared read-only.
package dialect

import (
	"fmt"
	"regexp"
	"strings"

	"noweb/internal/domain"
)

const (
	Fenced = "fenced"
	Angle  = "angle"
	Custom = "custom"
)

// Dialect is a compiled set of delimiter patterns.
//
// When Announce is set, the chunk name comes from the announce line and
// Opener only starts the block (it carries no name). Otherwise Opener must
// capture the chunk name in its first group. Reference captures the leading
// indentation in group 1 and the referenced name in group 2.
type Dialect struct {
	Name      string
	Announce  *regexp.Regexp
	Opener    *regexp.Regexp
	Closer    *regexp.Regexp
	Reference *regexp.Regexp
}

// Patterns is the uncompiled form of a dialect, as found in configuration.
type Patterns struct {
	Announce  string
	Opener    string
	Closer    string
	Reference string
}

var builtin = map[string]Patterns{
	Fenced: {
		Announce:  `^\*(.+)\*$`,
		Opener:    "^```\\w*(\\s|$)",
		Closer:    "^```\\w*(\\s|$)",
		Reference: `^(\s*)#\*(.+)\*#\s*$`,
	},
	Angle: {
		Opener:    `^<<(.+)>>=\s*$`,
		Closer:    `^@(\s|$)`,
		Reference: `^(\s*)<<(.+)>>\s*$`,
	},
}

// Names lists the built-in dialects.
func Names() []string {
	return []string{Fenced, Angle}
}

// Lookup returns a compiled built-in dialect.
func Lookup(name string) (*Dialect, error) {
	p, ok := builtin[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown dialect %q (want one of %s)",
			domain.ErrInvalidDialect, name, strings.Join(Names(), ", "))
	}
	return Compile(strings.ToLower(strings.TrimSpace(name)), p)
}

// Compile builds a dialect from raw patterns and validates their groups.
func Compile(name string, p Patterns) (*Dialect, error) {
	d := &Dialect{Name: name}

	var err error
	if p.Announce != "" {
		if d.Announce, err = compile("announce", p.Announce, 1); err != nil {
			return nil, err
		}
	}

	openerGroups := 1
	if d.Announce != nil {
		openerGroups = 0
	}
	if d.Opener, err = compile("opener", p.Opener, openerGroups); err != nil {
		return nil, err
	}
	if d.Closer, err = compile("closer", p.Closer, 0); err != nil {
		return nil, err
	}
	if d.Reference, err = compile("reference", p.Reference, 2); err != nil {
		return nil, err
	}

	return d, nil
}

func compile(role, expr string, minGroups int) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, fmt.Errorf("%w: %s pattern is required", domain.ErrInvalidDialect, role)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s pattern: %v", domain.ErrInvalidDialect, role, err)
	}
	if re.NumSubexp() < minGroups {
		return nil, fmt.Errorf("%w: %s pattern needs %d capture group(s), has %d",
			domain.ErrInvalidDialect, role, minGroups, re.NumSubexp())
	}
	return re, nil
}

// MatchAnnounce reports a chunk-name announcement line.
func (d *Dialect) MatchAnnounce(line string) (string, bool) {
	if d.Announce == nil {
		return "", false
	}
	m := d.Announce.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	return name, name != ""
}

// MatchOpener reports a block opener. The returned name is empty for
// dialects that announce names on a separate line.
func (d *Dialect) MatchOpener(line string) (string, bool) {
	m := d.Opener.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	if d.Announce != nil {
		return "", true
	}
	return strings.TrimSpace(m[1]), true
}

func (d *Dialect) MatchCloser(line string) bool {
	return d.Closer.MatchString(line)
}

// MatchReference reports whether the whole line is a chunk reference.
func (d *Dialect) MatchReference(line string) (domain.Reference, bool) {
	m := d.Reference.FindStringSubmatch(line)
	if m == nil {
		return domain.Reference{}, false
	}
	name := strings.TrimSpace(m[2])
	if name == "" {
		return domain.Reference{}, false
	}
	return domain.Reference{Indent: m[1], Name: name}, true
}

// Announces reports whether chunk names are given on their own line,
// which is the case for markdown-style documents.
func (d *Dialect) Announces() bool {
	return d.Announce != nil
}
