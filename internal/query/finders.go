package query

import (
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"

	"keydash/internal/domain"
)

// Placeholder is replaced by the encoded search text in a finder template
const Placeholder = "%s"

// FinderIndex maps lower-cased finder shortcuts to search templates
type FinderIndex struct {
	finders []domain.Finder
}

// NewFinderIndex creates an index over finders
func NewFinderIndex(finders []domain.Finder) *FinderIndex {
	idx := &FinderIndex{}
	idx.Rebuild(finders)
	return idx
}

// Rebuild replaces the whole index
func (f *FinderIndex) Rebuild(finders []domain.Finder) {
	f.finders = f.finders[:0]
	for _, fd := range finders {
		if normalizeShortcut(fd.Shortcut) == "" {
			continue
		}
		f.finders = append(f.finders, fd)
	}
}

// Len returns the number of indexed finders
func (f *FinderIndex) Len() int {
	return len(f.finders)
}

// Lookup returns finders whose shortcut starts with prefix, shortest
// shortcut first.
func (f *FinderIndex) Lookup(prefix string) []domain.Finder {
	prefix = strings.ToLower(prefix)

	var out []domain.Finder
	for _, fd := range f.finders {
		if strings.HasPrefix(normalizeShortcut(fd.Shortcut), prefix) {
			out = append(out, fd)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i].Shortcut) < utf8.RuneCountInString(out[j].Shortcut)
	})
	return out
}

// Exact returns the first finder bound to shortcut
func (f *FinderIndex) Exact(shortcut string) (domain.Finder, bool) {
	key := normalizeShortcut(shortcut)
	for _, fd := range f.finders {
		if normalizeShortcut(fd.Shortcut) == key {
			return fd, true
		}
	}
	return domain.Finder{}, false
}

// Complete returns the single shortcut starting with partial, if exactly
// one does.
func (f *FinderIndex) Complete(partial string) (string, bool) {
	hits := f.Lookup(partial)
	if len(hits) != 1 {
		return "", false
	}
	return normalizeShortcut(hits[0].Shortcut), true
}

var componentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s the way browsers encode a URI
// component: spaces become %20 and !'()* stay literal.
func EncodeComponent(s string) string {
	return componentUnescapes.Replace(url.QueryEscape(s))
}

// BuildURL substitutes the lower-cased, encoded search text into the
// finder's template. Templates without a placeholder get the text appended.
func BuildURL(f domain.Finder, text string) string {
	encoded := EncodeComponent(strings.ToLower(text))
	if strings.Contains(f.SearchURL, Placeholder) {
		return strings.Replace(f.SearchURL, Placeholder, encoded, 1)
	}
	return f.SearchURL + encoded
}

// resolveFinder turns the buffer after the finder marker into candidates.
// Without a space it completes shortcuts; with one, the first token must
// name a finder and the rest is the verbatim search text.
func (in *Interpreter) resolveFinder(rest string) []Candidate {
	space := strings.IndexByte(rest, ' ')
	if space < 0 {
		var out []Candidate
		for _, fd := range in.finders.Lookup(rest) {
			out = append(out, Candidate{
				DisplayName:   fd.Name,
				ShortcutLabel: fd.Shortcut,
				Detail:        fd.SearchURL,
				Kind:          KindFinderCompletion,
				Completion:    string(MarkerFinder) + normalizeShortcut(fd.Shortcut) + " ",
			})
		}
		return out
	}

	fd, ok := in.finders.Exact(rest[:space])
	if !ok {
		return nil
	}
	text := rest[space+1:]
	target := BuildURL(fd, text)
	return []Candidate{{
		DisplayName:   fd.Name,
		ShortcutLabel: fd.Shortcut,
		Detail:        text,
		Kind:          KindFinder,
		Action:        in.navigate(target),
	}}
}
