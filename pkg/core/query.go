package core

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns the Unicode case-folded form of s, used for case-insensitive
// matching. Code points are not normalized, so a substring of the original
// text is still a substring of the folded text.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Query projects a collection for display: newest first, then filtered by
// searchText (trimmed, case-insensitive substring of title or content).
//
// It never mutates notes and always returns a fresh slice, so re-running it
// with the same inputs yields the same output.
func Query(notes Notes, searchText string) Notes {
	out := notes.Clone()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt > out[j].UpdatedAt
	})

	needle := Fold(strings.TrimSpace(searchText))
	if needle == "" {
		return out
	}

	filtered := out[:0]
	for _, n := range out {
		if n.Matches(needle) {
			filtered = append(filtered, n)
		}
	}
	return filtered
}
