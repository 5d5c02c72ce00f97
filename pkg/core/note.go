package core

import (
	"strings"
	"time"
)

// Note is the central entity of the domain.
// It is a short text record identified by an opaque ID.
type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	UpdatedAt int64  `json:"updatedAt"` // milliseconds since epoch
}

// Notes is an unordered collection of notes.
type Notes []Note

// Millis converts t to the timestamp unit stored in UpdatedAt.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// Time returns UpdatedAt as a time.Time.
func (n Note) Time() time.Time {
	return time.UnixMilli(n.UpdatedAt)
}

// WithTitle returns a copy of the note with a new title and UpdatedAt bumped to now.
func (n Note) WithTitle(title string, now time.Time) Note {
	n.Title = title
	n.UpdatedAt = Millis(now)
	return n
}

// WithContent returns a copy of the note with new content and UpdatedAt bumped to now.
func (n Note) WithContent(content string, now time.Time) Note {
	n.Content = content
	n.UpdatedAt = Millis(now)
	return n
}

// Matches reports whether title or content contains needle.
// needle must already be case-folded; see Fold.
func (n Note) Matches(needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(n.Title), needle) || strings.Contains(Fold(n.Content), needle)
}

// Clone returns a shallow copy of the collection. A nil collection clones to an empty one.
func (ns Notes) Clone() Notes {
	out := make(Notes, len(ns))
	copy(out, ns)
	return out
}

// Index returns the position of the note with the given id, or -1.
func (ns Notes) Index(id string) int {
	for i := range ns {
		if ns[i].ID == id {
			return i
		}
	}
	return -1
}

// IDs lists the ids in collection order.
func (ns Notes) IDs() []string {
	ids := make([]string, len(ns))
	for i, n := range ns {
		ids[i] = n.ID
	}
	return ids
}
