package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/jot/pkg/core"
)

func sampleNotes() core.Notes {
	return core.Notes{
		{ID: "a", Title: "Groceries", Content: "milk, eggs", UpdatedAt: 100},
		{ID: "b", Title: "Meeting notes", Content: "agenda", UpdatedAt: 300},
		{ID: "c", Title: "", Content: "Call Straße office", UpdatedAt: 200},
		{ID: "d", Title: "", Content: "Cafe\u0301 order", UpdatedAt: 50},
	}
}

func TestQuery_SortsNewestFirst(t *testing.T) {
	x := core.Notes{
		{ID: "A", UpdatedAt: 100},
		{ID: "B", UpdatedAt: 200},
	}
	assert.Equal(t, []string{"B", "A"}, core.Query(x, "").IDs())
	assert.Equal(t, []string{"b", "c", "a", "d"}, core.Query(sampleNotes(), "").IDs())
}

func TestQuery_Filters(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"Title Substring", "meet", []string{"b"}},
		{"Case Insensitive", "GROCER", []string{"a"}},
		{"Content Match", "eggs", []string{"a"}},
		{"Trimmed", "   agenda  ", []string{"b"}},
		{"Whitespace Only", "   ", []string{"b", "c", "a", "d"}},
		{"Unicode Folding", "STRASSE", []string{"c"}},
		{"Combining Accent Kept", "cafe", []string{"d"}},
		{"No Match", "zzz", []string{}},
		{"Matches Several", "e", []string{"b", "c", "a", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, core.Query(sampleNotes(), tt.search).IDs())
		})
	}
}

func TestQuery_DoesNotMutateInput(t *testing.T) {
	x := sampleNotes()
	before := x.Clone()

	_ = core.Query(x, "")
	_ = core.Query(x, "meet")

	assert.Equal(t, before, x)
}

func TestQuery_IsIdempotent(t *testing.T) {
	x := sampleNotes()
	for _, s := range []string{"", "meet", "E", "office"} {
		once := core.Query(x, s)
		assert.Equal(t, once, core.Query(core.Query(x, ""), s), "search %q", s)
		assert.Equal(t, once, core.Query(once, s), "search %q", s)
	}
}

func TestQuery_SubsetOfUnfiltered(t *testing.T) {
	x := sampleNotes()
	all := core.Query(x, "")
	filtered := core.Query(x, "a")

	for _, n := range filtered {
		assert.Contains(t, all, n)
	}
	for _, n := range all {
		if n.Matches(core.Fold("a")) {
			assert.Contains(t, filtered, n)
		}
	}
}

func TestQuery_StableForEqualTimestamps(t *testing.T) {
	x := core.Notes{
		{ID: "first", UpdatedAt: 5},
		{ID: "second", UpdatedAt: 5},
		{ID: "third", UpdatedAt: 5},
	}
	assert.Equal(t, []string{"first", "second", "third"}, core.Query(x, "").IDs())
}

func TestQuery_EmptyCollection(t *testing.T) {
	assert.Empty(t, core.Query(nil, ""))
	assert.NotNil(t, core.Query(nil, "x"))
}
