package diff

import (
	"github.com/matzehuels/pandiff/pkg/ast"
	perrors "github.com/matzehuels/pandiff/pkg/errors"
)

// Summary counts the entries of a merge.
type Summary struct {
	Unchanged int `json:"unchanged"`
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Changed   int `json:"changed"` // removed/added pairs, also counted in Added and Removed
}

// Summarize counts entries by status.
func Summarize(entries []Entry) Summary {
	var s Summary
	for _, e := range entries {
		switch e.Status {
		case StatusUnchanged:
			s.Unchanged++
		case StatusAdded:
			s.Added++
		case StatusRemoved:
			s.Removed++
			if e.Changed {
				s.Changed++
			}
		}
	}
	return s
}

// Total returns the number of emitted blocks.
func (s Summary) Total() int {
	return s.Unchanged + s.Added + s.Removed
}

// Identical reports whether the two inputs had the same blocks.
func (s Summary) Identical() bool {
	return s.Added == 0 && s.Removed == 0
}

// Result is the outcome of comparing two documents.
type Result struct {
	Document *ast.Document
	Entries  []Entry
	Summary  Summary
}

// Compare diffs the block sequences of before and after. The merged
// document carries after's API version and metadata unchanged.
func Compare(before, after *ast.Document) (*Result, error) {
	if before == nil {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "before document is nil")
	}
	if after == nil {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "after document is nil")
	}

	entries := Align(before.Blocks, after.Blocks)
	return &Result{
		Document: &ast.Document{
			APIVersion: after.APIVersion,
			Meta:       after.Meta,
			Blocks:     Materialize(entries),
		},
		Entries: entries,
		Summary: Summarize(entries),
	}, nil
}

// Documents returns the merged, annotated document for before and after.
func Documents(before, after *ast.Document) (*ast.Document, error) {
	res, err := Compare(before, after)
	if err != nil {
		return nil, err
	}
	return res.Document, nil
}
