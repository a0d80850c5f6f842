package diff_test

import (
	"fmt"

	"github.com/matzehuels/pandiff/pkg/ast"
	"github.com/matzehuels/pandiff/pkg/diff"
)

func ExampleAlign() {
	before := []*ast.Node{ast.Para(ast.Str("intro")), ast.Para(ast.Str("draft"))}
	after := []*ast.Node{ast.Para(ast.Str("intro")), ast.Para(ast.Str("final"))}

	for _, e := range diff.Align(before, after) {
		fmt.Printf("%-9s %s\n", e.Status, ast.PlainText(e.Block))
	}
	// Output:
	// unchanged intro
	// removed   draft
	// added     final
}

func ExampleCompare() {
	before := &ast.Document{APIVersion: []int{1, 23, 1}, Blocks: []*ast.Node{ast.Para(ast.Str("a"))}}
	after := &ast.Document{APIVersion: []int{1, 23, 1}, Blocks: []*ast.Node{ast.Para(ast.Str("a")), ast.Para(ast.Str("b"))}}

	res, err := diff.Compare(before, after)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%+v\n", res.Summary)
	// Output:
	// {Unchanged:1 Added:1 Removed:0 Changed:0}
}
