package diff

import (
	"fmt"

	"github.com/matzehuels/pandiff/pkg/ast"
)

// AttrKey is the attribute key carrying the status on annotation wrappers.
const AttrKey = "diff"

// Annotate wraps n in a Div whose attribute is ("", [], [("diff", status)]).
// The wrapped node is not copied or modified. Only StatusAdded and
// StatusRemoved can be annotated; unchanged blocks are emitted as-is, so
// any other status is a programming error and panics.
func Annotate(n *ast.Node, status Status) *ast.Node {
	if status != StatusAdded && status != StatusRemoved {
		panic(fmt.Sprintf("diff: cannot annotate block with status %v", status))
	}
	attr := ast.Attr{Pairs: [][2]string{{AttrKey, status.String()}}}
	return ast.Div(attr, n)
}

// Unwrap recognizes an annotation wrapper: a Div with a diff=added or
// diff=removed attribute pair. It returns the status and the wrapped
// blocks. Other identifiers, classes and pairs on the Div are tolerated.
func Unwrap(n *ast.Node) (Status, []*ast.Node, bool) {
	if n == nil || n.Kind != ast.KindDiv {
		return 0, nil, false
	}
	attr, ok := n.Attr()
	if !ok {
		return 0, nil, false
	}
	v, ok := attr.Get(AttrKey)
	if !ok {
		return 0, nil, false
	}
	status, err := ParseStatus(v)
	if err != nil || status == StatusUnchanged {
		return 0, nil, false
	}
	blocks, ok := n.Blocks()
	if !ok {
		return 0, nil, false
	}
	return status, blocks, true
}
