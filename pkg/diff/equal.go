package diff

import (
	"bytes"

	"github.com/matzehuels/pandiff/pkg/ast"
)

// Equal reports whether a and b are structurally identical: same tag, same
// attributes, same content, recursively. Key order inside JSON objects does
// not matter; order inside sequences does.
func Equal(a, b *ast.Node) bool {
	return bytes.Equal(ast.Canonical(a), ast.Canonical(b))
}

// digests returns the canonical digest of every block, computed once so the
// alignment table compares short strings.
func digests(blocks []*ast.Node) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = ast.Digest(b)
	}
	return out
}
