package ast

import (
	"slices"
	"strings"
)

// Walk visits every node reachable from v in document order, parents before
// children. If fn returns false the node's content is skipped.
func Walk(v any, fn func(*Node) bool) {
	switch v := v.(type) {
	case *Node:
		if v == nil {
			return
		}
		if fn(v) {
			Walk(v.Content, fn)
		}
	case []any:
		for _, item := range v {
			Walk(item, fn)
		}
	case []*Node:
		for _, n := range v {
			Walk(n, fn)
		}
	case map[string]any:
		// Only meta maps reach here; document order is not defined for
		// them, so nodes are visited in sorted key order.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			Walk(v[k], fn)
		}
	}
}

// PlainText flattens the text of n into a single line, for previews and
// log messages.
func PlainText(n *Node) string {
	var b strings.Builder
	Walk(n, func(c *Node) bool {
		if c.Kind.IsBlock() {
			b.WriteByte(' ')
		}
		switch c.Kind {
		case KindSpace, KindSoftBreak, KindLineBreak:
			b.WriteByte(' ')
		case KindStr, KindCode, KindMath, KindCodeBlock:
			s, _ := c.Text()
			b.WriteString(s)
			return false
		case KindRawBlock, KindRawInline:
			return false
		case KindHorizontalRule:
			b.WriteString("---")
		}
		return true
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
