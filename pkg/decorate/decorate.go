// Package decorate turns diff annotations into visible markup.
//
// A merged document from package diff marks changed blocks with wrapper
// Divs. [Decorate] replaces every wrapper by the blocks it holds, with the
// text of added blocks underlined and the text of removed blocks struck
// out, so that any Pandoc writer renders the changes without a filter.
//
// Paragraph, plain and header text is styled; emphasis, strong, quoted,
// link and citation text is styled recursively. Other inlines (math, code,
// images, raw content) and other blocks pass through untouched.
//
// For LaTeX output, header text is prefixed with \protect so the styling
// commands survive moving arguments, and when anything was removed the
// ulem package is added to the header-includes metadata once.
package decorate

import (
	"maps"
	"strings"

	"github.com/matzehuels/pandiff/pkg/ast"
	"github.com/matzehuels/pandiff/pkg/diff"
	perrors "github.com/matzehuels/pandiff/pkg/errors"
)

const (
	// HeaderIncludesKey is the metadata field LaTeX templates splice into
	// the preamble.
	HeaderIncludesKey = "header-includes"

	ulemPackage = `\usepackage{ulem}`
)

// Stats counts the wrappers a decoration pass replaced.
type Stats struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// IsLaTeX reports whether format is written through LaTeX.
func IsLaTeX(format string) bool {
	if i := strings.IndexAny(format, "+-"); i >= 0 {
		format = format[:i]
	}
	return format == "latex" || format == "beamer"
}

// Decorate returns a copy of doc with every diff wrapper replaced by its
// styled blocks. doc is not modified.
func Decorate(doc *ast.Document, format string) (*ast.Document, Stats, error) {
	if doc == nil {
		return nil, Stats{}, perrors.New(perrors.ErrCodeInvalidInput, "document is nil")
	}
	if err := perrors.ValidateFormat(format); err != nil {
		return nil, Stats{}, err
	}

	d := &decorator{latex: IsLaTeX(format)}
	out := &ast.Document{
		APIVersion: doc.APIVersion,
		Meta:       doc.Meta,
		Blocks:     d.blocks(doc.Blocks),
	}
	if d.latex && d.stats.Removed > 0 {
		out.Meta = withULEM(doc.Meta)
	}
	return out, d.stats, nil
}

// decorator holds the state of one pass.
type decorator struct {
	latex bool
	stats Stats
}

func (d *decorator) blocks(in []*ast.Node) []*ast.Node {
	out := make([]*ast.Node, 0, len(in))
	for _, b := range in {
		status, children, ok := diff.Unwrap(b)
		if !ok {
			out = append(out, d.node(b))
			continue
		}

		wrap := ast.KindUnderline
		if status == diff.StatusRemoved {
			wrap = ast.KindStrikeout
			d.stats.Removed++
		} else {
			d.stats.Added++
		}
		for _, c := range d.blocks(children) {
			out = append(out, d.style(c, wrap))
		}
	}
	return out
}

// node copies n, replacing wrappers nested in its block containers.
func (d *decorator) node(n *ast.Node) *ast.Node {
	if n == nil {
		return nil
	}
	return &ast.Node{Kind: n.Kind, Tag: n.Tag, Content: d.value(n.Content)}
}

func (d *decorator) value(v any) any {
	switch v := v.(type) {
	case *ast.Node:
		return d.node(v)
	case []any:
		if nodes, ok := ast.Nodes(v); ok && len(nodes) > 0 && nodes[0].Kind.IsBlock() {
			return ast.List(d.blocks(nodes))
		}
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = d.value(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = d.value(item)
		}
		return out
	default:
		return v
	}
}

// style applies wrap to the text of a block taken out of a wrapper.
func (d *decorator) style(b *ast.Node, wrap ast.Kind) *ast.Node {
	switch b.Kind {
	case ast.KindPara, ast.KindPlain, ast.KindHeader:
	default:
		return b
	}

	inlines, ok := b.Inlines()
	if !ok {
		return b
	}
	styled := styleInlines(inlines, wrap)
	if b.Kind == ast.KindHeader && d.latex {
		styled = append([]*ast.Node{ast.RawInline("latex", `\protect`)}, styled...)
	}
	if out, ok := b.WithInlines(styled); ok {
		return out
	}
	return b
}

// styleInlines wraps every piece of text in a wrap element of its own.
// Empty strings are dropped.
func styleInlines(inlines []*ast.Node, wrap ast.Kind) []*ast.Node {
	out := make([]*ast.Node, 0, len(inlines))
	for _, in := range inlines {
		switch in.Kind {
		case ast.KindStr:
			if s, _ := in.Text(); s == "" {
				continue
			}
			out = append(out, ast.New(wrap, ast.List([]*ast.Node{in})))
		case ast.KindSpace, ast.KindSoftBreak, ast.KindLineBreak:
			out = append(out, ast.New(wrap, ast.List([]*ast.Node{in})))
		case ast.KindEmph, ast.KindStrong, ast.KindQuoted, ast.KindLink, ast.KindCite:
			children, ok := in.Inlines()
			if !ok {
				out = append(out, in)
				continue
			}
			styled, ok := in.WithInlines(styleInlines(children, wrap))
			if !ok {
				out = append(out, in)
				continue
			}
			out = append(out, styled)
		default:
			out = append(out, in)
		}
	}
	return out
}

// withULEM returns a copy of meta whose header-includes list loads ulem.
// A list that already loads it is left alone.
func withULEM(meta map[string]any) map[string]any {
	out := maps.Clone(meta)
	if out == nil {
		out = make(map[string]any)
	}

	use := ast.New(ast.KindMetaInlines, ast.List([]*ast.Node{ast.RawInline("latex", ulemPackage)}))

	switch cur := out[HeaderIncludesKey].(type) {
	case nil:
		out[HeaderIncludesKey] = ast.New(ast.KindMetaList, []any{use})
	case *ast.Node:
		if loadsULEM(cur) {
			return out
		}
		if cur.Kind == ast.KindMetaList {
			items, _ := cur.Content.([]any)
			list := make([]any, 0, len(items)+1)
			list = append(list, items...)
			out[HeaderIncludesKey] = ast.New(ast.KindMetaList, append(list, use))
			break
		}
		out[HeaderIncludesKey] = ast.New(ast.KindMetaList, []any{cur, use})
	default:
		out[HeaderIncludesKey] = ast.New(ast.KindMetaList, []any{cur, use})
	}
	return out
}

func loadsULEM(n *ast.Node) bool {
	found := false
	ast.Walk(n, func(c *ast.Node) bool {
		if c.Kind == ast.KindRawInline || c.Kind == ast.KindRawBlock {
			if s, _ := c.Text(); strings.Contains(s, ulemPackage) {
				found = true
			}
		}
		return !found
	})
	return found
}
