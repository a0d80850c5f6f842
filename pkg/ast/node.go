package ast

import (
	"encoding/json"
	"strconv"
)

// Node is one element of a Pandoc tree.
//
// Content holds the decoded "c" payload and is one of nil, bool, string,
// json.Number, []any, map[string]any or *Node, nested arbitrarily. Its shape
// depends on Kind; the typed accessors below interpret it. A nil Content is
// encoded without a "c" member, as Pandoc does for Space or HorizontalRule.
type Node struct {
	Kind    Kind
	Tag     string
	Content any
}

// New returns a node of kind k with the given payload.
func New(k Kind, content any) *Node {
	return &Node{Kind: k, Tag: k.String(), Content: content}
}

// FromTag returns a node for a wire tag, resolving its Kind.
func FromTag(tag string, content any) *Node {
	return &Node{Kind: KindOf(tag), Tag: tag, Content: content}
}

// Str returns a Str inline.
func Str(s string) *Node { return New(KindStr, s) }

// Space returns a Space inline.
func Space() *Node { return New(KindSpace, nil) }

// RawInline returns a raw inline for the given output format.
func RawInline(format, text string) *Node {
	return New(KindRawInline, []any{format, text})
}

// Para returns a paragraph of inlines.
func Para(inlines ...*Node) *Node { return New(KindPara, List(inlines)) }

// Plain returns a Plain block of inlines.
func Plain(inlines ...*Node) *Node { return New(KindPlain, List(inlines)) }

// Header returns a header block.
func Header(level int, attr Attr, inlines ...*Node) *Node {
	return New(KindHeader, []any{json.Number(strconv.Itoa(level)), attr.Value(), List(inlines)})
}

// Div returns a Div container of blocks.
func Div(attr Attr, blocks ...*Node) *Node {
	return New(KindDiv, []any{attr.Value(), List(blocks)})
}

// CodeBlock returns a code block.
func CodeBlock(attr Attr, text string) *Node {
	return New(KindCodeBlock, []any{attr.Value(), text})
}

// List converts nodes into a content sequence.
func List(nodes []*Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}

// Nodes converts a content sequence back into nodes. It reports false if
// any element is not a node.
func Nodes(v any) ([]*Node, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]*Node, len(items))
	for i, item := range items {
		n, ok := item.(*Node)
		if !ok {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

// field returns element i of a sequence payload.
func (n *Node) field(i int) (any, bool) {
	items, ok := n.Content.([]any)
	if !ok || i < 0 || i >= len(items) {
		return nil, false
	}
	return items[i], true
}

// Attr returns the attribute of elements that carry one.
func (n *Node) Attr() (Attr, bool) {
	var v any
	var ok bool
	switch n.Kind {
	case KindCodeBlock, KindTable, KindFigure, KindDiv, KindCode, KindLink, KindImage, KindSpan:
		v, ok = n.field(0)
	case KindHeader:
		v, ok = n.field(1)
	default:
		return Attr{}, false
	}
	if !ok {
		return Attr{}, false
	}
	return attrFrom(v)
}

// Inlines returns the inline children of elements whose content is text.
func (n *Node) Inlines() ([]*Node, bool) {
	switch n.Kind {
	case KindPlain, KindPara, KindEmph, KindUnderline, KindStrong, KindStrikeout,
		KindSuperscript, KindSubscript, KindSmallCaps, KindMetaInlines:
		return Nodes(n.Content)
	case KindQuoted, KindCite, KindLink, KindImage, KindSpan:
		v, _ := n.field(1)
		return Nodes(v)
	case KindHeader:
		v, _ := n.field(2)
		return Nodes(v)
	}
	return nil, false
}

// Blocks returns the block children of container elements.
func (n *Node) Blocks() ([]*Node, bool) {
	switch n.Kind {
	case KindBlockQuote, KindNote, KindMetaBlocks:
		return Nodes(n.Content)
	case KindDiv:
		v, _ := n.field(1)
		return Nodes(v)
	case KindFigure:
		v, _ := n.field(2)
		return Nodes(v)
	}
	return nil, false
}

// Text returns the literal text of scalar elements.
func (n *Node) Text() (string, bool) {
	var v any
	switch n.Kind {
	case KindStr, KindMetaString:
		v = n.Content
	case KindCode, KindCodeBlock, KindRawBlock, KindRawInline, KindMath:
		v, _ = n.field(1)
	default:
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Level returns the level of a Header.
func (n *Node) Level() (int, bool) {
	if n.Kind != KindHeader {
		return 0, false
	}
	v, ok := n.field(0)
	if !ok {
		return 0, false
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	level, err := strconv.Atoi(num.String())
	return level, err == nil
}

// WithInlines returns a copy of n whose inline children are replaced.
// The rest of the payload is shared with n. It reports false for kinds
// without inline children.
func (n *Node) WithInlines(inlines []*Node) (*Node, bool) {
	list := List(inlines)
	switch n.Kind {
	case KindPlain, KindPara, KindEmph, KindUnderline, KindStrong, KindStrikeout,
		KindSuperscript, KindSubscript, KindSmallCaps, KindMetaInlines:
		return &Node{Kind: n.Kind, Tag: n.Tag, Content: list}, true
	case KindQuoted, KindCite, KindLink, KindImage, KindSpan:
		return n.withField(1, list)
	case KindHeader:
		return n.withField(2, list)
	}
	return nil, false
}

func (n *Node) withField(i int, v any) (*Node, bool) {
	items, ok := n.Content.([]any)
	if !ok || i >= len(items) {
		return nil, false
	}
	cp := make([]any, len(items))
	copy(cp, items)
	cp[i] = v
	return &Node{Kind: n.Kind, Tag: n.Tag, Content: cp}, true
}
