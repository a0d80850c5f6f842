package ast

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

const (
	fieldAPIVersion = "pandoc-api-version"
	fieldMeta       = "meta"
	fieldBlocks     = "blocks"
)

// ErrMalformed is wrapped by every decoding error caused by input that does
// not have the shape of a Pandoc document.
var ErrMalformed = errors.New("malformed document")

// FieldError reports which part of a document is missing or ill-typed.
type FieldError struct {
	Field  string // e.g. "meta" or "blocks[3]"
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrMalformed }

// Document is a complete Pandoc document.
type Document struct {
	APIVersion []int
	Meta       map[string]any // opaque to the diff engine
	Blocks     []*Node
}

type documentWire struct {
	APIVersion []int          `json:"pandoc-api-version"`
	Meta       map[string]any `json:"meta"`
	Blocks     []*Node        `json:"blocks"`
}

// MarshalJSON encodes d in Pandoc's member order.
func (d *Document) MarshalJSON() ([]byte, error) {
	w := documentWire{APIVersion: d.APIVersion, Meta: d.Meta, Blocks: d.Blocks}
	if w.APIVersion == nil {
		w.APIVersion = []int{}
	}
	if w.Meta == nil {
		w.Meta = map[string]any{}
	}
	if w.Blocks == nil {
		w.Blocks = []*Node{}
	}
	return marshalNoEscape(w)
}

// UnmarshalJSON decodes a Pandoc document. All three top-level members are
// required.
func (d *Document) UnmarshalJSON(data []byte) error {
	raw, err := decodeAny(data)
	if err != nil {
		return err
	}
	top, ok := raw.(map[string]any)
	if !ok {
		return &FieldError{Field: "document", Reason: "expected an object"}
	}

	version, err := apiVersion(top)
	if err != nil {
		return err
	}

	metaRaw, ok := top[fieldMeta]
	if !ok {
		return &FieldError{Field: fieldMeta, Reason: "missing"}
	}
	metaMap, ok := metaRaw.(map[string]any)
	if !ok {
		return &FieldError{Field: fieldMeta, Reason: "expected an object"}
	}
	meta := make(map[string]any, len(metaMap))
	for k, v := range metaMap {
		meta[k] = convert(v)
	}

	blocksRaw, ok := top[fieldBlocks]
	if !ok {
		return &FieldError{Field: fieldBlocks, Reason: "missing"}
	}
	items, ok := blocksRaw.([]any)
	if !ok {
		return &FieldError{Field: fieldBlocks, Reason: "expected an array"}
	}
	blocks := make([]*Node, len(items))
	for i, item := range items {
		n, ok := convert(item).(*Node)
		if !ok {
			return &FieldError{Field: fmt.Sprintf("%s[%d]", fieldBlocks, i), Reason: `expected an element with a "t" tag`}
		}
		blocks[i] = n
	}

	*d = Document{APIVersion: version, Meta: meta, Blocks: blocks}
	return nil
}

func apiVersion(top map[string]any) ([]int, error) {
	raw, ok := top[fieldAPIVersion]
	if !ok {
		return nil, &FieldError{Field: fieldAPIVersion, Reason: "missing"}
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, &FieldError{Field: fieldAPIVersion, Reason: "expected an array"}
	}
	version := make([]int, len(items))
	for i, item := range items {
		num, ok := item.(json.Number)
		if !ok {
			return nil, &FieldError{Field: fieldAPIVersion, Reason: "expected integers"}
		}
		v, err := strconv.Atoi(num.String())
		if err != nil {
			return nil, &FieldError{Field: fieldAPIVersion, Reason: "expected integers"}
		}
		version[i] = v
	}
	return version, nil
}

// MarshalJSON encodes n as {"t": tag, "c": content}, omitting "c" when the
// node has no content.
func (n *Node) MarshalJSON() ([]byte, error) {
	tag := n.Tag
	if tag == "" {
		tag = n.Kind.String()
	}
	if n.Content == nil {
		return marshalNoEscape(struct {
			T string `json:"t"`
		}{tag})
	}
	return marshalNoEscape(struct {
		T string `json:"t"`
		C any    `json:"c"`
	}{tag, n.Content})
}

// UnmarshalJSON decodes a single element.
func (n *Node) UnmarshalJSON(data []byte) error {
	raw, err := decodeAny(data)
	if err != nil {
		return err
	}
	node, ok := convert(raw).(*Node)
	if !ok {
		return &FieldError{Field: "element", Reason: `expected an object with a "t" tag`}
	}
	*n = *node
	return nil
}

func decodeAny(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return v, nil
}

// convert turns element-shaped objects into Nodes, recursively.
func convert(v any) any {
	switch v := v.(type) {
	case map[string]any:
		if tag, ok := v["t"].(string); ok && isElement(v) {
			return FromTag(tag, convert(v["c"]))
		}
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = convert(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = convert(item)
		}
		return out
	default:
		return v
	}
}

func isElement(m map[string]any) bool {
	switch len(m) {
	case 1:
		return true
	case 2:
		_, ok := m["c"]
		return ok
	}
	return false
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
