package ast

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
)

// Canonical returns the canonical serialization of v, which may be a *Node,
// a *Document or any content value. Object keys are sorted, so the result
// does not depend on map iteration or input key order.
func Canonical(v any) []byte {
	var buf bytes.Buffer
	writeCanonical(&buf, v)
	return buf.Bytes()
}

// Digest returns the hex SHA-256 of the canonical form of v.
func Digest(v any) string {
	sum := sha256.Sum256(Canonical(v))
	return hex.EncodeToString(sum[:])
}

func writeCanonical(buf *bytes.Buffer, v any) {
	switch v := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if v {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case string:
		writeString(buf, v)
	case json.Number:
		buf.WriteString(v.String())
	case *Node:
		if v == nil {
			buf.WriteString("null")
			return
		}
		tag := v.Tag
		if tag == "" {
			tag = v.Kind.String()
		}
		buf.WriteByte('{')
		if v.Content != nil {
			buf.WriteString(`"c":`)
			writeCanonical(buf, v.Content)
			buf.WriteByte(',')
		}
		buf.WriteString(`"t":`)
		writeString(buf, tag)
		buf.WriteByte('}')
	case *Document:
		writeCanonical(buf, map[string]any{
			fieldAPIVersion: intsToAny(v.APIVersion),
			fieldMeta:       mapOrEmpty(v.Meta),
			fieldBlocks:     List(v.Blocks),
		})
	case []any:
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeCanonical(buf, item)
		}
		buf.WriteByte(']')
	case []*Node:
		writeCanonical(buf, List(v))
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, k)
			buf.WriteByte(':')
			writeCanonical(buf, v[k])
		}
		buf.WriteByte('}')
	default:
		// Values built in code rather than decoded, e.g. plain ints.
		data, err := marshalNoEscape(v)
		if err != nil {
			buf.WriteString("null")
			return
		}
		buf.Write(data)
	}
}

func writeString(buf *bytes.Buffer, s string) {
	data, _ := marshalNoEscape(s)
	buf.Write(data)
}

func intsToAny(ints []int) []any {
	out := make([]any, len(ints))
	for i, v := range ints {
		out[i] = v
	}
	return out
}

func mapOrEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
