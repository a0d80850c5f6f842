// Package ast models Pandoc JSON documents as trees of typed nodes.
//
// # Overview
//
// Pandoc serializes its abstract syntax tree as JSON (pandoc -t json). A
// document is an object with three required members:
//
//	{
//	  "pandoc-api-version": [1, 23, 1],
//	  "meta": {...},
//	  "blocks": [{"t": "Para", "c": [...]}, ...]
//	}
//
// Every element of the tree is encoded as an object with a tag ("t") and an
// optional content payload ("c"). This package decodes such objects into
// [Node] values at any depth, so a paragraph's content is a sequence of
// inline Nodes, a Div's content holds an attribute and a sequence of block
// Nodes, and so on.
//
// # Kinds
//
// Tags are resolved into a closed [Kind] enumeration covering the blocks,
// inlines and meta values of the Pandoc AST. Unrecognized tags decode to
// [KindUnknown] and keep their wire tag in [Node.Tag], so documents produced
// by newer Pandoc versions round-trip untouched. Code that treats kinds
// differently switches on Kind, never on the tag string.
//
// # Canonical Form
//
// [Canonical] writes a deterministic serialization of any value in the
// tree: object keys sorted, nodes as {"c":...,"t":...}, numbers by their
// literal text and no insignificant whitespace. Two nodes are structurally
// equal exactly when their canonical forms are byte-identical. [Digest]
// hashes the canonical form for cheap repeated comparison.
//
// # Encoding
//
// [Node] and [Document] implement json.Marshaler and json.Unmarshaler.
// Numbers are decoded as json.Number so their text survives a round trip.
// Plain json.Marshal still escapes <, > and & because it re-compacts the
// output of MarshalJSON; write through an encoder with SetEscapeHTML(false)
// to keep them literal, as package io does.
// Reading and writing files lives in package io.
//
// # Concurrency
//
// Nodes are plain values with no internal caches. Concurrent reads are safe;
// concurrent mutation is not.
package ast
