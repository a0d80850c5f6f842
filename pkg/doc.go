// Package pkg provides the core libraries of pandiff, a structural diff for
// Pandoc documents.
//
// # Overview
//
// pandiff compares two documents in Pandoc's JSON AST format block by block
// and produces one merged document. Blocks present only in the old version
// are wrapped in a Div marked "removed", blocks present only in the new
// version in a Div marked "added". A decoration pass can then turn these
// markers into underline and strikeout markup so that Pandoc renders a
// redline of the change.
//
// # Architecture
//
// The data flow through pandiff:
//
//	before.json, after.json
//	         ↓
//	    [io] package (parse Pandoc JSON)
//	         ↓
//	    [diff] package (LCS alignment + merge)
//	         ↓
//	    [decorate] package (optional underline/strikeout)
//	         ↓
//	    [io] package (write Pandoc JSON)
//
// [pipeline] ties these steps together with a [cache] in front of the diff
// and decorate stages. The CLI and the HTTP server both go through it.
//
// # Quick Start
//
//	before, _ := io.ImportDocument("v1.json", "before")
//	after, _ := io.ImportDocument("v2.json", "after")
//
//	res, _ := diff.Compare(before, after)
//	fmt.Println(res.Summary.Added, res.Summary.Removed)
//
//	styled, stats, _ := decorate.Decorate(res.Document, "latex")
//	_ = io.ExportDocument(styled, "-", 2)
//
// # Main Packages
//
// [ast] - Generic Pandoc AST nodes, documents and canonical encoding.
//
// [diff] - Block alignment, merging and the diff wrapper convention.
//
// [decorate] - Rewrites diff wrappers into format-specific markup.
//
// [io] - Reading and writing Pandoc JSON from files and streams.
//
// [cache] - File, Redis, MongoDB and in-memory result caches.
//
// [pipeline] - Load, diff, decorate and write, for one pair or a batch.
//
// [observability] - Hooks for diff, cache and HTTP events.
//
// [errors] - Error codes shared by every package.
//
// [buildinfo] - Version information injected at build time.
//
// [ast]: https://pkg.go.dev/github.com/matzehuels/pandiff/pkg/ast
// [diff]: https://pkg.go.dev/github.com/matzehuels/pandiff/pkg/diff
// [decorate]: https://pkg.go.dev/github.com/matzehuels/pandiff/pkg/decorate
// [io]: https://pkg.go.dev/github.com/matzehuels/pandiff/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/pandiff/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pandiff/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/pandiff/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/pandiff/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pandiff/pkg/buildinfo
package pkg
