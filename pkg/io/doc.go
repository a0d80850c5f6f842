// Package io reads and writes Pandoc JSON documents.
//
// # Overview
//
// Documents are exchanged in the format produced by pandoc -t json. Both
// inputs of a diff go through [ReadDocument] or [ImportDocument], which
// decode the document and turn every decoding failure into a structured
// MALFORMED_DOCUMENT error naming the input and the offending field:
//
//	before, err := io.ImportDocument("v1.json", "before")
//	if err != nil {
//	    log.Fatal(err) // MALFORMED_DOCUMENT: before (v1.json): blocks[3]: expected an element with a "t" tag
//	}
//
// # Output
//
// [WriteDocument] and [ExportDocument] write a document with the given
// indentation (zero for compact output). HTML characters are written as-is,
// so raw HTML blocks stay readable.
//
// The path "-" stands for standard input or standard output.
//
// # Concurrency
//
// All functions are safe for concurrent use; they share no state.
package io
