package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/pandiff/pkg/ast"
	perrors "github.com/matzehuels/pandiff/pkg/errors"
)

// DefaultIndent is the number of spaces per nesting level of written
// documents.
const DefaultIndent = 2

// EncodeDocument returns the JSON encoding of doc, indented by indent spaces
// per level, with a trailing newline.
func EncodeDocument(doc *ast.Document, indent int) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDocument(doc, &buf, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDocument encodes doc as JSON and writes it to w. An indent of zero
// writes compact JSON.
func WriteDocument(doc *ast.Document, w io.Writer, indent int) error {
	if doc == nil {
		return perrors.New(perrors.ErrCodeInvalidInput, "document is nil")
	}
	if indent < 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "indent must not be negative")
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(doc); err != nil {
		return perrors.Wrap(perrors.ErrCodeIO, err, "encode document")
	}
	return nil
}

// ExportDocument writes doc to the file at path, or to standard output if
// path is "-".
func ExportDocument(doc *ast.Document, path string, indent int) error {
	if err := perrors.ValidatePath(path); err != nil {
		return err
	}
	if path == Stdio {
		return WriteDocument(doc, os.Stdout, indent)
	}

	f, err := os.Create(path)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeIO, err, "create %s", path)
	}
	if err := WriteDocument(doc, f, indent); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return perrors.Wrap(perrors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}
