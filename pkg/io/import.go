package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/matzehuels/pandiff/pkg/ast"
	perrors "github.com/matzehuels/pandiff/pkg/errors"
)

// Stdio is the path that stands for standard input or output.
const Stdio = "-"

// ParseDocument decodes a Pandoc JSON document. name identifies the input
// in error messages, e.g. "before" or "after (v2.json)".
func ParseDocument(data []byte, name string) (*ast.Document, error) {
	var doc ast.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, malformed(err, name)
	}
	return &doc, nil
}

// ReadDocument decodes a Pandoc JSON document from r. It does not close r.
func ReadDocument(r io.Reader, name string) (*ast.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeIO, err, "read %s", name)
	}
	return ParseDocument(data, name)
}

// ImportDocument reads a Pandoc JSON document from the file at path, or
// from standard input if path is "-". role ("before", "after") prefixes
// error messages.
func ImportDocument(path, role string) (*ast.Document, error) {
	if err := perrors.ValidatePath(path); err != nil {
		return nil, err
	}

	name := describe(path, role)
	if path == Stdio {
		return ReadDocument(os.Stdin, name)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, perrors.New(perrors.ErrCodeFileNotFound, "%s: no such file", name)
		}
		return nil, perrors.Wrap(perrors.ErrCodeIO, err, "open %s", name)
	}
	defer f.Close()
	return ReadDocument(f, name)
}

func describe(path, role string) string {
	switch {
	case role == "":
		return path
	case path == Stdio:
		return role + " (stdin)"
	default:
		return fmt.Sprintf("%s (%s)", role, path)
	}
}

// malformed wraps a decoding error, adding the byte offset of JSON
// syntax errors.
func malformed(err error, name string) error {
	var syntax *json.SyntaxError
	if errors.As(err, &syntax) {
		return perrors.Wrap(perrors.ErrCodeMalformedDocument, err, "%s: invalid JSON at offset %d", name, syntax.Offset)
	}
	return perrors.Wrap(perrors.ErrCodeMalformedDocument, err, "%s", name)
}
