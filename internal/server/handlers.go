package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/matzehuels/pandiff/pkg/ast"
	"github.com/matzehuels/pandiff/pkg/buildinfo"
	"github.com/matzehuels/pandiff/pkg/decorate"
	"github.com/matzehuels/pandiff/pkg/diff"
	perrors "github.com/matzehuels/pandiff/pkg/errors"
	pio "github.com/matzehuels/pandiff/pkg/io"
	"github.com/matzehuels/pandiff/pkg/pipeline"
)

// DiffRequest is the body of POST /v1/diff.
type DiffRequest struct {
	Before   json.RawMessage `json:"before"`
	After    json.RawMessage `json:"after"`
	Decorate string          `json:"decorate,omitempty"`
	Refresh  bool            `json:"refresh,omitempty"`
}

// DiffResponse is the body returned by POST /v1/diff.
type DiffResponse struct {
	Document  *ast.Document   `json:"document"`
	Summary   diff.Summary    `json:"summary"`
	Decorated *decorate.Stats `json:"decorated,omitempty"`
	Cached    bool            `json:"cached"`
}

// DecorateRequest is the body of POST /v1/decorate.
type DecorateRequest struct {
	Document json.RawMessage `json:"document"`
	Format   string          `json:"format"`
}

// DecorateResponse is the body returned by POST /v1/decorate.
type DecorateResponse struct {
	Document  *ast.Document  `json:"document"`
	Decorated decorate.Stats `json:"decorated"`
	Cached    bool           `json:"cached"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Get().Version,
	})
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if !s.decode(w, r, &req) {
		return
	}

	before, err := parseField(req.Before, "before")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	after, err := parseField(req.After, "after")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.runner.Diff(r.Context(), before, after, pipeline.Options{
		Decorate: req.Decorate,
		Refresh:  req.Refresh,
		Logger:   s.logger.With("request", RequestIDFromContext(r.Context())),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := DiffResponse{
		Document: res.Document,
		Summary:  res.Summary,
		Cached:   res.CacheInfo.DiffHit,
	}
	if req.Decorate != "" {
		resp.Decorated = &res.Decorated
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDecorate(w http.ResponseWriter, r *http.Request) {
	var req DecorateRequest
	if !s.decode(w, r, &req) {
		return
	}

	doc, err := parseField(req.Document, "document")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.runner.Decorate(r.Context(), doc, pipeline.Options{
		Decorate: req.Format,
		Logger:   s.logger.With("request", RequestIDFromContext(r.Context())),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, DecorateResponse{
		Document:  res.Document,
		Decorated: res.Decorated,
		Cached:    res.CacheInfo.DecorateHit,
	})
}

// decode reads the request body into v, writing the error response itself
// when it fails.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE", "request body exceeds the size limit")
			return false
		}
		s.fail(w, r, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "request body"))
		return false
	}
	return true
}

// parseField decodes one embedded document.
func parseField(raw json.RawMessage, name string) (*ast.Document, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "%s document is required", name)
	}
	return pio.ParseDocument(raw, name)
}

// fail writes err with the status its code maps to.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestIDFromContext(r.Context()), "err", err)
	}
	code := string(perrors.GetCode(err))
	if code == "" {
		code = string(perrors.ErrCodeInternal)
	}
	writeError(w, status, code, perrors.UserMessage(err))
}

func statusFor(err error) int {
	switch {
	case perrors.IsCallerError(err):
		return http.StatusBadRequest
	case perrors.Is(err, perrors.ErrCodeFileNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
