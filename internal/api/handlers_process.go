package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/yuin/goldmark"
	"golang.org/x/sync/errgroup"

	"github.com/clarolegal/lexclaro/internal/classify"
	"github.com/clarolegal/lexclaro/internal/ingest"
	"github.com/clarolegal/lexclaro/internal/legal"
	"github.com/clarolegal/lexclaro/internal/pipeline"
	"github.com/clarolegal/lexclaro/internal/segment"
)

// processRequest is the JSON body of POST /api/process. Text documents
// use plainText; binary ones send base64 in fileContent.
type processRequest struct {
	SourceType  string `json:"sourceType"`
	PlainText   string `json:"plainText,omitempty"`
	FileContent string `json:"fileContent,omitempty"`
	Filename    string `json:"filename,omitempty"`
	Language    string `json:"language,omitempty"`
}

type processResponse struct {
	pipeline.Result
	ReportHTML string `json:"reportHtml,omitempty"`
}

var markdown = goldmark.New()

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*4/3+1024*1024) // base64 overhead

	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := s.buildRawDocument(req)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.pipeline.Process(r.Context(), doc)
	if err != nil {
		s.writeProcessError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(result))
}

// batchRequest processes up to MaxBatchDocs documents in one call.
type batchRequest struct {
	Documents []processRequest `json:"documents"`
}

type batchItem struct {
	Index  int              `json:"index"`
	Result *processResponse `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

func (s *Server) handleProcessBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*int64(s.cfg.MaxBatchDocs)*4/3+1024*1024)

	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Documents) == 0 {
		jsonError(w, "at least one document is required", http.StatusBadRequest)
		return
	}
	if len(req.Documents) > s.cfg.MaxBatchDocs {
		jsonError(w, fmt.Sprintf("batch exceeds max size (%d documents)", s.cfg.MaxBatchDocs), http.StatusBadRequest)
		return
	}

	items := make([]batchItem, len(req.Documents))

	var g errgroup.Group
	g.SetLimit(max(s.cfg.MaxConcurrentDocs, 1))
	for i, docReq := range req.Documents {
		i, docReq := i, docReq
		g.Go(func() error {
			items[i].Index = i
			doc, err := s.buildRawDocument(docReq)
			if err != nil {
				items[i].Error = err.Error()
				return nil
			}
			result, err := s.pipeline.Process(r.Context(), doc)
			if err != nil {
				items[i].Error = err.Error()
				return nil
			}
			resp := toResponse(result)
			items[i].Result = &resp
			return nil
		})
	}
	_ = g.Wait()

	writeJSON(w, http.StatusOK, map[string]any{"results": items})
}

// buildRawDocument validates one request entry and decodes its payload.
func (s *Server) buildRawDocument(req processRequest) (legal.RawDocument, error) {
	kind := legal.SourceKind(req.SourceType)
	if kind == "" && req.Filename != "" {
		k, ok := ingest.KindForFile(req.Filename)
		if !ok {
			return legal.RawDocument{}, fmt.Errorf("cannot infer source type from filename %q", req.Filename)
		}
		kind = k
	}

	switch kind {
	case legal.SourceText:
		if req.PlainText == "" {
			return legal.RawDocument{}, errors.New("plainText is required for text documents")
		}
		return legal.RawDocument{
			Content:  []byte(req.PlainText),
			Source:   kind,
			Filename: req.Filename,
			Language: req.Language,
		}, nil
	case legal.SourcePDF, legal.SourceDOCX, legal.SourceHTML, legal.SourceImage:
		if req.FileContent == "" {
			return legal.RawDocument{}, fmt.Errorf("fileContent is required for %s documents", kind)
		}
		data, err := base64.StdEncoding.DecodeString(req.FileContent)
		if err != nil {
			return legal.RawDocument{}, fmt.Errorf("fileContent is not valid base64: %w", err)
		}
		if int64(len(data)) > s.cfg.MaxUploadBytes {
			return legal.RawDocument{}, fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
		}
		return legal.RawDocument{
			Content:  data,
			Source:   kind,
			Filename: req.Filename,
			Language: req.Language,
		}, nil
	default:
		return legal.RawDocument{}, fmt.Errorf("unsupported sourceType %q", req.SourceType)
	}
}

// writeProcessError maps pipeline failures to client or server errors.
func (s *Server) writeProcessError(w http.ResponseWriter, err error) {
	var ingErr *ingest.Error
	switch {
	case errors.Is(err, segment.ErrEmptyInput):
		jsonError(w, "document contains no text", http.StatusUnprocessableEntity)
	case errors.Is(err, classify.ErrNoSignal):
		jsonError(w, "document could not be classified", http.StatusUnprocessableEntity)
	case errors.As(err, &ingErr):
		jsonError(w, ingErr.Error(), http.StatusUnprocessableEntity)
	default:
		s.log.Error("pipeline failure", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

// toResponse renders the markdown report to HTML alongside the raw
// result. Rendering is best effort.
func toResponse(result pipeline.Result) processResponse {
	resp := processResponse{Result: result}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(result.Rewrite.Report), &buf); err == nil {
		resp.ReportHTML = buf.String()
	}
	return resp
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
