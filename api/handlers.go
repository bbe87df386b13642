package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"lhcompare/compare"
	"lhcompare/format"
	"lhcompare/schema"
)

// CompareRequest is the body of /api/compare and /api/report.
type CompareRequest struct {
	Runs         []schema.Run      `json:"runs"`
	AncestorRuns []schema.Run      `json:"ancestorRuns"`
	Links        map[string]string `json:"links,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var contentTypes = map[format.Format]string{
	format.Markdown: "text/markdown; charset=utf-8",
	format.CSV:      "text/csv; charset=utf-8",
	format.JSON:     "application/json",
	format.YAML:     "application/yaml",
}

// DefaultMaxBodyBytes bounds request bodies. Reports run to several megabytes each.
const DefaultMaxBodyBytes int64 = 256 << 20

type handler struct {
	engine       *compare.Engine
	log          zerolog.Logger
	maxBodyBytes int64
}

func (h handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h handler) Compare(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	results, ok := h.compare(w, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h handler) Report(w http.ResponseWriter, r *http.Request) {
	f, err := format.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	results, ok := h.compare(w, req)
	if !ok {
		return
	}

	out, err := format.Render(f, results, req.Links)
	if err != nil {
		// links with a malformed page URL
		var urlErr *compare.MalformedURLError
		if errors.As(err, &urlErr) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
			return
		}
		h.log.Error().Err(err).Msg("failed to render report")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to render report"})
		return
	}

	w.Header().Set("Content-Type", contentTypes[f])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (h handler) decode(w http.ResponseWriter, r *http.Request) (CompareRequest, bool) {
	var req CompareRequest
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Error: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
			})
			return req, false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return req, false
	}
	return req, true
}

func (h handler) compare(w http.ResponseWriter, req CompareRequest) (compare.Results, bool) {
	results, err := h.engine.Compare(req.Runs, req.AncestorRuns)
	if err == nil {
		return results, true
	}

	var reportErr *compare.MalformedReportError
	var urlErr *compare.MalformedURLError
	if errors.As(err, &reportErr) || errors.As(err, &urlErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return nil, false
	}

	h.log.Error().Err(err).Msg("comparison failed")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "comparison failed"})
	return nil, false
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
