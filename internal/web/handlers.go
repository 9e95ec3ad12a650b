package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/reportline/sheetparser/internal/logging"
	"github.com/reportline/sheetparser/internal/parser"
)

// handleParse runs the pipeline against the requested source URL (?url=)
// or the configured default, and writes the result verbatim.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	sourceURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if sourceURL == "" {
		sourceURL = s.cfg.Sheet.SourceURL
	}

	result, err := s.parser.Parse(r.Context(), sourceURL)
	if err != nil {
		s.respondError(w, r, parser.AsStructured(err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleMethodNotAllowed returns the structured 405 envelope for
// unsupported methods on API routes.
func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.respondError(w, r, parser.NewMethodNotAllowed(r.Method))
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondError logs the failure with request correlation and writes the
// structured error envelope unmodified, preserving code and details.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, serr *parser.StructuredError) {
	logging.FromContext(r.Context()).Error("request failed",
		"path", r.URL.Path,
		"method", r.Method,
		"code", serr.Code,
		"error", serr.Message,
		"details", len(serr.Details),
	)

	writeJSON(w, statusForCode(serr.Code), serr)
}

// statusForCode maps structured error codes to HTTP status codes.
func statusForCode(code parser.ErrorCode) int {
	switch code {
	case parser.CodeInvalidURL, parser.CodeInvalidSheetsURL:
		return http.StatusBadRequest
	case parser.CodeValidationFailed:
		return http.StatusUnprocessableEntity
	case parser.CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case parser.CodeParseFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
