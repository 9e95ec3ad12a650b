package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/reportline/sheetparser/internal/config"
	"github.com/reportline/sheetparser/internal/parser"
)

// fakeParser returns a canned result or error and records the URL it saw.
type fakeParser struct {
	result  *parser.ParsedData
	err     error
	lastURL string
}

func (f *fakeParser) Parse(ctx context.Context, sourceURL string) (*parser.ParsedData, error) {
	f.lastURL = sourceURL
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           8080,
			RequestTimeout: 30 * time.Second,
		},
		Sheet: config.SheetConfig{
			SourceURL:  "https://docs.google.com/spreadsheets/d/e/2PACX-default/pub?output=xlsx",
			Generation: "current",
		},
		Rate: config.RateLimitConfig{Enabled: false},
	}
}

func successResult() *parser.ParsedData {
	return &parser.ParsedData{
		Metadata: parser.Metadata{
			Country:      "US",
			CountryName:  "United States",
			TotalReports: 1,
		},
		Complaints: []parser.Complaint{
			{ID: 1, Instructions: []string{"step"}, Steps: []parser.ValueItem{{Name: "iWouldLikeTo", Value: "x"}}},
		},
	}
}

func TestHandleParseSuccess(t *testing.T) {
	fp := &fakeParser{result: successResult()}
	srv := NewServer(fp, testConfig())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/parse?url=https://docs.google.com/spreadsheets/d/x/pub", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}

	var data parser.ParsedData
	if err := json.NewDecoder(rec.Body).Decode(&data); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if data.Metadata.Country != "US" || len(data.Complaints) != 1 {
		t.Errorf("unexpected payload: %+v", data)
	}
}

func TestHandleParseFallsBackToConfiguredURL(t *testing.T) {
	fp := &fakeParser{result: successResult()}
	cfg := testConfig()
	srv := NewServer(fp, cfg)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/parse", nil))

	if fp.lastURL != cfg.Sheet.SourceURL {
		t.Errorf("parser saw %q, want the configured default %q", fp.lastURL, cfg.Sheet.SourceURL)
	}
}

func TestHandleParseErrorStatusMapping(t *testing.T) {
	tests := []struct {
		code       parser.ErrorCode
		wantStatus int
	}{
		{code: parser.CodeInvalidURL, wantStatus: http.StatusBadRequest},
		{code: parser.CodeInvalidSheetsURL, wantStatus: http.StatusBadRequest},
		{code: parser.CodeValidationFailed, wantStatus: http.StatusUnprocessableEntity},
		{code: parser.CodeParseFailed, wantStatus: http.StatusBadGateway},
		{code: parser.CodeInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			fp := &fakeParser{err: &parser.StructuredError{
				Err:       "Test",
				Message:   "boom",
				Code:      tt.code,
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			}}
			srv := NewServer(fp, testConfig())

			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/parse", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			// The envelope passes through verbatim.
			var serr parser.StructuredError
			if err := json.NewDecoder(rec.Body).Decode(&serr); err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if serr.Code != tt.code || serr.Message != "boom" {
				t.Errorf("envelope = %+v, want the original code and message", serr)
			}
		})
	}
}

func TestHandleParseUnexpectedErrorBecomesInternal(t *testing.T) {
	fp := &fakeParser{err: context.DeadlineExceeded}
	srv := NewServer(fp, testConfig())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/parse", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var serr parser.StructuredError
	if err := json.NewDecoder(rec.Body).Decode(&serr); err != nil {
		t.Fatal(err)
	}
	if serr.Code != parser.CodeInternal {
		t.Errorf("Code = %s, want %s", serr.Code, parser.CodeInternal)
	}
}

func TestMethodNotAllowedEnvelope(t *testing.T) {
	srv := NewServer(&fakeParser{result: successResult()}, testConfig())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/parse", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}

	var serr parser.StructuredError
	if err := json.NewDecoder(rec.Body).Decode(&serr); err != nil {
		t.Fatal(err)
	}
	if serr.Code != parser.CodeMethodNotAllowed {
		t.Errorf("Code = %s, want %s", serr.Code, parser.CodeMethodNotAllowed)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := NewServer(&fakeParser{}, testConfig())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestCORSAndSecurityHeaders(t *testing.T) {
	srv := NewServer(&fakeParser{result: successResult()}, testConfig())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	want := map[string]string{
		"Access-Control-Allow-Origin": "*",
		"X-Content-Type-Options":      "nosniff",
		"X-Frame-Options":             "DENY",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := NewServer(&fakeParser{}, testConfig())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/parse", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204 for preflight", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, OPTIONS" {
		t.Errorf("Allow-Methods = %q, want GET, OPTIONS", got)
	}
}

func TestRateLimiter(t *testing.T) {
	cfg := testConfig()
	cfg.Rate = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 2}
	srv := NewServer(&fakeParser{result: successResult()}, cfg)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = "203.0.113.5:1234"
		srv.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.RemoteAddr = "203.0.113.5:1234"
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429 after the window fills", rec.Code)
	}

	// A different client has its own window.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.RemoteAddr = "198.51.100.7:1234"
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for a fresh client", rec.Code)
	}
}
