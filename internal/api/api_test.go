package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	merrors "github.com/inklab/merview/pkg/errors"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()
	return NewServer(nil, nil).Router()
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, r io.Reader) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

func TestHealthz(t *testing.T) {
	h := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body = %q, want ok status", w.Body.String())
	}
}

func TestRenderSVG(t *testing.T) {
	h := testServer(t)
	w := postJSON(t, h, "/v1/render", RenderRequest{Text: "graph TD\nA --> B"})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "<svg") {
		t.Error("body should be an SVG document")
	}
}

func TestRenderJSONFormat(t *testing.T) {
	h := testServer(t)
	w := postJSON(t, h, "/v1/render", RenderRequest{Text: "graph TD\nA --> B", Format: "json"})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	var doc map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if _, ok := doc["diagram"]; !ok {
		t.Error("json artifact should embed the parsed diagram")
	}
}

func TestRenderMissingText(t *testing.T) {
	h := testServer(t)
	w := postJSON(t, h, "/v1/render", RenderRequest{})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	resp := decodeError(t, w.Body)
	if resp.Error.Code != "INVALID_INPUT" {
		t.Errorf("error code = %q, want INVALID_INPUT", resp.Error.Code)
	}
}

func TestRenderMalformedBody(t *testing.T) {
	h := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/render", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestRenderBadFormat(t *testing.T) {
	h := testServer(t)
	w := postJSON(t, h, "/v1/render", RenderRequest{Text: "graph TD\nA --> B", Format: "gif"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	resp := decodeError(t, w.Body)
	if resp.Error.Code != "INVALID_FORMAT" {
		t.Errorf("error code = %q, want INVALID_FORMAT", resp.Error.Code)
	}
}

func TestRenderDOTUnsupportedKind(t *testing.T) {
	h := testServer(t)
	w := postJSON(t, h, "/v1/render", RenderRequest{Text: "pie\n\"a\" : 1", Format: "dot"})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	resp := decodeError(t, w.Body)
	if resp.Error.Code != "UNSUPPORTED_KIND" {
		t.Errorf("error code = %q, want UNSUPPORTED_KIND", resp.Error.Code)
	}
}

func TestRenderBadTheme(t *testing.T) {
	h := testServer(t)
	w := postJSON(t, h, "/v1/render", RenderRequest{Text: "graph TD\nA --> B", Theme: "neon"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestDetect(t *testing.T) {
	h := testServer(t)

	tests := []struct {
		name      string
		text      string
		kind      string
		supported bool
	}{
		{"flowchart", "graph TD\nA --> B", "flowchart", true},
		{"sequence", "sequenceDiagram\nA->>B: x", "sequence", true},
		{"stub", "gantt\ntitle plan", "gantt", false},
		{"unknown", "whatever", "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h, "/v1/detect", RenderRequest{Text: tt.text})
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			var resp DetectResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Kind != tt.kind || resp.Supported != tt.supported {
				t.Errorf("detect = %+v, want {%s %v}", resp, tt.kind, tt.supported)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code merrors.Code
		want int
	}{
		{merrors.ErrCodeInvalidInput, http.StatusBadRequest},
		{merrors.ErrCodeInvalidFormat, http.StatusBadRequest},
		{merrors.ErrCodeInvalidTheme, http.StatusBadRequest},
		{merrors.ErrCodeInvalidSize, http.StatusBadRequest},
		{merrors.ErrCodeUnsupportedKind, http.StatusUnprocessableEntity},
		{merrors.ErrCodeFileNotFound, http.StatusNotFound},
		{merrors.ErrCodeRenderFailed, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusFor(tt.code); got != tt.want {
			t.Errorf("statusFor(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"svg":  "image/svg+xml",
		"png":  "image/png",
		"pdf":  "application/pdf",
		"dot":  "text/vnd.graphviz",
		"json": "application/json",
	}
	for format, want := range tests {
		if got := contentType(format); got != want {
			t.Errorf("contentType(%q) = %q, want %q", format, got, want)
		}
	}
}
