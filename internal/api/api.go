// Package api implements the HTTP render service.
//
// The service is a thin shell over [pipeline.Runner]: one endpoint accepts
// diagram source and returns the rendered artifact, with content type
// negotiated by the requested format. All state lives in the request; the
// server itself is stateless and safe for concurrent use.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/inklab/merview/pkg/diagram"
	merrors "github.com/inklab/merview/pkg/errors"
	"github.com/inklab/merview/pkg/observability"
	"github.com/inklab/merview/pkg/pipeline"
)

// maxRequestBytes bounds the request body. Slightly above the pipeline
// source cap to leave room for the JSON envelope.
const maxRequestBytes = pipeline.MaxSourceBytes + 4096

// Server is the HTTP render service.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates a server around a pipeline runner. Nil arguments fall
// back to defaults.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(logger)
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the chi router with middleware and routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/detect", s.handleDetect)
	})

	return r
}

// ListenAndServe runs the service until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("serving", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// observe is the request middleware: it emits API hook events and one
// structured log line per request.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.API()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration)
	})
}

// =============================================================================
// Handlers
// =============================================================================

// RenderRequest is the body of POST /v1/render.
type RenderRequest struct {
	Text   string  `json:"text"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Format string  `json:"format,omitempty"` // svg (default), png, pdf, dot, json
	Theme  string  `json:"theme,omitempty"`
}

// DetectResponse is the body of POST /v1/detect.
type DetectResponse struct {
	Kind      string `json:"kind"`
	Supported bool   `json:"supported"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRender(w, r)
	if !ok {
		return
	}

	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}

	opts := pipeline.Options{
		Width:   req.Width,
		Height:  req.Height,
		Formats: []string{format},
		Theme:   req.Theme,
		Logger:  s.logger,
	}

	result, err := s.runner.Execute(r.Context(), req.Text, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRender(w, r)
	if !ok {
		return
	}

	kind := diagram.Detect(req.Text)
	writeJSON(w, http.StatusOK, DetectResponse{
		Kind:      string(kind),
		Supported: kind.Supported(),
	})
}

func (s *Server) decodeRender(w http.ResponseWriter, r *http.Request) (RenderRequest, bool) {
	var req RenderRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, merrors.Wrap(merrors.ErrCodeInvalidInput, err, "decode request body"))
		return RenderRequest{}, false
	}
	if req.Text == "" {
		s.writeError(w, merrors.New(merrors.ErrCodeInvalidInput, "text is required"))
		return RenderRequest{}, false
	}
	return req, true
}

// =============================================================================
// Responses
// =============================================================================

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := merrors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: merrors.UserMessage(err),
	}})
}

// statusFor maps error codes to HTTP status. Unknown codes are treated as
// internal failures.
func statusFor(code merrors.Code) int {
	switch code {
	case merrors.ErrCodeInvalidInput, merrors.ErrCodeInvalidFormat,
		merrors.ErrCodeInvalidTheme, merrors.ErrCodeInvalidSize:
		return http.StatusBadRequest
	case merrors.ErrCodeUnsupportedKind:
		return http.StatusUnprocessableEntity
	case merrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatPDF:
		return "application/pdf"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/json"
	}
}
