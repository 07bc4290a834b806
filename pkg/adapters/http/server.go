package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/deduce"
	"github.com/aretw0/deduce/internal/presentation/graph"
	"github.com/aretw0/deduce/internal/presentation/report"
	"github.com/aretw0/deduce/pkg/adapters/memory"
	"github.com/aretw0/deduce/pkg/domain"
	"github.com/aretw0/deduce/pkg/normalize"
	"github.com/aretw0/deduce/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// maxBodyBytes bounds POST /infer payloads.
const maxBodyBytes = 1 << 20

// Engine defines what the HTTP adapter needs from the inference core.
type Engine interface {
	ports.Inferrer
	InferInput(ctx context.Context, line string, goals ...string) (*domain.Report, []normalize.Mapping, error)
	Watch(ctx context.Context) (<-chan string, error)
}

// InferRequest is the body of POST /infer. When Input is set it is
// normalized through the vocabulary and Facts is ignored.
type InferRequest struct {
	Facts []string `json:"facts,omitempty"`
	Input string   `json:"input,omitempty"`
	Goals []string `json:"goals,omitempty"`
	Save  *bool    `json:"save,omitempty"`
}

// InferResponse is the body returned by POST /infer.
type InferResponse struct {
	Report   *domain.Report      `json:"report"`
	Mappings []normalize.Mapping `json:"mappings,omitempty"`
}

// Server serves the inference API.
type Server struct {
	Engine  Engine
	Store   ports.ReportStore
	Metrics http.Handler
	Logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithStore sets where finished reports are kept (default: in memory).
func WithStore(store ports.ReportStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine: engine,
		Store:  memory.NewStore(),
		Logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})

	r.Post("/infer", server.Infer)
	r.Get("/reports", server.ListReports)
	r.Get("/reports/{id}", server.GetReport)
	r.Delete("/reports/{id}", server.DeleteReport)
	r.Get("/rules", server.ListRules)
	r.Get("/graph", server.GetGraph)
	r.Get("/events", server.SubscribeEvents)
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	if server.Metrics != nil {
		r.Handle("/metrics", server.Metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}

// Infer handles the POST /infer request.
func (s *Server) Infer(w http.ResponseWriter, r *http.Request) {
	var raw bytes.Buffer
	if _, err := raw.ReadFrom(http.MaxBytesReader(w, r.Body, maxBodyBytes)); err != nil {
		http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
		return
	}

	var generic any
	if err := json.Unmarshal(raw.Bytes(), &generic); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Infer: Invalid request body", "error", err)
		return
	}
	if err := validateSchema("InferRequest", generic); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		s.Logger.Warn("Infer: Request rejected by schema", "error", err)
		return
	}

	var body InferRequest
	if err := json.Unmarshal(raw.Bytes(), &body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var (
		resp InferResponse
		err  error
	)
	switch {
	case body.Input != "":
		resp.Report, resp.Mappings, err = s.Engine.InferInput(r.Context(), body.Input, body.Goals...)
	case len(domain.NormalizeFacts(body.Facts)) > 0:
		resp.Report, err = s.Engine.Infer(r.Context(), body.Facts, body.Goals...)
	default:
		http.Error(w, "Either 'facts' or 'input' is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Inference error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Infer failed", "error", err)
		return
	}

	if body.Save == nil || *body.Save {
		if err := s.Store.Save(r.Context(), resp.Report); err != nil {
			http.Error(w, fmt.Sprintf("Failed to store report: %v", err), http.StatusInternalServerError)
			s.Logger.Error("Infer: report store failed", "error", err, "report_id", resp.Report.ID)
			return
		}
	}

	s.Logger.Info("Infer completed",
		"report_id", resp.Report.ID,
		"stop_reason", resp.Report.Result.StopReason,
		"derivations", len(resp.Report.Result.Log),
	)
	writeJSON(w, http.StatusOK, resp, s.Logger)
}

// ListReports handles the GET /reports request.
func (s *Server) ListReports(w http.ResponseWriter, r *http.Request) {
	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter limit: %v", err), http.StatusBadRequest)
		return
	}
	if limit != nil && *limit < 1 {
		http.Error(w, "limit must be positive", http.StatusBadRequest)
		return
	}

	ids, err := s.Store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("ListReports failed", "error", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	if limit != nil && len(ids) > *limit {
		ids = ids[:*limit]
	}
	writeJSON(w, http.StatusOK, ids, s.Logger)
}

func reportID(r *http.Request) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, chi.URLParam(r, "id"), &id)
	return id, err
}

// GetReport handles the GET /reports/{id} request.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	id, err := reportID(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter id: %v", err), http.StatusBadRequest)
		return
	}

	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter format: %v", err), http.StatusBadRequest)
		return
	}

	rep, err := s.Store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			http.Error(w, "Report not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("GetReport failed", "error", err, "report_id", id)
		return
	}

	switch {
	case format == nil || *format == "json":
		writeJSON(w, http.StatusOK, rep, s.Logger)
	case *format == "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := report.Text(w, rep); err != nil {
			s.Logger.Error("GetReport text render failed", "error", err)
		}
	case *format == "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(report.Markdown(rep)))
	default:
		http.Error(w, fmt.Sprintf("Unknown format %q", *format), http.StatusBadRequest)
	}
}

// DeleteReport handles the DELETE /reports/{id} request.
func (s *Server) DeleteReport(w http.ResponseWriter, r *http.Request) {
	id, err := reportID(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter id: %v", err), http.StatusBadRequest)
		return
	}
	if err := s.Store.Delete(r.Context(), id); err != nil {
		http.Error(w, fmt.Sprintf("Delete error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("DeleteReport failed", "error", err, "report_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListRules handles the GET /rules request.
func (s *Server) ListRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Engine.Rules(), s.Logger)
}

// GetGraph handles the GET /graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter format: %v", err), http.StatusBadRequest)
		return
	}

	rules := s.Engine.Rules()
	switch {
	case format == nil || *format == "mermaid":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(graph.GenerateMermaid(rules, nil)))
	case *format == "json":
		writeJSON(w, http.StatusOK, rules, s.Logger)
	default:
		http.Error(w, fmt.Sprintf("Unknown format %q", *format), http.StatusBadRequest)
	}
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.Logger)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	resp := map[string]any{
		"app":         "deduce-http",
		"version":     deduce.Version,
		"api_version": apiVersion,
		"rules":       len(s.Engine.Rules()),
	}
	writeJSON(w, http.StatusOK, resp, s.Logger)
}

// SubscribeEvents handles the GET /events request (SSE).
// Each catalog change on a watchable loader is pushed as one event.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	events, err := s.Engine.Watch(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Watch error: %v", err), http.StatusNotImplemented)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE Client Disconnected")
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}
