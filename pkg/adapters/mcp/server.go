package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/deduce"
	"github.com/aretw0/deduce/internal/presentation/graph"
	"github.com/aretw0/deduce/pkg/domain"
	"github.com/aretw0/deduce/pkg/normalize"
	"github.com/aretw0/deduce/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// InferResult is the structured output of the infer tool.
type InferResult struct {
	Report   *domain.Report      `json:"report" jsonschema_description:"The finished run with its derivation log"`
	Mappings []normalize.Mapping `json:"mappings,omitempty" jsonschema_description:"Input tokens rewritten by normalization"`
}

// RulesResult is the structured output of the list_rules tool.
type RulesResult struct {
	Catalog string        `json:"catalog" jsonschema_description:"Name of the rule catalog"`
	Rules   []domain.Rule `json:"rules" jsonschema_description:"Rules in declaration order"`
}

// NormalizeResult is the structured output of the normalize_input tool.
type NormalizeResult struct {
	Facts    []string            `json:"facts" jsonschema_description:"Canonical facts in input order"`
	Mappings []normalize.Mapping `json:"mappings,omitempty" jsonschema_description:"Tokens that were rewritten"`
}

// Engine defines the interface required by the MCP server.
type Engine interface {
	ports.Inferrer
	InferInput(ctx context.Context, line string, goals ...string) (*domain.Report, []normalize.Mapping, error)
	Normalizer() *normalize.Normalizer
	Catalog() *domain.Catalog
}

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	store     ports.ReportStore
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. A nil store disables
// report persistence and the get_report tool.
func NewServer(engine Engine, store ports.ReportStore) *Server {
	s := &Server{
		engine:    engine,
		store:     store,
		mcpServer: server.NewMCPServer("deduce-mcp", deduce.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: infer
	inferTool := mcp.NewTool("infer",
		mcp.WithDescription("Run forward-chaining inference over a comma or semicolon separated list of facts (e.g. symptoms). Returns every derived fact with the rule that produced it."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Facts separated by ',' or ';'. Synonyms and small typos are normalized.")),
		mcp.WithString("goals", mcp.Description("Optional facts separated by ','; inference stops once all of them hold")),
		mcp.WithOutputSchema[InferResult](),
	)
	s.mcpServer.AddTool(inferTool, mcp.NewStructuredToolHandler(s.handleInfer))

	// TOOL: list_rules
	rulesTool := mcp.NewTool("list_rules",
		mcp.WithDescription("List the rule catalog in declaration order."),
		mcp.WithOutputSchema[RulesResult](),
	)
	s.mcpServer.AddTool(rulesTool, mcp.NewStructuredToolHandler(s.handleListRules))

	// TOOL: normalize_input
	normalizeTool := mcp.NewTool("normalize_input",
		mcp.WithDescription("Show how free-text input maps onto the canonical vocabulary without running inference."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Facts separated by ',' or ';'")),
		mcp.WithOutputSchema[NormalizeResult](),
	)
	s.mcpServer.AddTool(normalizeTool, mcp.NewStructuredToolHandler(s.handleNormalize))

	if s.store == nil {
		return
	}

	// TOOL: get_report
	s.mcpServer.AddTool(mcp.NewTool("get_report",
		mcp.WithDescription("Fetch a previously stored inference report."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Report ID returned by infer")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, _ := request.GetArguments()["id"].(string)
		rep, err := s.store.Load(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrReportNotFound) {
				return mcp.NewToolResultError(fmt.Sprintf("report %q not found", id)), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(rep)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleInfer(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (InferResult, error) {
	input, _ := args["input"].(string)
	goalsArg, _ := args["goals"].(string)

	if len(normalize.SplitInput(input)) == 0 {
		return InferResult{}, fmt.Errorf("input must contain at least one fact")
	}

	rep, mappings, err := s.engine.InferInput(ctx, input, normalize.SplitInput(goalsArg)...)
	if err != nil {
		return InferResult{}, fmt.Errorf("inference failed: %w", err)
	}

	if s.store != nil {
		if err := s.store.Save(ctx, rep); err != nil {
			slog.Error("MCP Infer: report store failed", "error", err, "report_id", rep.ID)
		}
	}

	return InferResult{Report: rep, Mappings: mappings}, nil
}

func (s *Server) handleListRules(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RulesResult, error) {
	return RulesResult{
		Catalog: s.engine.Catalog().Name(),
		Rules:   s.engine.Rules(),
	}, nil
}

func (s *Server) handleNormalize(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (NormalizeResult, error) {
	input, _ := args["input"].(string)
	facts, mappings := s.engine.Normalizer().NormalizeInput(input)
	if facts == nil {
		facts = []string{}
	}
	return NormalizeResult{Facts: facts, Mappings: mappings}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: deduce://rules
	s.mcpServer.AddResource(mcp.NewResource("deduce://rules", "Rule Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Rules())
		if err != nil {
			return nil, fmt.Errorf("failed to encode rules: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "deduce://rules",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	// EXPOSE: deduce://graph
	s.mcpServer.AddResource(mcp.NewResource("deduce://graph", "Rule Graph (Mermaid)",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "deduce://graph",
				MIMEType: "text/plain",
				Text:     graph.GenerateMermaid(s.engine.Rules(), nil),
			},
		}, nil
	})
}
