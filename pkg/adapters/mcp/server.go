package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/cellfill"
	"github.com/aretw0/cellfill/pkg/domain"
	"github.com/aretw0/cellfill/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// TagsURI is the resource listing tag metadata.
const TagsURI = "cellfill://tags"

// CreateResponse aligns with the HTTP adapter's create response.
type CreateResponse struct {
	Outcome   domain.Outcome   `json:"outcome" jsonschema_description:"Tag drawn and rule applied"`
	Snapshot  *domain.Snapshot `json:"snapshot" jsonschema_description:"The session after the create action"`
	LastIndex int              `json:"last_index" jsonschema_description:"Index of the last cell, where a view scrolls to"`
}

// Server wraps a session manager and exposes it as an MCP Server.
type Server struct {
	manager   *session.Manager
	locale    domain.Locale
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(manager *session.Manager, locale domain.Locale, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		manager:   manager,
		locale:    locale,
		logger:    logger,
		mcpServer: server.NewMCPServer("cellfill-mcp", strings.TrimSpace(cellfill.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
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
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
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
	// TOOL: start_session
	s.mcpServer.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Start an empty session, or return the existing one with that ID."),
		mcp.WithString("session_id", mcp.Description("Session ID (optional, generated when omitted)")),
		mcp.WithOutputSchema[domain.Snapshot](),
	), mcp.NewStructuredToolHandler(s.handleStartSession))

	// TOOL: create_cell
	s.mcpServer.AddTool(mcp.NewTool("create_cell",
		mcp.WithDescription("Press the create button once: draw a random cell and apply the pattern rules."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[CreateResponse](),
	), mcp.NewStructuredToolHandler(s.handleCreateCell))

	// TOOL: get_sequence
	s.mcpServer.AddTool(mcp.NewTool("get_sequence",
		mcp.WithDescription("Get the current cells of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[domain.Snapshot](),
	), mcp.NewStructuredToolHandler(s.handleGetSequence))

	// TOOL: list_tags
	s.mcpServer.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List the display metadata of every tag."),
	), s.handleListTags)
}

func (s *Server) handleStartSession(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Snapshot, error) {
	id, _ := args["session_id"].(string)

	var (
		snap *domain.Snapshot
		err  error
	)
	if id != "" {
		snap, err = s.manager.StartWithID(ctx, id)
	} else {
		snap, err = s.manager.Start(ctx)
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("start failed: %w", err)
	}
	return *snap, nil
}

func (s *Server) handleCreateCell(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CreateResponse, error) {
	id, _ := args["session_id"].(string)
	if id == "" {
		return CreateResponse{}, errors.New("session_id is required")
	}

	snap, outcome, err := s.manager.Create(ctx, id)
	if err != nil {
		return CreateResponse{}, fmt.Errorf("create failed: %w", err)
	}
	return CreateResponse{
		Outcome:   outcome,
		Snapshot:  snap,
		LastIndex: snap.Cells.LastIndex(),
	}, nil
}

func (s *Server) handleGetSequence(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Snapshot, error) {
	id, _ := args["session_id"].(string)
	snap, err := s.manager.Load(ctx, id)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("load failed: %w", err)
	}
	return *snap, nil
}

func (s *Server) handleListTags(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(domain.Catalog(s.locale))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(TagsURI, "Tag Catalog",
		mcp.WithMIMEType("application/json"),
	), s.readTags)
}

func (s *Server) readTags(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(domain.Catalog(s.locale))
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      TagsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
