package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/inkling"
	"github.com/aretw0/inkling/internal/validator"
	"github.com/aretw0/inkling/pkg/path"
	"github.com/aretw0/inkling/pkg/ports"
	"github.com/aretw0/inkling/pkg/value"
)

const storyURIPrefix = "inkling://stories/"

// ObjectView describes the object a lookup reached.
type ObjectView struct {
	Path  string `json:"path" jsonschema_description:"Absolute path of the object"`
	Kind  string `json:"kind" jsonschema_description:"'container' or the value type name"`
	Value string `json:"value,omitempty" jsonschema_description:"Rendered value for leaves"`
}

// ResolveResponse is returned by the resolve_path and landing_point tools.
type ResolveResponse struct {
	Path        string      `json:"path" jsonschema_description:"The path that was looked up"`
	Approximate bool        `json:"approximate" jsonschema_description:"True when the path could not be followed to the end"`
	Object      *ObjectView `json:"object,omitempty" jsonschema_description:"The object reached"`
}

// CastResponse is returned by the cast_value tool.
type CastResponse struct {
	Type   string `json:"type" jsonschema_description:"Resulting value type"`
	Value  string `json:"value" jsonschema_description:"Rendered result"`
	Truthy bool   `json:"truthy" jsonschema_description:"Truthiness of the result"`
}

// ValidateResponse is returned by the validate_story tool.
type ValidateResponse struct {
	Valid  bool              `json:"valid"`
	Issues []validator.Issue `json:"issues"`
}

// Server exposes stories from a loader as MCP tools and resources.
type Server struct {
	loader    ports.StoryLoader
	opts      []inkling.Option
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. opts are applied to every
// story the tools load.
func NewServer(loader ports.StoryLoader, logger *slog.Logger, opts ...inkling.Option) *Server {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	s := &Server{
		loader:    loader,
		opts:      append([]inkling.Option{inkling.WithLogger(logger)}, opts...),
		logger:    logger,
		mcpServer: server.NewMCPServer("inkling-mcp", strings.TrimSpace(inkling.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

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
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
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
	// TOOL: list_stories
	s.mcpServer.AddTool(mcp.NewTool("list_stories",
		mcp.WithDescription("List the IDs of the available stories."),
	), s.handleListStories)

	// TOOL: resolve_path
	resolveTool := mcp.NewTool("resolve_path",
		mcp.WithDescription("Resolve a dotted content path (e.g. 'knot.stitch.0') in a story."),
		mcp.WithString("story", mcp.Required(), mcp.Description("Story ID")),
		mcp.WithString("path", mcp.Required(), mcp.Description("Content path")),
		mcp.WithOutputSchema[ResolveResponse](),
	)
	s.mcpServer.AddTool(resolveTool, mcp.NewStructuredToolHandler(s.handleResolve))

	// TOOL: landing_point
	leafTool := mcp.NewTool("landing_point",
		mcp.WithDescription("Resolve a path and descend to the first leaf, where a divert to it would land."),
		mcp.WithString("story", mcp.Required(), mcp.Description("Story ID")),
		mcp.WithString("path", mcp.Required(), mcp.Description("Content path")),
		mcp.WithOutputSchema[ResolveResponse](),
	)
	s.mcpServer.AddTool(leafTool, mcp.NewStructuredToolHandler(s.handleLandingPoint))

	// TOOL: get_hierarchy
	s.mcpServer.AddTool(mcp.NewTool("get_hierarchy",
		mcp.WithDescription("Render the story's content tree as indented text."),
		mcp.WithString("story", mcp.Required(), mcp.Description("Story ID")),
		mcp.WithString("point", mcp.Description("Optional path of an object to mark")),
	), s.handleHierarchy)

	// TOOL: cast_value
	castTool := mcp.NewTool("cast_value",
		mcp.WithDescription("Cast a literal between value types (bool, int, float, string, list, divert, pointer)."),
		mcp.WithString("value", mcp.Required(), mcp.Description("Literal to cast")),
		mcp.WithString("from", mcp.Required(), mcp.Description("Type of the literal")),
		mcp.WithString("to", mcp.Required(), mcp.Description("Target type")),
		mcp.WithOutputSchema[CastResponse](),
	)
	s.mcpServer.AddTool(castTool, mcp.NewStructuredToolHandler(s.handleCast))

	// TOOL: validate_story
	validateTool := mcp.NewTool("validate_story",
		mcp.WithDescription("Check a story for dead diverts and structural problems."),
		mcp.WithString("story", mcp.Required(), mcp.Description("Story ID")),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))
}

func (s *Server) handleListStories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := s.loader.ListStories(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(ids)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleResolve(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ResolveResponse, error) {
	story, p, err := s.storyAndPath(ctx, args)
	if err != nil {
		return ResolveResponse{}, err
	}
	res := story.ContentAtPath(ctx, p)
	return ResolveResponse{
		Path:        p.String(),
		Approximate: res.Approximate,
		Object:      describe(res.Obj),
	}, nil
}

func (s *Server) handleLandingPoint(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ResolveResponse, error) {
	story, p, err := s.storyAndPath(ctx, args)
	if err != nil {
		return ResolveResponse{}, err
	}
	obj, exact := story.LandingPoint(ctx, p)
	return ResolveResponse{
		Path:        p.String(),
		Approximate: !exact,
		Object:      describe(obj),
	}, nil
}

func (s *Server) handleHierarchy(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	id, _ := args["story"].(string)
	story, err := s.load(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	raw, _ := args["point"].(string)
	if raw == "" {
		return mcp.NewToolResultText(story.Hierarchy(nil)), nil
	}
	p, err := path.Parse(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(story.Hierarchy(story.ContentAtPath(ctx, p).Obj)), nil
}

func (s *Server) handleCast(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CastResponse, error) {
	raw, _ := args["value"].(string)
	fromName, _ := args["from"].(string)
	toName, _ := args["to"].(string)

	from, err := value.ParseType(fromName)
	if err != nil {
		return CastResponse{}, fmt.Errorf("from: %w", err)
	}
	to, err := value.ParseType(toName)
	if err != nil {
		return CastResponse{}, fmt.Errorf("to: %w", err)
	}

	v, err := value.Parse(raw, from)
	if err != nil {
		return CastResponse{}, err
	}
	out, err := v.Cast(to)
	if err != nil {
		return CastResponse{}, err
	}
	return CastResponse{Type: out.Type().String(), Value: out.String(), Truthy: out.IsTruthy()}, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResponse, error) {
	id, _ := args["story"].(string)
	story, err := s.load(ctx, id)
	if err != nil {
		return ValidateResponse{}, err
	}
	issues := validator.Check(story.Root())
	if issues == nil {
		issues = []validator.Issue{}
	}
	return ValidateResponse{Valid: len(issues) == 0, Issues: issues}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: inkling://stories/{id}
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(storyURIPrefix+"{id}", "Story document",
		mcp.WithTemplateMIMEType("application/yaml"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := strings.TrimPrefix(request.Params.URI, storyURIPrefix)
		data, err := s.loader.LoadStory(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load story: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/yaml",
				Text:     string(data),
			},
		}, nil
	})
}

func (s *Server) load(ctx context.Context, id string) (*inkling.Story, error) {
	if id == "" {
		return nil, fmt.Errorf("story is required")
	}
	return inkling.Load(ctx, s.loader, id, s.opts...)
}

func (s *Server) storyAndPath(ctx context.Context, args map[string]interface{}) (*inkling.Story, path.Path, error) {
	id, _ := args["story"].(string)
	raw, _ := args["path"].(string)

	p, err := path.Parse(raw)
	if err != nil {
		return nil, path.Path{}, err
	}
	story, err := s.load(ctx, id)
	if err != nil {
		return nil, path.Path{}, err
	}
	return story, p, nil
}
