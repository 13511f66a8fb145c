package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"dayflow/internal/editor"
	"dayflow/internal/markdown"
	"dayflow/internal/service"
	"dayflow/internal/vault"
)

// EventEmitter is the slice of the app event bus the MCP layer needs.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// Server is the MCP server for the Dayflow document engine. It exposes
// tools so AI agents (and the desktop shell) can drive the editor: page
// CRUD, block mutations, type transformation, undo/redo, markdown
// import/export, and uploads.
type Server struct {
	mcp     *server.MCPServer
	emitter EventEmitter
	log     zerolog.Logger

	// Collaborators (injected from main)
	pages    *service.PageService
	session  *editor.Session
	uploads  *service.UploadService
	backups  *service.BackupService
	importer *markdown.Importer
	bridge   *vault.Bridge

	exportDir string
	user      string
}

// Deps holds all dependencies passed from main to the MCP server.
type Deps struct {
	Emitter   EventEmitter
	Pages     *service.PageService
	Session   *editor.Session
	Uploads   *service.UploadService
	Backups   *service.BackupService
	Bridge    *vault.Bridge
	ExportDir string
	UserID    string
	Log       zerolog.Logger
}

// New creates and configures a new MCP server with all tools.
func New(deps Deps) *Server {
	s := &Server{
		emitter:   deps.Emitter,
		pages:     deps.Pages,
		session:   deps.Session,
		uploads:   deps.Uploads,
		backups:   deps.Backups,
		importer:  markdown.NewImporter(),
		bridge:    deps.Bridge,
		exportDir: deps.ExportDir,
		user:      deps.UserID,
		log:       deps.Log,
	}

	s.mcp = server.NewMCPServer(
		"dayflow-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerPageTools()
	s.registerBlockTools()
	s.registerItemTools()
	s.registerMarkdownTools()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.log.Info().Msg("starting stdio server")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

// userID returns the configured workspace owner.
func (s *Server) userID() string { return s.user }

// requireOpenPage fails a tool call when no page is loaded.
func (s *Server) requireOpenPage() error {
	if s.session.PageID() == "" {
		return fmt.Errorf("no page is open — call open_page or create_page first")
	}
	return nil
}

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

func getString(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func getInt(args map[string]any, key string, fallback int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return fallback
}

func getBool(args map[string]any, key string) bool {
	v, _ := args[key].(bool)
	return v
}
