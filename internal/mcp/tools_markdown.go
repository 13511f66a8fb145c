package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"dayflow/internal/editor"
	"dayflow/internal/markdown"
)

func (s *Server) registerMarkdownTools() {
	// ── export_markdown ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("export_markdown",
		mcp.WithDescription("Render the open page as markdown. With toVault=true the file is also written into the vault directory and watched, so external edits flow back into the page."),
		mcp.WithBoolean("toVault", mcp.Description("Write the export into the vault and watch it")),
	), s.handleExportMarkdown)

	// ── import_markdown ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("import_markdown",
		mcp.WithDescription("Replace the open page's blocks with the result of parsing markdown. A leading H1 becomes the page title."),
		mcp.WithString("markdown", mcp.Description("Markdown source"), mcp.Required()),
	), s.handleImportMarkdown)

	// ── stop_vault_sync ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("stop_vault_sync",
		mcp.WithDescription("Stop watching the open page's vault export"),
	), s.handleStopVaultSync)

	// ── upload_image ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("upload_image",
		mcp.WithDescription("Store a base64 data-URL upload and point a media block's url at it"),
		mcp.WithString("blockId", mcp.Description("Image/video block ID"), mcp.Required()),
		mcp.WithString("dataUrl", mcp.Description("data:<mime>;base64,<payload>"), mcp.Required()),
	), s.handleUploadImage)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleExportMarkdown(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	page := s.session.Page()
	rendered := markdown.Export(page)

	if getBool(req.GetArguments(), "toVault") {
		if s.bridge == nil {
			return nil, fmt.Errorf("vault sync is not configured")
		}
		if err := os.MkdirAll(s.exportDir, 0755); err != nil {
			return nil, fmt.Errorf("create vault dir: %w", err)
		}
		path := filepath.Join(s.exportDir, vaultFilename(page.Title, page.ID))
		if err := os.WriteFile(path, []byte(rendered), 0644); err != nil {
			return nil, fmt.Errorf("write export: %w", err)
		}
		if err := s.bridge.WatchFile(page.ID, path); err != nil {
			return nil, fmt.Errorf("watch export: %w", err)
		}
		return textResult("Exported to " + path + " (watching for external edits)"), nil
	}

	return textResult(rendered), nil
}

func (s *Server) handleImportMarkdown(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	source := getString(req.GetArguments(), "markdown")
	if source == "" {
		return nil, fmt.Errorf("markdown is required")
	}

	title, blocks := s.importer.Import([]byte(source))
	if !s.session.ReplaceBlocks(blocks) {
		return nil, fmt.Errorf("import produced no blocks")
	}
	if title != "" {
		s.session.SetTitle(title)
	}
	return textResult(fmt.Sprintf("Imported %d blocks", len(blocks))), nil
}

func (s *Server) handleStopVaultSync(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	if s.bridge == nil {
		return nil, fmt.Errorf("vault sync is not configured")
	}
	s.bridge.StopWatching(s.session.PageID())
	return textResult("Vault sync stopped"), nil
}

func (s *Server) handleUploadImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	blockID := getString(args, "blockId")
	dataURL := getString(args, "dataUrl")

	url, err := s.uploads.UploadDataURL(s.session.PageID(), dataURL)
	if err != nil {
		return nil, err
	}
	if !s.session.UpdateBlock(blockID, editor.BlockPatch{URL: &url}) {
		return nil, fmt.Errorf("file stored at %s but block %s was not found", url, blockID)
	}
	return jsonResult(map[string]string{"blockId": blockID, "url": url})
}

// vaultFilename builds a stable, filesystem-safe name for a page export.
func vaultFilename(title, pageID string) string {
	safe := make([]rune, 0, len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			safe = append(safe, r)
		case r == ' ', r == '-', r == '_':
			safe = append(safe, '-')
		}
	}
	if len(safe) == 0 {
		return pageID + ".md"
	}
	short := pageID
	if len(short) > 8 {
		short = short[:8]
	}
	return string(safe) + "-" + short + ".md"
}
