package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPageTools() {
	// ── list_pages ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_pages",
		mcp.WithDescription("List all pages (id, title, tags, timestamps)"),
	), s.handleListPages)

	// ── create_page ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_page",
		mcp.WithDescription("Create a new page with one empty paragraph block and open it for editing"),
		mcp.WithString("title", mcp.Description("Page title (optional, defaults to Untitled)")),
	), s.handleCreatePage)

	// ── open_page ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("open_page",
		mcp.WithDescription("Open a page for editing. Discards undo history and any pending autosave of the previously open page."),
		mcp.WithString("pageId", mcp.Description("Page ID"), mcp.Required()),
	), s.handleOpenPage)

	// ── get_page ───────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_page",
		mcp.WithDescription("Return the full document of the currently open page"),
	), s.handleGetPage)

	// ── rename_page ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("rename_page",
		mcp.WithDescription("Rename the currently open page"),
		mcp.WithString("title", mcp.Description("New title"), mcp.Required()),
	), s.handleRenamePage)

	// ── save_page ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("save_page",
		mcp.WithDescription("Save the open page immediately, cancelling any pending autosave timer"),
	), s.handleSavePage)

	// ── delete_page (destructive) ──────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_page",
		mcp.WithDescription("🛑 DESTRUCTIVE: Delete a page and its backups."),
		mcp.WithString("pageId", mcp.Description("Page ID to delete"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeletePage)

	// ── page_stats ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("page_stats",
		mcp.WithDescription("Word, character and block counts for the open page"),
	), s.handlePageStats)

	// ── backup_now ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("backup_now",
		mcp.WithDescription("Snapshot every page into the backup store immediately"),
	), s.handleBackupNow)
}

func boolPtr(v bool) *bool { return &v }

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleListPages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pages, err := s.pages.ListPages(s.userID())
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	type pageMeta struct {
		ID        string   `json:"id"`
		Title     string   `json:"title"`
		Tags      []string `json:"tags"`
		Blocks    int      `json:"blocks"`
		UpdatedAt string   `json:"updatedAt"`
	}
	metas := make([]pageMeta, len(pages))
	for i, p := range pages {
		metas[i] = pageMeta{
			ID:        p.ID,
			Title:     p.Title,
			Tags:      p.Tags,
			Blocks:    len(p.Blocks),
			UpdatedAt: p.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return jsonResult(metas)
}

func (s *Server) handleCreatePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := getString(req.GetArguments(), "title")
	page, err := s.pages.CreatePage(s.userID(), title)
	if err != nil {
		return nil, err
	}
	if err := s.session.Load(page.ID); err != nil {
		return nil, err
	}
	return jsonResult(page)
}

func (s *Server) handleOpenPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageID := getString(req.GetArguments(), "pageId")
	if pageID == "" {
		return nil, fmt.Errorf("pageId is required")
	}
	if err := s.session.Load(pageID); err != nil {
		return nil, err
	}
	page := s.session.Page()
	return textResult(fmt.Sprintf("Opened page %q (%d blocks)", page.Title, len(page.Blocks))), nil
}

func (s *Server) handleGetPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	return jsonResult(s.session.Page())
}

func (s *Server) handleRenamePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	title := getString(req.GetArguments(), "title")
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	s.session.SetTitle(title)
	return textResult("Page renamed to " + title), nil
}

func (s *Server) handleSavePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	if err := s.session.Save(); err != nil {
		return nil, fmt.Errorf("save page: %w", err)
	}
	return textResult("Page saved"), nil
}

func (s *Server) handleDeletePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageID := getString(req.GetArguments(), "pageId")
	if pageID == "" {
		return nil, fmt.Errorf("pageId is required")
	}
	if pageID == s.session.PageID() {
		return nil, fmt.Errorf("page %s is open — open another page before deleting it", pageID)
	}
	if err := s.pages.DeletePage(pageID); err != nil {
		return nil, fmt.Errorf("delete page: %w", err)
	}
	return textResult("Page " + pageID + " deleted"), nil
}

func (s *Server) handlePageStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	return jsonResult(s.pages.Stats(s.session.Page()))
}

func (s *Server) handleBackupNow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.backups == nil {
		return nil, fmt.Errorf("backups are not configured")
	}
	s.backups.Run()
	return textResult("Backup pass complete"), nil
}
