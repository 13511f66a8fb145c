package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"dayflow/internal/domain"
	"dayflow/internal/editor"
)

func (s *Server) registerBlockTools() {
	// ── add_block ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_block",
		mcp.WithDescription("Insert a new block after another block (or append at the end). Returns the new block id — move focus to it."),
		mcp.WithString("type",
			mcp.Description("Block type: paragraph, heading1, heading2, heading3, quote, callout, bulletList, numberList, todoList, toggle, divider, code, image, video, embed, bookmark, table, pageLink, goalLink, taskLink"),
		),
		mcp.WithString("afterId", mcp.Description("Insert after this block id (optional — appends when omitted)")),
		mcp.WithString("text", mcp.Description("Initial plain text for the block (optional)")),
	), s.handleAddBlock)

	// ── set_block_text ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_block_text",
		mcp.WithDescription("Replace the text of a block (content, toggle summary, or code, depending on the block type)"),
		mcp.WithString("blockId", mcp.Description("Block ID"), mcp.Required()),
		mcp.WithString("text", mcp.Description("New plain text"), mcp.Required()),
	), s.handleSetBlockText)

	// ── set_block_fields ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_block_fields",
		mcp.WithDescription("Update scalar fields of a block: url, caption, title, language, icon, category, label, layout"),
		mcp.WithString("blockId", mcp.Description("Block ID"), mcp.Required()),
		mcp.WithString("url", mcp.Description("Media/bookmark url")),
		mcp.WithString("caption", mcp.Description("Media caption")),
		mcp.WithString("title", mcp.Description("Bookmark/embed title")),
		mcp.WithString("language", mcp.Description("Code language")),
		mcp.WithString("icon", mcp.Description("Callout icon")),
		mcp.WithString("category", mcp.Description("Callout category: info, warning, success, error, note, tip")),
		mcp.WithString("label", mcp.Description("Reference link display label")),
		mcp.WithString("layout", mcp.Description("Media layout hint")),
	), s.handleSetBlockFields)

	// ── delete_block ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_block",
		mcp.WithDescription("Delete a block. Refuses to delete the page's only block. Returns the id that should take focus."),
		mcp.WithString("blockId", mcp.Description("Block ID to delete"), mcp.Required()),
	), s.handleDeleteBlock)

	// ── duplicate_block ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("duplicate_block",
		mcp.WithDescription("Duplicate a block (deep copy with fresh ids) immediately after the source"),
		mcp.WithString("blockId", mcp.Description("Block ID"), mcp.Required()),
	), s.handleDuplicateBlock)

	// ── move_block ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_block",
		mcp.WithDescription("Swap a block with its neighbor. No-op at the boundaries."),
		mcp.WithString("blockId", mcp.Description("Block ID"), mcp.Required()),
		mcp.WithString("direction", mcp.Description("up or down"), mcp.Required()),
	), s.handleMoveBlock)

	// ── reorder_blocks ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("reorder_blocks",
		mcp.WithDescription("Move the block at fromIndex to toIndex (drag-and-drop completion, stable for all other blocks)"),
		mcp.WithNumber("fromIndex", mcp.Description("Current index"), mcp.Required()),
		mcp.WithNumber("toIndex", mcp.Description("Destination index"), mcp.Required()),
	), s.handleReorderBlocks)

	// ── transform_block ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("transform_block",
		mcp.WithDescription("Convert a block to another type, keeping its id and plain text (styling is dropped; media types keep defaults)"),
		mcp.WithString("blockId", mcp.Description("Block ID"), mcp.Required()),
		mcp.WithString("type", mcp.Description("Destination block type"), mcp.Required()),
	), s.handleTransformBlock)

	// ── list_blocks ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_blocks",
		mcp.WithDescription("List the open page's blocks in order: id, type, plain text"),
	), s.handleListBlocksTool)

	// ── undo / redo ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Undo the last structural edit (bounded to 50 steps)"),
	), s.handleUndo)
	s.mcp.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Redo a previously undone edit"),
	), s.handleRedo)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleAddBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	blockType := domain.BlockType(getString(args, "type"))
	if blockType == "" {
		blockType = domain.BlockTypeParagraph
	}
	if !blockType.Known() {
		return nil, fmt.Errorf("unknown block type: %s", blockType)
	}

	newID := s.session.AddBlockWithText(getString(args, "afterId"), blockType, getString(args, "text"))
	return jsonResult(map[string]string{"blockId": newID})
}

func (s *Server) handleSetBlockText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	blockID := getString(args, "blockId")
	if !s.applyText(blockID, getString(args, "text")) {
		return nil, fmt.Errorf("block %s not found or has no text field", blockID)
	}
	return textResult("Block " + blockID + " updated"), nil
}

// applyText routes plain text into whichever text field the block carries.
func (s *Server) applyText(blockID, text string) bool {
	return s.session.Apply("setBlockText", func(p *domain.Page) bool {
		return editor.SetBlockText(p, blockID, text)
	})
}

func (s *Server) handleSetBlockFields(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	blockID := getString(args, "blockId")

	patch := editor.BlockPatch{}
	if v, ok := args["url"].(string); ok {
		patch.URL = &v
	}
	if v, ok := args["caption"].(string); ok {
		patch.Caption = &v
	}
	if v, ok := args["title"].(string); ok {
		patch.Title = &v
	}
	if v, ok := args["language"].(string); ok {
		patch.Language = &v
	}
	if v, ok := args["icon"].(string); ok {
		patch.Icon = &v
	}
	if v, ok := args["category"].(string); ok {
		c := domain.CalloutCategory(v)
		patch.Category = &c
	}
	if v, ok := args["label"].(string); ok {
		patch.Label = &v
	}
	if v, ok := args["layout"].(string); ok {
		patch.Layout = &v
	}

	if !s.session.UpdateBlock(blockID, patch) {
		return nil, fmt.Errorf("block %s not found", blockID)
	}
	return textResult("Block " + blockID + " updated"), nil
}

func (s *Server) handleDeleteBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	blockID := getString(req.GetArguments(), "blockId")
	focusID, ok := s.session.DeleteBlock(blockID)
	if !ok {
		return textResult("Nothing deleted — unknown block or last block on the page"), nil
	}
	return jsonResult(map[string]string{"deleted": blockID, "focusId": focusID})
}

func (s *Server) handleDuplicateBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	blockID := getString(req.GetArguments(), "blockId")
	dupID, ok := s.session.DuplicateBlock(blockID)
	if !ok {
		return nil, fmt.Errorf("block %s not found", blockID)
	}
	return jsonResult(map[string]string{"blockId": dupID})
}

func (s *Server) handleMoveBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	blockID := getString(args, "blockId")
	direction := getString(args, "direction")
	if !s.session.MoveBlock(blockID, direction) {
		return textResult("Nothing moved — unknown block or already at the boundary"), nil
	}
	return textResult("Block " + blockID + " moved " + direction), nil
}

func (s *Server) handleReorderBlocks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	from := getInt(args, "fromIndex", -1)
	to := getInt(args, "toIndex", -1)
	if !s.session.Reorder(from, to) {
		return textResult("Nothing reordered — indices out of range or equal"), nil
	}
	return textResult(fmt.Sprintf("Block moved from index %d to %d", from, to)), nil
}

func (s *Server) handleTransformBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	blockID := getString(args, "blockId")
	newType := domain.BlockType(getString(args, "type"))
	if !s.session.Transform(blockID, newType) {
		return textResult("Nothing transformed — unknown block, unknown type, or same type"), nil
	}
	return textResult(fmt.Sprintf("Block %s is now a %s", blockID, newType)), nil
}

func (s *Server) handleListBlocksTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	page := s.session.Page()
	type blockMeta struct {
		Index int    `json:"index"`
		ID    string `json:"id"`
		Type  string `json:"type"`
		Text  string `json:"text"`
	}
	metas := make([]blockMeta, len(page.Blocks))
	for i, b := range page.Blocks {
		metas[i] = blockMeta{
			Index: i,
			ID:    b.ID,
			Type:  string(b.Type),
			Text:  editor.ExtractPlainText(b),
		}
	}
	return jsonResult(metas)
}

func (s *Server) handleUndo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	if !s.session.Undo() {
		return textResult("Nothing to undo"), nil
	}
	return textResult("Undone"), nil
}

func (s *Server) handleRedo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	if !s.session.Redo() {
		return textResult("Nothing to redo"), nil
	}
	return textResult("Redone"), nil
}
