package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"dayflow/internal/domain"
	"dayflow/internal/editor"
)

func (s *Server) registerItemTools() {
	// ── list items ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_list_item",
		mcp.WithDescription("Insert a new item into a list block, after another item (or append)"),
		mcp.WithString("blockId", mcp.Description("List block ID"), mcp.Required()),
		mcp.WithString("afterItemId", mcp.Description("Insert after this item (optional)")),
		mcp.WithString("text", mcp.Description("Item text (optional)")),
	), s.handleAddListItem)

	s.mcp.AddTool(mcp.NewTool("delete_list_item",
		mcp.WithDescription("Delete a list item. Refuses to delete the last remaining item."),
		mcp.WithString("blockId", mcp.Description("List block ID"), mcp.Required()),
		mcp.WithString("itemId", mcp.Description("Item ID"), mcp.Required()),
	), s.handleDeleteListItem)

	s.mcp.AddTool(mcp.NewTool("set_item_text",
		mcp.WithDescription("Replace a list item's text"),
		mcp.WithString("blockId", mcp.Description("List block ID"), mcp.Required()),
		mcp.WithString("itemId", mcp.Description("Item ID"), mcp.Required()),
		mcp.WithString("text", mcp.Description("New text"), mcp.Required()),
	), s.handleSetItemText)

	s.mcp.AddTool(mcp.NewTool("set_item_checked",
		mcp.WithDescription("Check or uncheck a to-do list item"),
		mcp.WithString("blockId", mcp.Description("To-do list block ID"), mcp.Required()),
		mcp.WithString("itemId", mcp.Description("Item ID"), mcp.Required()),
		mcp.WithBoolean("checked", mcp.Description("Checked state"), mcp.Required()),
	), s.handleSetItemChecked)

	// ── tables ─────────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_table_row",
		mcp.WithDescription("Append an empty row to a table block"),
		mcp.WithString("blockId", mcp.Description("Table block ID"), mcp.Required()),
	), s.handleAddTableRow)

	s.mcp.AddTool(mcp.NewTool("delete_table_row",
		mcp.WithDescription("Delete a table row by index. Refuses to delete the last remaining row."),
		mcp.WithString("blockId", mcp.Description("Table block ID"), mcp.Required()),
		mcp.WithNumber("rowIndex", mcp.Description("Row index"), mcp.Required()),
	), s.handleDeleteTableRow)

	s.mcp.AddTool(mcp.NewTool("add_table_column",
		mcp.WithDescription("Append one empty cell to every row of a table block"),
		mcp.WithString("blockId", mcp.Description("Table block ID"), mcp.Required()),
	), s.handleAddTableColumn)

	s.mcp.AddTool(mcp.NewTool("delete_table_column",
		mcp.WithDescription("Delete a table column by index. Refuses to delete the last remaining column."),
		mcp.WithString("blockId", mcp.Description("Table block ID"), mcp.Required()),
		mcp.WithNumber("colIndex", mcp.Description("Column index"), mcp.Required()),
	), s.handleDeleteTableColumn)

	s.mcp.AddTool(mcp.NewTool("set_table_cell",
		mcp.WithDescription("Replace one table cell's text"),
		mcp.WithString("blockId", mcp.Description("Table block ID"), mcp.Required()),
		mcp.WithNumber("rowIndex", mcp.Description("Row index"), mcp.Required()),
		mcp.WithNumber("colIndex", mcp.Description("Column index"), mcp.Required()),
		mcp.WithString("text", mcp.Description("New cell text"), mcp.Required()),
	), s.handleSetTableCell)

	// ── toggle children ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_toggle_child",
		mcp.WithDescription("Insert a block inside a toggle's children"),
		mcp.WithString("blockId", mcp.Description("Toggle block ID"), mcp.Required()),
		mcp.WithString("type", mcp.Description("Child block type (defaults to paragraph)")),
		mcp.WithString("afterId", mcp.Description("Insert after this child (optional)")),
	), s.handleAddToggleChild)

	s.mcp.AddTool(mcp.NewTool("delete_toggle_child",
		mcp.WithDescription("Remove a block from a toggle's children"),
		mcp.WithString("blockId", mcp.Description("Toggle block ID"), mcp.Required()),
		mcp.WithString("childId", mcp.Description("Child block ID"), mcp.Required()),
	), s.handleDeleteToggleChild)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleAddListItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	blockID := getString(args, "blockId")
	text := getString(args, "text")

	var itemID string
	ok := s.session.Apply("addListItem", func(p *domain.Page) bool {
		id, inserted := editor.InsertItemAfter(p, blockID, getString(args, "afterItemId"))
		if !inserted {
			return false
		}
		itemID = id
		if text != "" {
			editor.UpdateItemContent(p, blockID, id, domain.Text(text))
		}
		return true
	})
	if !ok {
		return nil, fmt.Errorf("block %s is not a list block", blockID)
	}
	return jsonResult(map[string]string{"itemId": itemID})
}

func (s *Server) handleDeleteListItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	ok := s.session.Apply("deleteListItem", func(p *domain.Page) bool {
		return editor.DeleteItem(p, getString(args, "blockId"), getString(args, "itemId"))
	})
	if !ok {
		return textResult("Nothing deleted — unknown item or last item in the list"), nil
	}
	return textResult("Item deleted"), nil
}

func (s *Server) handleSetItemText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	ok := s.session.Apply("setItemText", func(p *domain.Page) bool {
		return editor.UpdateItemContent(p, getString(args, "blockId"), getString(args, "itemId"), domain.Text(getString(args, "text")))
	})
	if !ok {
		return nil, fmt.Errorf("item not found")
	}
	return textResult("Item updated"), nil
}

func (s *Server) handleSetItemChecked(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	ok := s.session.Apply("setItemChecked", func(p *domain.Page) bool {
		return editor.SetItemChecked(p, getString(args, "blockId"), getString(args, "itemId"), getBool(args, "checked"))
	})
	if !ok {
		return nil, fmt.Errorf("item not found or block is not a to-do list")
	}
	return textResult("Item updated"), nil
}

func (s *Server) handleAddTableRow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	ok := s.session.Apply("addTableRow", func(p *domain.Page) bool {
		return editor.AddTableRow(p, getString(args, "blockId"))
	})
	if !ok {
		return nil, fmt.Errorf("block is not a table")
	}
	return textResult("Row added"), nil
}

func (s *Server) handleDeleteTableRow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	ok := s.session.Apply("deleteTableRow", func(p *domain.Page) bool {
		return editor.DeleteTableRow(p, getString(args, "blockId"), getInt(args, "rowIndex", -1))
	})
	if !ok {
		return textResult("Nothing deleted — index out of range or last remaining row"), nil
	}
	return textResult("Row deleted"), nil
}

func (s *Server) handleAddTableColumn(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	ok := s.session.Apply("addTableColumn", func(p *domain.Page) bool {
		return editor.AddTableColumn(p, getString(args, "blockId"))
	})
	if !ok {
		return nil, fmt.Errorf("block is not a table")
	}
	return textResult("Column added"), nil
}

func (s *Server) handleDeleteTableColumn(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	ok := s.session.Apply("deleteTableColumn", func(p *domain.Page) bool {
		return editor.DeleteTableColumn(p, getString(args, "blockId"), getInt(args, "colIndex", -1))
	})
	if !ok {
		return textResult("Nothing deleted — index out of range or last remaining column"), nil
	}
	return textResult("Column deleted"), nil
}

func (s *Server) handleSetTableCell(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	ok := s.session.Apply("setTableCell", func(p *domain.Page) bool {
		return editor.UpdateTableCell(p, getString(args, "blockId"),
			getInt(args, "rowIndex", -1), getInt(args, "colIndex", -1),
			domain.Text(getString(args, "text")))
	})
	if !ok {
		return nil, fmt.Errorf("cell not found")
	}
	return textResult("Cell updated"), nil
}

func (s *Server) handleAddToggleChild(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	childType := domain.BlockType(getString(args, "type"))
	if childType == "" {
		childType = domain.BlockTypeParagraph
	}
	if !childType.Known() {
		return nil, fmt.Errorf("unknown block type: %s", childType)
	}

	var childID string
	ok := s.session.Apply("addToggleChild", func(p *domain.Page) bool {
		id, inserted := editor.AddChildBlock(p, getString(args, "blockId"), getString(args, "afterId"), childType)
		childID = id
		return inserted
	})
	if !ok {
		return nil, fmt.Errorf("block is not a toggle")
	}
	return jsonResult(map[string]string{"blockId": childID})
}

func (s *Server) handleDeleteToggleChild(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpenPage(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	ok := s.session.Apply("deleteToggleChild", func(p *domain.Page) bool {
		return editor.DeleteChildBlock(p, getString(args, "blockId"), getString(args, "childId"))
	})
	if !ok {
		return nil, fmt.Errorf("child not found")
	}
	return textResult("Child removed"), nil
}
