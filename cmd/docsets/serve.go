package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/docsets"
	"github.com/fwojciec/docsets/fs"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// defaultSearchLimit caps search_docs results unless the caller asks for
// more.
const defaultSearchLimit = 20

type docIndex interface {
	Search(query string, limit int) []docsets.IndexItem
	Docsets() []docsets.Docset
}

// Run executes the serve command. The index follows docsets installed or
// removed in the data directory while serving.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if err := ensureCatalog(deps); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsets.ErrorMessage(err))
		return err
	}

	ctx, cancel := context.WithCancel(deps.Ctx)
	defer cancel()

	watcher := fs.NewWatcher(deps.Layout.DocsetsDir(), fs.DefaultMergeDelay, deps.Logger)
	go func() {
		err := watcher.Watch(ctx, func() { deps.Controller.Reconcile() })
		if err != nil {
			deps.Logger.Error("watching docsets failed", "err", err)
		}
	}()

	srv := NewMCPServer(deps.Controller)
	return server.NewStdioServer(srv).Listen(ctx, deps.Stdin, deps.Stdout)
}

// NewMCPServer exposes search over idx as MCP tools.
func NewMCPServer(idx docIndex) *server.MCPServer {
	search := mcp.NewTool("search_docs",
		mcp.WithDescription("Search entries (functions, classes, pages...) of installed offline documentation sets by name"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Text to look for in entry names"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of results (default %d)", defaultSearchLimit)),
		),
	)
	list := mcp.NewTool("list_docsets",
		mcp.WithDescription("List installed offline documentation sets"),
	)

	srv := server.NewMCPServer("docsets", "0.1.0", server.WithToolCapabilities(false))
	srv.AddTool(search, SearchDocsHandler(idx))
	srv.AddTool(list, ListDocsetsHandler(idx))
	return srv
}

// SearchDocsHandler returns the handler of the search_docs tool. Each match
// is one JSON line.
func SearchDocsHandler(idx docIndex) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := request.GetInt("limit", defaultSearchLimit)

		var response strings.Builder
		for _, item := range idx.Search(q, limit) {
			raw, err := json.Marshal(struct {
				Name   string `json:"name"`
				Docset string `json:"docset"`
				URL    string `json:"url"`
			}{
				Name:   item.Text,
				Docset: item.Subtext,
				URL:    item.URL,
			})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			response.Write(raw)
			response.WriteByte('\n')
		}

		if response.Len() == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No entries matching %q.", q)), nil
		}
		return mcp.NewToolResultText(response.String()), nil
	}
}

// ListDocsetsHandler returns the handler of the list_docsets tool.
func ListDocsetsHandler(idx docIndex) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var response strings.Builder
		for _, d := range idx.Docsets() {
			if !d.IsInstalled() {
				continue
			}
			raw, err := json.Marshal(struct {
				Name  string `json:"name"`
				Title string `json:"title"`
			}{
				Name:  d.Name,
				Title: d.Title,
			})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			response.Write(raw)
			response.WriteByte('\n')
		}

		if response.Len() == 0 {
			return mcp.NewToolResultText("No docsets installed."), nil
		}
		return mcp.NewToolResultText(response.String()), nil
	}
}
