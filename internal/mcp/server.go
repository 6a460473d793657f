// Package mcp provides a Model Context Protocol server for Bollard.
//
// It exposes SoF extraction (raw text and file processing), the
// document archive, stored events, and per-document summaries as MCP
// tools, plus store statistics as an MCP resource. Stdio transport
// only; laytime tooling runs the binary locally.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/portside/bollard/internal/extract"
	"github.com/portside/bollard/internal/ingest"
	"github.com/portside/bollard/internal/store"
)

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	Store   store.Store
	Engine  *extract.Engine
	Version string
}

// dbMu serializes all MCP tool calls that touch the database.
// The mcp-go library dispatches handlers concurrently via goroutines.
// SQLite (even with WAL) supports only one writer at a time, and
// concurrent reads during writes can return stale results.
var dbMu sync.Mutex

// NewServer creates a configured MCP server with all Bollard tools and
// resources.
func NewServer(cfg ServerConfig) *server.MCPServer {
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}

	s := server.NewMCPServer(
		"Bollard",
		ver,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, false),
	)

	engine := cfg.Engine
	if engine == nil {
		engine = extract.NewEngine()
	}
	processor := &ingest.Processor{Store: cfg.Store, Engine: engine}

	registerExtractTool(s, engine)
	registerProcessTool(s, processor)
	registerDocumentsTool(s, cfg.Store)
	registerEventsTool(s, cfg.Store)
	registerSummaryTool(s, cfg.Store)
	registerDeleteTool(s, cfg.Store)

	registerStatsResource(s, cfg.Store)

	return s
}

// --- Tools ---

func registerExtractTool(s *server.MCPServer, engine *extract.Engine) {
	tool := mcp.NewTool("sof_extract",
		mcp.WithDescription("Extract timestamped port events from raw Statement of Facts text. Returns the deduplicated, time-ordered event list plus a summary. Nothing is persisted."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Raw SoF document text"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError("text is required"), nil
		}

		events := engine.ExtractEvents(text)

		result := map[string]interface{}{
			"events":  events,
			"summary": extract.Summarize(events),
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerProcessTool(s *server.MCPServer, p *ingest.Processor) {
	tool := mcp.NewTool("sof_process",
		mcp.WithDescription("Process an SoF document file (PDF, DOCX, DOC, TXT): extract its text, run event extraction, and persist the document and events. Re-uploading identical content is a no-op returning the stored document."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the document file"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		path, err := req.RequireString("path")
		if err != nil || strings.TrimSpace(path) == "" {
			return mcp.NewToolResultError("path is required"), nil
		}

		res, err := p.ProcessFile(ctx, path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("process error: %v", err)), nil
		}

		result := map[string]interface{}{
			"document_id": res.Document.ID,
			"filename":    res.Document.Filename,
			"duplicate":   res.Duplicate,
			"degraded":    res.Degraded,
			"events":      res.Events,
			"summary":     res.Summary,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerDocumentsTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("sof_documents",
		mcp.WithDescription("List processed SoF documents, newest first."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of documents (default: 20, max: 100)"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Pagination offset (default: 0)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		opts := store.ListOpts{Limit: 20}
		if l, err := req.RequireFloat("limit"); err == nil && l > 0 {
			opts.Limit = int(l)
			if opts.Limit > 100 {
				opts.Limit = 100
			}
		}
		if o, err := req.RequireFloat("offset"); err == nil && o > 0 {
			opts.Offset = int(o)
		}

		docs, err := st.ListDocuments(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list error: %v", err)), nil
		}
		if len(docs) == 0 {
			return mcp.NewToolResultText("No documents processed yet."), nil
		}

		data, _ := json.MarshalIndent(docs, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerEventsTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("sof_events",
		mcp.WithDescription("Query stored events, optionally filtered by document, event type, and minimum confidence."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithNumber("document_id",
			mcp.Description("Restrict to one document"),
		),
		mcp.WithString("event_type",
			mcp.Description("Filter by event type (arrival, pilot, berthing, cargo, departure, customs, weather, nor, pratique)"),
		),
		mcp.WithNumber("min_confidence",
			mcp.Description("Minimum confidence (0-1)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of events (default: 100, max: 500)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		opts := store.ListOpts{Limit: 100}
		if id, err := req.RequireFloat("document_id"); err == nil && id > 0 {
			opts.DocumentID = int64(id)
		}
		if et, err := req.RequireString("event_type"); err == nil && et != "" {
			opts.EventType = et
		}
		if mc, err := req.RequireFloat("min_confidence"); err == nil && mc > 0 {
			opts.MinConfidence = mc
		}
		if l, err := req.RequireFloat("limit"); err == nil && l > 0 {
			opts.Limit = int(l)
			if opts.Limit > 500 {
				opts.Limit = 500
			}
		}

		events, err := st.ListEvents(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("events error: %v", err)), nil
		}
		if len(events) == 0 {
			return mcp.NewToolResultText("No matching events."), nil
		}

		data, _ := json.MarshalIndent(events, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerSummaryTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("sof_summary",
		mcp.WithDescription("Summarize the stored events of one document: per-type counts, confidence statistics, and time/location coverage."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithNumber("document_id",
			mcp.Required(),
			mcp.Description("Document to summarize"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		id, err := req.RequireFloat("document_id")
		if err != nil {
			return mcp.NewToolResultError("document_id is required"), nil
		}

		doc, err := st.GetDocument(ctx, int64(id))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("summary error: %v", err)), nil
		}
		if doc == nil {
			return mcp.NewToolResultError(fmt.Sprintf("document %d not found", int64(id))), nil
		}

		events, err := st.ListEvents(ctx, store.ListOpts{DocumentID: doc.ID})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("summary error: %v", err)), nil
		}

		result := map[string]interface{}{
			"document_id": doc.ID,
			"filename":    doc.Filename,
			"degraded":    doc.Degraded,
			"summary":     extract.Summarize(ingest.FromStoreEvents(events)),
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerDeleteTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("sof_delete",
		mcp.WithDescription("Delete a processed document and all of its extracted events."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithNumber("document_id",
			mcp.Required(),
			mcp.Description("Document to delete"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		id, err := req.RequireFloat("document_id")
		if err != nil {
			return mcp.NewToolResultError("document_id is required"), nil
		}

		if err := st.DeleteDocument(ctx, int64(id)); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("delete error: %v", err)), nil
		}

		result := map[string]interface{}{
			"document_id": int64(id),
			"message":     fmt.Sprintf("Deleted document %d and its events", int64(id)),
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

// --- Resources ---

func registerStatsResource(s *server.MCPServer, st store.Store) {
	resource := mcp.NewResource(
		"bollard://stats",
		"Store Statistics",
		mcp.WithResourceDescription("Document and event counts plus database size."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		stats, err := st.Stats(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting stats: %w", err)
		}

		data, _ := json.MarshalIndent(stats, "", "  ")
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
