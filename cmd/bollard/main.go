package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"github.com/portside/bollard/internal/config"
	"github.com/portside/bollard/internal/extract"
	"github.com/portside/bollard/internal/ingest"
	mcpserver "github.com/portside/bollard/internal/mcp"
	"github.com/portside/bollard/internal/nlp"
	"github.com/portside/bollard/internal/store"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	var err error
	switch os.Args[1] {
	case "extract":
		err = runExtract(os.Args[2:])
	case "process":
		err = runProcess(os.Args[2:])
	case "documents":
		err = runDocuments(os.Args[2:])
	case "events":
		err = runEvents(os.Args[2:])
	case "summary":
		err = runSummary(os.Args[2:])
	case "delete":
		err = runDelete(os.Args[2:])
	case "stats":
		err = runStats(os.Args[2:])
	case "config":
		err = runConfig(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("bollard %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags holds the flags shared by every subcommand.
type globalFlags struct {
	configPath string
	dbPath     string
	modelDir   string
	rest       []string
}

// parseGlobal splits --config/--db/--models out of args, leaving the
// subcommand's own arguments in rest.
func parseGlobal(args []string) (globalFlags, error) {
	var g globalFlags
	for i := 0; i < len(args); i++ {
		arg := args[i]
		takeValue := func(name string) (string, error) {
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s requires a value", name)
			}
			i++
			return args[i], nil
		}
		var err error
		switch {
		case arg == "--config":
			g.configPath, err = takeValue(arg)
		case strings.HasPrefix(arg, "--config="):
			g.configPath = strings.TrimPrefix(arg, "--config=")
		case arg == "--db":
			g.dbPath, err = takeValue(arg)
		case strings.HasPrefix(arg, "--db="):
			g.dbPath = strings.TrimPrefix(arg, "--db=")
		case arg == "--models":
			g.modelDir, err = takeValue(arg)
		case strings.HasPrefix(arg, "--models="):
			g.modelDir = strings.TrimPrefix(arg, "--models=")
		default:
			g.rest = append(g.rest, arg)
		}
		if err != nil {
			return g, err
		}
	}
	return g, nil
}

func resolve(g globalFlags) (config.ResolvedConfig, error) {
	return config.ResolveConfig(config.ResolveOptions{
		ConfigPath:  g.configPath,
		CLIDBPath:   g.dbPath,
		CLIModelDir: g.modelDir,
	})
}

func openStore(cfg config.ResolvedConfig) (store.Store, error) {
	return store.NewStore(store.StoreConfig{DBPath: cfg.DBPath.Value})
}

// newEngine builds the extraction engine, attaching the NLP fallback
// when its model assets are present. A missing model is a warning, not
// an error: pattern extraction alone is a complete pipeline.
func newEngine(cfg config.ResolvedConfig) *extract.Engine {
	if cfg.ModelDir.Value == "" {
		return extract.NewEngine()
	}
	eng, err := nlp.NewEngine(nlp.Config{ModelDir: cfg.ModelDir.Value})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: NLP fallback disabled: %v\n", err)
		return extract.NewEngine()
	}
	return extract.NewEngine(extract.WithFallback(eng))
}

func runExtract(args []string) error {
	g, err := parseGlobal(args)
	if err != nil {
		return err
	}
	if len(g.rest) != 1 {
		return fmt.Errorf("usage: bollard extract <file>")
	}

	cfg, err := resolve(g)
	if err != nil {
		return err
	}

	text, err := ingest.ExtractText(context.Background(), g.rest[0])
	if err != nil {
		return fmt.Errorf("extracting text from %s: %w", g.rest[0], err)
	}

	engine := newEngine(cfg)
	events := engine.ExtractEvents(text)

	return printJSON(map[string]interface{}{
		"events":  events,
		"summary": extract.Summarize(events),
	})
}

func runProcess(args []string) error {
	g, err := parseGlobal(args)
	if err != nil {
		return err
	}
	if len(g.rest) == 0 {
		return fmt.Errorf("usage: bollard process <file> [<file>...]")
	}

	cfg, err := resolve(g)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	maxSize, err := cfg.MaxFileSizeBytes()
	if err != nil {
		return err
	}
	p := &ingest.Processor{Store: s, Engine: newEngine(cfg), MaxFileSize: maxSize}
	ctx := context.Background()

	for _, path := range g.rest {
		res, err := p.ProcessFile(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
			continue
		}
		status := "processed"
		if res.Duplicate {
			status = "duplicate (already processed)"
		}
		if res.Degraded {
			status += ", degraded text"
		}
		fmt.Printf("%s: %s — document %d, %d events\n",
			res.Document.Filename, status, res.Document.ID, len(res.Events))
	}
	return nil
}

func runDocuments(args []string) error {
	g, err := parseGlobal(args)
	if err != nil {
		return err
	}
	opts := store.ListOpts{Limit: 20}
	for i := 0; i < len(g.rest); i++ {
		switch g.rest[i] {
		case "--limit":
			if i+1 >= len(g.rest) {
				return fmt.Errorf("--limit requires a value")
			}
			i++
			opts.Limit, err = strconv.Atoi(g.rest[i])
			if err != nil {
				return fmt.Errorf("invalid --limit: %w", err)
			}
		default:
			return fmt.Errorf("unknown flag: %s", g.rest[i])
		}
	}

	cfg, err := resolve(g)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	docs, err := s.ListDocuments(context.Background(), opts)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Println("No documents processed yet.")
		return nil
	}
	return printJSON(docs)
}

func runEvents(args []string) error {
	g, err := parseGlobal(args)
	if err != nil {
		return err
	}
	opts := store.ListOpts{Limit: 100}
	for i := 0; i < len(g.rest); i++ {
		flag := g.rest[i]
		value := func() (string, error) {
			if i+1 >= len(g.rest) {
				return "", fmt.Errorf("%s requires a value", flag)
			}
			i++
			return g.rest[i], nil
		}
		switch flag {
		case "--document":
			v, err := value()
			if err != nil {
				return err
			}
			opts.DocumentID, err = strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid --document: %w", err)
			}
		case "--type":
			opts.EventType, err = value()
			if err != nil {
				return err
			}
		case "--min-confidence":
			v, err := value()
			if err != nil {
				return err
			}
			opts.MinConfidence, err = strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid --min-confidence: %w", err)
			}
		case "--limit":
			v, err := value()
			if err != nil {
				return err
			}
			opts.Limit, err = strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid --limit: %w", err)
			}
		default:
			return fmt.Errorf("unknown flag: %s", flag)
		}
	}

	cfg, err := resolve(g)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	events, err := s.ListEvents(context.Background(), opts)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No matching events.")
		return nil
	}
	return printJSON(events)
}

func runSummary(args []string) error {
	g, err := parseGlobal(args)
	if err != nil {
		return err
	}
	if len(g.rest) != 1 {
		return fmt.Errorf("usage: bollard summary <document-id>")
	}
	id, err := strconv.ParseInt(g.rest[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid document id %q", g.rest[0])
	}

	cfg, err := resolve(g)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	ctx := context.Background()
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("document %d not found", id)
	}
	events, err := s.ListEvents(ctx, store.ListOpts{DocumentID: id})
	if err != nil {
		return err
	}

	return printJSON(map[string]interface{}{
		"document_id": doc.ID,
		"filename":    doc.Filename,
		"degraded":    doc.Degraded,
		"summary":     extract.Summarize(ingest.FromStoreEvents(events)),
	})
}

func runDelete(args []string) error {
	g, err := parseGlobal(args)
	if err != nil {
		return err
	}
	if len(g.rest) != 1 {
		return fmt.Errorf("usage: bollard delete <document-id>")
	}
	id, err := strconv.ParseInt(g.rest[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid document id %q", g.rest[0])
	}

	cfg, err := resolve(g)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	if err := s.DeleteDocument(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("Deleted document %d and its events\n", id)
	return nil
}

func runStats(args []string) error {
	g, err := parseGlobal(args)
	if err != nil {
		return err
	}
	cfg, err := resolve(g)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	stats, err := s.Stats(context.Background())
	if err != nil {
		return err
	}
	return printJSON(stats)
}

func runConfig(args []string) error {
	g, err := parseGlobal(args)
	if err != nil {
		return err
	}
	cfg, err := resolve(g)
	if err != nil {
		return err
	}
	return printJSON(cfg)
}

func runServe(args []string) error {
	g, err := parseGlobal(args)
	if err != nil {
		return err
	}
	cfg, err := resolve(g)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	srv := mcpserver.NewServer(mcpserver.ServerConfig{
		Store:   s,
		Engine:  newEngine(cfg),
		Version: version,
	})
	if err := server.ServeStdio(srv); err != nil && !strings.Contains(err.Error(), "context canceled") {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printUsage() {
	fmt.Printf(`bollard %s — Statement of Facts event extraction for laytime analysis

Usage:
  bollard <command> [arguments]

Commands:
  extract <file>      Extract events from a document without persisting
  process <file>...   Process documents (PDF, DOCX, DOC, TXT) into the archive
  documents           List processed documents, newest first
  events              Query stored events
  summary <id>        Summarize one document's events
  delete <id>         Delete a document and its events
  stats               Show archive statistics
  config              Show the effective configuration and where it came from
  serve               Run the MCP server on stdio
  version             Print version

Events Flags:
  --document <id>        Restrict to one document
  --type <type>          Filter by event type
  --min-confidence <x>   Minimum confidence (0-1)
  --limit <n>            Maximum results

Global Flags:
  --config <path>     Config file (default: ~/.bollard/config.yaml)
  --db <path>         Database path (default: ~/.bollard/bollard.db)
  --models <dir>      NLP model directory (enables the NLP fallback)
  -h, --help          Show this help message
  -v, --version       Print version
`, version)
}
