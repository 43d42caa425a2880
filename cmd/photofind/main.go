// Package main is the Photofind CLI entry point.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/photofind/internal/adapter"
	"github.com/hyperjump/photofind/internal/cli"
	"github.com/hyperjump/photofind/internal/config"
	"github.com/hyperjump/photofind/internal/conversation"
	"github.com/hyperjump/photofind/internal/library"
	"github.com/hyperjump/photofind/internal/models"
	"github.com/hyperjump/photofind/internal/parser"
	"github.com/hyperjump/photofind/internal/search"
	"github.com/hyperjump/photofind/internal/server"
	"github.com/hyperjump/photofind/internal/watcher"
	"github.com/hyperjump/photofind/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/photofind/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "index":
		runIndex()
	case "search":
		runSearch()
	case "ask":
		runAsk()
	case "agent":
		runAgent()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("photofind version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// components bundles the full engine stack built from one config.
type components struct {
	Provider library.Provider
	Engine   *search.Engine
	Parser   *parser.Parser
	Conv     *conversation.Manager
	Pipeline *adapter.Pipeline
	Agent    *adapter.Adapter

	sqlite *library.SQLiteLibrary
}

func (c *components) Close() {
	if c.sqlite != nil {
		_ = c.sqlite.Close()
	}
}

// initializeComponents wires provider, engine, parser, conversation manager,
// pipeline, and agent adapter. The SQLite library wins when a database path
// is configured; otherwise the JSON catalogs feed the engine directly.
func initializeComponents(cfg *config.Config, logger *zap.Logger) (*components, error) {
	c := &components{}
	if cfg.Library.DatabasePath != "" {
		lib, err := library.NewSQLiteLibrary(cfg.Library.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("open photo library: %w", err)
		}
		c.sqlite = lib
		c.Provider = lib
	} else {
		c.Provider = library.NewCatalogProvider(cfg.Library.CatalogPaths...)
	}

	c.Engine = search.NewEngine(c.Provider, &cfg.Search, logger)
	c.Parser = parser.NewParser(parser.WithLogger(logger))
	c.Conv = conversation.NewManager(c.Parser, cfg.Conversation.OverlapThreshold, logger)
	c.Pipeline = adapter.NewPipeline(c.Parser, c.Conv, c.Engine, logger)
	c.Agent = adapter.NewAdapter(c.Pipeline, nil, logger)
	return c, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	c, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer c.Close()

	if err := c.Engine.Reindex(context.Background()); err != nil {
		logger.Warn("initial index failed; serving unindexed", zap.Error(err))
	}

	watchDirs := cfg.Watch.Directories
	if len(watchDirs) == 0 {
		watchDirs = catalogDirs(cfg.Library.CatalogPaths)
	}
	var watchSvc *watcher.Watcher
	if len(watchDirs) > 0 {
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc = watcher.NewWatcher(watchDirs, cfg.Watch.Extensions, func() {
			if err := c.Engine.Reindex(context.Background()); err != nil {
				logger.Warn("catalog reindex failed", zap.Error(err))
			}
		}, watchOpts...)
		watchCtx, watchCancel := context.WithCancel(context.Background())
		defer watchCancel()
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
	}

	srv := server.NewServer(c.Engine, c.Parser, c.Pipeline, c.Agent, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// catalogDirs returns the unique parent directories of the catalog files.
func catalogDirs(paths []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, p := range paths {
		dir := filepath.Dir(p)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func runIndex() {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = ingest into the configured library directly)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: photofind index [flags] <catalog.json> [catalog.json...]")
		os.Exit(1)
	}

	records, err := loadCatalogs(fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalogs: %v\n", err)
		os.Exit(1)
	}

	if *serverURL != "" {
		body, _ := json.Marshal(map[string]any{"photos": records})
		resp, err := http.Post(*serverURL+"/api/v1/index", "application/json", bytes.NewReader(body))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Index request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			b, _ := io.ReadAll(resp.Body)
			fmt.Fprintf(os.Stderr, "Server returned %d: %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		fmt.Printf("Indexed %d photos via %s\n", len(records), *serverURL)
		return
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Library.DatabasePath == "" {
		fmt.Fprintln(os.Stderr, "No database_path configured; set one or use -server")
		os.Exit(1)
	}
	lib, err := library.NewSQLiteLibrary(cfg.Library.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open library: %v\n", err)
		os.Exit(1)
	}
	defer lib.Close()
	ctx := context.Background()
	for _, record := range records {
		if err := lib.PutPhoto(ctx, record); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to store %s: %v\n", record.ID, err)
			os.Exit(1)
		}
	}
	count, _ := lib.CountPhotos(ctx)
	fmt.Printf("Stored %d photos (library now holds %d)\n", len(records), count)
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = search the configured library directly)")
	limit := fs.Int("limit", 0, "number of results per page")
	offset := fs.Int("offset", 0, "result offset")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: photofind search [flags] <query text>")
		os.Exit(1)
	}
	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	format := parseFormat(*outputFormat)

	if *serverURL != "" {
		resp, err := queryViaHTTP(*serverURL, text, "", *limit, *offset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		renderQueryResponse(resp, format)
		return
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	c, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Engine.Reindex(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Indexing failed: %v\n", err)
		os.Exit(1)
	}
	out := c.Agent.ProcessAgentCommand(ctx, adapter.Command{
		Action: adapter.CmdSearchPhotos,
		Parameters: map[string]any{
			"query": text, "limit": *limit, "offset": *offset,
		},
	})
	renderOutcome(out, format)
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	c, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Engine.Reindex(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Indexing failed: %v\n", err)
		os.Exit(1)
	}
	format := parseFormat(*outputFormat)

	fmt.Println("Ask about your photos. Empty line or Ctrl-D exits; \"reset\" starts over.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			break
		}
		if text == "reset" {
			c.Conv.Reset(conversation.DefaultConversation)
			fmt.Println("Context cleared.")
			continue
		}
		res, err := c.Pipeline.Run(ctx, conversation.DefaultConversation, text, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Query failed: %v\n", err)
			continue
		}
		switch res.Final {
		case adapter.StateParseFailed:
			_ = cli.WriteSuggestions(os.Stdout, res.Suggestions, format)
		case adapter.StateValidationFailed:
			for _, e := range res.Validation.Errors {
				fmt.Printf("Invalid query: %s\n", e)
			}
		default:
			_ = cli.WriteResults(os.Stdout, adapter.FormatInteractive(res.Result), format)
		}
	}
}

func runAgent() {
	fs := flag.NewFlagSet("agent", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	outputFormat := fs.String("output", "json", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var raw []byte
	var err error
	if fs.NArg() > 0 {
		raw = []byte(strings.Join(fs.Args(), " "))
	} else {
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read command: %v\n", err)
			os.Exit(1)
		}
	}
	var cmd adapter.Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid command JSON: %v\n", err)
		os.Exit(1)
	}

	resp, err := http.Post(*serverURL+"/api/v1/agent/command", "application/json", bytes.NewReader(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Command request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	var outcome adapter.Outcome
	if err := json.NewDecoder(resp.Body).Decode(&outcome); err != nil {
		fmt.Fprintf(os.Stderr, "Decode response: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteOutcome(os.Stdout, outcome, parseFormat(*outputFormat)); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
	if !outcome.Success {
		os.Exit(1)
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	_ = fs.Parse(os.Args[2:])

	resp, err := http.Get(*serverURL + "/status")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Status request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	var status map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		fmt.Fprintf(os.Stderr, "Decode response: %v\n", err)
		os.Exit(1)
	}
	for k, v := range status {
		fmt.Printf("%s: %v\n", k, v)
	}
}

// queryViaHTTP posts one conversational utterance to the server.
func queryViaHTTP(serverURL, text, conversationID string, limit, offset int) (map[string]json.RawMessage, error) {
	body, err := json.Marshal(map[string]any{
		"text":            text,
		"conversation_id": conversationID,
		"limit":           limit,
		"offset":          offset,
	})
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/query", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var decoded map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return decoded, nil
}

func renderQueryResponse(resp map[string]json.RawMessage, format cli.OutputFormat) {
	if raw, ok := resp["result"]; ok {
		var result adapter.InteractiveResult
		if err := json.Unmarshal(raw, &result); err == nil {
			_ = cli.WriteResults(os.Stdout, &result, format)
			return
		}
	}
	if raw, ok := resp["suggestions"]; ok {
		var suggestions []struct {
			Suggestion string `json:"suggestion"`
			Example    string `json:"example"`
		}
		if err := json.Unmarshal(raw, &suggestions); err == nil && len(suggestions) > 0 {
			fmt.Println("No results. Try refining your query:")
			for _, s := range suggestions {
				fmt.Printf("  • %s (e.g. %q)\n", s.Suggestion, s.Example)
			}
			return
		}
	}
	fmt.Println("No results.")
}

func renderOutcome(out adapter.Outcome, format cli.OutputFormat) {
	if !out.Success {
		_ = cli.WriteOutcome(os.Stderr, out, format)
		os.Exit(1)
	}
	if result, ok := out.Data.(*models.SearchResult); ok {
		_ = cli.WriteResults(os.Stdout, adapter.FormatInteractive(result), format)
		return
	}
	_ = cli.WriteOutcome(os.Stdout, out, format)
}

func loadCatalogs(paths []string) ([]*models.PhotoRecord, error) {
	var records []*models.PhotoRecord
	for _, path := range paths {
		batch, err := library.LoadCatalog(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		records = append(records, batch...)
	}
	return records, nil
}

func parseFormat(s string) cli.OutputFormat {
	switch s {
	case "json":
		return cli.OutputJSON
	default:
		return cli.OutputText
	}
}

func printUsage() {
	fmt.Println(`Photofind - semantic photo discovery

Usage:
  photofind server [-config path] [-debug]        Start the HTTP API server
  photofind index [-server url] <catalog.json>    Ingest photo catalogs
  photofind search [-server url] <query text>     Run one natural-language search
  photofind ask [-config path]                    Interactive conversational search
  photofind agent [-server url] [command JSON]    Post an agent command (JSON from args or stdin)
  photofind status [-server url]                  Show engine status
  photofind version                               Show version
  photofind help                                  Show this help`)
}
