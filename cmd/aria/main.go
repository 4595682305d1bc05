// Command aria answers a manufacturing diagnostic question from the
// command line: it runs the full workflow against the configured
// generation endpoint and prints the structured diagnosis.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/ariadx/aria/internal/cache"
	"github.com/ariadx/aria/internal/domain"
	"github.com/ariadx/aria/internal/engine"
	"github.com/ariadx/aria/internal/escalation"
	"github.com/ariadx/aria/internal/fixtures"
	"github.com/ariadx/aria/internal/gen"
	"github.com/ariadx/aria/internal/pipeline"
	"github.com/ariadx/aria/internal/records"
	"github.com/ariadx/aria/internal/retrieval"
	"github.com/ariadx/aria/pkg/events"
)

type options struct {
	query       string
	baseURL     string
	model       string
	apiKeyEnv   string
	cacheKind   string
	cachePath   string
	redisAddr   string
	corpusPath  string
	recordsPath string
	jsonOutput  bool
	verbose     bool
}

func main() {
	var opts options
	flag.StringVar(&opts.query, "query", "", "diagnostic question to answer (required)")
	flag.StringVar(&opts.baseURL, "base-url", "https://api.groq.com/openai/v1", "OpenAI-compatible API root")
	flag.StringVar(&opts.model, "model", "llama-3.3-70b-versatile", "chat model to request")
	flag.StringVar(&opts.apiKeyEnv, "api-key-env", "ARIA_API_KEY", "environment variable holding the API key")
	flag.StringVar(&opts.cacheKind, "cache", "sqlite", "result cache backend: memory, sqlite, or redis")
	flag.StringVar(&opts.cachePath, "cache-path", "aria-cache.db", "sqlite cache file path")
	flag.StringVar(&opts.redisAddr, "redis-addr", "localhost:6379", "redis address for the redis cache backend")
	flag.StringVar(&opts.corpusPath, "corpus", "", "corpus file, documents separated by blank lines (built-in sample when empty)")
	flag.StringVar(&opts.recordsPath, "records", "", "machine records CSV (built-in sample when empty)")
	flag.BoolVar(&opts.jsonOutput, "json", false, "print the full terminal state as JSON")
	flag.BoolVar(&opts.verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(opts, logger); err != nil {
		fmt.Fprintln(os.Stderr, "aria:", err)
		os.Exit(1)
	}
}

func run(opts options, logger *slog.Logger) error {
	if strings.TrimSpace(opts.query) == "" {
		return fmt.Errorf("a -query is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := gen.DefaultConfig()
	cfg.BaseURL = opts.baseURL
	cfg.Model = opts.model
	cfg.APIKeyEnv = opts.apiKeyEnv
	client, err := gen.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("generation client: %w", err)
	}

	docs := fixtures.SampleDocuments()
	if opts.corpusPath != "" {
		if docs, err = fixtures.LoadDocuments(opts.corpusPath); err != nil {
			return err
		}
	}

	store := records.NewStore(fixtures.SampleMachines())
	if opts.recordsPath != "" {
		if store, err = records.LoadCSV(opts.recordsPath); err != nil {
			return err
		}
	}

	backend, err := openCacheStore(opts)
	if err != nil {
		return err
	}

	eng, err := pipeline.BuildEngine(pipeline.Deps{
		Client:     client,
		Corpus:     retrieval.NewCorpus(docs),
		Records:    store,
		Escalation: escalation.DefaultConfig(),
		Policy:     engine.DefaultPolicy(),
		Sink:       events.NewSlogSink(logger),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	p, err := pipeline.New(eng, cache.New(backend, logger), logger)
	if err != nil {
		return err
	}
	defer p.Close()

	state, err := p.Run(ctx, opts.query)
	if err != nil {
		return err
	}
	return printState(os.Stdout, state, opts.jsonOutput)
}

func openCacheStore(opts options) (cache.Store, error) {
	switch opts.cacheKind {
	case "memory":
		return cache.NewMemoryStore(), nil
	case "sqlite":
		return cache.OpenSQLite(opts.cachePath)
	case "redis":
		return cache.NewRedisStore(redis.NewClient(&redis.Options{Addr: opts.redisAddr})), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.cacheKind)
	}
}

func printState(w *os.File, state domain.WorkflowState, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	}

	fmt.Fprintf(w, "Intent:           %s (%.2f)\n", state.Intent, state.IntentConfidence)
	fmt.Fprintf(w, "Root cause:       %s\n", state.FinalAnswer.RootCause)
	fmt.Fprintf(w, "Confidence:       %.2f\n", state.FinalAnswer.Confidence)
	fmt.Fprintf(w, "Immediate action: %s\n", state.FinalAnswer.ImmediateAction)
	fmt.Fprintf(w, "Source:           %s\n", state.FinalAnswer.SourceReference)
	fmt.Fprintf(w, "Summary:          %s\n", state.FinalAnswer.Summary)
	fmt.Fprintf(w, "Priority:         %s\n", state.Escalation.Priority)
	fmt.Fprintf(w, "Action:           %s\n", state.Escalation.Action)
	if len(state.Escalation.Reasons) > 0 {
		fmt.Fprintf(w, "Escalation:       %s\n", strings.Join(state.Escalation.Reasons, "; "))
	}
	if state.Error != "" {
		fmt.Fprintf(w, "Degraded:         %s\n", state.Error)
	}
	return nil
}
