// Command aria-worker hosts the durable diagnosis workflow: it connects
// to a Temporal cluster, registers the workflow plus its step activity,
// and polls the diagnosis task queue until interrupted.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	tlog "go.temporal.io/sdk/log"
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/ariadx/aria/internal/escalation"
	"github.com/ariadx/aria/internal/fixtures"
	"github.com/ariadx/aria/internal/gen"
	"github.com/ariadx/aria/internal/pipeline"
	"github.com/ariadx/aria/internal/records"
	"github.com/ariadx/aria/internal/retrieval"
	"github.com/ariadx/aria/internal/temporalhost"
	"github.com/ariadx/aria/pkg/activity"
	"github.com/ariadx/aria/pkg/events"
)

type options struct {
	temporalAddr string
	namespace    string
	taskQueue    string
	baseURL      string
	model        string
	apiKeyEnv    string
	corpusPath   string
	recordsPath  string
}

func main() {
	var opts options
	flag.StringVar(&opts.temporalAddr, "temporal-addr", client.DefaultHostPort, "Temporal frontend address")
	flag.StringVar(&opts.namespace, "namespace", client.DefaultNamespace, "Temporal namespace")
	flag.StringVar(&opts.taskQueue, "task-queue", temporalhost.TaskQueue, "task queue to poll")
	flag.StringVar(&opts.baseURL, "base-url", "https://api.groq.com/openai/v1", "OpenAI-compatible API root")
	flag.StringVar(&opts.model, "model", "llama-3.3-70b-versatile", "chat model to request")
	flag.StringVar(&opts.apiKeyEnv, "api-key-env", "ARIA_API_KEY", "environment variable holding the API key")
	flag.StringVar(&opts.corpusPath, "corpus", "", "corpus file, documents separated by blank lines (built-in sample when empty)")
	flag.StringVar(&opts.recordsPath, "records", "", "machine records CSV (built-in sample when empty)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if err := run(opts, logger); err != nil {
		fmt.Fprintln(os.Stderr, "aria-worker:", err)
		os.Exit(1)
	}
}

func run(opts options, logger *slog.Logger) error {
	cfg := gen.DefaultConfig()
	cfg.BaseURL = opts.baseURL
	cfg.Model = opts.model
	cfg.APIKeyEnv = opts.apiKeyEnv
	genClient, err := gen.NewClient(cfg)
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

	c, err := client.Dial(client.Options{
		HostPort:  opts.temporalAddr,
		Namespace: opts.namespace,
		Logger:    tlog.NewStructuredLogger(logger),
	})
	if err != nil {
		return fmt.Errorf("connect to temporal: %w", err)
	}
	defer c.Close()

	steps := pipeline.BuildSteps(pipeline.Deps{
		Client:     genClient,
		Corpus:     retrieval.NewCorpus(docs),
		Records:    store,
		Escalation: escalation.DefaultConfig(),
		Logger:     logger,
	})

	w := sdkworker.New(c, opts.taskQueue, sdkworker.Options{})
	acts := temporalhost.NewActivities(
		activity.NewBaseActivities(events.NewSlogSink(logger)),
		steps,
	)
	temporalhost.RegisterAll(w, acts)

	logger.Info("worker starting", "task_queue", opts.taskQueue, "temporal", opts.temporalAddr)
	if err := w.Run(sdkworker.InterruptCh()); err != nil {
		return fmt.Errorf("worker stopped: %w", err)
	}
	return nil
}
