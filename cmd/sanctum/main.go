// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/sanctum/ai"
	"github.com/poiesic/sanctum/ai/openai"
	"github.com/poiesic/sanctum/core"
	"github.com/poiesic/sanctum/pipeline"
	"github.com/poiesic/sanctum/policy"
	"github.com/poiesic/sanctum/pseudo"
	"github.com/poiesic/sanctum/reindex"
	"github.com/poiesic/sanctum/storage/badger"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func main() {
	app := &cli.App{
		Name:  "sanctum",
		Usage: "Access-controlled knowledge base with PII governance",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Ingest a document into a project's index",
				Action: ingestCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Path to the document (reads stdin if omitted)",
					},
					&cli.StringFlag{
						Name:  "department",
						Usage: "Owning department",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Source system label",
						Value: "Upload",
					},
					&cli.StringFlag{
						Name:  "classification",
						Usage: "Document classification (Public, Internal, Confidential)",
					},
					&cli.StringFlag{
						Name:  "visibility",
						Usage: "Document visibility (Public, Shared, Private)",
					},
					&cli.StringFlag{
						Name:  "owner",
						Usage: "Owner user ID",
					},
					&cli.StringSliceFlag{
						Name:  "group",
						Usage: "Group ID granted access (repeatable)",
					},
					&cli.BoolFlag{
						Name:  "strict-public",
						Usage: "Block public documents containing PII instead of masking",
					},
				),
			},
			{
				Name:   "query",
				Usage:  "Ask a question against a project's index",
				Action: queryCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "user",
						Usage:    "Caller user ID",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "group",
						Usage: "Group ID the caller belongs to (repeatable)",
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of chunks to retrieve",
						Value: pipeline.DefaultTopK,
					},
					&cli.StringFlag{
						Name:  "chat-model",
						Usage: "Chat model name for answer synthesis",
					},
				),
			},
			{
				Name:   "reindex",
				Usage:  "Re-embed every indexed chunk with a new embedding model",
				Action: reindexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:   "reveal",
				Usage:  "Restore pseudonymized values in masked text",
				Action: revealCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "secret",
						Usage:    "Pseudonymization secret",
						EnvVars:  []string{"SANCTUM_SECRET"},
						Required: true,
					},
					&cli.StringFlag{
						Name:     "tenant",
						Usage:    "Tenant ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "project",
						Usage:    "Project ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Path to the masked text (reads stdin if omitted)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// commonFlags are shared by the ingest and query commands.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "tenant",
			Usage:    "Tenant ID",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "project",
			Usage:    "Project ID",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "secret",
			Usage:    "Pseudonymization secret",
			EnvVars:  []string{"SANCTUM_SECRET"},
			Required: true,
		},
		&cli.StringFlag{
			Name:    "pipeline-config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML pipeline configuration",
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
		},
	}
}

func ingestCommand(c *cli.Context) error {
	text, err := readInput(c.String("file"))
	if err != nil {
		return err
	}

	classification, err := core.ParseClassification(c.String("classification"))
	if err != nil {
		return err
	}
	visibility, err := core.ParseVisibility(c.String("visibility"))
	if err != nil {
		return err
	}

	meta := core.DocumentMetadata{
		TenantID:       c.String("tenant"),
		ProjectID:      c.String("project"),
		Department:     c.String("department"),
		Source:         c.String("source"),
		Classification: classification,
		Visibility:     visibility,
		OwnerUserID:    c.String("owner"),
		GroupIDs:       c.StringSlice("group"),
	}

	var engineOpts []policy.Option
	if c.Bool("strict-public") {
		engineOpts = append(engineOpts, policy.WithStrictPublic())
	}

	rt, backend, err := buildRuntime(c, pipeline.WithEngine(policy.NewEngine(engineOpts...)))
	if err != nil {
		return err
	}
	defer backend.Close()

	result, err := rt.Ingest(c.Context, text, meta)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	if result.Blocked() {
		return blockedError(result.Decision)
	}

	fmt.Printf("Indexed %d chunks\n", result.ChunksIndexed)
	return nil
}

// blockedError turns a blocking governance decision into an error that
// matches core.ErrPolicyBlocked, so scripted callers see the taxonomy and a
// non-zero exit.
func blockedError(decision core.PolicyDecision) error {
	return fmt.Errorf("%w: rule %q: %s", core.ErrPolicyBlocked, decision.Rule, decision.Reason)
}

func queryCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query text is required")
	}

	rt, backend, err := buildRuntime(c)
	if err != nil {
		return err
	}
	defer backend.Close()

	filter := core.AccessFilter{
		Tenant:    c.String("tenant"),
		ProjectID: c.String("project"),
		UserID:    c.String("user"),
		GroupIDs:  c.StringSlice("group"),
	}

	result, err := rt.Answer(c.Context, query, filter)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	fmt.Println(result.Answer)
	if len(result.Sources) > 0 {
		fmt.Println()
		for i, hit := range result.Sources {
			fmt.Printf("[%d] %s (score %.3f)\n", i+1, hit.Record.Source, hit.Score)
		}
	}
	return nil
}

func reindexCommand(c *cli.Context) error {
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	reindexConfig := &reindex.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if reindexConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reindexConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reindexConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reindexer, err := reindex.NewReindexer(badger.NewVectorIndex(backend), embedder, reindexConfig, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reindexer.Run(c.Context); err != nil {
		return fmt.Errorf("reindex failed: %w", err)
	}

	return nil
}

func revealCommand(c *cli.Context) error {
	masked, err := readInput(c.String("file"))
	if err != nil {
		return err
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	cipher, err := pseudo.NewCipher(c.String("secret"))
	if err != nil {
		return err
	}

	vault := badger.NewTokenVault(backend)
	docKey := c.String("tenant") + "-" + c.String("project")

	records, err := vault.ListTokenRecords(c.Context, docKey)
	if err != nil {
		return err
	}

	out := masked
	for i := range records {
		raw, err := cipher.Decrypt(records[i].CipherText)
		if err != nil {
			return fmt.Errorf("failed to decrypt token %s: %w", records[i].Token, err)
		}
		out = strings.ReplaceAll(out, records[i].Token, raw)
	}

	fmt.Print(out)
	return nil
}

// buildRuntime wires storage, AI provider, cipher and pipeline config from
// the command's flags.
func buildRuntime(c *cli.Context, extra ...pipeline.Option) (*pipeline.Runtime, *badger.Backend, error) {
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	pipelineConfig, err := loadPipelineConfig(c.String("pipeline-config"))
	if err != nil {
		backend.Close()
		return nil, nil, err
	}
	if c.IsSet("top-k") {
		pipelineConfig.TopK = c.Int("top-k")
	}

	aiOpts := []ai.ConfigOption{ai.WithHost(c.String("host"))}
	if model := c.String("embedding-model"); model != "" {
		aiOpts = append(aiOpts, ai.WithEmbeddingModel(model))
	}
	if c.IsSet("chat-model") {
		aiOpts = append(aiOpts, ai.WithChatModel(c.String("chat-model")))
	}
	aiConfig := ai.NewConfig(aiOpts...)
	if err := aiConfig.Validate(); err != nil {
		backend.Close()
		return nil, nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		backend.Close()
		return nil, nil, fmt.Errorf("failed to create AI provider: %w", err)
	}

	cipher, err := pseudo.NewCipher(c.String("secret"))
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	opts := append([]pipeline.Option{pipeline.WithConfig(pipelineConfig)}, extra...)
	rt, err := pipeline.NewRuntime(
		badger.NewVectorIndex(backend),
		badger.NewTokenVault(backend),
		provider,
		cipher,
		opts...,
	)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	return rt, backend, nil
}

// loadPipelineConfig reads a YAML pipeline configuration. An empty path
// yields the default configuration.
func loadPipelineConfig(path string) (pipeline.Config, error) {
	if path == "" {
		return pipeline.DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("failed to read pipeline config: %w", err)
	}

	var config pipeline.Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return pipeline.Config{}, fmt.Errorf("failed to parse pipeline config: %w", err)
	}
	config.Normalize()
	return config, nil
}

// readInput reads the document text from a file, or stdin when no path is
// given.
func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
