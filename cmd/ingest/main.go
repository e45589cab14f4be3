// Command ingest chunks the installation manual, embeds the chunks and
// upserts them into the vector index. Run once per manual revision; a rerun
// is a full reingestion that overwrites the same records.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/auth"

	oai "floorassist/internal/adapter/openai"
	wstore "floorassist/internal/adapter/weaviate"
	"floorassist/internal/config"
	"floorassist/internal/document"
	"floorassist/internal/ingest"
	"floorassist/internal/vector"
)

func main() {
	pdfPath := flag.String("pdf", "keith_running_floor_ii_installation_manual.pdf", "path to the manual PDF")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if _, err := os.Stat(*pdfPath); err != nil {
		slog.Error("manual PDF not found", "path", *pdfPath, "error", err)
		os.Exit(1)
	}

	pages, err := document.LoadPDF(*pdfPath)
	if err != nil {
		slog.Error("failed to load PDF", "error", err)
		os.Exit(1)
	}
	slog.Info("loaded manual", "path", *pdfPath, "pages", len(pages))

	chunks, err := document.Split(pages, cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		slog.Error("failed to split pages", "error", err)
		os.Exit(1)
	}
	slog.Info("split manual", "chunks", len(chunks), "chunk_size", cfg.ChunkSize, "overlap", cfg.ChunkOverlap)

	wCfg := weaviate.Config{
		Host:   cfg.WeaviateHost,
		Scheme: cfg.WeaviateScheme,
	}
	if cfg.WeaviateAPIKey != "" {
		wCfg.AuthConfig = auth.ApiKey{Value: cfg.WeaviateAPIKey}
	}
	wClient, err := weaviate.NewClient(wCfg)
	if err != nil {
		slog.Error("failed to create weaviate client", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	wAdapter := vector.NewWeaviateClientAdapter(wClient)
	if err := vector.EnsureSchema(ctx, wAdapter, cfg.IndexClass); err != nil {
		slog.Error("failed to ensure vector index schema", "error", err)
		os.Exit(1)
	}

	embedder := oai.NewEmbedder(cfg.OpenAIAPIKey, cfg.EmbeddingModel, cfg.EmbeddingDims)
	writer := wstore.NewStore(wClient, cfg.IndexClass)
	pipeline := ingest.NewPipeline(embedder, writer, cfg.EmbeddingDims, cfg.EmbedBatchSize, cfg.UpsertBatchSize)

	start := time.Now()
	written, err := pipeline.Run(ctx, chunks)
	if err != nil {
		slog.Error("ingestion failed", "error", err, "written", written)
		os.Exit(1)
	}

	slog.Info("ingestion complete", "index", cfg.IndexClass, "chunks", written, "duration", time.Since(start))
}
