package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/auth"

	"floorassist/features/chat"
	oai "floorassist/internal/adapter/openai"
	wstore "floorassist/internal/adapter/weaviate"
	"floorassist/internal/config"
	"floorassist/internal/logger"
	"floorassist/internal/middleware"
	"floorassist/internal/retrieval"
	"floorassist/internal/vector"
)

func main() {
	log := slog.New(logger.NewContextHandler(slog.NewJSONHandler(os.Stdout, nil)))
	slog.SetDefault(log)

	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. Vector Index Connection & Schema
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

	wAdapter := vector.NewWeaviateClientAdapter(wClient)
	if err := ensureSchemaWithRetry(wAdapter, cfg); err != nil {
		// Index unreachable is a blocking configuration error; nothing else
		// is attempted.
		slog.Error("failed to ensure vector index schema", "error", err)
		os.Exit(1)
	}
	slog.Info("vector index schema ensured", "class", cfg.IndexClass)

	// 3. Adapters
	vecStore := wstore.NewStore(wClient, cfg.IndexClass)
	embedder := oai.NewEmbedder(cfg.OpenAIAPIKey, cfg.EmbeddingModel, cfg.EmbeddingDims)
	completer := oai.NewCompleter(cfg.OpenAIAPIKey, cfg.CompletionModel, cfg.Temperature, cfg.MaxTokens)

	queryLogger, err := retrieval.NewFileQueryLogger(cfg.QueryLogPath)
	if err != nil {
		slog.Warn("failed to create query logger, falling back to stdout", "error", err)
		queryLogger = retrieval.NewQueryLogger(os.Stdout)
	}

	// 4. Services
	retrievalService := retrieval.NewService(embedder, vecStore, cfg.EmbeddingDims, queryLogger)
	sessions := chat.NewSessions()
	chatService := chat.NewService(retrievalService, completer, cfg.TopK, cfg.ScoreThreshold)
	chatHandler := chat.NewHandler(chatService, sessions)

	// 5. Routes
	http.Handle("POST /chat", middleware.CorrelationID(middleware.CORS(chatHandler.Ask)))
	http.Handle("GET /chat/history", middleware.CorrelationID(middleware.CORS(chatHandler.History)))
	http.Handle("DELETE /chat/history", middleware.CorrelationID(middleware.CORS(chatHandler.Clear)))
	http.Handle("GET /chat/examples", middleware.CorrelationID(middleware.CORS(chatHandler.Examples)))

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Static chat page
	http.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))

	// 6. Start Server
	slog.Info("server starting", "port", cfg.ServerPort)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.ServerPort), nil); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func ensureSchemaWithRetry(client vector.SchemaClient, cfg *config.Config) error {
	delay := time.Duration(cfg.BootstrapRetryDelaySeconds) * time.Second

	var err error
	for i := 0; i < cfg.BootstrapRetryAttempts; i++ {
		if err = vector.EnsureSchema(context.Background(), client, cfg.IndexClass); err == nil {
			return nil
		}
		slog.Warn("failed to ensure schema, retrying...", "attempt", i+1, "error", err)
		time.Sleep(delay)
	}
	return err
}
