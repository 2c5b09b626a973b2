package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/scripture-search-engine/internal/books"
	"github.com/scripture-search-engine/internal/config"
	"github.com/scripture-search-engine/internal/embeddings"
	"github.com/scripture-search-engine/internal/handlers"
	"github.com/scripture-search-engine/internal/llm"
	"github.com/scripture-search-engine/internal/middleware"
	"github.com/scripture-search-engine/internal/models"
	"github.com/scripture-search-engine/internal/pgdb"
	"github.com/scripture-search-engine/internal/repository"
	"github.com/scripture-search-engine/internal/repository/postgres"
	"github.com/scripture-search-engine/internal/repository/qdrant"
	"github.com/scripture-search-engine/internal/services"
)

var CLI struct {
	Index IndexCmd `cmd:"" help:"Parse scripture asset files and build the vector index."`
	Query QueryCmd `cmd:"" help:"Search the index with a natural-language query."`
	Serve ServeCmd `cmd:"" help:"Run the HTTP search API."`
}

// IndexCmd indexes the asset directory into the vector store
type IndexCmd struct {
	AssetsDir string `name:"assets-dir" help:"Path to the directory of book text files (default from config)."`
	Append    bool   `help:"Append to the existing index instead of clearing it."`
}

func (c *IndexCmd) Run() error {
	ctx := context.Background()
	cfg := config.GetConfig()

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	dir := c.AssetsDir
	if dir == "" {
		dir = cfg.AssetsDir
	}
	mode := services.ModeReplace
	if c.Append {
		mode = services.ModeAppend
	}

	indexer := services.NewIndexer(store, books.NewRegistry(), cfg.EmbedWithReference)
	report, err := indexer.IndexDir(ctx, dir, mode)
	for _, e := range report.Errors {
		log.Printf("index error: %v", &e)
	}
	if err != nil {
		return fmt.Errorf("indexing aborted: %w", err)
	}

	total, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}
	fmt.Printf("Indexed %d verses (%d skipped); collection now holds %d records\n",
		report.Added, report.Skipped, total)
	return nil
}

// QueryCmd runs one query through the full pipeline
type QueryCmd struct {
	Text            string   `arg:"" help:"Search query or question."`
	TopK            int      `name:"top-k" default:"5" help:"Number of results to return."`
	NoAnswer        bool     `name:"no-answer" help:"Skip LLM answer generation, only show search results."`
	Book            []string `help:"Filter by book name (repeatable)."`
	NoReranker      bool     `name:"no-reranker" help:"Disable cross-encoder reranking."`
	RetrievalFactor float64  `name:"retrieval-factor" help:"Multiplier for initial retrieval when reranking (default from config)."`
}

func (c *QueryCmd) Run() error {
	ctx := context.Background()
	cfg := config.GetConfig()

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	count, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}
	if count == 0 {
		return errors.New("vector index is empty; run 'scripture index' first")
	}

	var generator llm.Generator
	if !c.NoAnswer {
		g, err := llm.NewGeminiGenerator(ctx, cfg.GeminiModel)
		if err != nil {
			log.Printf("answer generation unavailable: %v", err)
		} else {
			generator = g
		}
	}
	engine := newEngine(store, generator, cfg)

	opts := services.QueryOptions{
		TopK:            c.TopK,
		Books:           c.Book,
		GenerateAnswer:  !c.NoAnswer,
		RetrievalFactor: c.RetrievalFactor,
	}
	if c.NoReranker {
		off := false
		opts.UseReranker = &off
	}
	if len(c.Book) > 0 {
		fmt.Printf("Filtering results to: %s\n", strings.Join(c.Book, ", "))
	}

	answer, warnings, err := engine.Query(ctx, c.Text, opts)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Printf("warning: %v", w)
	}

	printAnswer(answer)
	return nil
}

// ServeCmd runs the HTTP API, the same pipeline behind Echo handlers
type ServeCmd struct{}

func (c *ServeCmd) Run() error {
	ctx := context.Background()
	cfg := config.GetConfig()

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	var generator llm.Generator
	if g, err := llm.NewGeminiGenerator(ctx, cfg.GeminiModel); err != nil {
		log.Printf("answer generation unavailable: %v", err)
	} else {
		generator = g
	}
	engine := newEngine(store, generator, cfg)

	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSMiddleware())

	api := e.Group(cfg.APIPrefix)

	healthHandler := handlers.NewHealthHandler(store)
	healthHandler.RegisterRoutes(api)

	searchHandler := handlers.NewSearchHandler(engine)
	searchHandler.RegisterRoutes(api)

	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"name":    cfg.APITitle,
			"version": cfg.APIVersion,
			"status":  "running",
		})
	})

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Starting %s v%s on %s", cfg.APITitle, cfg.APIVersion, addr)
		if err := e.Start(addr); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	log.Println("Server stopped")
	return nil
}

// openStore builds the configured embedding backend and vector store.
// The returned cleanup closes whatever the backend opened.
func openStore(ctx context.Context, cfg *config.Config) (repository.VectorStore, func(), error) {
	embedder, err := embeddings.NewFromConfig(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	closeEmbedder := func() {
		if closer, ok := embedder.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				log.Printf("Error closing embedder: %v", err)
			}
		}
	}

	switch cfg.VectorBackend {
	case "qdrant":
		log.Println("Using Qdrant backend")
		store, err := qdrant.Connect(ctx, cfg.QdrantAddr, embedder, cfg.CollectionName, cfg.EmbeddingDimensions)
		if err != nil {
			closeEmbedder()
			return nil, nil, err
		}
		return store, closeEmbedder, nil
	case "pgvector", "":
		log.Println("Using pgvector backend")
		db, err := pgdb.Connect(ctx, cfg.PostgresURI)
		if err != nil {
			closeEmbedder()
			return nil, nil, err
		}
		store := postgres.NewVectorStore(db, embedder, cfg.CollectionName)
		if err := store.EnsureSchema(ctx, cfg.EmbeddingDimensions); err != nil {
			db.Close()
			closeEmbedder()
			return nil, nil, err
		}
		cleanup := func() {
			if err := db.Close(); err != nil {
				log.Printf("Error closing PostgreSQL: %v", err)
			}
			closeEmbedder()
		}
		return store, cleanup, nil
	default:
		closeEmbedder()
		return nil, nil, fmt.Errorf("unknown vector backend %q", cfg.VectorBackend)
	}
}

func newEngine(store repository.VectorStore, generator llm.Generator, cfg *config.Config) *services.QueryEngine {
	var reranker *services.Reranker
	if cfg.RerankerURL != "" {
		reranker = services.NewReranker(services.NewCrossEncoderClient(cfg.RerankerURL))
	}
	return services.NewQueryEngine(
		services.NewRetriever(store),
		reranker,
		generator,
		books.NewRegistry(),
		cfg.RerankerEnabled,
		cfg.RetrievalFactor,
	)
}

func printAnswer(answer models.Answer) {
	sep := "================================================================================"

	if answer.GeneratedText != "" {
		fmt.Println("\n" + sep)
		fmt.Println("ANSWER")
		fmt.Println(sep)
		fmt.Println(answer.GeneratedText)
		fmt.Println()
	}

	fmt.Println("\n" + sep)
	fmt.Println("RELEVANT SCRIPTURE PASSAGES")
	fmt.Println(sep)
	for _, p := range answer.Passages {
		fmt.Printf("\n[%d] %s\n", p.Rank, p.Reference)
		fmt.Printf("    %s\n", p.Text)
		fmt.Printf("    (relevance score: %.3f)\n", p.RelevanceScore)
	}
}

func main() {
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name("scripture"),
		kong.Description("Semantic search and Q&A over scripture texts"),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
