package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jayeshbankoti007/movie-graph-rag/internal/adapter"
	"github.com/jayeshbankoti007/movie-graph-rag/internal/agent"
	"github.com/jayeshbankoti007/movie-graph-rag/internal/graph"
	"github.com/jayeshbankoti007/movie-graph-rag/internal/ingest"
	"github.com/jayeshbankoti007/movie-graph-rag/internal/tools"
	"github.com/jayeshbankoti007/movie-graph-rag/internal/vector"
	"github.com/jayeshbankoti007/movie-graph-rag/pkg/config"
	"github.com/jayeshbankoti007/movie-graph-rag/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Initialize logger
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting movie graph server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Ingest the tabular sources and build the graph once; it is read-only
	// from here on.
	rows, err := ingest.Load(ingest.Sources{
		MoviesPath:   cfg.MoviesCSVPath,
		CreditsPath:  cfg.CreditsCSVPath,
		KeywordsPath: cfg.KeywordsCSVPath,
	})
	if err != nil {
		log.Fatal("Failed to load tabular sources", zap.Error(err))
	}
	store, err := graph.BuildStore(rows)
	if err != nil {
		log.Fatal("Failed to build movie graph", zap.Error(err))
	}

	// Load the vector index artifacts; missing artifacts degrade semantic
	// search to empty results rather than failing startup.
	embedder := adapter.NewEmbeddingAdapter(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel)
	searcher := vector.NewSearcher(cfg.EmbeddingModel, cfg.IndexDir, embedder)
	searcher.Load()

	executor := tools.NewExecutor(store, searcher, cfg.SearchTopK, cfg.PathMaxHops)

	llm := adapter.NewLLMAdapter(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.ModelID)
	orchestrator := agent.NewOrchestrator(llm, executor)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "ok",
			"graph_nodes":   store.Graph().NodeCount(),
			"graph_edges":   store.Graph().EdgeCount(),
			"index_vectors": searcher.Count(),
		})
	})

	// API routes
	api := router.Group("/api")
	{
		// Tool definitions for the orchestrating agent
		api.GET("/tools", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"tools": tools.GetAllTools()})
		})

		// Generic tool-call endpoint
		api.POST("/tools/execute", func(c *gin.Context) {
			var req struct {
				Name      string                 `json:"name" binding:"required"`
				Arguments map[string]interface{} `json:"arguments"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			result := executor.Execute(c.Request.Context(), adapter.ToolCall{
				ID:        c.GetString("request_id"),
				Name:      req.Name,
				Arguments: req.Arguments,
			})
			c.JSON(http.StatusOK, result)
		})

		// Natural-language question answering through the agent loop
		api.POST("/ask", func(c *gin.Context) {
			var req struct {
				Question string `json:"question" binding:"required"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			answer, err := orchestrator.AnswerQuestion(c.Request.Context(), req.Question)
			if err != nil {
				c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, answer)
		})

		// Typed convenience routes over the same executor
		api.POST("/graph/query", runTool(executor, tools.ToolQueryGraph))
		api.POST("/graph/path", runTool(executor, tools.ToolNearestPath))
		api.POST("/graph/filter", runTool(executor, tools.ToolFilterMoviesByPerson))
		api.POST("/search", runTool(executor, tools.ToolSemanticSearch))

		api.GET("/movies/:id", func(c *gin.Context) {
			id, err := strconv.Atoi(c.Param("id"))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "movie id must be an integer"})
				return
			}
			result := executor.Execute(c.Request.Context(), adapter.ToolCall{
				ID:        c.GetString("request_id"),
				Name:      tools.ToolQueryMovieByID,
				Arguments: map[string]interface{}{"movie_id": id},
			})
			c.JSON(http.StatusOK, result)
		})
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		log.Info("HTTP server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-quit:
			log.Info("Shutting down", zap.String("signal", sig.String()))
		case <-ctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("Server exited with error", zap.Error(err))
	}
	log.Info("Server stopped")
}

// runTool builds a handler that forwards the JSON body as tool arguments.
func runTool(executor *tools.Executor, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		args := make(map[string]interface{})
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&args); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		result := executor.Execute(c.Request.Context(), adapter.ToolCall{
			ID:        c.GetString("request_id"),
			Name:      name,
			Arguments: args,
		})
		c.JSON(http.StatusOK, result)
	}
}

// requestID tags every request with a uuid for log correlation.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// ginLogger logs requests through zap instead of gin's default writer.
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("HTTP request",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
