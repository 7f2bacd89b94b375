package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clarolegal/lexclaro/internal/api"
	"github.com/clarolegal/lexclaro/internal/classify"
	"github.com/clarolegal/lexclaro/internal/config"
	"github.com/clarolegal/lexclaro/internal/guide"
	"github.com/clarolegal/lexclaro/internal/ingest"
	"github.com/clarolegal/lexclaro/internal/llm"
	"github.com/clarolegal/lexclaro/internal/pipeline"
	"github.com/clarolegal/lexclaro/internal/rewrite"
	"github.com/clarolegal/lexclaro/internal/segment"
	"github.com/clarolegal/lexclaro/internal/verify"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize the external capability.
	stats := llm.NewStats(cfg.StatsWindow)
	var client llm.Client
	var deepseek *llm.DeepSeekClient
	switch cfg.LLMProvider {
	case "fake":
		client = llm.NewFakeClient()
	default:
		deepseek = llm.NewDeepSeekClient(cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMBaseURL, cfg.LLMTimeout, stats)
		client = deepseek
	}

	// Initialize the pipeline stages.
	extractor := &ingest.Extractor{
		FallbackPdftotext: cfg.PDFFallbackPdftotext,
		TesseractPath:     cfg.TesseractPath,
	}
	classifier := classify.New(client, classify.DefaultKeywords(), classify.Config{
		RuleThreshold:  cfg.RuleThreshold,
		ForceThreshold: cfg.ForceThreshold,
		CharBudget:     cfg.ClassifyCharBudget,
		Temperature:    cfg.ClassifyTemperature,
		Retries:        cfg.LLMRetries,
		Backoff:        cfg.LLMBackoff,
	}, log)
	rewriter := rewrite.New(client, rewrite.Config{
		SoftLimit:     cfg.ChunkSoftLimit,
		HardLimit:     cfg.ChunkHardLimit,
		MaxConcurrent: cfg.MaxConcurrentChunks,
		Temperature:   cfg.RewriteTemperature,
		Retries:       cfg.LLMRetries,
		Backoff:       cfg.LLMBackoff,
	}, log)
	guider := guide.New(client, guide.Config{
		CharBudget:  cfg.GuideCharBudget,
		Temperature: cfg.GuideTemperature,
		Retries:     cfg.LLMRetries,
		Backoff:     cfg.LLMBackoff,
	}, log)
	verifier := verify.New(client, verify.Config{
		CharBudget:  cfg.VerifyCharBudget,
		Temperature: cfg.VerifyTemperature,
		Retries:     cfg.LLMRetries,
		Backoff:     cfg.LLMBackoff,
	}, log)

	p := pipeline.New(extractor, segment.New(), classifier, rewriter, guider, verifier, log)

	srv := api.NewServer(p, stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if deepseek != nil {
			deepseek.Close()
		}
	}()

	log.Info("starting lexclaro", "port", cfg.Port, "provider", client.Name())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
