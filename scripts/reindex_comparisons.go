package main

import (
	"context"
	"log"
	"os"
	"strings"

	"rolereader/resume-matcher/internal/config"
	"rolereader/resume-matcher/internal/repositories"
	"rolereader/resume-matcher/internal/services"
)

func main() {
	log.Println("🚀 Starting comparison reindex...")

	cfg := config.Load()
	if !cfg.SemanticSearchEnabled() {
		log.Fatalln("❌ GEMINI_API_KEY and QDRANT_URL must both be set to reindex")
	}

	ctx := context.Background()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	index := services.NewSemanticIndex(geminiService, qdrantService)
	repo := repositories.NewComparisonRepository(db)

	indexed, err := services.ReindexAll(ctx, repo, index, 100)

	log.Println(strings.Repeat("=", 60))
	log.Printf("📊 Reindex Summary:")
	log.Printf("   ✅ Indexed: %d comparisons", indexed)
	log.Println(strings.Repeat("=", 60))

	if err != nil {
		log.Printf("❌ Reindex stopped early: %v", err)
		os.Exit(1)
	}

	log.Println("✅ Reindex completed successfully!")
}
