package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"rolereader/resume-matcher/internal/models"
)

const (
	embedChunkSize    = 1000
	embedChunkOverlap = 200
	embedConcurrency  = 4
)

// SemanticIndex keeps one vector per comparison, built from its job
// description, so past comparisons for similar roles can be found.
type SemanticIndex interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	// Index embeds jobDescription, or the stored description when it is
	// empty, and upserts it under the comparison id.
	Index(ctx context.Context, comparison *models.Comparison, jobDescription string) error
	Vector(ctx context.Context, comparisonID uint) ([]float32, error)
	Search(ctx context.Context, vector []float32, limit int) ([]SearchResult, error)
	Remove(ctx context.Context, comparisonID uint) error
}

type semanticIndex struct {
	gemini  GeminiService
	qdrant  QdrantService
	chunker TextChunker
}

func NewSemanticIndex(gemini GeminiService, qdrant QdrantService) SemanticIndex {
	return &semanticIndex{
		gemini:  gemini,
		qdrant:  qdrant,
		chunker: NewTextChunker(),
	}
}

// Embed averages the embeddings of every chunk of text.
func (s *semanticIndex) Embed(ctx context.Context, text string) ([]float32, error) {
	chunks := s.chunker.ChunkText(strings.TrimSpace(text), embedChunkSize, embedChunkOverlap)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("nothing to embed")
	}

	vectors := make([][]float32, len(chunks))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(embedConcurrency)
	for i, chunk := range chunks {
		eg.Go(func() error {
			vec, err := s.gemini.GenerateEmbedding(egCtx, chunk)
			if err != nil {
				return err
			}
			vectors[i] = vec
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return averageVectors(vectors)
}

// Index implements SemanticIndex.
func (s *semanticIndex) Index(ctx context.Context, comparison *models.Comparison, jobDescription string) error {
	if strings.TrimSpace(jobDescription) == "" {
		jobDescription = comparison.JobDescription
	}

	vector, err := s.Embed(ctx, jobDescription)
	if err != nil {
		return fmt.Errorf("failed to embed comparison %d: %w", comparison.ID, err)
	}

	return s.qdrant.UpsertComparison(ctx, comparison.ID, vector, map[string]interface{}{
		"match_score": comparison.MatchScore,
		"created_at":  comparison.CreatedAt.Unix(),
	})
}

// Vector implements SemanticIndex.
func (s *semanticIndex) Vector(ctx context.Context, comparisonID uint) ([]float32, error) {
	return s.qdrant.GetVector(ctx, comparisonID)
}

// Search implements SemanticIndex.
func (s *semanticIndex) Search(ctx context.Context, vector []float32, limit int) ([]SearchResult, error) {
	return s.qdrant.SearchSimilar(ctx, vector, limit)
}

// Remove implements SemanticIndex.
func (s *semanticIndex) Remove(ctx context.Context, comparisonID uint) error {
	return s.qdrant.DeleteComparison(ctx, comparisonID)
}

func averageVectors(vectors [][]float32) ([]float32, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no vectors to average")
	}

	dim := len(vectors[0])
	avg := make([]float32, dim)
	for _, vec := range vectors {
		if len(vec) != dim {
			return nil, fmt.Errorf("embedding size mismatch: %d != %d", len(vec), dim)
		}
		for i, v := range vec {
			avg[i] += v
		}
	}
	for i := range avg {
		avg[i] /= float32(len(vectors))
	}
	return avg, nil
}
