package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"rolereader/resume-matcher/internal/models"
	"rolereader/resume-matcher/internal/repositories"
)

const (
	storedTextLength    = 1000
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
	defaultSimilarLimit = 5
	maxSimilarLimit     = 50
)

type ComparisonService interface {
	Compare(ctx context.Context, req models.ComparisonRequest) (*models.ComparisonResponse, error)
	History(ctx context.Context, limit, offset int) ([]models.ComparisonHistoryResponse, error)
	Details(ctx context.Context, id uint) (*models.ComparisonResponse, error)
	Delete(ctx context.Context, id uint) error
	Similar(ctx context.Context, id uint, limit int) ([]models.SimilarComparison, error)
}

type ComparisonOptions struct {
	MinTextLength int
	MaxTextLength int
	// Optional collaborators; nil disables the feature.
	Enhancer SuggestionEnhancer
	Index    SemanticIndex
	Queue    IndexQueue
}

type comparisonService struct {
	nlp      NLPService
	repo     repositories.ComparisonRepository
	cache    repositories.ComparisonCache
	enhancer SuggestionEnhancer
	index    SemanticIndex
	queue    IndexQueue
	minLen   int
	maxLen   int
}

func NewComparisonService(
	nlp NLPService,
	repo repositories.ComparisonRepository,
	cache repositories.ComparisonCache,
	opts ComparisonOptions,
) ComparisonService {
	if cache == nil {
		cache = repositories.NewComparisonCache(nil)
	}
	return &comparisonService{
		nlp:      nlp,
		repo:     repo,
		cache:    cache,
		enhancer: opts.Enhancer,
		index:    opts.Index,
		queue:    opts.Queue,
		minLen:   opts.MinTextLength,
		maxLen:   opts.MaxTextLength,
	}
}

// Compare implements ComparisonService.
func (s *comparisonService) Compare(ctx context.Context, req models.ComparisonRequest) (*models.ComparisonResponse, error) {
	resumeText := SanitizeText(req.ResumeText)
	jobDescription := SanitizeText(req.JobDescription)

	if err := s.validate("Resume", resumeText); err != nil {
		return nil, err
	}
	if err := s.validate("Job description", jobDescription); err != nil {
		return nil, err
	}

	stats := GetTextStatistics(resumeText)
	log.Printf("📄 Comparing resume (%d words, %d sentences) against job description (%d words)\n",
		stats.WordCount, stats.SentenceCount, GetTextStatistics(jobDescription).WordCount)

	result, err := s.nlp.CompareTexts(resumeText, jobDescription)
	if err != nil {
		return nil, err
	}

	suggestions := result.Suggestions
	if s.enhancer != nil {
		extra, err := s.enhancer.Suggest(ctx, resumeText, jobDescription, result.MissingKeywords)
		if err != nil {
			log.Printf("⚠️  Suggestion enrichment failed: %v\n", err)
		} else {
			suggestions = mergeSuggestions(extra, suggestions)
		}
	}

	details := result.SimilarityDetails
	contact := ExtractContactInfo(resumeText)
	details["resume_contact_info_present"] = contact.Email != "" || contact.Phone != "" || contact.LinkedIn != ""
	details["resume_word_count"] = stats.WordCount
	if len(result.FoundKeywords) > 0 {
		details["keyword_density"] = KeywordDensity(resumeText, result.FoundKeywords)
	}

	comparison := &models.Comparison{
		ResumeText:        truncateRunes(resumeText, storedTextLength),
		JobDescription:    truncateRunes(jobDescription, storedTextLength),
		MatchScore:        result.MatchScore,
		FoundKeywords:     result.FoundKeywords,
		MissingKeywords:   result.MissingKeywords,
		Suggestions:       suggestions,
		RequiredSkills:    result.RequiredSkills,
		SimilarityDetails: details,
	}
	if err := s.repo.Create(ctx, comparison); err != nil {
		return nil, err
	}

	log.Printf("✅ Comparison %d stored with score %.2f\n", comparison.ID, comparison.MatchScore)

	if s.queue != nil {
		s.queue.EnqueueJob(IndexJob{ComparisonID: comparison.ID, JobDescription: jobDescription})
	}

	resp := comparison.ToResponse()
	return &resp, nil
}

func (s *comparisonService) validate(field, text string) error {
	if !ValidateTextInput(text, s.minLen) {
		return &ValidationError{Message: fmt.Sprintf("%s text is too short or contains insufficient meaningful content (minimum %d characters)", field, s.minLen)}
	}
	if s.maxLen > 0 && utf8.RuneCountInString(text) > s.maxLen {
		return &ValidationError{Message: fmt.Sprintf("%s text is too long (maximum %d characters)", field, s.maxLen)}
	}
	return nil
}

// mergeSuggestions puts tailored suggestions first and drops duplicates.
func mergeSuggestions(tailored, base []string) []string {
	seen := make(map[string]bool, len(tailored)+len(base))
	merged := make([]string, 0, maxSuggestions)
	for _, list := range [][]string{tailored, base} {
		for _, sug := range list {
			if sug == "" || seen[sug] {
				continue
			}
			seen[sug] = true
			merged = append(merged, sug)
			if len(merged) == maxSuggestions {
				return merged
			}
		}
	}
	return merged
}

// History implements ComparisonService.
func (s *comparisonService) History(ctx context.Context, limit, offset int) ([]models.ComparisonHistoryResponse, error) {
	limit = clampLimit(limit, defaultHistoryLimit, maxHistoryLimit)
	if offset < 0 {
		offset = 0
	}

	comparisons, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	history := make([]models.ComparisonHistoryResponse, 0, len(comparisons))
	for i := range comparisons {
		history = append(history, comparisons[i].ToHistory())
	}
	return history, nil
}

// Details implements ComparisonService.
func (s *comparisonService) Details(ctx context.Context, id uint) (*models.ComparisonResponse, error) {
	cached, err := s.cache.Get(ctx, id)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, repositories.ErrCacheMiss) {
		log.Printf("⚠️  Comparison cache read failed for %d: %v\n", id, err)
	}

	comparison, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := comparison.ToResponse()
	if err := s.cache.Set(ctx, resp); err != nil {
		log.Printf("⚠️  Comparison cache write failed for %d: %v\n", id, err)
	}
	return &resp, nil
}

// Delete implements ComparisonService.
func (s *comparisonService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, id); err != nil {
		log.Printf("⚠️  Comparison cache eviction failed for %d: %v\n", id, err)
	}
	if s.index != nil {
		if err := s.index.Remove(ctx, id); err != nil {
			log.Printf("⚠️  Failed to remove comparison %d from semantic index: %v\n", id, err)
		}
	}

	log.Printf("🗑️  Comparison %d deleted\n", id)
	return nil
}

// Similar implements ComparisonService.
func (s *comparisonService) Similar(ctx context.Context, id uint, limit int) ([]models.SimilarComparison, error) {
	if s.index == nil {
		return nil, ErrSemanticSearchDisabled
	}
	limit = clampLimit(limit, defaultSimilarLimit, maxSimilarLimit)

	comparison, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	vector, err := s.index.Vector(ctx, id)
	if err != nil {
		log.Printf("⚠️  Stored vector lookup failed for %d: %v\n", id, err)
	}
	if len(vector) == 0 {
		vector, err = s.index.Embed(ctx, comparison.JobDescription)
		if err != nil {
			return nil, fmt.Errorf("failed to embed job description: %w", err)
		}
	}

	// One extra hit since the comparison itself is usually the nearest.
	hits, err := s.index.Search(ctx, vector, limit+1)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(hits))
	scores := make(map[uint]float32, len(hits))
	for _, hit := range hits {
		if hit.ComparisonID == id {
			continue
		}
		ids = append(ids, hit.ComparisonID)
		scores[hit.ComparisonID] = hit.Score
		if len(ids) == limit {
			break
		}
	}

	rows, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Comparison, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	similar := make([]models.SimilarComparison, 0, len(ids))
	for _, hitID := range ids {
		row, ok := byID[hitID]
		if !ok {
			// Point outlived its row.
			continue
		}
		similar = append(similar, models.SimilarComparison{
			ComparisonHistoryResponse: row.ToHistory(),
			Similarity:                scores[hitID],
		})
	}
	return similar, nil
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// ReindexAll embeds and upserts every stored comparison in id order. It is
// used for backfills and returns the number of comparisons indexed.
func ReindexAll(ctx context.Context, repo repositories.ComparisonRepository, index SemanticIndex, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	var (
		lastID  uint
		indexed int
	)
	for {
		batch, err := repo.FindAfterID(ctx, lastID, batchSize)
		if err != nil {
			return indexed, err
		}
		if len(batch) == 0 {
			return indexed, nil
		}

		for i := range batch {
			c := &batch[i]
			lastID = c.ID
			if err := index.Index(ctx, c, ""); err != nil {
				log.Printf("❌ Failed to index comparison %d: %v\n", c.ID, err)
				continue
			}
			if err := repo.MarkIndexed(ctx, c.ID, time.Now()); err != nil {
				log.Printf("⚠️  Failed to mark comparison %d indexed: %v\n", c.ID, err)
			}
			indexed++
		}
	}
}
