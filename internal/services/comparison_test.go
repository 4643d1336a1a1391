package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rolereader/resume-matcher/internal/models"
)

const (
	sampleResume = "Senior Go engineer with Kubernetes, Docker and PostgreSQL experience. Contact: jane@example.com"
	sampleJob    = "We need a Go engineer who knows Kubernetes, AWS and Terraform to run our platform."
)

func newTestComparisonService(t *testing.T, opts ComparisonOptions) (ComparisonService, *memoryRepo, *memoryCache) {
	t.Helper()

	nlp := NewNLPService(10)
	require.NoError(t, nlp.Initialize())

	if opts.MinTextLength == 0 {
		opts.MinTextLength = 50
	}
	repo := newMemoryRepo()
	cache := newMemoryCache()
	return NewComparisonService(nlp, repo, cache, opts), repo, cache
}

func seedComparisons(t *testing.T, repo *memoryRepo, scores ...float64) {
	t.Helper()
	for _, score := range scores {
		require.NoError(t, repo.Create(context.Background(), &models.Comparison{
			ResumeText:      "resume",
			JobDescription:  "job",
			MatchScore:      score,
			FoundKeywords:   []string{"go"},
			MissingKeywords: []string{"aws", "terraform"},
		}))
	}
}

func TestComparisonService_Compare(t *testing.T) {
	queue := &recordingQueue{}
	svc, repo, _ := newTestComparisonService(t, ComparisonOptions{Queue: queue})

	resp, err := svc.Compare(context.Background(), models.ComparisonRequest{
		ResumeText:     sampleResume,
		JobDescription: sampleJob,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(1), resp.ID)
	assert.GreaterOrEqual(t, resp.MatchScore, 0.0)
	assert.LessOrEqual(t, resp.MatchScore, 100.0)
	assert.Contains(t, resp.FoundKeywords, "kubernetes")
	assert.Contains(t, resp.MissingKeywords, "aws")
	assert.NotEmpty(t, resp.Suggestions)
	assert.LessOrEqual(t, len(resp.Suggestions), maxSuggestions)
	assert.Equal(t, true, resp.SimilarityDetails["resume_contact_info_present"])
	assert.Contains(t, resp.SimilarityDetails, "keyword_density")

	assert.Equal(t, []uint{1}, queue.enqueued())

	stored, err := repo.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.MatchScore, stored.MatchScore)
	assert.Equal(t, resp.RequiredSkills, stored.RequiredSkills)
}

func TestComparisonService_CompareAcceptsNonLatinText(t *testing.T) {
	svc, _, _ := newTestComparisonService(t, ComparisonOptions{})

	resp, err := svc.Compare(context.Background(), models.ComparisonRequest{
		ResumeText:     "Старший инженер-программист, пять лет опыта разработки распределённых систем на Go и Kubernetes.",
		JobDescription: "Ищем инженера со знанием Go, Kubernetes и PostgreSQL для развития платёжной платформы.",
	})
	require.NoError(t, err)
	assert.Contains(t, resp.FoundKeywords, "kubernetes")
	assert.Contains(t, resp.MissingKeywords, "postgresql")
}

func TestComparisonService_CompareQueuesFullJobDescription(t *testing.T) {
	queue := &recordingQueue{}
	svc, repo, _ := newTestComparisonService(t, ComparisonOptions{Queue: queue})

	job := strings.Repeat("Design and operate payment services in Go with Kubernetes.\n\n", 60)
	resp, err := svc.Compare(context.Background(), models.ComparisonRequest{
		ResumeText:     sampleResume,
		JobDescription: job,
	})
	require.NoError(t, err)

	stored, err := repo.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, storedTextLength, utf8.RuneCountInString(stored.JobDescription))

	jobs := queue.enqueuedJobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, SanitizeText(job), jobs[0].JobDescription)
	assert.Greater(t, len(NewTextChunker().ChunkText(jobs[0].JobDescription, embedChunkSize, embedChunkOverlap)), 1)
}

func TestComparisonService_CompareTruncatesStoredText(t *testing.T) {
	svc, repo, _ := newTestComparisonService(t, ComparisonOptions{})

	longResume := strings.Repeat("python developer ", 90)
	resp, err := svc.Compare(context.Background(), models.ComparisonRequest{
		ResumeText:     longResume,
		JobDescription: sampleJob,
	})
	require.NoError(t, err)

	stored, err := repo.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, storedTextLength, utf8.RuneCountInString(stored.ResumeText))
	assert.Equal(t, sampleJob, stored.JobDescription)
}

func TestComparisonService_CompareValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     models.ComparisonRequest
		wantMsg string
	}{
		{
			name:    "short resume",
			req:     models.ComparisonRequest{ResumeText: "Go dev", JobDescription: sampleJob},
			wantMsg: "Resume text is too short",
		},
		{
			name:    "empty job description",
			req:     models.ComparisonRequest{ResumeText: sampleResume, JobDescription: "   "},
			wantMsg: "Job description text is too short",
		},
		{
			name:    "html only",
			req:     models.ComparisonRequest{ResumeText: "<div><span></span></div>", JobDescription: sampleJob},
			wantMsg: "Resume text is too short",
		},
		{
			name:    "too long",
			req:     models.ComparisonRequest{ResumeText: strings.Repeat("a", 201), JobDescription: sampleJob},
			wantMsg: "Resume text is too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestComparisonService(t, ComparisonOptions{MaxTextLength: 200})

			_, err := svc.Compare(context.Background(), tt.req)
			require.Error(t, err)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Contains(t, vErr.Message, tt.wantMsg)
			assert.Empty(t, repo.rows)
		})
	}
}

func TestComparisonService_CompareNLPNotReady(t *testing.T) {
	svc := NewComparisonService(NewNLPService(10), newMemoryRepo(), nil, ComparisonOptions{MinTextLength: 50})

	_, err := svc.Compare(context.Background(), models.ComparisonRequest{ResumeText: sampleResume, JobDescription: sampleJob})
	assert.ErrorIs(t, err, ErrNLPNotReady)
}

func TestComparisonService_CompareWithEnhancer(t *testing.T) {
	t.Run("tailored suggestions come first", func(t *testing.T) {
		enhancer := &stubEnhancer{suggestions: []string{"Add a bullet about Terraform modules you wrote"}}
		svc, _, _ := newTestComparisonService(t, ComparisonOptions{Enhancer: enhancer})

		resp, err := svc.Compare(context.Background(), models.ComparisonRequest{ResumeText: sampleResume, JobDescription: sampleJob})
		require.NoError(t, err)

		assert.Equal(t, 1, enhancer.calls)
		assert.Equal(t, "Add a bullet about Terraform modules you wrote", resp.Suggestions[0])
		assert.LessOrEqual(t, len(resp.Suggestions), maxSuggestions)
	})

	t.Run("enhancer failure is ignored", func(t *testing.T) {
		enhancer := &stubEnhancer{err: errors.New("quota exceeded")}
		svc, _, _ := newTestComparisonService(t, ComparisonOptions{Enhancer: enhancer})

		resp, err := svc.Compare(context.Background(), models.ComparisonRequest{ResumeText: sampleResume, JobDescription: sampleJob})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Suggestions)
	})
}

func TestMergeSuggestions(t *testing.T) {
	base := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	merged := mergeSuggestions([]string{"x", "a", ""}, base)

	assert.Len(t, merged, maxSuggestions)
	assert.Equal(t, []string{"x", "a", "b", "c", "d", "e", "f", "g"}, merged)
}

func TestComparisonService_History(t *testing.T) {
	svc, repo, _ := newTestComparisonService(t, ComparisonOptions{})
	seedComparisons(t, repo, 40, 65, 90)

	history, err := svc.History(context.Background(), 0, -3)
	require.NoError(t, err)
	require.Len(t, history, 3)

	assert.Equal(t, uint(3), history[0].ID)
	assert.Equal(t, 90.0, history[0].MatchScore)
	assert.Equal(t, 1, history[0].FoundKeywordsCount)
	assert.Equal(t, 2, history[0].MissingKeywordsCount)
	assert.Equal(t, uint(1), history[2].ID)

	page, err := svc.History(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, uint(2), page[0].ID)
}

func TestComparisonService_HistoryError(t *testing.T) {
	svc, repo, _ := newTestComparisonService(t, ComparisonOptions{})
	repo.listErr = errors.New("connection refused")

	_, err := svc.History(context.Background(), 10, 0)
	assert.EqualError(t, err, "connection refused")
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 10, clampLimit(0, 10, 100))
	assert.Equal(t, 10, clampLimit(-4, 10, 100))
	assert.Equal(t, 25, clampLimit(25, 10, 100))
	assert.Equal(t, 100, clampLimit(500, 10, 100))
}

func TestComparisonService_Details(t *testing.T) {
	svc, repo, cache := newTestComparisonService(t, ComparisonOptions{})
	seedComparisons(t, repo, 72.5)

	resp, err := svc.Details(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 72.5, resp.MatchScore)
	assert.True(t, cache.has(1))

	// Served from the cache once the row is gone.
	delete(repo.rows, 1)
	resp, err = svc.Details(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 72.5, resp.MatchScore)

	_, err = svc.Details(context.Background(), 42)
	assert.ErrorIs(t, err, ErrComparisonNotFound)
}

func TestComparisonService_Delete(t *testing.T) {
	index := &fakeIndex{}
	svc, repo, cache := newTestComparisonService(t, ComparisonOptions{Index: index})
	seedComparisons(t, repo, 50)

	_, err := svc.Details(context.Background(), 1)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.False(t, cache.has(1))
	assert.Equal(t, []uint{1}, index.removed)

	_, err = svc.Details(context.Background(), 1)
	assert.ErrorIs(t, err, ErrComparisonNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrComparisonNotFound)
}

func TestComparisonService_Similar(t *testing.T) {
	t.Run("disabled without an index", func(t *testing.T) {
		svc, repo, _ := newTestComparisonService(t, ComparisonOptions{})
		seedComparisons(t, repo, 50)

		_, err := svc.Similar(context.Background(), 1, 5)
		assert.ErrorIs(t, err, ErrSemanticSearchDisabled)
	})

	t.Run("skips itself and stale points", func(t *testing.T) {
		index := &fakeIndex{hits: []SearchResult{
			{ComparisonID: 1, Score: 0.99},
			{ComparisonID: 3, Score: 0.8},
			{ComparisonID: 99, Score: 0.6},
			{ComparisonID: 2, Score: 0.5},
		}}
		svc, repo, _ := newTestComparisonService(t, ComparisonOptions{Index: index})
		seedComparisons(t, repo, 50, 60, 70)

		similar, err := svc.Similar(context.Background(), 1, 5)
		require.NoError(t, err)
		require.Len(t, similar, 2)

		assert.Equal(t, uint(3), similar[0].ID)
		assert.Equal(t, float32(0.8), similar[0].Similarity)
		assert.Equal(t, 70.0, similar[0].MatchScore)
		assert.Equal(t, uint(2), similar[1].ID)
	})

	t.Run("prefers the stored vector", func(t *testing.T) {
		index := &fakeIndex{stored: map[uint][]float32{1: {0, 1, 0}}}
		svc, repo, _ := newTestComparisonService(t, ComparisonOptions{Index: index})
		seedComparisons(t, repo, 50)

		_, err := svc.Similar(context.Background(), 1, 5)
		require.NoError(t, err)
		assert.Empty(t, index.embedded)
		assert.Equal(t, [][]float32{{0, 1, 0}}, index.searched)
	})

	t.Run("embeds stored text when not indexed", func(t *testing.T) {
		index := &fakeIndex{}
		svc, repo, _ := newTestComparisonService(t, ComparisonOptions{Index: index})
		seedComparisons(t, repo, 50)

		_, err := svc.Similar(context.Background(), 1, 5)
		require.NoError(t, err)
		assert.Equal(t, []string{"job"}, index.embedded)
	})

	t.Run("unknown comparison", func(t *testing.T) {
		svc, _, _ := newTestComparisonService(t, ComparisonOptions{Index: &fakeIndex{}})

		_, err := svc.Similar(context.Background(), 7, 5)
		assert.ErrorIs(t, err, ErrComparisonNotFound)
	})
}

func TestReindexAll(t *testing.T) {
	repo := newMemoryRepo()
	seedComparisons(t, repo, 10, 20, 30)
	index := &fakeIndex{}

	n, err := ReindexAll(context.Background(), repo, index, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, n)
	assert.Equal(t, []uint{1, 2, 3}, index.indexedIDs())
	assert.NotNil(t, repo.indexedAt(3))
}
